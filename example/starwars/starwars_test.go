package starwars

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcweave/graphql"
)

func TestHumanLookupByID(t *testing.T) {
	s, err := NewSchema()
	require.NoError(t, err)

	resp := graphql.Execute(context.Background(), `{human(id: "1000"){name}}`, s, nil, nil, nil, "")
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	human := data["human"].(map[string]interface{})
	assert.Equal(t, "Luke Skywalker", human["name"])
}

func TestHeroTypenameForDroid(t *testing.T) {
	s, err := NewSchema()
	require.NoError(t, err)

	resp := graphql.Execute(context.Background(), `{hero{__typename, name}}`, s, nil, nil, nil, "")
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	hero := data["hero"].(map[string]interface{})
	assert.Equal(t, "Droid", hero["__typename"])
	assert.Equal(t, "R2-D2", hero["name"])
}

func TestHeroEpisodeArgumentSelectsHuman(t *testing.T) {
	s, err := NewSchema()
	require.NoError(t, err)

	resp := graphql.Execute(context.Background(), `{hero(episode: EMPIRE){__typename, name}}`, s, nil, nil, nil, "")
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	hero := data["hero"].(map[string]interface{})
	assert.Equal(t, "Human", hero["__typename"])
	assert.Equal(t, "Luke Skywalker", hero["name"])
}

func TestIncludeDirectiveTogglesHumanName(t *testing.T) {
	s, err := NewSchema()
	require.NoError(t, err)

	query := `query Q($if: Boolean!) { human(id: "1000") { name @include(if: $if) } }`

	resp := graphql.Execute(context.Background(), query, s, nil, nil, map[string]interface{}{"if": false}, "")
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	human := data["human"].(map[string]interface{})
	assert.Empty(t, human)

	resp = graphql.Execute(context.Background(), query, s, nil, nil, map[string]interface{}{"if": true}, "")
	require.Empty(t, resp.Errors)
	data = resp.Data.(map[string]interface{})
	human = data["human"].(map[string]interface{})
	assert.Equal(t, "Luke Skywalker", human["name"])
}

func TestSecretBackstoryResolverErrorNullsField(t *testing.T) {
	s, err := NewSchema()
	require.NoError(t, err)

	resp := graphql.Execute(context.Background(), `{human(id: "1000"){name secretBackstory}}`, s, nil, nil, nil, "")
	require.NotEmpty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	human := data["human"].(map[string]interface{})
	assert.Equal(t, "Luke Skywalker", human["name"])
	assert.Nil(t, human["secretBackstory"])
}

func TestAddFriendMutationUpdatesFriendsList(t *testing.T) {
	s, err := NewSchema()
	require.NoError(t, err)

	resp := graphql.Execute(context.Background(), `mutation { addFriend(humanId: "1000", friendId: "1004") { id } }`, s, nil, nil, nil, "")
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	result := data["addFriend"].(map[string]interface{})
	assert.Equal(t, "1000", result["id"])
	assert.Contains(t, luke.Friends, "1004")
}

func TestDuplicateOperationNameIsRejected(t *testing.T) {
	s, err := NewSchema()
	require.NoError(t, err)

	resp := graphql.Execute(context.Background(), `query foo { hero { name } } query foo { hero { name } }`, s, nil, nil, nil, "")
	require.Nil(t, resp.Data)
	require.NotEmpty(t, resp.Errors)
}
