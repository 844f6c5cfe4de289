// Package starwars is a worked example schema exercising every module of
// the engine: interfaces, enums, mutations, and the __typename/@include
// machinery, grounded on the teacher's own example/starwars/starwars.go.
package starwars

import (
	"context"
	"errors"

	"github.com/arcweave/graphql"
)

type Episode int

const (
	NewHope Episode = iota + 4
	Empire
	Jedi
)

// Character is the interface Human and Droid both implement.
type Character interface {
	characterTag()
}

type Human struct {
	ID         string
	Name       string
	Friends    []string
	AppearsIn  []Episode
	HomePlanet string
}

func (*Human) characterTag() {}

type Droid struct {
	ID              string
	Name            string
	Friends         []string
	AppearsIn       []Episode
	PrimaryFunction string
}

func (*Droid) characterTag() {}

var (
	luke = &Human{ID: "1000", Name: "Luke Skywalker", Friends: []string{"1002", "1003", "2000", "2001"}, AppearsIn: []Episode{NewHope, Empire, Jedi}, HomePlanet: "Tatooine"}
	vader = &Human{ID: "1001", Name: "Darth Vader", Friends: []string{"1004"}, AppearsIn: []Episode{NewHope, Empire, Jedi}, HomePlanet: "Tatooine"}
	han = &Human{ID: "1002", Name: "Han Solo", Friends: []string{"1000", "1003", "2001"}, AppearsIn: []Episode{NewHope, Empire, Jedi}}
	leia = &Human{ID: "1003", Name: "Leia Organa", Friends: []string{"1000", "1002", "2000", "2001"}, AppearsIn: []Episode{NewHope, Empire, Jedi}, HomePlanet: "Alderaan"}
	tarkin = &Human{ID: "1004", Name: "Wilhuff Tarkin", Friends: []string{"1001"}, AppearsIn: []Episode{NewHope}}

	threepio = &Droid{ID: "2000", Name: "C-3PO", Friends: []string{"1000", "1002", "1003", "2001"}, AppearsIn: []Episode{NewHope, Empire, Jedi}, PrimaryFunction: "Protocol"}
	artoo    = &Droid{ID: "2001", Name: "R2-D2", Friends: []string{"1000", "1002", "1003"}, AppearsIn: []Episode{NewHope, Empire, Jedi}, PrimaryFunction: "Astromech"}

	humans = map[string]*Human{"1000": luke, "1001": vader, "1002": han, "1003": leia, "1004": tarkin}
	droids = map[string]*Droid{"2000": threepio, "2001": artoo}
)

func getCharacter(id string) Character {
	if h, ok := humans[id]; ok {
		return h
	}
	if d, ok := droids[id]; ok {
		return d
	}
	return nil
}

func getFriends(ids []string) []Character {
	out := make([]Character, 0, len(ids))
	for _, id := range ids {
		if c := getCharacter(id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// NewSchema builds the example schema, in the style of the teacher's own
// main() function but against the new explicit SchemaBuilder.
func NewSchema() (*graphql.Schema, error) {
	b := graphql.NewSchemaBuilder()

	episode := b.Enum("Episode", "One of the films in the Star Wars Trilogy",
		[]string{"NEW_HOPE", "EMPIRE", "JEDI"},
		[]interface{}{NewHope, Empire, Jedi},
	)

	character := b.Interface("Character", "A character in the Star Wars Trilogy", (*Character)(nil))
	character.FieldFunc("id", "ID!", graphql.WithDescription("The id of the character."))
	character.FieldFunc("name", "String!", graphql.WithDescription("The name of the character."))
	character.FieldFunc("friends", "[Character]", graphql.WithDescription("The friends of the character, or an empty list if they have none."))
	character.FieldFunc("appearsIn", "[Episode]!", graphql.WithDescription("Which movies they appear in."))
	character.FieldFunc("secretBackstory", "String", graphql.WithDescription("All secrets about their past."))

	human := b.Object("Human", "A humanoid creature in the Star Wars universe.", Human{})
	human.FieldFunc("id", "ID!", graphql.Attr("ID"))
	human.FieldFunc("name", "String!", graphql.Attr("Name"))
	human.FieldFunc("appearsIn", "[Episode]!", graphql.Attr("AppearsIn"))
	human.FieldFunc("homePlanet", "String", graphql.Attr("HomePlanet"), graphql.WithDescription("The home planet of the human, or null if unknown."))
	human.FieldFunc("friends", "[Character]", graphql.Method("friends", func(_ context.Context, source, _ interface{}) (interface{}, error) {
		return getFriends(source.(*Human).Friends), nil
	}))
	human.FieldFunc("secretBackstory", "String", graphql.Method("secretBackstory", func(context.Context, interface{}, interface{}) (interface{}, error) {
		return nil, errors.New("secretBackstory is secret")
	}))
	human.Implements("Character")

	droid := b.Object("Droid", "A mechanical creature in the Star Wars universe.", Droid{})
	droid.FieldFunc("id", "ID!", graphql.Attr("ID"))
	droid.FieldFunc("name", "String!", graphql.Attr("Name"))
	droid.FieldFunc("appearsIn", "[Episode]!", graphql.Attr("AppearsIn"))
	droid.FieldFunc("primaryFunction", "String", graphql.Attr("PrimaryFunction"))
	droid.FieldFunc("friends", "[Character]", graphql.Method("friends", func(_ context.Context, source, _ interface{}) (interface{}, error) {
		return getFriends(source.(*Droid).Friends), nil
	}))
	droid.FieldFunc("secretBackstory", "String", graphql.Method("secretBackstory", func(context.Context, interface{}, interface{}) (interface{}, error) {
		return nil, errors.New("secretBackstory is secret")
	}))
	droid.Implements("Character")

	query := b.Object("Query", "", nil)
	query.FieldFunc("hero", "Character", graphql.Method("hero", func(_ context.Context, _, args interface{}) (interface{}, error) {
		a := args.(map[string]interface{})
		if ep, ok := a["episode"]; ok && ep != nil {
			if ep.(Episode) == Empire {
				return luke, nil
			}
		}
		return artoo, nil
	}), graphql.WithArgs(map[string]graphql.Arg{"episode": {TypeRef: "Episode"}}))
	query.FieldFunc("human", "Human", graphql.Method("human", func(_ context.Context, _, args interface{}) (interface{}, error) {
		id := args.(map[string]interface{})["id"].(string)
		return humans[id], nil
	}), graphql.WithArgs(map[string]graphql.Arg{"id": {TypeRef: "ID!"}}))
	query.FieldFunc("droid", "Droid", graphql.Method("droid", func(_ context.Context, _, args interface{}) (interface{}, error) {
		id := args.(map[string]interface{})["id"].(string)
		return droids[id], nil
	}), graphql.WithArgs(map[string]graphql.Arg{"id": {TypeRef: "ID!"}}))
	b.SetQuery("Query")

	mutation := b.Object("Mutation", "", nil)
	mutation.FieldFunc("addFriend", "Human", graphql.Method("addFriend", func(_ context.Context, _, args interface{}) (interface{}, error) {
		a := args.(map[string]interface{})
		id := a["humanId"].(string)
		friendID := a["friendId"].(string)
		h, ok := humans[id]
		if !ok {
			return nil, errors.New("unknown human id")
		}
		h.Friends = append(h.Friends, friendID)
		return h, nil
	}), graphql.WithArgs(map[string]graphql.Arg{
		"humanId":  {TypeRef: "ID!"},
		"friendId": {TypeRef: "ID!"},
	}))
	b.SetMutation("Mutation")

	_ = episode
	return b.Build()
}
