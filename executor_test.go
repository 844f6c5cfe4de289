package graphql

import (
	"context"
	"testing"

	gqerrors "github.com/arcweave/graphql/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteTypenameOnInterface(t *testing.T) {
	s := testSchema(t)
	resp := Execute(context.Background(), `{ item(id: "w1") { __typename name } }`, s, nil, nil, nil, "")
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	item := data["item"].(map[string]interface{})
	assert.Equal(t, "Widget", item["__typename"])
	assert.Equal(t, "Sprocket", item["name"])
}

func TestExecuteListOfObjects(t *testing.T) {
	s := testSchema(t)
	resp := Execute(context.Background(), `{ widgets { id name weight } }`, s, nil, nil, nil, "")
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	widgets := data["widgets"].([]interface{})
	require.Len(t, widgets, 2)
	first := widgets[0].(map[string]interface{})
	assert.Equal(t, "w1", first["id"])
}

func TestExecutePropagatesNonNullViolationToNearestNullableAncestor(t *testing.T) {
	s := testSchema(t)
	resp := Execute(context.Background(), `{ requiredMissing }`, s, nil, nil, nil, "")
	require.NotEmpty(t, resp.Errors)
	assert.Nil(t, resp.Data)
}

func TestExecuteIncludeDirectiveFalseOmitsField(t *testing.T) {
	s := testSchema(t)
	resp := Execute(context.Background(), `
		{ item(id: "w1") { id name @include(if: false) } }
	`, s, nil, nil, nil, "")
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	item := data["item"].(map[string]interface{})
	_, hasName := item["name"]
	assert.False(t, hasName)
	assert.Equal(t, "w1", item["id"])
}

func TestExecuteSkipDirectiveTrueOmitsField(t *testing.T) {
	s := testSchema(t)
	resp := Execute(context.Background(), `
		{ item(id: "w1") { id name @skip(if: true) } }
	`, s, nil, nil, nil, "")
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	item := data["item"].(map[string]interface{})
	_, hasName := item["name"]
	assert.False(t, hasName)
}

// mutationOrderHooks records the sequence of MutationStart/MutationEnd
// calls to verify they bracket each root mutation field individually and
// in order, per spec.md's Context/Hooks "paired per mutation field" rule,
// and that arguments/result are actually threaded through per §4.3.
type mutationOrderHooks struct {
	BaseHooks
	events    []string
	arguments []map[string]interface{}
	results   []interface{}
}

func (h *mutationOrderHooks) MutationStart(_ context.Context, field string, arguments map[string]interface{}) {
	h.events = append(h.events, "start:"+field)
	h.arguments = append(h.arguments, arguments)
}

func (h *mutationOrderHooks) MutationEnd(_ context.Context, field string, arguments map[string]interface{}, result interface{}, err error) {
	h.events = append(h.events, "end:"+field)
	h.results = append(h.results, result)
}

func TestMutationHooksBracketEachRootField(t *testing.T) {
	b := NewSchemaBuilder()
	query := b.Object("Query", "", nil)
	query.FieldFunc("ok", "Boolean!", Method("ok", func(context.Context, interface{}, interface{}) (interface{}, error) {
		return true, nil
	}))
	b.SetQuery("Query")

	count := 0
	mutation := b.Object("Mutation", "", nil)
	mutation.FieldFunc("increment", "Int!", Method("increment", func(_ context.Context, _, args interface{}) (interface{}, error) {
		a := args.(map[string]interface{})
		count += a["by"].(int)
		return count, nil
	}), WithArgs(map[string]Arg{"by": {TypeRef: "Int!"}}))
	b.SetMutation("Mutation")

	s, err := b.Build()
	require.NoError(t, err)

	hooks := &mutationOrderHooks{}
	resp := Execute(context.Background(), `mutation { a: increment(by: 1) b: increment(by: 2) }`, s, hooks, nil, nil, "")
	require.Empty(t, resp.Errors)
	assert.Equal(t, []string{"start:increment", "end:increment", "start:increment", "end:increment"}, hooks.events)
	assert.Equal(t, 3, count)

	require.Len(t, hooks.arguments, 2)
	assert.EqualValues(t, 1, hooks.arguments[0]["by"])
	assert.EqualValues(t, 2, hooks.arguments[1]["by"])

	require.Len(t, hooks.results, 2)
	assert.EqualValues(t, 1, hooks.results[0])
	assert.EqualValues(t, 3, hooks.results[1])
}

func TestVariableCoercionAndDefault(t *testing.T) {
	s := testSchema(t)
	resp := Execute(context.Background(), `
		query Q($id: ID! = "w1") { item(id: $id) { id } }
	`, s, nil, nil, nil, "")
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	item := data["item"].(map[string]interface{})
	assert.Equal(t, "w1", item["id"])
}

func TestMissingRequiredVariableIsReported(t *testing.T) {
	s := testSchema(t)
	resp := Execute(context.Background(), `
		query Q($id: ID!) { item(id: $id) { id } }
	`, s, nil, nil, nil, "")
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, gqerrors.KindVariables, resp.Errors[0].Kind)
	require.Len(t, resp.Errors[0].Locations, 1)
}

func TestUnknownOperationNameIsReportedWithKind(t *testing.T) {
	s := testSchema(t)
	resp := Execute(context.Background(), `query Q { widgets { id } }`, s, nil, nil, nil, "DoesNotExist")
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, gqerrors.KindOperationName, resp.Errors[0].Kind)
}
