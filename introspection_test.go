package graphql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntrospectionSchemaQuery(t *testing.T) {
	s := testSchema(t)
	resp := Execute(context.Background(), `{ __schema { queryType { name } types { name } } }`, s, nil, nil, nil, "")
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	sch := data["__schema"].(map[string]interface{})
	qt := sch["queryType"].(map[string]interface{})
	assert.Equal(t, "Query", qt["name"])

	names := map[string]bool{}
	for _, rawType := range sch["types"].([]interface{}) {
		names[rawType.(map[string]interface{})["name"].(string)] = true
	}
	assert.True(t, names["Widget"])
	assert.True(t, names["Item"])
}

func TestIntrospectionTypeQueryByName(t *testing.T) {
	s := testSchema(t)
	resp := Execute(context.Background(), `{ __type(name: "Widget") { name kind } }`, s, nil, nil, nil, "")
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	typ := data["__type"].(map[string]interface{})
	assert.Equal(t, "Widget", typ["name"])
	assert.Equal(t, "OBJECT", typ["kind"])
}

func TestIntrospectionTypeQueryUnknownNameReturnsNull(t *testing.T) {
	s := testSchema(t)
	resp := Execute(context.Background(), `{ __type(name: "DoesNotExist") { name } }`, s, nil, nil, nil, "")
	require.Empty(t, resp.Errors)
	data := resp.Data.(map[string]interface{})
	assert.Nil(t, data["__type"])
}
