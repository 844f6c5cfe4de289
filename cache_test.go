package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCacheRoundTrip(t *testing.T) {
	c := newDocumentCache(2)
	doc := &Document{Operations: map[string]*Operation{}}
	c.put("{ widgets { id } }", doc)

	got, ok := c.get("{ widgets { id } }")
	require.True(t, ok)
	assert.Same(t, doc, got)

	_, ok = c.get("not cached")
	assert.False(t, ok)
}

func TestSchemaParseUsesDocumentCache(t *testing.T) {
	s := testSchema(t)
	first, err := Parse(`{ widgets { id } }`, s)
	require.NoError(t, err)
	second, err := Parse(`{ widgets { id } }`, s)
	require.NoError(t, err)
	assert.Same(t, first, second, "identical source text should be served from the document cache")
}
