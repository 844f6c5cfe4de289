package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRejectsDuplicateTypeName(t *testing.T) {
	b := NewSchemaBuilder()
	b.Object("Dup", "", nil)
	b.Enum("Dup", "", []string{"A"}, []interface{}{1})
	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate type name")
}

func TestBuildRejectsInvalidIdentifier(t *testing.T) {
	b := NewSchemaBuilder()
	b.Object("not-valid", "", nil)
	_, err := b.Build()
	assert.Error(t, err)
}

func TestBuildRejectsMissingInterfaceField(t *testing.T) {
	b := NewSchemaBuilder()
	iface := b.Interface("HasName", "", nil)
	iface.FieldFunc("name", "String!")

	obj := b.Object("Broken", "", nil)
	obj.FieldFunc("id", "ID!", Attr("ID"))
	obj.Implements("HasName")

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not implement")
}

func TestBuildRejectsIncompatibleInterfaceFieldType(t *testing.T) {
	b := NewSchemaBuilder()
	iface := b.Interface("HasName", "", nil)
	iface.FieldFunc("name", "String!")

	obj := b.Object("Broken", "", nil)
	obj.FieldFunc("name", "Int", Attr("Name"))
	obj.Implements("HasName")

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not assignment-compatible")
}

func TestBuildRejectsUnionCycle(t *testing.T) {
	b := NewSchemaBuilder()
	u1 := b.Union("U1", "")
	u2 := b.Union("U2", "")
	u1.AddMember("U2")
	u2.AddMember("U1")

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "union cycle detected")
}

func TestBuildRejectsFieldShadowingTypename(t *testing.T) {
	b := NewSchemaBuilder()
	obj := b.Object("Bad", "", nil)
	obj.FieldFunc("__typename", "String!", nil)
	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "__typename")
}

func TestBuildAttachesIntrospectionRootFields(t *testing.T) {
	s := testSchema(t)
	_, ok := s.ImplicitRootField("__schema")
	assert.True(t, ok)
	_, ok = s.ImplicitRootField("__type")
	assert.True(t, ok)
	_, ok = s.CommonField("__typename")
	assert.True(t, ok)
}

func TestSchemaExportJSONIncludesVersionAndResolverDescriptors(t *testing.T) {
	s := testSchema(t)
	body, err := s.ExportJSON()
	require.NoError(t, err)
	assert.Contains(t, string(body), `"version":1`)
	assert.Contains(t, string(body), "Widget")
	assert.Contains(t, string(body), "type.googleapis.com/graphql.ResolverDescriptor")
}
