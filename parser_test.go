package graphql

import (
	"testing"

	gqerrors "github.com/arcweave/graphql/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleQuery(t *testing.T) {
	s := testSchema(t)
	doc, err := ParseDocument(`{ widgets { id name weight } }`, s)
	require.NoError(t, err)
	require.Len(t, doc.Operations, 1)
}

func TestParseRejectsDuplicateOperationName(t *testing.T) {
	s := testSchema(t)
	_, err := ParseDocument(`
		query A { widgets { id } }
		query A { widgets { name } }
	`, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate operation name")

	gqerr, ok := err.(*gqerrors.GraphQLError)
	require.True(t, ok, "parse errors must be *errors.GraphQLError, got %T", err)
	assert.Equal(t, gqerrors.KindParse, gqerr.Kind)
	require.Len(t, gqerr.Locations, 1)
	assert.Equal(t, 3, gqerr.Locations[0].Line)
}

func TestParseDetectsFragmentCycle(t *testing.T) {
	s := testSchema(t)
	_, err := ParseDocument(`
		query Q { item(id: "w1") { ...A } }
		fragment A on Item { ...B }
		fragment B on Item { ...A }
	`, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fragment cycle detected")

	gqerr, ok := err.(*gqerrors.GraphQLError)
	require.True(t, ok, "validation errors must be *errors.GraphQLError, got %T", err)
	assert.Equal(t, gqerrors.KindParse, gqerr.Kind)
}

func TestParseRejectsSelectionMergeConflict(t *testing.T) {
	s := testSchema(t)
	_, err := ParseDocument(`
		query Q {
			item(id: "w1") { id }
			item(id: "g1") { id }
		}
	`, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error merging")

	gqerr, ok := err.(*gqerrors.GraphQLError)
	require.True(t, ok, "validation errors must be *errors.GraphQLError, got %T", err)
	assert.Equal(t, gqerrors.KindSchemaMismatch, gqerr.Kind)
	require.Len(t, gqerr.Locations, 1)
}

func TestParseRejectsUnusedFragment(t *testing.T) {
	s := testSchema(t)
	_, err := ParseDocument(`
		query Q { widgets { id } }
		fragment Unused on Item { id }
	`, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unused fragment")

	gqerr, ok := err.(*gqerrors.GraphQLError)
	require.True(t, ok, "validation errors must be *errors.GraphQLError, got %T", err)
	assert.Equal(t, gqerrors.KindParse, gqerr.Kind)
	require.Len(t, gqerr.Locations, 1)
}

func TestParseSyntaxErrorCarriesLocation(t *testing.T) {
	s := testSchema(t)
	_, err := ParseDocument(`query Q { widgets { id name % } }`, s)
	require.Error(t, err)

	gqerr, ok := err.(*gqerrors.GraphQLError)
	require.True(t, ok, "syntax errors must be *errors.GraphQLError, got %T", err)
	assert.Equal(t, gqerrors.KindParse, gqerr.Kind)
	require.Len(t, gqerr.Locations, 1)
	assert.Equal(t, 1, gqerr.Locations[0].Line)
	assert.Greater(t, gqerr.Locations[0].Column, 1)
}

func TestParseRejectsSubscriptions(t *testing.T) {
	s := testSchema(t)
	_, err := ParseDocument(`subscription { widgets { id } }`, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscriptions are not executable")

	gqerr, ok := err.(*gqerrors.GraphQLError)
	require.True(t, ok, "validation errors must be *errors.GraphQLError, got %T", err)
	assert.Equal(t, gqerrors.KindSchemaMismatch, gqerr.Kind)
	require.Len(t, gqerr.Locations, 1)
}

func TestParseRejectsEmptySelectionSet(t *testing.T) {
	s := testSchema(t)
	_, err := ParseDocument(`query Q { }`, s)
	assert.Error(t, err)
}

func TestParseRejectsUnknownField(t *testing.T) {
	s := testSchema(t)
	_, err := ParseDocument(`{ doesNotExist }`, s)
	assert.Error(t, err)
}

func TestParseAppliesIncludeDirectiveAtParseTimeValidation(t *testing.T) {
	s := testSchema(t)
	_, err := ParseDocument(`
		query Q($skipIt: Boolean!) {
			widgets {
				id
				name @include(if: $skipIt)
			}
		}
	`, s)
	require.NoError(t, err)
}

func TestParseRejectsSelectionSetOnScalarField(t *testing.T) {
	s := testSchema(t)
	_, err := ParseDocument(`{ item(id: "w1") { id { foo } } }`, s)
	require.Error(t, err)
}

func TestParseFragmentNamedOnIsRejected(t *testing.T) {
	s := testSchema(t)
	_, err := ParseDocument(`
		query Q { item(id: "w1") { id } }
		fragment on on Item { id }
	`, s)
	assert.Error(t, err)
}
