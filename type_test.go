package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierRegexp(t *testing.T) {
	assert.True(t, IsValidIdentifier("_foo"))
	assert.True(t, IsValidIdentifier("Foo1"))
	assert.False(t, IsValidIdentifier("1foo"))
	assert.False(t, IsValidIdentifier("foo-bar"))
	assert.False(t, IsValidIdentifier(""))
}

func TestEnumBijection(t *testing.T) {
	e := NewEnum("Episode", "", []string{"NEW_HOPE", "EMPIRE", "JEDI"}, []interface{}{4, 5, 6})

	name, ok := e.NameFor(5)
	require.True(t, ok)
	assert.Equal(t, "EMPIRE", name)

	value, ok := e.ValueFor("JEDI")
	require.True(t, ok)
	assert.Equal(t, 6, value)

	_, ok = e.ValueFor("NOT_A_MEMBER")
	assert.False(t, ok)
}

func TestEnumRejectsDuplicateValues(t *testing.T) {
	assert.Panics(t, func() {
		NewEnum("Bad", "", []string{"A", "B"}, []interface{}{1, 1})
	})
}

func TestEnumRejectsReservedNames(t *testing.T) {
	assert.Panics(t, func() {
		NewEnum("Bad", "", []string{"true"}, []interface{}{1})
	})
}

func TestNonNullOfNonNullPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewNonNull(NewNonNull(&Scalar{Name: "String"}))
	})
}

func TestBaseTypeStripsWrappers(t *testing.T) {
	str := &Scalar{Name: "String"}
	wrapped := NewNonNull(&List{Of: NewNonNull(str)})
	assert.Equal(t, str, BaseType(wrapped))
}
