package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntScalarRange(t *testing.T) {
	s := intScalar{}

	v, err := s.CoerceInput(int64(42))
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = s.CoerceInput(int64(maxInt32) + 1)
	assert.Error(t, err)

	_, err = s.CoerceInput(int64(minInt32) - 1)
	assert.Error(t, err)

	v, err = s.CoerceInput(int64(maxInt32))
	require.NoError(t, err)
	assert.Equal(t, maxInt32, v)

	_, err = s.CoerceInput(3.5)
	assert.Error(t, err, "Int must reject non-integral float input")
}

func TestIntScalarOutputRejectsOutOfRange(t *testing.T) {
	s := intScalar{}
	_, err := s.CoerceOutput(int64(maxInt32) + 100)
	assert.Error(t, err)
}

func TestStringScalarOutputAcceptsStringer(t *testing.T) {
	s := stringScalar{typeName: "ID"}
	out, err := s.CoerceOutput(idLike("abc"))
	require.NoError(t, err)
	assert.Equal(t, "abc", out)
}

type idLike string

func (v idLike) String() string { return string(v) }
