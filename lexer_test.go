package graphql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerBasicTokens(t *testing.T) {
	l := newLexer(`query Foo($x: Int = 1) { field(arg: "a") }`)
	var kinds []tokenKind
	for {
		tok, err := l.next()
		require.NoError(t, err)
		kinds = append(kinds, tok.kind)
		if tok.kind == tokEOF {
			break
		}
	}
	assert.Equal(t, tokName, kinds[0])
	assert.Contains(t, kinds, tokDollar)
	assert.Contains(t, kinds, tokColon)
	assert.Contains(t, kinds, tokEquals)
	assert.Equal(t, tokEOF, kinds[len(kinds)-1])
}

func TestLexerRejectsLeadingZero(t *testing.T) {
	l := newLexer("012")
	_, err := l.next()
	assert.Error(t, err)
}

func TestLexerFloatAndExponent(t *testing.T) {
	l := newLexer("3.14 6.02e23")
	tok, err := l.next()
	require.NoError(t, err)
	assert.Equal(t, tokFloat, tok.kind)
	assert.InDelta(t, 3.14, tok.fltVal, 1e-9)

	tok, err = l.next()
	require.NoError(t, err)
	assert.Equal(t, tokFloat, tok.kind)
	assert.InDelta(t, 6.02e23, tok.fltVal, 1e15)
}

func TestLexerSpreadRequiresThreeDots(t *testing.T) {
	l := newLexer("..")
	_, err := l.next()
	assert.Error(t, err)
}

func TestStripBlockStringIndent(t *testing.T) {
	raw := "\n    Hello,\n      World!\n\n    Yours,\n      GraphQL.\n  "
	got := stripBlockStringIndent(raw)
	assert.Equal(t, "Hello,\n  World!\n\nYours,\n  GraphQL.", got)
}

func TestLexerBlockStringLiteral(t *testing.T) {
	l := newLexer("\"\"\"\n    hello\n    world\n    \"\"\"")
	tok, err := l.next()
	require.NoError(t, err)
	assert.Equal(t, tokString, tok.kind)
	assert.Equal(t, "hello\nworld", tok.text)
}
