package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) ([]token, *lexer) {
	t.Helper()
	lx := newLexer([]byte(src), "test.rs")
	var toks []token
	for {
		tok := lx.next()
		if tok.kind == tokEOF {
			return toks, lx
		}
		toks = append(toks, tok)
		require.Less(t, len(toks), 10000, "lexer should terminate")
	}
}

func kinds(toks []token) []tokenKind {
	out := make([]tokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.kind
	}
	return out
}

func TestLexer_TokenKinds(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected []tokenKind
	}{
		{
			name:     "module declaration",
			src:      "pub mod foo;",
			expected: []tokenKind{tokIdent, tokIdent, tokIdent, tokPunct},
		},
		{
			name:     "attribute",
			src:      `#[path = "foo.rs"]`,
			expected: []tokenKind{tokPunct, tokOpenDelim, tokIdent, tokPunct, tokString, tokCloseDelim},
		},
		{
			name:     "string with escapes",
			src:      `"a \"quoted\" word"`,
			expected: []tokenKind{tokString},
		},
		{
			name:     "raw string",
			src:      `r#"no \ escapes "here""#`,
			expected: []tokenKind{tokString},
		},
		{
			name:     "byte string",
			src:      `b"bytes"`,
			expected: []tokenKind{tokString},
		},
		{
			name:     "char literal",
			src:      `'a'`,
			expected: []tokenKind{tokChar},
		},
		{
			name:     "escaped char literal",
			src:      `'\n'`,
			expected: []tokenKind{tokChar},
		},
		{
			name:     "lifetime",
			src:      `&'static str`,
			expected: []tokenKind{tokPunct, tokLifetime, tokIdent},
		},
		{
			name:     "numbers and ranges",
			src:      `0..10`,
			expected: []tokenKind{tokNumber, tokPunct, tokPunct, tokNumber},
		},
		{
			name:     "float",
			src:      `1.25`,
			expected: []tokenKind{tokNumber},
		},
		{
			name:     "line comment is trivia",
			src:      "// nothing\nfoo",
			expected: []tokenKind{tokIdent},
		},
		{
			name:     "comment rule is trivia",
			src:      "//////\nfoo",
			expected: []tokenKind{tokIdent},
		},
		{
			name:     "nested block comment is trivia",
			src:      "/* outer /* inner */ still outer */ foo",
			expected: []tokenKind{tokIdent},
		},
		{
			name:     "outer doc comment",
			src:      "/// docs\nfoo",
			expected: []tokenKind{tokDocOuter, tokIdent},
		},
		{
			name:     "inner doc comment",
			src:      "//! docs\nfoo",
			expected: []tokenKind{tokDocInner, tokIdent},
		},
		{
			name:     "ident starting with r",
			src:      "return runner",
			expected: []tokenKind{tokIdent, tokIdent},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks, lx := lexAll(t, tc.src)
			assert.Empty(t, lx.diags, "no diagnostics expected")
			assert.Equal(t, tc.expected, kinds(toks))
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	toks, lx := lexAll(t, "mod a;\nmod b;")
	require.Empty(t, lx.diags)
	require.Len(t, toks, 6)

	assert.Equal(t, 1, toks[0].rng.Start.Line)
	assert.Equal(t, 1, toks[0].rng.Start.Column)
	assert.Equal(t, 2, toks[3].rng.Start.Line, "second mod starts on line 2")
	assert.Equal(t, 1, toks[3].rng.Start.Column)
	assert.Equal(t, 5, toks[4].rng.Start.Column, "ident b follows 'mod '")
	assert.Equal(t, "test.rs", toks[0].rng.Filename)
	assert.Equal(t, 7, toks[3].rng.Start.Byte)
}

func TestLexer_UnterminatedString(t *testing.T) {
	_, lx := lexAll(t, `const S: &str = "oops`)
	require.True(t, lx.diags.HasErrors())
	assert.Contains(t, lx.diags[0].Summary, "Unterminated string")
	require.NotNil(t, lx.diags[0].Subject)
	assert.Equal(t, 17, lx.diags[0].Subject.Start.Column)
}

func TestLexer_UnterminatedBlockComment(t *testing.T) {
	_, lx := lexAll(t, "/* never closed")
	require.True(t, lx.diags.HasErrors())
	assert.Contains(t, lx.diags[0].Summary, "Unterminated block comment")
}
