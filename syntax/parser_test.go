package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *File {
	t.Helper()
	f, diags := Parse([]byte(src), "test.rs")
	require.False(t, diags.HasErrors(), "unexpected diagnostics: %s", diags.Error())
	return f
}

func TestParse_ExternalMod(t *testing.T) {
	f := mustParse(t, "mod foo;")
	require.Len(t, f.Items, 1)

	m, ok := f.Items[0].(*Mod)
	require.True(t, ok)
	assert.Equal(t, "foo", m.Name)
	assert.Empty(t, m.Vis)
	assert.Nil(t, m.Body, "declaration without a body is external")
}

func TestParse_InlineMod(t *testing.T) {
	f := mustParse(t, "pub mod outer {\n    mod inner;\n\n    fn helper() {}\n}")
	require.Len(t, f.Items, 1)

	m, ok := f.Items[0].(*Mod)
	require.True(t, ok)
	assert.Equal(t, "outer", m.Name)
	assert.Equal(t, "pub", m.Vis)
	require.NotNil(t, m.Body)
	require.Len(t, m.Body.Items, 2)

	inner, ok := m.Body.Items[0].(*Mod)
	require.True(t, ok)
	assert.Equal(t, "inner", inner.Name)
	assert.Nil(t, inner.Body)

	raw, ok := m.Body.Items[1].(*Raw)
	require.True(t, ok)
	assert.Equal(t, "fn helper() {}", raw.Text)
}

func TestParse_RestrictedVisibility(t *testing.T) {
	f := mustParse(t, "pub(crate) mod foo;")
	m := f.Items[0].(*Mod)
	assert.Equal(t, "pub(crate)", m.Vis)
	assert.Equal(t, "foo", m.Name)
}

func TestParse_Attributes(t *testing.T) {
	f := mustParse(t, "#[cfg(test)]\n#[path = \"other.rs\"]\n/// Docs.\nmod foo;")
	m := f.Items[0].(*Mod)
	require.Len(t, m.Attrs, 3)

	assert.Equal(t, "cfg", m.Attrs[0].Name)
	assert.Equal(t, "#[cfg(test)]", m.Attrs[0].Text)
	assert.False(t, m.Attrs[0].Inner)

	assert.Equal(t, "path", m.Attrs[1].Name)
	assert.Equal(t, "other.rs", m.Attrs[1].Value)

	assert.Equal(t, "/// Docs.", m.Attrs[2].Text)
	assert.Empty(t, m.Attrs[2].Name)

	override, ok := PathOverride(m.Attrs)
	require.True(t, ok)
	assert.Equal(t, "other.rs", override)
}

func TestParse_InnerAttributes(t *testing.T) {
	f := mustParse(t, "//! Crate docs.\n#![allow(dead_code)]\n\nmod foo;")
	require.Len(t, f.InnerAttrs, 2)
	assert.Equal(t, "//! Crate docs.", f.InnerAttrs[0].Text)
	assert.True(t, f.InnerAttrs[0].Inner)
	assert.Equal(t, "allow", f.InnerAttrs[1].Name)
	assert.True(t, f.InnerAttrs[1].Inner)
	require.Len(t, f.Items, 1)
}

func TestParse_InnerAttributesInModBody(t *testing.T) {
	f := mustParse(t, "mod foo {\n    #![doc = \" body docs\"]\n\n    struct S;\n}")
	m := f.Items[0].(*Mod)
	require.NotNil(t, m.Body)
	require.Len(t, m.Body.InnerAttrs, 1)
	assert.Equal(t, "doc", m.Body.InnerAttrs[0].Name)
	assert.Equal(t, " body docs", m.Body.InnerAttrs[0].Value)
	require.Len(t, m.Body.Items, 1)
}

func TestParse_RawItems(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "semicolon terminated",
			src:  "use std::fmt;",
			want: "use std::fmt;",
		},
		{
			name: "brace terminated",
			src:  "fn main() {\n    println!(\"hi\");\n}",
			want: "fn main() {\n    println!(\"hi\");\n}",
		},
		{
			name: "attributed function",
			src:  "#[inline]\npub fn fast() -> u8 { 0 }",
			want: "#[inline]\npub fn fast() -> u8 { 0 }",
		},
		{
			name: "struct with semicolon",
			src:  "pub struct Unit;",
			want: "pub struct Unit;",
		},
		{
			name: "const with braced initializer",
			src:  "const P: Point = Point { x: 0, y: 0 };",
			want: "const P: Point = Point { x: 0, y: 0 }",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := mustParse(t, tc.src)
			require.NotEmpty(t, f.Items)
			raw, ok := f.Items[0].(*Raw)
			require.True(t, ok)
			assert.Equal(t, tc.want, raw.Text)
		})
	}
}

func TestParse_RawNotDescendedInto(t *testing.T) {
	// A module declaration inside a function body is not a resolution point.
	f := mustParse(t, "fn wrapper() {\n    mod hidden;\n}\n\nmod visible;")
	require.Len(t, f.Items, 2)

	_, ok := f.Items[0].(*Raw)
	assert.True(t, ok, "function body stays opaque")
	m, ok := f.Items[1].(*Mod)
	require.True(t, ok)
	assert.Equal(t, "visible", m.Name)
}

func TestParse_RawDedent(t *testing.T) {
	f := mustParse(t, "mod m {\n    fn f() {\n        body();\n    }\n}")
	m := f.Items[0].(*Mod)
	require.Len(t, m.Body.Items, 1)
	raw := m.Body.Items[0].(*Raw)
	assert.Equal(t, "fn f() {\n    body();\n}", raw.Text)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		src         string
		wantSummary string
		wantLine    int
		wantColumn  int
	}{
		{
			name:        "missing module name",
			src:         "mod ;",
			wantSummary: "Expected module name",
			wantLine:    1,
			wantColumn:  5,
		},
		{
			name:        "module without terminator",
			src:         "mod foo bar;",
			wantSummary: "Malformed module declaration",
			wantLine:    1,
			wantColumn:  9,
		},
		{
			name:        "unclosed module body",
			src:         "mod foo {\n    struct S;",
			wantSummary: "Unclosed module body",
			wantLine:    2,
			wantColumn:  14,
		},
		{
			name:        "stray closing brace",
			src:         "mod foo;\n}",
			wantSummary: "Unexpected closing delimiter",
			wantLine:    2,
			wantColumn:  1,
		},
		{
			name:        "misplaced inner attribute",
			src:         "mod foo;\n#![late]",
			wantSummary: "Misplaced inner attribute",
			wantLine:    2,
			wantColumn:  1,
		},
		{
			name:        "unterminated attribute",
			src:         "#[cfg(test)",
			wantSummary: "Malformed attribute",
			wantLine:    1,
			wantColumn:  12,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, diags := Parse([]byte(tc.src), "broken.rs")
			require.True(t, diags.HasErrors(), "expected diagnostics")

			diag := diags[0]
			assert.Equal(t, tc.wantSummary, diag.Summary)
			require.NotNil(t, diag.Subject, "diagnostics must be locatable")
			assert.Equal(t, "broken.rs", diag.Subject.Filename)
			assert.Equal(t, tc.wantLine, diag.Subject.Start.Line)
			assert.Equal(t, tc.wantColumn, diag.Subject.Start.Column)
		})
	}
}

func TestParse_EmptyFile(t *testing.T) {
	f := mustParse(t, "")
	assert.Empty(t, f.InnerAttrs)
	assert.Empty(t, f.Items)
}
