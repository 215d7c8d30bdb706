// Package inlinemod resolves and inlines file-backed module declarations.
//
// Given one parsed source file of a Rust-style language, it replaces every
// `mod name;` declaration with the recursively loaded and parsed contents of
// the file that declaration refers to, producing a single self-contained
// tree. Downstream tooling can then operate on that tree without
// re-implementing the host language's file-based module-resolution rules.
//
// The engine performs structural expansion only. Conditional-compilation
// attributes are preserved verbatim, never evaluated, and the result is not
// checked for semantic well-formedness.
package inlinemod

import (
	"context"

	"github.com/TedDriggs/syn-inline-mod/syntax"
)

// ParseAndInlineModules parses the file at path and returns a tree with all
// modules recursively inlined, using the default settings.
func ParseAndInlineModules(ctx context.Context, path string) (*syntax.File, error) {
	return NewBuilder().Build().InlineFile(ctx, path)
}

// Builder configures how modules are inlined. Set options with the chaining
// setters, then call Build.
type Builder struct {
	root     bool
	lang     syntax.Language
	resolver FileResolver
	onLoad   OnLoad
}

// NewBuilder returns a Builder with the default options: the entry file is a
// root module, resolution follows the Rust conventions, and files come from
// the real filesystem.
func NewBuilder() *Builder {
	return &Builder{
		root:     true,
		lang:     syntax.DefaultLanguage(),
		resolver: OSResolver{},
	}
}

// Root configures whether the file being inlined is a root module. A root
// module is an entry file supplied directly by the caller; its own directory
// seeds all relative resolution, with no name segment consumed. A non-root
// module is one that another file would pull in with a declaration.
//
// Default: true.
func (b *Builder) Root(root bool) *Builder {
	b.root = root
	return b
}

// Language overrides the file-naming conventions used during resolution.
func (b *Builder) Language(lang syntax.Language) *Builder {
	b.lang = lang
	return b
}

// Resolver overrides the filesystem collaborator. Useful for inlining from
// sources that are not on disk; see MemResolver.
func (b *Builder) Resolver(r FileResolver) *Builder {
	b.resolver = r
	return b
}

// OnLoad installs an observer called once per file the engine reads, in
// visit order, including files that subsequently fail to parse.
func (b *Builder) OnLoad(fn OnLoad) *Builder {
	b.onLoad = fn
	return b
}

// Build returns the configured Inliner.
func (b *Builder) Build() *Inliner {
	return &Inliner{
		resolver: b.resolver,
		lang:     b.lang,
		root:     b.root,
		onLoad:   b.onLoad,
	}
}
