// Package syntax implements the item-level front end for Rust-style module
// source files: a lexer, a parser producing attribute and module structure
// with every other item kept as an opaque source run, and a printer that
// renders the tree back to source text.
//
// The package only understands as much of the language as module inlining
// requires. Attributes, visibility markers and `mod` items are modeled;
// everything else round-trips verbatim.
package syntax

// File is an ordered sequence of top-level items plus the file-level (inner)
// attributes that preceded them.
type File struct {
	InnerAttrs []Attr
	Items      []Item
}

// Item is a top-level node in a File or module body.
type Item interface {
	isItem()
}

// Mod is a module declaration. A nil Body means the declaration has no braced
// body in source and its contents live in another file.
type Mod struct {
	// Attrs holds the declaration's attributes in source order. Outer
	// attributes precede the declaration when printed; inner attributes
	// (relocated from an inlined file) print at the top of the body.
	Attrs []Attr

	// Vis is the visibility marker verbatim, e.g. "pub" or "pub(crate)".
	// Empty for private modules.
	Vis string

	// Name is the module identifier.
	Name string

	// Body is the braced item sequence, or nil for an external declaration.
	Body *File
}

func (*Mod) isItem() {}

// Raw is any non-module item, captured verbatim. Raw items are never
// descended into; only module declarations are resolution points.
type Raw struct {
	Text string
}

func (*Raw) isItem() {}
