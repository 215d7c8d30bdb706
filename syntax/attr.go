package syntax

// Attr is a single attribute. Doc comments are carried as attributes too,
// with Text holding the comment line verbatim, so that inner doc comments
// relocate together with the other inner attributes of an inlined file.
type Attr struct {
	// Inner reports whether this is a file-level attribute (`#![...]` or
	// `//! ...`) rather than one attached to the following item.
	Inner bool

	// Text is the attribute verbatim, including the `#[`/`#![` wrapper or
	// the doc-comment marker.
	Text string

	// Name is the first identifier inside a `#[...]` form, e.g. "path" or
	// "cfg". Empty for doc comments.
	Name string

	// Value is the string-literal value when the attribute has the shape
	// `name = "value"`. Empty otherwise.
	Value string
}

// PathOverride returns the explicit file path carried by a
// `#[path = "..."]` attribute, if one is present in attrs. The first match
// wins.
func PathOverride(attrs []Attr) (string, bool) {
	for _, a := range attrs {
		if !a.Inner && a.Name == "path" && a.Value != "" {
			return a.Value, true
		}
	}
	return "", false
}
