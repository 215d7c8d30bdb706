package syntax

import (
	"fmt"
	"io"
	"strings"
)

const indentUnit = "    "

// Fprint renders the file back to source text. The engine's correctness is
// defined relative to this rendering: outer attributes print before their
// declaration, inner attributes print at the top of the owning body, raw
// items print verbatim.
func Fprint(w io.Writer, f *File) error {
	var b strings.Builder
	printFile(&b, f, nil, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

// Print renders the file to a string.
func Print(f *File) string {
	var b strings.Builder
	printFile(&b, f, nil, 0)
	return b.String()
}

// printFile renders extraInner (inner attributes relocated onto a module
// declaration) ahead of the file's own inner attributes, then the items.
func printFile(b *strings.Builder, f *File, extraInner []Attr, depth int) {
	wroteAny := false
	for _, a := range extraInner {
		writeIndented(b, a.Text, depth)
		wroteAny = true
	}
	if f != nil {
		for _, a := range f.InnerAttrs {
			writeIndented(b, a.Text, depth)
			wroteAny = true
		}
		for i, item := range f.Items {
			if wroteAny || i > 0 {
				b.WriteString("\n")
			}
			printItem(b, item, depth)
			wroteAny = true
		}
	}
}

func printItem(b *strings.Builder, item Item, depth int) {
	switch it := item.(type) {
	case *Mod:
		printMod(b, it, depth)
	case *Raw:
		writeIndented(b, it.Text, depth)
	default:
		panic(fmt.Sprintf("syntax: unknown item type %T", item))
	}
}

func printMod(b *strings.Builder, m *Mod, depth int) {
	var inner []Attr
	for _, a := range m.Attrs {
		if a.Inner {
			inner = append(inner, a)
			continue
		}
		writeIndented(b, a.Text, depth)
	}

	indent := strings.Repeat(indentUnit, depth)
	b.WriteString(indent)
	if m.Vis != "" {
		b.WriteString(m.Vis)
		b.WriteString(" ")
	}
	b.WriteString("mod ")
	b.WriteString(m.Name)

	if m.Body == nil {
		b.WriteString(";\n")
		return
	}
	if len(inner) == 0 && len(m.Body.InnerAttrs) == 0 && len(m.Body.Items) == 0 {
		b.WriteString(" {}\n")
		return
	}
	b.WriteString(" {\n")
	printFile(b, m.Body, inner, depth+1)
	b.WriteString(indent)
	b.WriteString("}\n")
}

// writeIndented writes text with every line prefixed by the indentation for
// depth, followed by a newline.
func writeIndented(b *strings.Builder, text string, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		if line != "" {
			b.WriteString(indent)
			b.WriteString(line)
		}
	}
	b.WriteString("\n")
}
