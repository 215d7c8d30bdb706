package syntax

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Parse parses src as a single source file, returning the item tree and any
// diagnostics. The returned diagnostics carry source ranges; callers must
// treat the tree as unusable when diags.HasErrors().
func Parse(src []byte, filename string) (*File, hcl.Diagnostics) {
	p := &parser{
		lx:  newLexer(src, filename),
		src: src,
	}
	p.bump()
	f := p.parseFile(false)
	if !p.at(tokEOF) {
		p.errorf(p.tok.rng, "Unexpected closing delimiter",
			"Found %q with no matching opening delimiter.", p.tok.text)
	}
	return f, append(p.lx.diags, p.diags...)
}

type parser struct {
	lx    *lexer
	src   []byte
	tok   token
	ahead *token
	// lastEnd anchors "expected more input" diagnostics just after the last
	// complete token.
	lastEnd hcl.Pos
	diags   hcl.Diagnostics
}

func (p *parser) bump() {
	p.lastEnd = p.tok.rng.End
	if p.ahead != nil {
		p.tok = *p.ahead
		p.ahead = nil
		return
	}
	p.tok = p.lx.next()
}

func (p *parser) peek() token {
	if p.ahead == nil {
		t := p.lx.next()
		p.ahead = &t
	}
	return *p.ahead
}

func (p *parser) at(kind tokenKind) bool {
	return p.tok.kind == kind
}

func (p *parser) atPunct(text string) bool {
	return p.tok.kind == tokPunct && p.tok.text == text
}

func (p *parser) atIdent(text string) bool {
	return p.tok.kind == tokIdent && p.tok.text == text
}

func (p *parser) errorf(rng hcl.Range, summary, format string, args ...any) {
	p.diags = p.diags.Append(&hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  &rng,
	})
}

// parseFile parses items until EOF, or until the closing brace of the
// enclosing module body when nested.
func (p *parser) parseFile(nested bool) *File {
	f := &File{}

	for p.atInnerAttr() {
		f.InnerAttrs = append(f.InnerAttrs, p.parseAttr(true))
	}

	for {
		if p.at(tokEOF) {
			return f
		}
		if p.tok.kind == tokCloseDelim && p.tok.text == "}" {
			if nested {
				return f
			}
			// Recover by dropping the stray brace so the rest of the
			// file still produces diagnostics.
			p.errorf(p.tok.rng, "Unexpected closing delimiter",
				"Found %q with no matching opening delimiter.", p.tok.text)
			p.bump()
			continue
		}
		if item := p.parseItem(); item != nil {
			f.Items = append(f.Items, item)
		}
	}
}

func (p *parser) atInnerAttr() bool {
	if p.at(tokDocInner) {
		return true
	}
	return p.atPunct("#") && p.peek().kind == tokPunct && p.peek().text == "!"
}

func (p *parser) atOuterAttr() bool {
	if p.at(tokDocOuter) {
		return true
	}
	return p.atPunct("#") && p.peek().kind == tokOpenDelim && p.peek().text == "["
}

// parseAttr parses one attribute: a #[...] or #![...] form, or a doc
// comment. The verbatim text is preserved; for bracketed forms the leading
// identifier and a string value in `name = "value"` shape are extracted.
func (p *parser) parseAttr(inner bool) Attr {
	if p.at(tokDocOuter) || p.at(tokDocInner) {
		a := Attr{Inner: p.at(tokDocInner), Text: p.tok.text}
		p.bump()
		return a
	}

	start := p.tok.rng.Start
	p.bump() // '#'
	if inner {
		p.bump() // '!'
	}
	if !(p.tok.kind == tokOpenDelim && p.tok.text == "[") {
		p.errorf(p.tok.rng, "Malformed attribute",
			"Expected %q to open the attribute body, found %q.", "[", p.tok.text)
		return Attr{Inner: inner, Text: string(p.src[start.Byte:p.lastEnd.Byte])}
	}
	p.bump()

	a := Attr{Inner: inner}
	depth := 1
	seenName := false
	seenEq := false
	for depth > 0 {
		switch p.tok.kind {
		case tokEOF:
			p.errorf(hcl.Range{Filename: p.lx.filename, Start: p.lastEnd, End: p.lastEnd},
				"Malformed attribute",
				"Reached end of file before the attribute starting at line %d was closed.", start.Line)
			a.Text = string(p.src[start.Byte:p.lastEnd.Byte])
			return a
		case tokOpenDelim:
			depth++
		case tokCloseDelim:
			depth--
			if depth == 0 {
				end := p.tok.rng.End
				p.bump()
				a.Text = string(p.src[start.Byte:end.Byte])
				return a
			}
		case tokIdent:
			if depth == 1 && !seenName {
				a.Name = p.tok.text
				seenName = true
			}
		case tokPunct:
			if depth == 1 && seenName && p.tok.text == "=" {
				seenEq = true
			}
		case tokString:
			if depth == 1 && seenEq && a.Value == "" {
				a.Value = unquote(p.tok.text)
			}
		}
		p.bump()
	}
	return a
}

// parseItem parses one item: a module declaration, or an opaque raw run for
// everything else.
func (p *parser) parseItem() Item {
	itemStart := p.tok.rng.Start

	var attrs []Attr
	for {
		if p.atOuterAttr() {
			attrs = append(attrs, p.parseAttr(false))
			continue
		}
		if p.atInnerAttr() {
			p.errorf(p.tok.rng, "Misplaced inner attribute",
				"Inner attributes are only allowed at the start of a file or module body.")
			p.parseAttr(true)
			continue
		}
		break
	}

	vis := ""
	if p.atIdent("pub") {
		visStart := p.tok.rng.Start
		p.bump()
		if p.tok.kind == tokOpenDelim && p.tok.text == "(" {
			p.skipBalanced()
		}
		vis = strings.TrimSpace(string(p.src[visStart.Byte:p.lastEnd.Byte]))
	}

	if p.atIdent("mod") {
		return p.parseMod(itemStart, attrs, vis)
	}

	if p.at(tokEOF) {
		if len(attrs) > 0 || vis != "" {
			p.errorf(hcl.Range{Filename: p.lx.filename, Start: p.lastEnd, End: p.lastEnd},
				"Expected an item",
				"Reached end of file while an item was still incomplete.")
			return &Raw{Text: dedent(string(p.src[itemStart.Byte:p.lastEnd.Byte]), itemStart.Column)}
		}
		return nil
	}

	return p.parseRaw(itemStart)
}

func (p *parser) parseMod(itemStart hcl.Pos, attrs []Attr, vis string) Item {
	p.bump() // 'mod'

	if p.tok.kind != tokIdent {
		p.errorf(p.tok.rng, "Expected module name",
			"A module declaration requires an identifier, found %q.", p.tok.text)
		return p.parseRaw(itemStart)
	}
	name := p.tok.text
	p.bump()

	switch {
	case p.atPunct(";"):
		p.bump()
		return &Mod{Attrs: attrs, Vis: vis, Name: name, Body: nil}
	case p.tok.kind == tokOpenDelim && p.tok.text == "{":
		p.bump()
		body := p.parseFile(true)
		if p.tok.kind == tokCloseDelim && p.tok.text == "}" {
			p.bump()
		} else {
			p.errorf(hcl.Range{Filename: p.lx.filename, Start: p.lastEnd, End: p.lastEnd},
				"Unclosed module body",
				"The body of module %q is never closed.", name)
		}
		return &Mod{Attrs: attrs, Vis: vis, Name: name, Body: body}
	default:
		p.errorf(p.tok.rng, "Malformed module declaration",
			"Expected %q or %q after the module name, found %q.", ";", "{", p.tok.text)
		return p.parseRaw(itemStart)
	}
}

// parseRaw consumes tokens until the current item ends: a semicolon at
// delimiter depth zero, or the close of a top-level braced group. The
// verbatim source run is preserved.
func (p *parser) parseRaw(itemStart hcl.Pos) Item {
	depth := 0
	end := p.lastEnd
	for {
		switch p.tok.kind {
		case tokEOF:
			p.errorf(hcl.Range{Filename: p.lx.filename, Start: p.lastEnd, End: p.lastEnd},
				"Unterminated item",
				"Reached end of file before the item starting at line %d ended.", itemStart.Line)
			return p.finishRaw(itemStart, p.lastEnd)
		case tokOpenDelim:
			depth++
		case tokCloseDelim:
			if depth == 0 {
				if p.tok.text == "}" {
					// Closing brace of the enclosing module body; the
					// item ends just before it.
					return p.finishRaw(itemStart, end)
				}
				p.errorf(p.tok.rng, "Unexpected closing delimiter",
					"Found %q with no matching opening delimiter.", p.tok.text)
				p.bump()
				return p.finishRaw(itemStart, end)
			}
			depth--
			if depth == 0 && p.tok.text == "}" {
				end = p.tok.rng.End
				p.bump()
				return p.finishRaw(itemStart, end)
			}
		case tokPunct:
			if depth == 0 && p.tok.text == ";" {
				end = p.tok.rng.End
				p.bump()
				return p.finishRaw(itemStart, end)
			}
		}
		end = p.tok.rng.End
		p.bump()
	}
}

func (p *parser) finishRaw(start hcl.Pos, end hcl.Pos) Item {
	return &Raw{Text: dedent(string(p.src[start.Byte:end.Byte]), start.Column)}
}

// skipBalanced consumes the current open delimiter and everything through
// its matching close.
func (p *parser) skipBalanced() {
	depth := 0
	for {
		switch p.tok.kind {
		case tokEOF:
			p.errorf(hcl.Range{Filename: p.lx.filename, Start: p.lastEnd, End: p.lastEnd},
				"Unbalanced delimiters",
				"Reached end of file inside a delimited group.")
			return
		case tokOpenDelim:
			depth++
		case tokCloseDelim:
			depth--
			if depth == 0 {
				p.bump()
				return
			}
		}
		p.bump()
	}
}

// dedent strips the indentation implied by the item's starting column from
// every continuation line, so the printer can re-indent uniformly.
func dedent(text string, startColumn int) string {
	if startColumn <= 1 || !strings.Contains(text, "\n") {
		return text
	}
	prefix := startColumn - 1
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		trimmed := 0
		for trimmed < prefix && trimmed < len(lines[i]) &&
			(lines[i][trimmed] == ' ' || lines[i][trimmed] == '\t') {
			trimmed++
		}
		lines[i] = lines[i][trimmed:]
	}
	return strings.Join(lines, "\n")
}

// unquote decodes a plain or raw string literal's contents.
func unquote(lit string) string {
	if strings.HasPrefix(lit, "r") || strings.HasPrefix(lit, "br") {
		inner := strings.TrimLeft(strings.TrimPrefix(lit, "b"), "r#")
		inner = strings.TrimRight(inner, "#")
		return strings.Trim(inner, `"`)
	}
	inner := strings.TrimPrefix(lit, "b")
	if len(inner) >= 2 && inner[0] == '"' {
		inner = inner[1 : len(inner)-1]
	}
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			switch inner[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '0':
				b.WriteByte(0)
			default:
				b.WriteByte(inner[i])
			}
			continue
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}
