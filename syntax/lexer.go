package syntax

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokChar
	tokLifetime
	tokPunct
	tokOpenDelim
	tokCloseDelim
	tokDocOuter // /// ...
	tokDocInner // //! ...
)

// token is a single lexeme with its source range. Ranges use hcl positions so
// the parser can attach them to diagnostics directly.
type token struct {
	kind tokenKind
	text string
	rng  hcl.Range
}

// lexer scans source bytes into tokens. Ordinary comments are dropped as
// trivia; doc comments are surfaced as tokens because they carry attribute
// semantics.
type lexer struct {
	src      []byte
	filename string
	pos      hcl.Pos
	diags    hcl.Diagnostics
}

func newLexer(src []byte, filename string) *lexer {
	return &lexer{
		src:      src,
		filename: filename,
		pos:      hcl.Pos{Line: 1, Column: 1, Byte: 0},
	}
}

func (lx *lexer) errorf(rng hcl.Range, summary, format string, args ...any) {
	lx.diags = lx.diags.Append(&hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   fmt.Sprintf(format, args...),
		Subject:  &rng,
	})
}

func (lx *lexer) eof() bool {
	return lx.pos.Byte >= len(lx.src)
}

func (lx *lexer) peekByte(offset int) byte {
	i := lx.pos.Byte + offset
	if i >= len(lx.src) {
		return 0
	}
	return lx.src[i]
}

// advance moves the cursor forward n bytes, updating line and column.
func (lx *lexer) advance(n int) {
	for i := 0; i < n && lx.pos.Byte < len(lx.src); i++ {
		if lx.src[lx.pos.Byte] == '\n' {
			lx.pos.Line++
			lx.pos.Column = 1
		} else {
			lx.pos.Column++
		}
		lx.pos.Byte++
	}
}

func (lx *lexer) rangeFrom(start hcl.Pos) hcl.Range {
	return hcl.Range{Filename: lx.filename, Start: start, End: lx.pos}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// next returns the next significant token, skipping whitespace and ordinary
// comments.
func (lx *lexer) next() token {
	for {
		lx.skipWhitespace()
		if lx.eof() {
			return token{kind: tokEOF, rng: lx.rangeFrom(lx.pos)}
		}

		b := lx.peekByte(0)
		switch {
		case b == '/' && lx.peekByte(1) == '/':
			if tok, ok := lx.scanLineComment(); ok {
				return tok
			}
		case b == '/' && lx.peekByte(1) == '*':
			lx.skipBlockComment()
		default:
			return lx.scanToken()
		}
	}
}

func (lx *lexer) skipWhitespace() {
	for !lx.eof() {
		switch lx.peekByte(0) {
		case ' ', '\t', '\r', '\n':
			lx.advance(1)
		default:
			return
		}
	}
}

// scanLineComment consumes a //-comment. Doc comments (`///`, `//!`) become
// tokens; anything else, including `////`-style rules, is trivia.
func (lx *lexer) scanLineComment() (token, bool) {
	start := lx.pos
	kind := tokenKind(-1)
	if lx.peekByte(2) == '!' {
		kind = tokDocInner
	} else if lx.peekByte(2) == '/' && lx.peekByte(3) != '/' {
		kind = tokDocOuter
	}

	n := 0
	for lx.peekByte(n) != '\n' && lx.pos.Byte+n < len(lx.src) {
		n++
	}
	text := string(lx.src[lx.pos.Byte : lx.pos.Byte+n])
	lx.advance(n)

	if kind < 0 {
		return token{}, false
	}
	return token{kind: kind, text: text, rng: lx.rangeFrom(start)}, true
}

// skipBlockComment consumes a nested /* ... */ comment.
func (lx *lexer) skipBlockComment() {
	start := lx.pos
	lx.advance(2)
	depth := 1
	for depth > 0 {
		if lx.eof() {
			lx.errorf(lx.rangeFrom(start), "Unterminated block comment",
				"The block comment starting here is never closed.")
			return
		}
		switch {
		case lx.peekByte(0) == '/' && lx.peekByte(1) == '*':
			depth++
			lx.advance(2)
		case lx.peekByte(0) == '*' && lx.peekByte(1) == '/':
			depth--
			lx.advance(2)
		default:
			lx.advance(1)
		}
	}
}

func (lx *lexer) scanToken() token {
	start := lx.pos
	b := lx.peekByte(0)

	switch {
	case b == 'r' || b == 'b':
		if tok, ok := lx.tryRawOrByteString(); ok {
			return tok
		}
		return lx.scanIdent()
	case isIdentStart(b):
		return lx.scanIdent()
	case isDigit(b):
		return lx.scanNumber()
	case b == '"':
		return lx.scanString()
	case b == '\'':
		return lx.scanCharOrLifetime()
	case b == '(' || b == '[' || b == '{':
		lx.advance(1)
		return token{kind: tokOpenDelim, text: string(b), rng: lx.rangeFrom(start)}
	case b == ')' || b == ']' || b == '}':
		lx.advance(1)
		return token{kind: tokCloseDelim, text: string(b), rng: lx.rangeFrom(start)}
	default:
		lx.advance(1)
		return token{kind: tokPunct, text: string(b), rng: lx.rangeFrom(start)}
	}
}

func (lx *lexer) scanIdent() token {
	start := lx.pos
	n := 0
	for isIdentCont(lx.peekByte(n)) && lx.pos.Byte+n < len(lx.src) {
		n++
	}
	text := string(lx.src[lx.pos.Byte : lx.pos.Byte+n])
	lx.advance(n)
	return token{kind: tokIdent, text: text, rng: lx.rangeFrom(start)}
}

func (lx *lexer) scanNumber() token {
	start := lx.pos
	n := 0
	for {
		b := lx.peekByte(n)
		if isDigit(b) || isIdentCont(b) {
			n++
			continue
		}
		// A dot continues the number only when followed by a digit, so
		// range expressions like 0..10 stay separate tokens.
		if b == '.' && isDigit(lx.peekByte(n+1)) {
			n += 2
			continue
		}
		break
	}
	text := string(lx.src[lx.pos.Byte : lx.pos.Byte+n])
	lx.advance(n)
	return token{kind: tokNumber, text: text, rng: lx.rangeFrom(start)}
}

func (lx *lexer) scanString() token {
	start := lx.pos
	lx.advance(1)
	for {
		if lx.eof() {
			lx.errorf(lx.rangeFrom(start), "Unterminated string literal",
				"The string literal starting here is never closed.")
			break
		}
		b := lx.peekByte(0)
		if b == '\\' {
			lx.advance(2)
			continue
		}
		lx.advance(1)
		if b == '"' {
			break
		}
	}
	return token{
		kind: tokString,
		text: string(lx.src[start.Byte:lx.pos.Byte]),
		rng:  lx.rangeFrom(start),
	}
}

// tryRawOrByteString handles r"..", r#".."#, b".." and br#".."# forms. It
// reports false when the cursor is on a plain identifier starting with r or b.
func (lx *lexer) tryRawOrByteString() (token, bool) {
	start := lx.pos
	j := 0
	if lx.peekByte(j) == 'b' {
		j++
	}
	raw := false
	if lx.peekByte(j) == 'r' {
		j++
		raw = true
	}
	hashes := 0
	if raw {
		for lx.peekByte(j) == '#' {
			j++
			hashes++
		}
	}
	if lx.peekByte(j) != '"' {
		return token{}, false
	}
	if !raw && j == 0 {
		return token{}, false
	}

	lx.advance(j + 1)
	if !raw {
		// Byte string: ordinary escape rules.
		for {
			if lx.eof() {
				lx.errorf(lx.rangeFrom(start), "Unterminated string literal",
					"The byte-string literal starting here is never closed.")
				break
			}
			b := lx.peekByte(0)
			if b == '\\' {
				lx.advance(2)
				continue
			}
			lx.advance(1)
			if b == '"' {
				break
			}
		}
	} else {
		for {
			if lx.eof() {
				lx.errorf(lx.rangeFrom(start), "Unterminated string literal",
					"The raw-string literal starting here is never closed.")
				break
			}
			if lx.peekByte(0) == '"' {
				ok := true
				for h := 0; h < hashes; h++ {
					if lx.peekByte(1+h) != '#' {
						ok = false
						break
					}
				}
				if ok {
					lx.advance(1 + hashes)
					break
				}
			}
			lx.advance(1)
		}
	}
	return token{
		kind: tokString,
		text: string(lx.src[start.Byte:lx.pos.Byte]),
		rng:  lx.rangeFrom(start),
	}, true
}

// scanCharOrLifetime disambiguates 'a' (char) from 'a (lifetime) by looking
// for the closing quote.
func (lx *lexer) scanCharOrLifetime() token {
	start := lx.pos
	if lx.peekByte(1) != '\\' && isIdentStart(lx.peekByte(1)) && lx.peekByte(2) != '\'' {
		lx.advance(2)
		for isIdentCont(lx.peekByte(0)) && !lx.eof() {
			lx.advance(1)
		}
		return token{
			kind: tokLifetime,
			text: string(lx.src[start.Byte:lx.pos.Byte]),
			rng:  lx.rangeFrom(start),
		}
	}

	lx.advance(1)
	for {
		if lx.eof() {
			lx.errorf(lx.rangeFrom(start), "Unterminated character literal",
				"The character literal starting here is never closed.")
			break
		}
		b := lx.peekByte(0)
		if b == '\\' {
			lx.advance(2)
			continue
		}
		lx.advance(1)
		if b == '\'' {
			break
		}
	}
	return token{
		kind: tokChar,
		text: string(lx.src[start.Byte:lx.pos.Byte]),
		rng:  lx.rangeFrom(start),
	}
}
