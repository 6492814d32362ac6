package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/amatgil/uiuapp/catalog"
	"github.com/amatgil/uiuapp/prim"
)

// Highlighter splits source code into styled spans
type Highlighter interface {
	Highlight(src string) ([]catalog.Span, error)
}

// ErrUnterminatedString is returned for a string literal without closing quote
var ErrUnterminatedString = errors.New("unterminated string literal")

// GlyphHighlighter classifies glyphs by primitive signature
// Numbers are constants, quoted, character and line strings are literals, # starts a comment
type GlyphHighlighter struct {
	table *prim.Table
}

func NewGlyphHighlighter(table *prim.Table) *GlyphHighlighter {
	if table == nil {
		table = prim.Builtin()
	}
	return &GlyphHighlighter{table: table}
}

func (h *GlyphHighlighter) Highlight(src string) ([]catalog.Span, error) {
	var spans []catalog.Span
	emit := func(text, class string) {
		if n := len(spans); n > 0 && class == "" && spans[n-1].Class == "" {
			spans[n-1].Text += text
			return
		}
		spans = append(spans, catalog.Span{Text: text, Class: class})
	}

	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		rest := src[i:]

		switch {
		case r == '#':
			end := lineEnd(rest)
			emit(rest[:end], catalog.ClassComment)
			i += end

		case r == '$':
			end := lineEnd(rest)
			emit(rest[:end], catalog.ClassString)
			i += end

		case r == '"':
			end := closingQuote(rest)
			if end < 0 {
				return nil, errors.Wrapf(ErrUnterminatedString, "at byte %d", i)
			}
			emit(rest[:end], catalog.ClassString)
			i += end

		case r == '@':
			n := size
			if next, nsize := utf8.DecodeRuneInString(rest[size:]); next == '\\' {
				n += nsize
				_, esize := utf8.DecodeRuneInString(rest[n:])
				n += esize
			} else {
				n += nsize
			}
			emit(rest[:n], catalog.ClassString)
			i += n

		case isNumberStart(rest):
			end := numberEnd(rest)
			emit(rest[:end], catalog.ClassConstant)
			i += end

		case isSubscript(r):
			end := size
			for end < len(rest) {
				nr, ns := utf8.DecodeRuneInString(rest[end:])
				if !isSubscript(nr) {
					break
				}
				end += ns
			}
			emit(rest[:end], catalog.ClassConstant)
			i += end

		case h.isGlyph(r):
			p, _ := h.table.Lookup(r)
			emit(rest[:size], catalog.ClassOf(p, h.table.Signature(p)))
			i += size

		case unicode.IsLetter(r):
			end := size
			for end < len(rest) {
				nr, ns := utf8.DecodeRuneInString(rest[end:])
				if (!unicode.IsLetter(nr) && !unicode.IsDigit(nr)) || h.isGlyph(nr) {
					break
				}
				end += ns
			}
			emit(rest[:end], "")
			i += end

		default:
			emit(rest[:size], "")
			i += size
		}
	}
	return spans, nil
}

func (h *GlyphHighlighter) isGlyph(r rune) bool {
	_, ok := h.table.Lookup(r)
	return ok
}

func lineEnd(s string) int {
	if n := strings.IndexByte(s, '\n'); n >= 0 {
		return n
	}
	return len(s)
}

// closingQuote returns the byte offset just past the closing quote, or -1
func closingQuote(s string) int {
	escaped := false
	for i := 1; i < len(s); i++ {
		switch {
		case escaped:
			escaped = false
		case s[i] == '\\':
			escaped = true
		case s[i] == '"':
			return i + 1
		case s[i] == '\n':
			return -1
		}
	}
	return -1
}

func isNumberStart(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if r == '¯' {
		r, _ = utf8.DecodeRuneInString(s[size:])
	}
	return r >= '0' && r <= '9'
}

func numberEnd(s string) int {
	i := 0
	if strings.HasPrefix(s, "¯") {
		i = len("¯")
	}
	seenDot := false
	for i < len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !seenDot && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9':
			seenDot = true
		default:
			return i
		}
		i++
	}
	return i
}

func isSubscript(r rune) bool {
	return r >= '₀' && r <= '₉'
}
