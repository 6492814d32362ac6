package catalog

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/amatgil/uiuapp/constants"
	"github.com/amatgil/uiuapp/prim"
)

// ErrEmptyCell is returned when a keypad cell is built without any glyph
var ErrEmptyCell = errors.New("keypad cell needs at least one glyph")

// Kind discriminates the GlyphCell variants
type Kind uint8

const (
	KindSingle Kind = iota
	KindIdiom
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindIdiom:
		return "idiom"
	case KindLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// GlyphCell is one entry of a keypad cell: Single, Idiom or Literal
// The interface is sealed; consumers switch on the concrete type
type GlyphCell interface {
	Kind() Kind
	glyphCell()
}

// Single is one primitive symbol
type Single struct {
	Prim prim.Primitive
}

// Idiom is a fixed sequence of primitives emitted together
type Idiom struct {
	prims []prim.Primitive
}

// Literal is a non-primitive key: a display string and its style class
type Literal struct {
	Text  string
	Class string
}

func (Single) Kind() Kind  { return KindSingle }
func (Idiom) Kind() Kind   { return KindIdiom }
func (Literal) Kind() Kind { return KindLiteral }

func (Single) glyphCell()  {}
func (Idiom) glyphCell()   {}
func (Literal) glyphCell() {}

// NewIdiom copies ps into an idiom
func NewIdiom(ps ...prim.Primitive) Idiom {
	return Idiom{prims: append([]prim.Primitive(nil), ps...)}
}

// Prims returns a copy of the idiom's primitives in emission order
func (i Idiom) Prims() []prim.Primitive {
	return append([]prim.Primitive(nil), i.prims...)
}

// Experimental returns the reserved placeholder literal
func Experimental() Literal {
	return Literal{Text: constants.ExperimentalIcon}
}

// IsExperimental reports whether l is the reserved placeholder
func (l Literal) IsExperimental() bool {
	return l.Text == constants.ExperimentalIcon
}

// KeypadCell is an ordered, non-empty glyph list
// Index 0 is the tap default, the rest are radial alternates
type KeypadCell struct {
	glyphs []GlyphCell
}

// NewKeypadCell builds a cell from its default followed by its alternates
func NewKeypadCell(glyphs ...GlyphCell) (KeypadCell, error) {
	if len(glyphs) == 0 {
		return KeypadCell{}, ErrEmptyCell
	}
	for i, g := range glyphs {
		if g == nil {
			return KeypadCell{}, errors.Errorf("keypad cell glyph %d is nil", i)
		}
	}
	return KeypadCell{glyphs: append([]GlyphCell(nil), glyphs...)}, nil
}

// IsEmpty is true only for the zero KeypadCell
func (k KeypadCell) IsEmpty() bool { return len(k.glyphs) == 0 }

// Len counts the default plus alternates
func (k KeypadCell) Len() int { return len(k.glyphs) }

// NumAlternates is the number of radial sectors the cell needs
func (k KeypadCell) NumAlternates() int {
	if len(k.glyphs) == 0 {
		return 0
	}
	return len(k.glyphs) - 1
}

// Default returns the tap glyph, nil for an empty cell
func (k KeypadCell) Default() GlyphCell {
	if len(k.glyphs) == 0 {
		return nil
	}
	return k.glyphs[0]
}

// Alternate returns the i-th radial alternate (0-based, excluding the default)
func (k KeypadCell) Alternate(i int) (GlyphCell, bool) {
	if i < 0 || i+1 >= len(k.glyphs) {
		return nil, false
	}
	return k.glyphs[i+1], true
}

// Alternates returns a copy of the radial alternates
func (k KeypadCell) Alternates() []GlyphCell {
	if len(k.glyphs) < 2 {
		return nil
	}
	return append([]GlyphCell(nil), k.glyphs[1:]...)
}

// Glyphs returns a copy of every glyph, default first
func (k KeypadCell) Glyphs() []GlyphCell {
	return append([]GlyphCell(nil), k.glyphs...)
}

// Count reports how many Single glyphs of the cell are p
// Idiom members do not count: an idiom is a shortcut, not the key of its primitives
func (k KeypadCell) Count(p prim.Primitive) int {
	n := 0
	for _, g := range k.glyphs {
		if s, ok := g.(Single); ok && s.Prim == p {
			n++
		}
	}
	return n
}

// Contains reports whether p is the default or one of the alternates
func (k KeypadCell) Contains(p prim.Primitive) bool {
	return k.Count(p) > 0
}

// Text renders the characters a glyph emits into the input buffer
// Missing glyphs fall back to UnknownGlyph; the experimental placeholder emits nothing
func Text(g GlyphCell, pv prim.Provider) string {
	switch g := g.(type) {
	case Single:
		return string(glyphOf(g.Prim, pv))
	case Idiom:
		var sb strings.Builder
		for _, p := range g.prims {
			sb.WriteRune(glyphOf(p, pv))
		}
		return sb.String()
	case Literal:
		if g.IsExperimental() {
			return ""
		}
		return g.Text
	}
	return ""
}

// Label renders the characters drawn on a key; unlike Text it shows placeholders
func Label(g GlyphCell, pv prim.Provider) string {
	if l, ok := g.(Literal); ok {
		return l.Text
	}
	return Text(g, pv)
}

func glyphOf(p prim.Primitive, pv prim.Provider) rune {
	if r, ok := pv.Glyph(p); ok {
		return r
	}
	return constants.UnknownGlyph
}
