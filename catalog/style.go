package catalog

import "github.com/amatgil/uiuapp/prim"

// Style classes shared by keypad faces and highlighted history
const (
	ClassNoadicFunction  = "noadic-function"
	ClassMonadicFunction = "monadic-function"
	ClassDyadicFunction  = "dyadic-function"
	ClassMonadicModifier = "monadic-modifier"
	ClassDyadicModifier  = "dyadic-modifier"
	ClassStackFunction   = "stack-function"
	ClassTranspose       = "uiua-trans"
	ClassConstant        = "constant-value"
	ClassString          = "string-literal"
	ClassComment         = "comment"
)

// ClassOf derives the style class of a primitive from its declared signature
// Transpose and identity are special-cased; anything unclassifiable yields ""
func ClassOf(p prim.Primitive, sig prim.Signature) string {
	switch p {
	case prim.Transpose:
		return ClassTranspose
	case prim.Identity:
		return ClassStackFunction
	}

	if sig.HasArgs {
		switch sig.Args {
		case 0:
			return ClassNoadicFunction
		case 1:
			return ClassMonadicFunction
		case 2:
			return ClassDyadicFunction
		}
		return ""
	}

	if sig.HasModifierArgs {
		switch sig.ModifierArgs {
		case 1:
			return ClassMonadicModifier
		case 2:
			return ClassDyadicModifier
		}
	}
	return ""
}

// Span is a run of text with one style class
type Span struct {
	Text  string
	Class string
}

// Spans splits a glyph into styled runs, one per primitive
func Spans(g GlyphCell, pv prim.Provider) []Span {
	switch g := g.(type) {
	case Single:
		return []Span{primSpan(g.Prim, pv)}
	case Idiom:
		out := make([]Span, 0, len(g.prims))
		for _, p := range g.prims {
			out = append(out, primSpan(p, pv))
		}
		return out
	case Literal:
		return []Span{{Text: g.Text, Class: g.Class}}
	}
	return nil
}

func primSpan(p prim.Primitive, pv prim.Provider) Span {
	return Span{Text: string(glyphOf(p, pv)), Class: ClassOf(p, pv.Signature(p))}
}
