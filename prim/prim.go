package prim

// Primitive identifies an atomic operation of the array language
type Primitive uint16

const (
	Invalid Primitive = iota

	// Stack
	Identity
	Slf
	Backward
	Pop
	Dup
	Flip
	Stack

	// Stack modifiers
	Fork
	Both
	Bracket
	Dip
	Gap
	On
	By
	Off
	With
	Below

	// Inversion
	Un
	Anti
	Under
	Obverse
	Fill

	// Iteration and control
	Reduce
	Fold
	Scan
	Repeat
	Switch
	Do
	Try
	Case
	Assert

	// Sub-array modifiers
	Rows
	TableMod
	Stencil
	Tuples
	Partition
	Group

	// Monadic arithmetic
	Neg
	Sign
	Not
	Abs
	Sqrt
	Sin
	Floor
	Ceil
	Round

	// Monadic structure
	Len
	Shape
	First
	Last
	Reverse
	Deshape
	Fix
	Transpose

	// Monadic value
	Range
	Bits
	Where
	Parse

	// Monadic comparison
	Sort
	Rise
	Fall
	Classify
	Deduplicate
	Unique

	// Boxing
	Box
	Content
	Inventory

	// Dyadic arithmetic
	Add
	Sub
	Mul
	Div
	Modulus
	Pow
	Log
	Atan
	Complex
	Base

	// Dyadic structure
	Couple
	Join
	Select
	Pick
	Reshape
	Drop
	Take
	Rotate
	Keep
	Orient

	// Comparison
	Eq
	Ne
	Le
	Lt
	Gt
	Ge
	Min
	Max

	// Dyadic search
	Match
	Find
	Mask
	MemberOf
	IndexOf

	// Constants
	Rand
	Eta
	Pi
	Tau
	Infinity

	// Experimental
	Derivative
	Integral
	Occurrences

	// Deprecated
	Rerank
	Windows
	Trace

	// System functions without a glyph
	Print
	Now

	primitiveCount
)

// Signature holds the declared argument counts of a primitive
// Functions declare Args, modifiers declare ModifierArgs
type Signature struct {
	Args            int
	HasArgs         bool
	ModifierArgs    int
	HasModifierArgs bool
}

// Function returns a function signature with n arguments
func Function(n int) Signature {
	return Signature{Args: n, HasArgs: true}
}

// Modifier returns a modifier signature taking n function arguments
func Modifier(n int) Signature {
	return Signature{ModifierArgs: n, HasModifierArgs: true}
}

// Provider answers metadata queries about primitives
type Provider interface {
	All() []Primitive
	Name(p Primitive) string
	Glyph(p Primitive) (rune, bool)
	Signature(p Primitive) Signature
	Deprecated(p Primitive) bool
	Experimental(p Primitive) bool
}

// UserFacing returns every primitive that has a glyph and is neither deprecated nor experimental
func UserFacing(pv Provider) []Primitive {
	var out []Primitive
	for _, p := range pv.All() {
		if _, ok := pv.Glyph(p); !ok {
			continue
		}
		if pv.Deprecated(p) || pv.Experimental(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
