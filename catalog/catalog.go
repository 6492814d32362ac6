package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/amatgil/uiuapp/constants"
	"github.com/amatgil/uiuapp/prim"
)

// ErrShape is returned when the cell count does not match rows*cols
var ErrShape = errors.New("catalog shape mismatch")

// Catalog is the immutable keypad table, row-major
type Catalog struct {
	rows, cols int
	cells      []KeypadCell
}

// New validates and copies a rows*cols table of non-empty cells
func New(rows, cols int, cells []KeypadCell) (*Catalog, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrShape, "invalid dimensions %dx%d", rows, cols)
	}
	if len(cells) != rows*cols {
		return nil, errors.Wrapf(ErrShape, "%dx%d needs %d cells, got %d", rows, cols, rows*cols, len(cells))
	}
	for i, c := range cells {
		if c.IsEmpty() {
			return nil, errors.Wrapf(ErrEmptyCell, "cell %d", i)
		}
	}
	return &Catalog{
		rows:  rows,
		cols:  cols,
		cells: append([]KeypadCell(nil), cells...),
	}, nil
}

func (c *Catalog) Rows() int { return c.rows }
func (c *Catalog) Cols() int { return c.cols }
func (c *Catalog) Len() int  { return len(c.cells) }

// At returns the cell at (row, col)
func (c *Catalog) At(row, col int) (KeypadCell, bool) {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return KeypadCell{}, false
	}
	return c.cells[row*c.cols+col], true
}

// Index returns the cell at flat index i
func (c *Catalog) Index(i int) (KeypadCell, bool) {
	if i < 0 || i >= len(c.cells) {
		return KeypadCell{}, false
	}
	return c.cells[i], true
}

// Cells returns a copy of the table in row-major order
func (c *Catalog) Cells() []KeypadCell {
	return append([]KeypadCell(nil), c.cells...)
}

// AuditError lists primitives that are not typable exactly once
type AuditError struct {
	Missing    []string
	Duplicated []string
}

func (e *AuditError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "not typable: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Duplicated) > 0 {
		parts = append(parts, "on more than one key: "+strings.Join(e.Duplicated, ", "))
	}
	return "keypad audit failed: " + strings.Join(parts, "; ")
}

// Audit checks that every user-facing primitive is reachable from exactly one cell
func Audit(c *Catalog, pv prim.Provider) error {
	var audit AuditError
	for _, p := range prim.UserFacing(pv) {
		n := 0
		for _, cell := range c.cells {
			n += cell.Count(p)
		}
		glyph, _ := pv.Glyph(p)
		desc := fmt.Sprintf("'%c' (%s)", glyph, pv.Name(p))
		switch {
		case n == 0:
			audit.Missing = append(audit.Missing, desc)
		case n > 1:
			audit.Duplicated = append(audit.Duplicated, desc)
		}
	}
	if len(audit.Missing) == 0 && len(audit.Duplicated) == 0 {
		return nil
	}
	sort.Strings(audit.Missing)
	sort.Strings(audit.Duplicated)
	return &audit
}

func singles(ps ...prim.Primitive) []GlyphCell {
	out := make([]GlyphCell, len(ps))
	for i, p := range ps {
		out[i] = Single{Prim: p}
	}
	return out
}

func literals(class string, texts ...string) []GlyphCell {
	out := make([]GlyphCell, len(texts))
	for i, t := range texts {
		out[i] = Literal{Text: t, Class: class}
	}
	return out
}

// Default builds the uiua keypad: four rows of five cells
func Default() *Catalog {
	rows := [][]GlyphCell{
		// Row one: stack, stack modifiers, inversion, iteration, sub-array
		singles(prim.Identity, prim.Slf, prim.Backward, prim.Pop, prim.Dup, prim.Flip, prim.Stack),
		singles(prim.Fork, prim.Both, prim.Bracket, prim.Dip, prim.Gap, prim.On, prim.By, prim.Off, prim.With, prim.Below),
		singles(prim.Un, prim.Anti, prim.Under, prim.Obverse, prim.Fill),
		singles(prim.Reduce, prim.Fold, prim.Scan, prim.Repeat, prim.Switch, prim.Do, prim.Try, prim.Case, prim.Assert),
		singles(prim.Rows, prim.TableMod, prim.Stencil, prim.Tuples, prim.Partition, prim.Group),

		// Row two: monadic functions and boxing
		singles(prim.Neg, prim.Sign, prim.Not, prim.Abs, prim.Sqrt, prim.Sin, prim.Floor, prim.Ceil, prim.Round),
		singles(prim.Len, prim.Shape, prim.First, prim.Last, prim.Reverse, prim.Deshape, prim.Fix, prim.Transpose),
		singles(prim.Range, prim.Bits, prim.Where, prim.Parse),
		singles(prim.Sort, prim.Rise, prim.Fall, prim.Classify, prim.Deduplicate, prim.Unique),
		singles(prim.Box, prim.Content, prim.Inventory),

		// Row three: dyadic functions and constants
		singles(prim.Add, prim.Sub, prim.Mul, prim.Div, prim.Modulus, prim.Pow, prim.Log, prim.Atan, prim.Complex, prim.Base),
		singles(prim.Couple, prim.Join, prim.Select, prim.Pick, prim.Reshape, prim.Drop, prim.Take, prim.Rotate, prim.Keep, prim.Orient),
		singles(prim.Eq, prim.Ne, prim.Le, prim.Lt, prim.Gt, prim.Ge, prim.Min, prim.Max),
		singles(prim.Match, prim.Find, prim.Mask, prim.MemberOf, prim.IndexOf),
		singles(prim.Rand, prim.Eta, prim.Pi, prim.Tau, prim.Infinity),

		// Row four: literals, experimental placeholder, idioms
		literals(ClassString, "@", `"`, "$", "_", "#"),
		literals(ClassConstant, "0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
		literals(ClassConstant, "₀", "₁", "₂", "₃", "₄", "₅", "₆", "₇", "₈", "₉"),
		{Experimental()},
		{NewIdiom(prim.Sub, prim.By, prim.Not)},
	}

	cells := make([]KeypadCell, len(rows))
	for i, glyphs := range rows {
		cell, err := NewKeypadCell(glyphs...)
		if err != nil {
			panic(fmt.Sprintf("default keypad cell %d: %v", i, err))
		}
		cells[i] = cell
	}

	cat, err := New(constants.KeypadRows, constants.KeypadCols, cells)
	if err != nil {
		panic(fmt.Sprintf("default keypad: %v", err))
	}
	return cat
}
