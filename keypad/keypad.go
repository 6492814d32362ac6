// Package keypad projects the glyph catalog and the live gesture into
// presentation data. Nothing here mutates gesture state; front-ends call
// Faces once per layout and Project on every controller notification.
package keypad

import (
	"github.com/amatgil/uiuapp/catalog"
	"github.com/amatgil/uiuapp/constants"
	"github.com/amatgil/uiuapp/gesture"
	"github.com/amatgil/uiuapp/prim"
)

// Face is the static appearance of one keypad button
type Face struct {
	Index      int
	Row, Col   int
	Cell       catalog.KeypadCell
	Label      string
	Spans      []catalog.Span
	Alternates int
}

// Item is one alternate glyph placed on the radial ring
type Item struct {
	Index       int
	Angle       float64 // degrees, clockwise from east
	Offset      gesture.Point
	Text        string
	Spans       []catalog.Span
	Highlighted bool
}

// Overlay is the radial menu as it should currently be drawn
type Overlay struct {
	Visible bool
	Origin  gesture.Point
	Current gesture.Point
	Style   string
	Ring    gesture.Highlight
	Items   []Item
}

// Faces lists every button of cat in row-major order, labelled with its default glyph
func Faces(cat *catalog.Catalog, pv prim.Provider) []Face {
	if cat == nil {
		return nil
	}
	faces := make([]Face, 0, cat.Len())
	for i, cell := range cat.Cells() {
		def := cell.Default()
		faces = append(faces, Face{
			Index:      i,
			Row:        i / cat.Cols(),
			Col:        i % cat.Cols(),
			Cell:       cell,
			Label:      catalog.Label(def, pv),
			Spans:      catalog.Spans(def, pv),
			Alternates: cell.NumAlternates(),
		})
	}
	return faces
}

// Project derives the overlay for snap
// The ring is visible only while armed; alternates sit at i*360/N degrees
func Project(snap gesture.Snapshot, pv prim.Provider) Overlay {
	ov := Overlay{
		Visible: snap.Active,
		Origin:  snap.Start,
		Current: snap.Current,
		Style:   snap.Highlight.CSS(),
		Ring:    snap.Highlight,
	}
	if !snap.Active {
		ov.Style = gesture.Highlight{}.CSS()
		ov.Ring = gesture.Highlight{}
		return ov
	}

	alts := snap.Cell.Alternates()
	n := len(alts)
	ov.Items = make([]Item, 0, n)
	for i, g := range alts {
		angle := float64(i) * 360 / float64(n)
		ov.Items = append(ov.Items, Item{
			Index:       i,
			Angle:       angle,
			Offset:      gesture.Polar(constants.RadialRadius, angle),
			Text:        catalog.Label(g, pv),
			Spans:       catalog.Spans(g, pv),
			Highlighted: i == snap.Selection,
		})
	}
	return ov
}

// Selected returns the highlighted item, if any
func (o Overlay) Selected() (Item, bool) {
	for _, it := range o.Items {
		if it.Highlighted {
			return it, true
		}
	}
	return Item{}, false
}
