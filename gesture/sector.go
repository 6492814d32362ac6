package gesture

import (
	"fmt"
	"math"
	"strings"
)

// Sector maps a drag angle to the nearest of n glyph directions
// Glyph i sits at i*360/n degrees; sector boundaries fall halfway between glyphs
func Sector(angle float64, n int) int {
	if n <= 0 || math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	chunk := 360 / float64(n)
	a := math.Mod(angle+360+chunk/2, 360)
	if a < 0 {
		a += 360
	}
	idx := int(math.Floor(a / chunk))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// Segment is one arc of the radial ring, as percentages of a full turn
type Segment struct {
	From, To float64
	Selected bool
}

// Highlight describes the radial ring: n equal arcs, one of them selected
type Highlight struct {
	Segments []Segment
}

// Ring colors used by CSS
const (
	colorSelected = "#c8c8c8"
	colorIdle     = "#505050"
)

// NewHighlight builds a ring of n arcs with selected drawn in a distinct shade
func NewHighlight(n, selected int) Highlight {
	if n <= 0 {
		return Highlight{}
	}
	segs := make([]Segment, n)
	step := 100 / float64(n)
	for i := range segs {
		segs[i] = Segment{
			From:     float64(i) * step,
			To:       float64(i+1) * step,
			Selected: i == selected,
		}
	}
	segs[n-1].To = 100
	return Highlight{Segments: segs}
}

// Selected returns the index of the selected arc, -1 if none
func (h Highlight) Selected() int {
	for i, s := range h.Segments {
		if s.Selected {
			return i
		}
	}
	return -1
}

// IsZero reports whether the ring is empty
func (h Highlight) IsZero() bool { return len(h.Segments) == 0 }

// CSS renders the ring as a conic-gradient background
// CSS measures from 12 o'clock; arcs are rotated so glyph 0 (at 3 o'clock) sits mid-arc
func (h Highlight) CSS() string {
	n := len(h.Segments)
	if n == 0 {
		return "background: none"
	}
	from := 90 - 180/float64(n)
	var sb strings.Builder
	fmt.Fprintf(&sb, "background: conic-gradient(from %sdeg", trim(from))
	for _, s := range h.Segments {
		color := colorIdle
		if s.Selected {
			color = colorSelected
		}
		fmt.Fprintf(&sb, ", %s %s%% %s%%", color, trim(s.From), trim(s.To))
	}
	sb.WriteString(")")
	return sb.String()
}

func trim(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", f), "0"), ".")
}
