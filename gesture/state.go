package gesture

import "github.com/amatgil/uiuapp/catalog"

// Phase is the coarse state of a gesture
type Phase uint8

const (
	PhaseIdle  Phase = iota // No pointer down; canonical reset state
	PhaseTap                // Pointer down, radial menu not armed; release emits the default
	PhaseArmed              // Radial menu shown; release emits the selected alternate
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTap:
		return "tap"
	case PhaseArmed:
		return "armed"
	default:
		return "unknown"
	}
}

// State tracks one pointer gesture over a keypad cell
// Not safe for concurrent use; activation.Controller serializes access
type State struct {
	active    bool
	selection int
	start     Point
	current   Point
	cell      catalog.KeypadCell
	highlight Highlight
}

// Snapshot is a read-only copy of State for presentation
type Snapshot struct {
	Phase     Phase
	Active    bool
	Selection int
	Start     Point
	Current   Point
	Cell      catalog.KeypadCell
	Highlight Highlight
}

// Start begins a gesture at origin over cell, discarding any previous one
func (s *State) Start(origin Point, cell catalog.KeypadCell) {
	s.Reset()
	s.start = origin
	s.current = origin
	s.cell = cell
}

// Update records the pointer position and recomputes the sector and ring
func (s *State) Update(p Point) {
	if s.cell.IsEmpty() {
		return
	}
	s.current = p
	s.recompute()
}

// Arm shows the radial menu; it fails when there is no gesture or no alternates
func (s *State) Arm() bool {
	if s.cell.NumAlternates() == 0 {
		return false
	}
	s.active = true
	s.recompute()
	return true
}

// ExceedsDeadZone reports whether the pointer left the dead zone around the origin
func (s *State) ExceedsDeadZone(radius float64) bool {
	if s.cell.IsEmpty() {
		return false
	}
	return s.start.Dist(s.current) > radius
}

// Resolve returns the glyph a release would emit
// Unarmed gestures resolve to the default; armed ones to the selected alternate
func (s *State) Resolve() (catalog.GlyphCell, bool) {
	if s.cell.IsEmpty() {
		return nil, false
	}
	if s.active {
		if g, ok := s.cell.Alternate(s.selection); ok {
			return g, true
		}
	}
	return s.cell.Default(), true
}

// Reset returns to idle: inactive, no cell, both positions at the origin
func (s *State) Reset() {
	*s = State{}
}

func (s *State) recompute() {
	n := s.cell.NumAlternates()
	if n == 0 {
		s.selection = 0
		s.highlight = Highlight{}
		return
	}
	s.selection = Sector(s.current.Sub(s.start).Angle(), n)
	s.highlight = NewHighlight(n, s.selection)
}

func (s *State) Phase() Phase {
	switch {
	case s.cell.IsEmpty():
		return PhaseIdle
	case s.active:
		return PhaseArmed
	default:
		return PhaseTap
	}
}

func (s *State) Active() bool             { return s.active }
func (s *State) Selection() int           { return s.selection }
func (s *State) StartPos() Point          { return s.start }
func (s *State) Current() Point           { return s.current }
func (s *State) Cell() catalog.KeypadCell { return s.cell }
func (s *State) HighlightRing() Highlight { return s.highlight }
func (s *State) Gesturing() bool          { return !s.cell.IsEmpty() }
func (s *State) Displacement() Point      { return s.current.Sub(s.start) }

// Snapshot copies the state for read-only consumers
func (s *State) Snapshot() Snapshot {
	hl := Highlight{Segments: append([]Segment(nil), s.highlight.Segments...)}
	return Snapshot{
		Phase:     s.Phase(),
		Active:    s.active,
		Selection: s.selection,
		Start:     s.start,
		Current:   s.current,
		Cell:      s.cell,
		Highlight: hl,
	}
}
