package constants

import "time"

// Gesture Timing
const (
	// ActivationDelay is how long a press must be held before the radial menu arms
	ActivationDelay = 500 * time.Millisecond

	// FrameUpdateInterval is the redraw interval while the radial menu animates (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond
)

// Gesture Geometry (logical pixels)
const (
	// DeadZoneRadius is the drag distance below which a gesture stays a tap
	DeadZoneRadius = 30.0

	// RadialRadius is the distance from the press origin to each alternate glyph
	RadialRadius = 60.0

	// CellWidthPx and CellHeightPx convert terminal cells to logical pixels
	// Terminal cells are roughly twice as tall as they are wide
	CellWidthPx  = 8.0
	CellHeightPx = 16.0
)

// Glyph placeholders
const (
	// UnknownGlyph is drawn for primitives that have no representable glyph
	UnknownGlyph = '¡'

	// ExperimentalIcon marks the reserved key for experimental primitives; it never emits text
	ExperimentalIcon = "🧪"
)

// Scrollback Limits
const (
	// MaxOutputChars truncates long text results; the cut is marked with "..."
	MaxOutputChars = 1000

	// ExecutionLimit bounds one evaluation of submitted code
	ExecutionLimit = 5 * time.Second
)
