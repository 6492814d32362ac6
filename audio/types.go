package audio

import "errors"

// SoundType represents different feedback sounds
type SoundType int

const (
	SoundTap   SoundType = iota // Single glyph emitted
	SoundArm                    // Radial menu armed
	SoundIdiom                  // Multi-glyph idiom emitted
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundTap:
		return "tap"
	case SoundArm:
		return "arm"
	case SoundIdiom:
		return "idiom"
	default:
		return "unknown"
	}
}

// ErrNotInitialized is returned when playing before Initialize succeeded
var ErrNotInitialized = errors.New("audio not initialized")
