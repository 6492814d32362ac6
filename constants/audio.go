package constants

import "time"

// Feedback Sound Timing
const (
	// TapSoundDuration is the length of the click played when a glyph is emitted
	TapSoundDuration = 25 * time.Millisecond
	TapSoundAttack   = 2 * time.Millisecond
	TapSoundRelease  = 15 * time.Millisecond

	// ArmSoundDuration is the length of the blip played when the radial menu arms
	ArmSoundDuration = 40 * time.Millisecond
	ArmSoundAttack   = 5 * time.Millisecond
	ArmSoundRelease  = 25 * time.Millisecond

	// IdiomSoundNoteDuration is the length of each note of the two-note idiom chirp
	IdiomSoundNoteDuration = 30 * time.Millisecond

	// AudioBufferDuration is the speaker buffer size
	AudioBufferDuration = 100 * time.Millisecond
)

// Feedback Sound Pitch (Hz)
const (
	TapSoundFreq   = 1320.0
	ArmSoundFreq   = 660.0
	IdiomSoundFreq = 1760.0
)

// Audio Defaults
const (
	DefaultSampleRate   = 44100
	DefaultMasterVolume = 0.5
)
