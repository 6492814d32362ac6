package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/amatgil/uiuapp/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq      float64
	phase     float64
	remaining int
	wave      WaveType
	rate      beep.SampleRate
}

// NewOscillator creates a streamer producing duration worth of wave at freq
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:      freq,
		remaining: rate.N(duration),
		wave:      wave,
		rate:      rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && o.remaining > 0 {
		v := o.sample()
		samples[n][0] = v
		samples[n][1] = v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.remaining--
		n++
	}
	return n, n > 0
}

func (o *oscillator) sample() float64 {
	switch o.wave {
	case WaveSquare:
		if o.phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(o.phase-0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * o.phase)
	}
}

func (o *oscillator) Err() error { return nil }

// fade applies a linear attack and release to a stream of known length
type fade struct {
	streamer beep.Streamer
	pos      int
	attack   int
	release  int
	total    int
}

// NewFade shapes s, which is expected to last duration, with linear ramps
func NewFade(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := f.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

func (f *fade) gain() float64 {
	g := 1.0
	if f.attack > 0 && f.pos < f.attack {
		g = float64(f.pos) / float64(f.attack)
	}
	if left := f.total - f.pos; f.release > 0 && left < f.release {
		g = math.Min(g, math.Max(0, float64(left)/float64(f.release)))
	}
	return g
}

func (f *fade) Err() error { return f.streamer.Err() }

// newVolume wraps s with a linear gain; math.Log2(0) is -Inf, so zero means silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateTapSound generates the short click for a single glyph
func CreateTapSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	osc := NewOscillator(constants.TapSoundFreq, constants.TapSoundDuration, WaveTriangle, rate)
	shaped := NewFade(osc, constants.TapSoundDuration, constants.TapSoundAttack, constants.TapSoundRelease, rate)
	return newVolume(shaped, cfg.EffectVolumes[SoundTap]*cfg.MasterVolume)
}

// CreateArmSound generates the lower blip played when the radial menu opens
func CreateArmSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	osc := NewOscillator(constants.ArmSoundFreq, constants.ArmSoundDuration, WaveSine, rate)
	shaped := NewFade(osc, constants.ArmSoundDuration, constants.ArmSoundAttack, constants.ArmSoundRelease, rate)
	return newVolume(shaped, cfg.EffectVolumes[SoundArm]*cfg.MasterVolume)
}

// CreateIdiomSound generates a rising two-note chirp for multi-glyph idioms
func CreateIdiomSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := constants.IdiomSoundNoteDuration

	n1 := NewFade(NewOscillator(constants.TapSoundFreq, d, WaveTriangle, rate), d, constants.TapSoundAttack, d/2, rate)
	n2 := NewFade(NewOscillator(constants.IdiomSoundFreq, d, WaveTriangle, rate), d, constants.TapSoundAttack, d/2, rate)

	return newVolume(beep.Seq(n1, n2), cfg.EffectVolumes[SoundIdiom]*cfg.MasterVolume)
}

// GetSoundEffect returns the streamer for the given sound type
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundTap:
		return CreateTapSound(cfg)
	case SoundArm:
		return CreateArmSound(cfg)
	case SoundIdiom:
		return CreateIdiomSound(cfg)
	default:
		return nil
	}
}
