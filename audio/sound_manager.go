package audio

import (
	"io"
	"sync"
	"unicode/utf8"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amatgil/uiuapp/constants"
)

// SoundManager plays gesture feedback sounds
// It satisfies activation.Feedback; every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	enabled     bool
	log         logrus.FieldLogger
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg *AudioConfig, log logrus.FieldLogger) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &SoundManager{
		cfg:     cfg,
		mixer:   &beep.Mixer{},
		enabled: cfg.Enabled,
		log:     log,
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		return errors.Wrap(err, "speaker init")
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.WithField("rate", sm.cfg.SampleRate).Debug("audio initialized")
	return nil
}

// Cleanup stops all sounds and closes the audio system
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// Play queues a sound on the mixer
func (sm *SoundManager) Play(st SoundType) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return ErrNotInitialized
	}
	if !sm.enabled {
		return nil
	}
	s := GetSoundEffect(st, sm.cfg)
	if s == nil {
		return errors.Errorf("unknown sound type %d", st)
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// Armed plays the arm blip
func (sm *SoundManager) Armed() {
	sm.play(SoundArm)
}

// Emitted plays a click, or a chirp for multi-glyph text
func (sm *SoundManager) Emitted(text string) {
	sm.play(soundFor(text))
}

func (sm *SoundManager) play(st SoundType) {
	if err := sm.Play(st); err != nil && !errors.Is(err, ErrNotInitialized) {
		sm.log.WithError(err).WithField("sound", st).Warn("feedback sound failed")
	}
}

func soundFor(text string) SoundType {
	if utf8.RuneCountInString(text) > 1 {
		return SoundIdiom
	}
	return SoundTap
}

// SetEnabled mutes or unmutes feedback
func (sm *SoundManager) SetEnabled(enabled bool) {
	sm.mu.Lock()
	sm.enabled = enabled
	sm.mu.Unlock()
}

// ToggleEnabled flips the mute state and returns the new value
func (sm *SoundManager) ToggleEnabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.enabled = !sm.enabled
	return sm.enabled
}

func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.enabled
}

func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}
