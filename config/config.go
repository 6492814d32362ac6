package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/amatgil/uiuapp/activation"
	"github.com/amatgil/uiuapp/constants"
)

// StackOrdering decides which end of the result stack is printed first
type StackOrdering string

const (
	BottomAtTop StackOrdering = "bottom-at-top"
	TopAtTop    StackOrdering = "top-at-top"
)

// Settings are the user preferences, persisted as YAML
type Settings struct {
	CleanInputOnRun bool          `yaml:"clean_input_on_run"`
	ExecutionLimit  time.Duration `yaml:"execution_limit"`
	StackOrdering   StackOrdering `yaml:"stack_ordering"`
	ActivationDelay time.Duration `yaml:"activation_delay"`
	DeadZoneRadius  float64       `yaml:"dead_zone_radius"`
	ArmPolicy       string        `yaml:"arm_policy"`
	Sound           bool          `yaml:"sound"`
	MaxOutputChars  int           `yaml:"max_output_chars"`
}

// Default returns the settings used when no file is present
func Default() *Settings {
	return &Settings{
		CleanInputOnRun: false,
		ExecutionLimit:  constants.ExecutionLimit,
		StackOrdering:   BottomAtTop,
		ActivationDelay: constants.ActivationDelay,
		DeadZoneRadius:  constants.DeadZoneRadius,
		ArmPolicy:       activation.ArmOnDelay.String(),
		Sound:           true,
		MaxOutputChars:  constants.MaxOutputChars,
	}
}

// Load reads path over the defaults; a missing file is not an error
func Load(path string) (*Settings, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read settings")
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse settings %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid settings %s", path)
	}
	return cfg, nil
}

// Save writes the settings as YAML
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encode settings")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write settings")
}

// ApplyEnv overrides fields from UIUAPP_* environment variables; malformed values are ignored
func (s *Settings) ApplyEnv() {
	if v := os.Getenv("UIUAPP_SOUND"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Sound = b
		}
	}
	if v := os.Getenv("UIUAPP_ARM_POLICY"); v != "" {
		if _, err := activation.ParseArmPolicy(v); err == nil {
			s.ArmPolicy = v
		}
	}
	if v := os.Getenv("UIUAPP_ACTIVATION_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			s.ActivationDelay = d
		}
	}
}

// Validate rejects values the application cannot honour
func (s *Settings) Validate() error {
	if s.ExecutionLimit <= 0 {
		return errors.Errorf("execution_limit must be positive, got %s", s.ExecutionLimit)
	}
	if s.ActivationDelay <= 0 {
		return errors.Errorf("activation_delay must be positive, got %s", s.ActivationDelay)
	}
	if s.DeadZoneRadius <= 0 {
		return errors.Errorf("dead_zone_radius must be positive, got %v", s.DeadZoneRadius)
	}
	if s.MaxOutputChars <= 0 {
		return errors.Errorf("max_output_chars must be positive, got %d", s.MaxOutputChars)
	}
	switch s.StackOrdering {
	case BottomAtTop, TopAtTop:
	default:
		return errors.Errorf("unknown stack_ordering %q", s.StackOrdering)
	}
	if _, err := activation.ParseArmPolicy(s.ArmPolicy); err != nil {
		return err
	}
	return nil
}

// Policy returns the parsed arm policy, falling back to delay
func (s *Settings) Policy() activation.ArmPolicy {
	p, err := activation.ParseArmPolicy(s.ArmPolicy)
	if err != nil {
		return activation.ArmOnDelay
	}
	return p
}
