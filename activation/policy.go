package activation

import (
	"strings"

	"github.com/pkg/errors"
)

// ArmPolicy selects what arms the radial menu
type ArmPolicy uint8

const (
	// ArmOnDelay arms once the press is held for the activation delay
	ArmOnDelay ArmPolicy = 1 << iota
	// ArmOnDrag arms as soon as the pointer leaves the dead zone
	ArmOnDrag

	ArmOnBoth = ArmOnDelay | ArmOnDrag
)

// ParseArmPolicy accepts "delay", "drag" or "both"
func ParseArmPolicy(s string) (ArmPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "delay":
		return ArmOnDelay, nil
	case "drag":
		return ArmOnDrag, nil
	case "both":
		return ArmOnBoth, nil
	}
	return 0, errors.Errorf("unknown arm policy %q", s)
}

func (p ArmPolicy) String() string {
	switch p {
	case ArmOnDelay:
		return "delay"
	case ArmOnDrag:
		return "drag"
	case ArmOnBoth:
		return "both"
	default:
		return "none"
	}
}
