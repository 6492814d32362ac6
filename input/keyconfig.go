package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Rune aliases for keys that are awkward as bare YAML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"hash":      '#',
}

// keymapFile is the on-disk keymap layout
type keymapFile struct {
	Keys  map[string]string `yaml:"keys"`
	Runes map[string]string `yaml:"runes"`
}

var keysByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// LoadKeyConfig parses YAML keymap data into a sparse override KeyTable
// Returns error on unknown action names, invalid key names, or parse failure
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var raw keymapFile
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		return nil, errors.Wrap(err, "keymap parse")
	}

	kt := &KeyTable{
		SpecialKeys: make(map[tcell.Key]KeyEntry, len(raw.Keys)),
		Runes:       make(map[rune]KeyEntry, len(raw.Runes)),
	}

	for name, action := range raw.Keys {
		k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, errors.Errorf("[keys] unknown key name: %q", name)
		}
		entry, err := resolveAction(action)
		if err != nil {
			return nil, errors.Wrapf(err, "[keys] key %q", name)
		}
		kt.SpecialKeys[k] = entry
	}

	for name, action := range raw.Runes {
		r, err := resolveRune(name)
		if err != nil {
			return nil, errors.Wrapf(err, "[runes] key %q", name)
		}
		entry, err := resolveAction(action)
		if err != nil {
			return nil, errors.Wrapf(err, "[runes] key %q", name)
		}
		kt.Runes[r] = entry
	}

	return kt, nil
}

// resolveRune accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}
	return 0, errors.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

func resolveAction(name string) (KeyEntry, error) {
	entry, ok := ActionEntry(name)
	if !ok {
		return KeyEntry{}, errors.Errorf("unknown action: %q", name)
	}
	return entry, nil
}
