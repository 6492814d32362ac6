package input

import "github.com/gdamore/tcell/v2"

// KeyEntry binds a key to the intent it produces
type KeyEntry struct {
	IntentType IntentType
	Char       rune // for IntentText bindings that insert a fixed rune
	ScrollDir  ScrollDir
}

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, Enter, Backspace, ...)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable runes with a non-insert meaning; absent runes are inserted
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyEscape:     {IntentType: IntentQuit},
			tcell.KeyCtrlC:      {IntentType: IntentQuit},
			tcell.KeyCtrlS:      {IntentType: IntentToggleSound},
			tcell.KeyCtrlO:      {IntentType: IntentToggleCleanInput},
			tcell.KeyEnter:      {IntentType: IntentNewline},
			tcell.KeyCtrlR:      {IntentType: IntentRun},
			tcell.KeyBackspace:  {IntentType: IntentBackspace},
			tcell.KeyBackspace2: {IntentType: IntentBackspace},
			tcell.KeyCtrlU:      {IntentType: IntentClearInput},
			tcell.KeyCtrlL:      {IntentType: IntentClearHistory},
			tcell.KeyTab:        {IntentType: IntentText, Char: ' '},
			tcell.KeyPgUp:       {IntentType: IntentScroll, ScrollDir: ScrollUp},
			tcell.KeyPgDn:       {IntentType: IntentScroll, ScrollDir: ScrollDown},
		},
		Runes: map[rune]KeyEntry{},
	}
}

// Clone returns a deep copy of the key table
func (kt *KeyTable) Clone() *KeyTable {
	out := &KeyTable{
		SpecialKeys: make(map[tcell.Key]KeyEntry, len(kt.SpecialKeys)),
		Runes:       make(map[rune]KeyEntry, len(kt.Runes)),
	}
	for k, v := range kt.SpecialKeys {
		out.SpecialKeys[k] = v
	}
	for r, v := range kt.Runes {
		out.Runes[r] = v
	}
	return out
}

// MergeKeyTable returns base with override applied
// Entries bound to IntentNone ("none" action) remove the key
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}
	for k, v := range override.SpecialKeys {
		if v.IntentType == IntentNone {
			delete(result.SpecialKeys, k)
		} else {
			result.SpecialKeys[k] = v
		}
	}
	for r, v := range override.Runes {
		if v.IntentType == IntentNone {
			delete(result.Runes, r)
		} else {
			result.Runes[r] = v
		}
	}
	return result
}
