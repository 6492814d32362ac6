package input

import "strings"

// actionRegistry maps canonical action names to KeyEntry structs
// Used by the keymap loader to resolve action strings to bindings
var actionRegistry = map[string]KeyEntry{
	// Unbind sentinel
	"none": {},

	"quit":               {IntentType: IntentQuit},
	"toggle_sound":       {IntentType: IntentToggleSound},
	"toggle_clean_input": {IntentType: IntentToggleCleanInput},

	"newline":       {IntentType: IntentNewline},
	"backspace":     {IntentType: IntentBackspace},
	"run":           {IntentType: IntentRun},
	"clear_input":   {IntentType: IntentClearInput},
	"clear_history": {IntentType: IntentClearHistory},
	"insert_space":  {IntentType: IntentText, Char: ' '},

	"scroll_up":   {IntentType: IntentScroll, ScrollDir: ScrollUp},
	"scroll_down": {IntentType: IntentScroll, ScrollDir: ScrollDown},
}

// ActionEntry looks up a named action
func ActionEntry(name string) (KeyEntry, bool) {
	e, ok := actionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return e, ok
}

// ActionNames lists every bindable action
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	return names
}
