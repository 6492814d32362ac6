package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit             // Esc, Ctrl+C
	IntentResize           // Terminal resize event
	IntentToggleSound      // Ctrl+S
	IntentToggleCleanInput // Ctrl+O, the settings button

	// Editing
	IntentText         // Printable character
	IntentNewline      // Enter, the Ret button
	IntentBackspace    // Backspace
	IntentRun          // Ctrl+R, Ctrl+Enter
	IntentClearInput   // Ctrl+U
	IntentClearHistory // Ctrl+L

	// Pointer
	IntentPointerDown // Left button pressed
	IntentPointerMove // Left button held and moved
	IntentPointerUp   // Left button released
	IntentScroll      // Wheel
)

// MouseAction is the transition inferred from consecutive button masks
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionDrag
)

func (a MouseAction) String() string {
	switch a {
	case MouseActionPress:
		return "Press"
	case MouseActionRelease:
		return "Release"
	case MouseActionDrag:
		return "Drag"
	default:
		return "None"
	}
}

// ScrollDir for scrollback navigation
type ScrollDir int8

const (
	ScrollNone ScrollDir = 0
	ScrollUp   ScrollDir = -1
	ScrollDown ScrollDir = 1
)

// Intent represents a parsed semantic action
// Pointer intents carry the cell under the pointer in X, Y
type Intent struct {
	Type      IntentType
	Char      rune
	X, Y      int
	Action    MouseAction
	ScrollDir ScrollDir
}
