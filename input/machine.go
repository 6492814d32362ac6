package input

import (
	"github.com/gdamore/tcell/v2"
)

// Machine is the input state machine
// Parses tcell events into semantic Intent
// tcell reports mouse state as button masks, so press, drag and release are
// inferred from the previous mask
type Machine struct {
	keyTable *KeyTable

	// Left button state
	pressed bool
	lastX   int
	lastY   int
}

// NewMachine creates a new input machine
func NewMachine() *Machine {
	return &Machine{keyTable: DefaultKeyTable()}
}

// SetKeyTable replaces the bindings; nil restores the defaults
func (m *Machine) SetKeyTable(kt *KeyTable) {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	m.keyTable = kt
}

// Pressed reports whether the left button is believed to be down
func (m *Machine) Pressed() bool { return m.pressed }

// Reset forgets any held button, e.g. after focus loss
func (m *Machine) Reset() {
	m.pressed = false
	m.lastX, m.lastY = 0, 0
}

// Process parses a tcell event and returns an Intent
// Returns nil for events with no meaning here
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	case *tcell.EventError:
		return &Intent{Type: IntentQuit}
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	if ev.Key() == tcell.KeyEnter && ev.Modifiers()&tcell.ModCtrl != 0 {
		return &Intent{Type: IntentRun}
	}

	if ev.Key() != tcell.KeyRune {
		if entry, ok := m.keyTable.SpecialKeys[ev.Key()]; ok {
			return m.buildIntent(entry, 0)
		}
		return nil
	}

	r := ev.Rune()
	if entry, ok := m.keyTable.Runes[r]; ok {
		return m.buildIntent(entry, r)
	}
	return &Intent{Type: IntentText, Char: r}
}

func (m *Machine) buildIntent(entry KeyEntry, r rune) *Intent {
	intent := &Intent{Type: entry.IntentType, ScrollDir: entry.ScrollDir, Char: entry.Char}
	if intent.Type == IntentText && intent.Char == 0 {
		intent.Char = r
	}
	return intent
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		return &Intent{Type: IntentScroll, ScrollDir: ScrollUp, X: x, Y: y}
	case buttons&tcell.WheelDown != 0:
		return &Intent{Type: IntentScroll, ScrollDir: ScrollDown, X: x, Y: y}
	}

	left := buttons&tcell.Button1 != 0
	switch {
	case left && !m.pressed:
		m.pressed = true
		m.lastX, m.lastY = x, y
		return &Intent{Type: IntentPointerDown, Action: MouseActionPress, X: x, Y: y}

	case left && m.pressed:
		if x == m.lastX && y == m.lastY {
			return nil
		}
		m.lastX, m.lastY = x, y
		return &Intent{Type: IntentPointerMove, Action: MouseActionDrag, X: x, Y: y}

	case !left && m.pressed:
		m.pressed = false
		return &Intent{Type: IntentPointerUp, Action: MouseActionRelease, X: x, Y: y}
	}
	// Hover without a button held
	return nil
}
