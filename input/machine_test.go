package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amatgil/uiuapp/constants"
	"github.com/amatgil/uiuapp/gesture"
)

func TestKeyIntents(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Intent
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, '⍉', tcell.ModNone), Intent{Type: IntentText, Char: '⍉'}},
		{"semicolon", tcell.NewEventKey(tcell.KeyRune, ';', tcell.ModNone), Intent{Type: IntentText, Char: ';'}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Intent{Type: IntentNewline}},
		{"ctrl enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModCtrl), Intent{Type: IntentRun}},
		{"ctrl r", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), Intent{Type: IntentRun}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), Intent{Type: IntentBackspace}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Intent{Type: IntentQuit}},
		{"ctrl c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Intent{Type: IntentQuit}},
		{"ctrl l", tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl), Intent{Type: IntentClearHistory}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), Intent{Type: IntentText, Char: ' '}},
		{"page up", tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone), Intent{Type: IntentScroll, ScrollDir: ScrollUp}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			got := m.Process(tt.ev)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestUnboundSpecialKeyIgnored(t *testing.T) {
	m := NewMachine()
	assert.Nil(t, m.Process(tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone)))
}

func TestResizeAndInterrupt(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, &Intent{Type: IntentResize}, m.Process(tcell.NewEventResize(80, 24)))
	assert.Nil(t, m.Process(tcell.NewEventInterrupt(nil)))
}

func TestMousePressDragRelease(t *testing.T) {
	m := NewMachine()

	got := m.Process(tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone))
	require.NotNil(t, got)
	assert.Equal(t, Intent{Type: IntentPointerDown, Action: MouseActionPress, X: 3, Y: 4}, *got)
	assert.True(t, m.Pressed())

	assert.Nil(t, m.Process(tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone)), "no motion, no intent")

	got = m.Process(tcell.NewEventMouse(5, 4, tcell.Button1, tcell.ModNone))
	require.NotNil(t, got)
	assert.Equal(t, Intent{Type: IntentPointerMove, Action: MouseActionDrag, X: 5, Y: 4}, *got)

	got = m.Process(tcell.NewEventMouse(6, 2, tcell.ButtonNone, tcell.ModNone))
	require.NotNil(t, got)
	assert.Equal(t, Intent{Type: IntentPointerUp, Action: MouseActionRelease, X: 6, Y: 2}, *got)
	assert.False(t, m.Pressed())

	assert.Nil(t, m.Process(tcell.NewEventMouse(7, 2, tcell.ButtonNone, tcell.ModNone)), "hover")
}

func TestMouseWheel(t *testing.T) {
	m := NewMachine()
	got := m.Process(tcell.NewEventMouse(1, 1, tcell.WheelDown, tcell.ModNone))
	require.NotNil(t, got)
	assert.Equal(t, IntentScroll, got.Type)
	assert.Equal(t, ScrollDown, got.ScrollDir)
	assert.False(t, m.Pressed())
}

func TestReset(t *testing.T) {
	m := NewMachine()
	m.Process(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone))
	m.Reset()
	assert.False(t, m.Pressed())

	got := m.Process(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone))
	require.NotNil(t, got)
	assert.Equal(t, IntentPointerDown, got.Type)
}

func TestKeyConfigOverrides(t *testing.T) {
	data := []byte(`
keys:
  F5: run
  Ctrl-L: none
runes:
  "~": backspace
  space: insert_space
`)
	override, err := LoadKeyConfig(data)
	require.NoError(t, err)

	m := NewMachine()
	m.SetKeyTable(MergeKeyTable(DefaultKeyTable(), override))

	assert.Equal(t, IntentRun, m.Process(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)).Type)
	assert.Nil(t, m.Process(tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl)))
	assert.Equal(t, IntentBackspace, m.Process(tcell.NewEventKey(tcell.KeyRune, '~', tcell.ModNone)).Type)
	assert.Equal(t, &Intent{Type: IntentText, Char: 'a'}, m.Process(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone)))

	m.SetKeyTable(nil)
	assert.Equal(t, IntentClearHistory, m.Process(tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl)).Type)
}

func TestKeyConfigErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":     "keys:\n  Hyper-Q: run\n",
		"unknown action":  "keys:\n  F5: launch\n",
		"multi rune":      "runes:\n  ab: run\n",
		"unknown section": "modes:\n  a: run\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadKeyConfig([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestActionNamesResolve(t *testing.T) {
	for _, name := range ActionNames() {
		_, ok := ActionEntry(name)
		assert.True(t, ok, name)
	}
	_, ok := ActionEntry("  RUN ")
	assert.True(t, ok)
}

func TestCellGeometry(t *testing.T) {
	p := CellCenter(2, 3)
	assert.Equal(t, gesture.Point{X: 2.5 * constants.CellWidthPx, Y: 3.5 * constants.CellHeightPx}, p)

	x, y := PointCell(p)
	assert.Equal(t, 2, x)
	assert.Equal(t, 3, y)

	// One cell right and one down is steeper than 45 degrees on screen
	d := CellCenter(1, 1).Sub(CellCenter(0, 0))
	assert.Greater(t, d.Angle(), 45.0)
}
