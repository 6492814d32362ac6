package render

import (
	"github.com/amatgil/uiuapp/constants"
)

// Rect is a screen region in cells
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Button identifies a non-glyph button
type Button uint8

const (
	ButtonNone Button = iota
	ButtonSettings
	ButtonReturn
	ButtonClearHistory
	ButtonClearInput
	ButtonSemicolon
	ButtonBackspace
	ButtonRun
)

var buttonLabels = map[Button]string{
	ButtonSettings:     constants.LabelSettings,
	ButtonReturn:       constants.LabelReturn,
	ButtonClearHistory: constants.LabelClearHistory,
	ButtonClearInput:   constants.LabelClearInput,
	ButtonSemicolon:    constants.LabelSemicolon,
	ButtonBackspace:    constants.LabelBackspace,
	ButtonRun:          constants.LabelRun,
}

func (b Button) Label() string { return buttonLabels[b] }

// specialOrder is the left-to-right order of the special bar
var specialOrder = []Button{
	ButtonReturn, ButtonClearHistory, ButtonClearInput, ButtonSemicolon, ButtonBackspace, ButtonRun,
}

// ButtonRect places a button on screen
type ButtonRect struct {
	Button Button
	Rect   Rect
}

// Layout splits the screen, top to bottom: bar, scrollback, input, specials, keypad
type Layout struct {
	Width, Height int

	TopBar     Rect
	Scrollback Rect
	Input      Rect
	Specials   Rect
	Keypad     Rect
	Buttons    []ButtonRect
}

// NewLayout computes regions for a w x h screen
// Regions shrink from the scrollback first; a tiny screen may leave some empty
func NewLayout(w, h int) Layout {
	l := Layout{Width: w, Height: h}

	kw := constants.KeypadCols * constants.KeyWidth
	kh := constants.KeypadRows * constants.KeyHeight
	kx := (w - kw) / 2
	if kx < 0 {
		kx = 0
	}

	y := h - kh
	l.Keypad = Rect{X: kx, Y: y, W: kw, H: kh}

	y -= constants.SpecialBarHeight
	l.Specials = Rect{X: 0, Y: y, W: w, H: constants.SpecialBarHeight}

	y -= constants.InputHeight
	l.Input = Rect{X: 0, Y: y, W: w, H: constants.InputHeight}

	l.TopBar = Rect{X: 0, Y: 0, W: w, H: constants.TopBarHeight}

	top := constants.TopBarHeight
	l.Scrollback = Rect{X: 0, Y: top, W: w, H: y - top}
	if l.Scrollback.H < 0 {
		l.Scrollback.H = 0
	}

	settingsW := len(constants.LabelSettings) + 2
	l.Buttons = append(l.Buttons, ButtonRect{ButtonSettings, Rect{X: 0, Y: 0, W: settingsW, H: constants.TopBarHeight}})

	n := len(specialOrder)
	if n > 0 && w > 0 {
		for i, b := range specialOrder {
			x0 := i * w / n
			x1 := (i + 1) * w / n
			l.Buttons = append(l.Buttons, ButtonRect{b, Rect{X: x0, Y: l.Specials.Y, W: x1 - x0, H: l.Specials.H}})
		}
	}
	return l
}

// KeyRect returns the screen area of keypad cell i (row-major)
func (l Layout) KeyRect(i int) Rect {
	row, col := i/constants.KeypadCols, i%constants.KeypadCols
	return Rect{
		X: l.Keypad.X + col*constants.KeyWidth,
		Y: l.Keypad.Y + row*constants.KeyHeight,
		W: constants.KeyWidth,
		H: constants.KeyHeight,
	}
}

// KeyAt returns the keypad cell index under (x, y)
func (l Layout) KeyAt(x, y int) (int, bool) {
	if !l.Keypad.Contains(x, y) {
		return 0, false
	}
	col := (x - l.Keypad.X) / constants.KeyWidth
	row := (y - l.Keypad.Y) / constants.KeyHeight
	return row*constants.KeypadCols + col, true
}

// ButtonAt returns the special button under (x, y)
func (l Layout) ButtonAt(x, y int) (Button, bool) {
	for _, b := range l.Buttons {
		if b.Rect.Contains(x, y) {
			return b.Button, true
		}
	}
	return ButtonNone, false
}
