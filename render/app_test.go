package render

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amatgil/uiuapp/activation"
	"github.com/amatgil/uiuapp/config"
	"github.com/amatgil/uiuapp/editor"
	"github.com/amatgil/uiuapp/gesture"
	"github.com/amatgil/uiuapp/input"
)

const (
	screenW = 80
	screenH = 30
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(screenW, screenH)
	return s
}

type appFixture struct {
	app    *App
	screen tcell.SimulationScreen
	clock  *activation.MockClock
}

func newApp(t *testing.T, settings *config.Settings) *appFixture {
	t.Helper()
	scr := newScreen(t)
	clock := activation.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	session := editor.NewSession(editor.EchoEvaluator{}, nil, settings, nil)
	app := NewApp(Options{Screen: scr, Session: session, Clock: clock})
	t.Cleanup(app.Close)
	return &appFixture{app: app, screen: scr, clock: clock}
}

func (f *appFixture) key(k tcell.Key, r rune, mod tcell.ModMask) bool {
	return f.app.HandleEvent(tcell.NewEventKey(k, r, mod))
}

func (f *appFixture) typeText(s string) {
	for _, r := range s {
		f.key(tcell.KeyRune, r, tcell.ModNone)
	}
}

func (f *appFixture) press(x, y int) {
	f.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
}

func (f *appFixture) drag(x, y int) {
	f.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
}

func (f *appFixture) release(x, y int) {
	f.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

// keyCenter returns the screen cell at the middle of keypad face i
func (f *appFixture) keyCenter(i int) (int, int) {
	r := f.app.Renderer().Layout().KeyRect(i)
	return r.X + r.W/2, r.Y + r.H/2
}

func (f *appFixture) buttonCenter(t *testing.T, b Button) (int, int) {
	t.Helper()
	for _, br := range f.app.Renderer().Layout().Buttons {
		if br.Button == b {
			return br.Rect.X + br.Rect.W/2, br.Rect.Y
		}
	}
	t.Fatalf("button %d not laid out", b)
	return 0, 0
}

func (f *appFixture) cell(x, y int) rune {
	cells, w, _ := f.screen.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return 0
	}
	return c.Runes[0]
}

func TestTapEmitsDefaultGlyph(t *testing.T) {
	f := newApp(t, nil)

	x, y := f.keyCenter(10)
	f.press(x, y)
	f.release(x, y)

	assert.Equal(t, "+", f.app.Session().Input.String())
	assert.False(t, f.app.Controller().Down())
}

func TestHoldAndDragSelectsAlternate(t *testing.T) {
	f := newApp(t, nil)

	x, y := f.keyCenter(0)
	f.press(x, y)
	assert.Equal(t, 1, f.clock.Pending())

	f.clock.Advance(500 * time.Millisecond)
	v := f.app.View()
	require.True(t, v.Overlay.Visible)
	assert.Len(t, v.Overlay.Items, 6)
	assert.Equal(t, 0, v.PressedKey)

	f.app.Draw()
	assert.Equal(t, '●', f.cell(x, y))

	// Due east selects the first alternate
	f.drag(x+10, y)
	f.release(x+10, y)

	assert.Equal(t, "˙", f.app.Session().Input.String())
	assert.False(t, f.app.View().Overlay.Visible)
	assert.Equal(t, -1, f.app.View().PressedKey)
}

func (f *appFixture) style(x, y int) tcell.Style {
	cells, w, _ := f.screen.GetContents()
	return cells[y*w+x].Style
}

func TestArmedOverlayDrawsSegmentRing(t *testing.T) {
	f := newApp(t, nil)

	x, y := f.keyCenter(0)
	f.press(x, y)
	f.clock.Advance(500 * time.Millisecond)
	f.drag(x+10, y)
	f.app.Draw()

	ov := f.app.View().Overlay
	require.True(t, ov.Visible)
	require.Len(t, ov.Ring.Segments, 6)
	assert.True(t, ov.Ring.Segments[0].Selected)

	// Due east lies on the selected arc, due west on an idle one
	ex, ey := input.PointCell(ov.Origin.Add(gesture.Polar(ringRadius, 0)))
	assert.Equal(t, '•', f.cell(ex, ey))
	fg, _, _ := f.style(ex, ey).Decompose()
	assert.Equal(t, RgbSelectedBg, fg)

	wx, wy := input.PointCell(ov.Origin.Add(gesture.Polar(ringRadius, 180)))
	assert.Equal(t, '·', f.cell(wx, wy))
	fg, _, _ = f.style(wx, wy).Decompose()
	assert.Equal(t, RgbAlternateBg, fg)

	f.release(x+10, y)
	f.app.Draw()
	assert.NotEqual(t, '•', f.cell(ex, ey))
}

func TestReleaseBeforeDelayIsTap(t *testing.T) {
	f := newApp(t, nil)

	x, y := f.keyCenter(0)
	f.press(x, y)
	f.clock.Advance(200 * time.Millisecond)
	f.drag(x+10, y)
	f.release(x+10, y)
	f.clock.Advance(time.Second)

	assert.Equal(t, "∘", f.app.Session().Input.String())
	assert.False(t, f.app.Controller().Snapshot().Active)
}

func TestKeyboardEditing(t *testing.T) {
	f := newApp(t, nil)

	f.typeText("1+2")
	f.key(tcell.KeyEnter, 0, tcell.ModNone)
	f.typeText("x")
	f.key(tcell.KeyBackspace2, 0, tcell.ModNone)
	assert.Equal(t, "1+2\n", f.app.Session().Input.String())

	f.key(tcell.KeyCtrlU, 0, tcell.ModCtrl)
	assert.True(t, f.app.Session().Input.IsEmpty())

	assert.True(t, f.key(tcell.KeyEscape, 0, tcell.ModNone))
}

func TestSpecialButtons(t *testing.T) {
	f := newApp(t, nil)
	in := f.app.Session().Input

	f.typeText("1")
	x, y := f.buttonCenter(t, ButtonSemicolon)
	f.press(x, y)
	f.release(x, y)
	assert.Equal(t, "1;", in.String())

	x, y = f.buttonCenter(t, ButtonReturn)
	f.press(x, y)
	f.release(x, y)
	assert.Equal(t, "1;\n", in.String())

	x, y = f.buttonCenter(t, ButtonBackspace)
	f.press(x, y)
	f.release(x, y)
	assert.Equal(t, "1;", in.String())

	x, y = f.buttonCenter(t, ButtonClearInput)
	f.press(x, y)
	f.release(x, y)
	assert.True(t, in.IsEmpty())

	// Buttons never start a gesture
	assert.False(t, f.app.Controller().Down())
}

func TestRunAndRecall(t *testing.T) {
	f := newApp(t, nil)
	s := f.app.Session()

	f.typeText("42")
	f.key(tcell.KeyCtrlR, 0, tcell.ModCtrl)
	f.app.Wait()

	require.Equal(t, 2, s.History.Len())
	assert.False(t, f.app.Running())
	assert.Equal(t, "42", s.Input.String(), "input kept when clean-on-run is off")

	f.key(tcell.KeyCtrlU, 0, tcell.ModCtrl)
	f.app.Draw()

	area := f.app.Renderer().Layout().Scrollback
	assert.Equal(t, '4', f.cell(area.X, area.Y))
	assert.Equal(t, '4', f.cell(area.X+2, area.Y+1))

	// Clicking the output line does nothing; the input line recalls
	f.press(area.X+2, area.Y+1)
	f.release(area.X+2, area.Y+1)
	assert.True(t, s.Input.IsEmpty())

	f.press(area.X, area.Y)
	f.release(area.X, area.Y)
	assert.Equal(t, "42", s.Input.String())

	x, y := f.buttonCenter(t, ButtonClearHistory)
	f.press(x, y)
	f.release(x, y)
	assert.Equal(t, 0, s.History.Len())
}

func TestRunClearsInputWhenConfigured(t *testing.T) {
	settings := config.Default()
	settings.CleanInputOnRun = true
	f := newApp(t, settings)

	f.typeText("1")
	x, y := f.buttonCenter(t, ButtonRun)
	f.press(x, y)
	f.release(x, y)
	f.app.Wait()

	assert.True(t, f.app.Session().Input.IsEmpty())
	assert.Equal(t, 2, f.app.Session().History.Len())
}

func TestSettingsPanel(t *testing.T) {
	scr := newScreen(t)
	var changed []config.Settings
	app := NewApp(Options{
		Screen:            scr,
		OnSettingsChanged: func(s config.Settings) { changed = append(changed, s) },
	})
	t.Cleanup(app.Close)

	app.HandleEvent(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(1, 0, tcell.ButtonNone, tcell.ModNone))
	v := app.View()
	require.NotNil(t, v.Panel)
	app.Draw()

	area := app.Renderer().Layout().Scrollback
	click := func(row int) {
		app.HandleEvent(tcell.NewEventMouse(area.X+2, area.Y+row, tcell.Button1, tcell.ModNone))
		app.HandleEvent(tcell.NewEventMouse(area.X+2, area.Y+row, tcell.ButtonNone, tcell.ModNone))
	}

	click(panelCleanInput)
	click(panelStackOrdering)
	click(panelSound)
	click(panelArmPolicy) // read-only

	require.Len(t, changed, 3)
	final := app.Session().Settings()
	assert.True(t, final.CleanInputOnRun)
	assert.Equal(t, config.TopAtTop, final.StackOrdering)
	assert.False(t, final.Sound)

	// Closing the panel brings the history back
	app.HandleEvent(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModNone))
	assert.Nil(t, app.View().Panel)
}

func TestResizeCancelsGesture(t *testing.T) {
	f := newApp(t, nil)

	x, y := f.keyCenter(0)
	f.press(x, y)
	require.True(t, f.app.Controller().Down())

	f.screen.SetSize(100, 40)
	f.app.HandleEvent(tcell.NewEventResize(100, 40))

	assert.False(t, f.app.Controller().Down())
	assert.Equal(t, 0, f.clock.Pending())
	assert.Equal(t, 100, f.app.Renderer().Layout().Width)

	f.release(x, y)
	assert.True(t, f.app.Session().Input.IsEmpty())
}

func TestInputIsDrawn(t *testing.T) {
	f := newApp(t, nil)
	f.typeText("+1")
	f.app.Draw()

	area := f.app.Renderer().Layout().Input
	assert.Equal(t, '+', f.cell(area.X+1, area.Y))
	assert.Equal(t, '1', f.cell(area.X+2, area.Y))
	assert.Equal(t, '▏', f.cell(area.X+3, area.Y))
}
