package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/amatgil/uiuapp/catalog"
	"github.com/amatgil/uiuapp/config"
	"github.com/amatgil/uiuapp/constants"
	"github.com/amatgil/uiuapp/editor"
	"github.com/amatgil/uiuapp/gesture"
	"github.com/amatgil/uiuapp/input"
	"github.com/amatgil/uiuapp/keypad"
)

// View is everything the renderer needs for one frame
type View struct {
	Status     string
	Settings   config.Settings
	Entries    []editor.Entry
	Input      []catalog.Span
	Faces      []keypad.Face
	Overlay    keypad.Overlay
	PressedKey int // -1 when no key is held
	Panel      []string
}

// line is one row of scrollback text
type line struct {
	spans []catalog.Span
	fg    tcell.Color
	id    uuid.UUID
	input bool
}

// TerminalRenderer draws a View onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	layout Layout

	// Lines scrolled up from the newest entry
	scroll int

	// Scrollback rows of the last frame, keyed by screen row
	rows map[int]line
	// Settings panel rows of the last frame
	panelRows map[int]int
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{
		screen:    screen,
		layout:    NewLayout(w, h),
		rows:      make(map[int]line),
		panelRows: make(map[int]int),
	}
}

// Resize recomputes the layout from the current screen size
func (r *TerminalRenderer) Resize() {
	w, h := r.screen.Size()
	r.layout = NewLayout(w, h)
	r.screen.Sync()
}

func (r *TerminalRenderer) Layout() Layout { return r.layout }

// Scroll moves the scrollback view; positive scrolls toward newer entries
func (r *TerminalRenderer) Scroll(delta int) {
	r.scroll -= delta
	if r.scroll < 0 {
		r.scroll = 0
	}
}

// EntryAt returns the history input drawn at screen row y in the last frame
func (r *TerminalRenderer) EntryAt(x, y int) (uuid.UUID, bool) {
	if !r.layout.Scrollback.Contains(x, y) {
		return uuid.Nil, false
	}
	l, ok := r.rows[y]
	if !ok || !l.input {
		return uuid.Nil, false
	}
	return l.id, true
}

// PanelItemAt returns the settings panel row under (x, y) in the last frame
func (r *TerminalRenderer) PanelItemAt(x, y int) (int, bool) {
	if !r.layout.Scrollback.Contains(x, y) {
		return 0, false
	}
	i, ok := r.panelRows[y]
	return i, ok
}

// Draw renders v and shows the frame
func (r *TerminalRenderer) Draw(v View) {
	base := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbForeground)
	r.screen.SetStyle(base)
	r.screen.Clear()
	r.screen.HideCursor()

	r.drawTopBar(v, base)
	if v.Panel != nil {
		r.drawPanel(v.Panel, base)
	} else {
		r.drawScrollback(v, base)
	}
	r.drawInput(v.Input, base)
	r.drawSpecials(base)
	r.drawKeypad(v, base)
	if v.Overlay.Visible {
		r.drawOverlay(v.Overlay, base)
	}

	r.screen.Show()
}

func (r *TerminalRenderer) drawTopBar(v View, base tcell.Style) {
	bar := r.layout.TopBar
	if bar.Empty() {
		return
	}
	style := base.Background(RgbTopBarBg).Foreground(RgbTopBarText)
	r.fill(bar, style)

	settings, _ := r.buttonRect(ButtonSettings)
	r.centerText(settings, " "+ButtonSettings.Label()+" ", style.Bold(true))

	status := v.Status
	if sw := runewidth.StringWidth(status); sw < bar.W-settings.W {
		r.text(bar.X+bar.W-sw-1, bar.Y, status, style, bar.X+bar.W)
	}
}

func (r *TerminalRenderer) drawPanel(items []string, base tcell.Style) {
	area := r.layout.Scrollback
	r.panelRows = make(map[int]int)
	r.rows = make(map[int]line)
	for i, item := range items {
		y := area.Y + i
		if y >= area.Y+area.H {
			break
		}
		r.panelRows[y] = i
		r.text(area.X+1, y, item, base, area.X+area.W)
	}
}

func (r *TerminalRenderer) drawScrollback(v View, base tcell.Style) {
	area := r.layout.Scrollback
	r.rows = make(map[int]line)
	r.panelRows = make(map[int]int)
	if area.Empty() {
		return
	}

	lines := historyLines(v.Entries, v.Settings.StackOrdering)
	maxScroll := len(lines) - area.H
	if maxScroll < 0 {
		maxScroll = 0
	}
	if r.scroll > maxScroll {
		r.scroll = maxScroll
	}

	end := len(lines) - r.scroll
	start := end - area.H
	if start < 0 {
		start = 0
	}
	y := area.Y
	for _, l := range lines[start:end] {
		r.rows[y] = l
		x := area.X
		if !l.input {
			x += 2
		}
		r.spans(x, y, l.spans, base.Foreground(l.fg), area.X+area.W, l.input)
		y++
	}
}

// historyLines flattens entries into display rows
func historyLines(entries []editor.Entry, ordering config.StackOrdering) []line {
	var lines []line
	for _, e := range entries {
		switch e.Kind {
		case editor.EntryInput:
			spans := e.Spans
			fg := RgbForeground
			if len(spans) == 0 {
				text := e.Source
				if e.Err != "" {
					text = e.Err
					fg = RgbErrorText
				}
				spans = []catalog.Span{{Text: text}}
			}
			for _, ls := range splitLines(spans) {
				lines = append(lines, line{spans: ls, fg: fg, id: e.ID, input: true})
			}

		case editor.EntryOutput:
			for _, out := range editor.Outputs(e, ordering) {
				text := out.Text
				if out.Kind != editor.OutputText {
					text = fmt.Sprintf("[%s %d bytes]", out.Kind, len(out.Data))
				}
				for _, ls := range splitLines([]catalog.Span{{Text: text}}) {
					lines = append(lines, line{spans: ls, fg: RgbResultText, id: e.ID})
				}
			}
		}
	}
	return lines
}

// splitLines breaks spans at newlines; there is always at least one line
func splitLines(spans []catalog.Span) [][]catalog.Span {
	lines := [][]catalog.Span{nil}
	for _, s := range spans {
		parts := strings.Split(s.Text, "\n")
		for i, p := range parts {
			if i > 0 {
				lines = append(lines, nil)
			}
			if p != "" {
				lines[len(lines)-1] = append(lines[len(lines)-1], catalog.Span{Text: p, Class: s.Class})
			}
		}
	}
	return lines
}

func (r *TerminalRenderer) drawInput(spans []catalog.Span, base tcell.Style) {
	area := r.layout.Input
	if area.Empty() {
		return
	}
	style := base.Background(RgbInputBg)
	r.fill(area, style)

	lines := splitLines(spans)
	if len(lines) > area.H {
		lines = lines[len(lines)-area.H:]
	}
	for i, ls := range lines {
		x := r.spans(area.X+1, area.Y+i, ls, style, area.X+area.W, false)
		if i == len(lines)-1 && x < area.X+area.W {
			r.screen.SetContent(x, area.Y+i, '▏', nil, style.Foreground(RgbCursor))
		}
	}
}

func (r *TerminalRenderer) drawSpecials(base tcell.Style) {
	for _, b := range r.layout.Buttons {
		if b.Button == ButtonSettings || b.Rect.Empty() {
			continue
		}
		style := base.Background(RgbButtonBg)
		if b.Button == ButtonRun {
			style = style.Foreground(RgbCursor).Bold(true)
		}
		r.fill(b.Rect, style)
		r.centerText(b.Rect, b.Button.Label(), style)
	}
}

func (r *TerminalRenderer) drawKeypad(v View, base tcell.Style) {
	for _, f := range v.Faces {
		rect := r.layout.KeyRect(f.Index)
		bg := RgbKeyBg
		if f.Index == v.PressedKey {
			bg = RgbKeyPressed
		}
		style := base.Background(bg)
		// Leave a one column gutter between keys
		inner := Rect{X: rect.X, Y: rect.Y, W: rect.W - 1, H: rect.H}
		r.fill(inner, style)

		w := spansWidth(f.Spans)
		x := inner.X + (inner.W-w)/2
		r.spans(x, inner.Y+inner.H/2, f.Spans, style, inner.X+inner.W, true)

		if f.Alternates > 0 {
			r.screen.SetContent(inner.X+inner.W-1, inner.Y, '·', nil, style.Foreground(RgbDim))
		}
	}
}

// Arc marks are plotted inside the alternate glyphs, one sample every ringStep degrees
const (
	ringRadius = constants.RadialRadius * 0.6
	ringStep   = 5.0
)

func (r *TerminalRenderer) drawOverlay(ov keypad.Overlay, base tcell.Style) {
	r.drawRing(ov, base)

	ox, oy := input.PointCell(ov.Origin)
	r.screen.SetContent(ox, oy, '●', nil, base.Foreground(RgbCursor))

	for _, it := range ov.Items {
		x, y := input.PointCell(ov.Origin.Add(it.Offset))
		style := base.Background(RgbAlternateBg)
		if it.Highlighted {
			// Dark glyphs on the light selected arc
			style = style.Background(RgbSelectedBg).Foreground(RgbTopBarText)
		}
		x -= spansWidth(it.Spans) / 2
		r.screen.SetContent(x-1, y, ' ', nil, style)
		end := r.spans(x, y, it.Spans, style, r.layout.Width, !it.Highlighted)
		r.screen.SetContent(end, y, ' ', nil, style)
	}
}

// drawRing plots the arc segments around the press origin
// Arc i is centred on alternate i, which sits at i*360/n degrees clockwise from east
func (r *TerminalRenderer) drawRing(ov keypad.Overlay, base tcell.Style) {
	n := len(ov.Ring.Segments)
	if n == 0 {
		return
	}
	half := 180 / float64(n)
	for _, seg := range ov.Ring.Segments {
		mark, style := '·', base.Foreground(RgbAlternateBg)
		if seg.Selected {
			mark, style = '•', base.Foreground(RgbSelectedBg)
		}
		from := seg.From*360/100 - half
		to := seg.To*360/100 - half
		for a := from; a < to; a += ringStep {
			x, y := input.PointCell(ov.Origin.Add(gesture.Polar(ringRadius, a)))
			r.screen.SetContent(x, y, mark, nil, style)
		}
	}
}

// spans draws styled runs from (x, y) clipped at maxX; colored picks class colors
// It returns the column after the last cell drawn
func (r *TerminalRenderer) spans(x, y int, spans []catalog.Span, style tcell.Style, maxX int, colored bool) int {
	for _, s := range spans {
		st := style
		if colored && s.Class != "" {
			st = st.Foreground(ClassColor(s.Class))
		}
		x = r.text(x, y, s.Text, st, maxX)
	}
	return x
}

// text draws s grapheme by grapheme so combining marks stay on their base
func (r *TerminalRenderer) text(x, y int, s string, style tcell.Style, maxX int) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		w := runewidth.StringWidth(g.Str())
		if w == 0 {
			w = 1
		}
		if x+w > maxX {
			break
		}
		r.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}

func (r *TerminalRenderer) centerText(rect Rect, s string, style tcell.Style) {
	w := runewidth.StringWidth(s)
	x := rect.X + (rect.W-w)/2
	if x < rect.X {
		x = rect.X
	}
	r.text(x, rect.Y+rect.H/2, s, style, rect.X+rect.W)
}

func (r *TerminalRenderer) fill(rect Rect, style tcell.Style) {
	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (r *TerminalRenderer) buttonRect(b Button) (Rect, bool) {
	for _, br := range r.layout.Buttons {
		if br.Button == b {
			return br.Rect, true
		}
	}
	return Rect{}, false
}

func spansWidth(spans []catalog.Span) int {
	w := 0
	for _, s := range spans {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}
