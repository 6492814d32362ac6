package render

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/amatgil/uiuapp/activation"
	"github.com/amatgil/uiuapp/audio"
	"github.com/amatgil/uiuapp/catalog"
	"github.com/amatgil/uiuapp/config"
	"github.com/amatgil/uiuapp/constants"
	"github.com/amatgil/uiuapp/core"
	"github.com/amatgil/uiuapp/editor"
	"github.com/amatgil/uiuapp/gesture"
	"github.com/amatgil/uiuapp/input"
	"github.com/amatgil/uiuapp/keypad"
	"github.com/amatgil/uiuapp/prim"
)

// Options configures an App; only Screen is required
type Options struct {
	Screen      tcell.Screen
	Catalog     *catalog.Catalog
	Provider    prim.Provider
	Session     *editor.Session
	Highlighter editor.Highlighter
	Sound       *audio.SoundManager
	Clock       activation.Clock
	KeyTable    *input.KeyTable
	Logger      logrus.FieldLogger

	// OnSettingsChanged is called after the settings panel changes a value
	OnSettingsChanged func(config.Settings)
}

// runFinished is posted when a background evaluation returns
type runFinished struct {
	err error
}

// pressTarget is what the held pointer went down on
type pressTarget uint8

const (
	targetNone pressTarget = iota
	targetKey
	targetOther
)

// App is the terminal front-end: it turns tcell events into gestures and
// editor actions and redraws the screen
type App struct {
	screen   tcell.Screen
	renderer *TerminalRenderer
	machine  *input.Machine
	ctrl     *activation.Controller
	session  *editor.Session
	hl       editor.Highlighter
	sound    *audio.SoundManager
	provider prim.Provider
	faces    []keypad.Face
	log      logrus.FieldLogger

	onSettings func(config.Settings)

	ctx         context.Context
	unsubscribe func()

	// Event loop state
	target     pressTarget
	pressedKey int
	showPanel  bool
	dirty      bool

	running atomic.Bool
	lastErr atomic.Value // string
	wg      sync.WaitGroup
}

// NewApp wires the controller, the session and the renderer onto an initialized screen
func NewApp(opts Options) *App {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	pv := opts.Provider
	if pv == nil {
		pv = prim.Builtin()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	session := opts.Session
	if session == nil {
		session = editor.NewSession(nil, nil, nil, log)
	}
	hl := opts.Highlighter
	if hl == nil {
		hl = editor.NewGlyphHighlighter(nil)
	}

	a := &App{
		screen:     opts.Screen,
		renderer:   NewTerminalRenderer(opts.Screen),
		machine:    input.NewMachine(),
		session:    session,
		hl:         hl,
		sound:      opts.Sound,
		provider:   pv,
		faces:      keypad.Faces(cat, pv),
		log:        log,
		onSettings: opts.OnSettingsChanged,
		ctx:        context.Background(),
		pressedKey: -1,
		dirty:      true,
	}
	a.machine.SetKeyTable(opts.KeyTable)
	a.lastErr.Store("")

	settings := session.Settings()
	ctrlOpts := activation.Options{
		Delay:    settings.ActivationDelay,
		DeadZone: settings.DeadZoneRadius,
		Policy:   settings.Policy(),
		Clock:    opts.Clock,
		Provider: pv,
		Sink:     session.Input,
		Logger:   log.WithField("component", "activation"),
	}
	// A nil *SoundManager must not become a non-nil interface
	if opts.Sound != nil {
		opts.Sound.SetEnabled(settings.Sound)
		ctrlOpts.Feedback = opts.Sound
	}
	a.ctrl = activation.NewController(ctrlOpts)

	a.unsubscribe = a.ctrl.Subscribe(func(snap gesture.Snapshot) {
		a.post(snap)
	})

	core.RegisterCrashScreen(opts.Screen)
	return a
}

// Controller exposes the gesture controller
func (a *App) Controller() *activation.Controller { return a.ctrl }

// Session exposes the editor session
func (a *App) Session() *editor.Session { return a.session }

// Renderer exposes the renderer, mainly for hit testing
func (a *App) Renderer() *TerminalRenderer { return a.renderer }

// Running reports whether an evaluation is in flight
func (a *App) Running() bool { return a.running.Load() }

// Wait blocks until background evaluations return
func (a *App) Wait() { a.wg.Wait() }

func (a *App) post(data any) {
	if err := a.screen.PostEvent(tcell.NewEventInterrupt(data)); err != nil {
		a.log.WithError(err).Debug("redraw request dropped")
	}
}

// Run processes events until quit or ctx is done
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx

	ticker := time.NewTicker(constants.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if a.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			if a.dirty {
				a.Draw()
			}
		}
	}
}

// Close cancels any gesture and releases the screen and audio
func (a *App) Close() {
	a.unsubscribe()
	a.ctrl.Cancel()
	if a.sound != nil {
		a.sound.Cleanup()
	}
	core.RegisterCrashScreen(nil)
	a.screen.Fini()
}

// HandleEvent applies one event; it returns true when the app should quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	if ie, ok := ev.(*tcell.EventInterrupt); ok {
		if rf, ok := ie.Data().(runFinished); ok && rf.err != nil {
			a.log.WithError(rf.err).Debug("evaluation failed")
		}
		a.dirty = true
		return false
	}

	intent := a.machine.Process(ev)
	if intent == nil {
		return false
	}
	a.dirty = true

	switch intent.Type {
	case input.IntentQuit:
		return true

	case input.IntentResize:
		a.ctrl.Cancel()
		a.machine.Reset()
		a.release()
		a.renderer.Resize()

	case input.IntentToggleSound:
		a.toggleSound()

	case input.IntentToggleCleanInput:
		a.changeSettings(func(s *config.Settings) { s.CleanInputOnRun = !s.CleanInputOnRun })

	case input.IntentText:
		a.session.Input.Append(string(intent.Char))

	case input.IntentNewline:
		a.session.Input.Newline()

	case input.IntentBackspace:
		a.session.Input.Backspace()

	case input.IntentRun:
		a.runInput()

	case input.IntentClearInput:
		a.session.Input.Clear()

	case input.IntentClearHistory:
		a.session.ClearHistory()

	case input.IntentScroll:
		a.renderer.Scroll(int(intent.ScrollDir) * constants.ScrollStep)

	case input.IntentPointerDown:
		a.pointerDown(intent.X, intent.Y)

	case input.IntentPointerMove:
		if a.target == targetKey {
			a.ctrl.PointerMove(input.CellCenter(intent.X, intent.Y))
		}

	case input.IntentPointerUp:
		if a.target == targetKey {
			a.ctrl.PointerMove(input.CellCenter(intent.X, intent.Y))
			a.ctrl.PointerUp()
		}
		a.release()
	}
	return false
}

func (a *App) release() {
	a.target = targetNone
	a.pressedKey = -1
}

func (a *App) pointerDown(x, y int) {
	layout := a.renderer.Layout()

	if i, ok := layout.KeyAt(x, y); ok && i < len(a.faces) {
		a.target = targetKey
		a.pressedKey = i
		a.ctrl.PointerDown(input.CellCenter(x, y), a.faces[i].Cell)
		return
	}

	a.target = targetOther
	if b, ok := layout.ButtonAt(x, y); ok {
		a.press(b)
		return
	}
	if a.showPanel {
		if i, ok := a.renderer.PanelItemAt(x, y); ok {
			a.togglePanelItem(i)
		}
		return
	}
	if id, ok := a.renderer.EntryAt(x, y); ok {
		a.session.Recall(id)
	}
}

// press performs a special button action
func (a *App) press(b Button) {
	switch b {
	case ButtonSettings:
		a.showPanel = !a.showPanel
	case ButtonReturn:
		a.session.Input.Newline()
	case ButtonClearHistory:
		a.session.ClearHistory()
	case ButtonClearInput:
		a.session.Input.Clear()
	case ButtonSemicolon:
		a.session.Input.Append(constants.LabelSemicolon)
	case ButtonBackspace:
		a.session.Input.Backspace()
	case ButtonRun:
		a.runInput()
	}
}

// runInput evaluates in the background; a second run while one is in flight is ignored
func (a *App) runInput() {
	if !a.running.CompareAndSwap(false, true) {
		a.log.Debug("run ignored, evaluation in flight")
		return
	}
	a.wg.Add(1)
	ctx := a.ctx
	core.Go(func() {
		defer a.wg.Done()
		err := a.session.Run(ctx)
		if err != nil {
			a.lastErr.Store(err.Error())
		} else {
			a.lastErr.Store("")
		}
		a.running.Store(false)
		a.post(runFinished{err: err})
	})
}

func (a *App) toggleSound() {
	a.changeSettings(func(s *config.Settings) { s.Sound = !s.Sound })
}

func (a *App) changeSettings(fn func(*config.Settings)) {
	a.session.UpdateSettings(fn)
	s := a.session.Settings()
	if a.sound != nil {
		if s.Sound && !a.sound.Initialized() {
			if err := a.sound.Initialize(); err != nil {
				a.log.WithError(err).Warn("audio initialization failed")
			}
		}
		a.sound.SetEnabled(s.Sound)
	}
	a.log.WithFields(logrus.Fields{
		"clean_input_on_run": s.CleanInputOnRun,
		"stack_ordering":     s.StackOrdering,
		"sound":              s.Sound,
	}).Debug("settings changed")
	if a.onSettings != nil {
		a.onSettings(s)
	}
}

// Settings panel rows; only the first three are editable
const (
	panelCleanInput = iota
	panelStackOrdering
	panelSound
	panelArmPolicy
	panelDelay
)

func (a *App) togglePanelItem(i int) {
	switch i {
	case panelCleanInput:
		a.changeSettings(func(s *config.Settings) { s.CleanInputOnRun = !s.CleanInputOnRun })
	case panelStackOrdering:
		a.changeSettings(func(s *config.Settings) {
			if s.StackOrdering == config.BottomAtTop {
				s.StackOrdering = config.TopAtTop
			} else {
				s.StackOrdering = config.BottomAtTop
			}
		})
	case panelSound:
		a.toggleSound()
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func panelLines(s config.Settings) []string {
	return []string{
		panelCleanInput:    fmt.Sprintf("[%s] Clean input on run", onOff(s.CleanInputOnRun)),
		panelStackOrdering: fmt.Sprintf("[%s] Stack ordering", s.StackOrdering),
		panelSound:         fmt.Sprintf("[%s] Sound", onOff(s.Sound)),
		panelArmPolicy:     fmt.Sprintf("Arm policy: %s", s.Policy()),
		panelDelay:         fmt.Sprintf("Activation delay: %s", s.ActivationDelay),
	}
}

func (a *App) status(s config.Settings) string {
	if a.running.Load() {
		return "running..."
	}
	if msg, _ := a.lastErr.Load().(string); msg != "" {
		return "error: " + msg
	}
	return fmt.Sprintf("sound:%s clean:%s", onOff(s.Sound), onOff(s.CleanInputOnRun))
}

// View assembles the current frame
func (a *App) View() View {
	settings := a.session.Settings()

	src := a.session.Input.String()
	spans, err := a.hl.Highlight(src)
	if err != nil {
		spans = []catalog.Span{{Text: src}}
	}

	v := View{
		Status:     a.status(settings),
		Settings:   settings,
		Entries:    a.session.History.Entries(),
		Input:      spans,
		Faces:      a.faces,
		Overlay:    keypad.Project(a.ctrl.Snapshot(), a.provider),
		PressedKey: a.pressedKey,
	}
	if a.showPanel {
		v.Panel = panelLines(settings)
	}
	return v
}

// Draw renders the current frame
func (a *App) Draw() {
	a.renderer.Draw(a.View())
	a.dirty = false
}
