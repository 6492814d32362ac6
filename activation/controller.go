package activation

import (
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/amatgil/uiuapp/catalog"
	"github.com/amatgil/uiuapp/constants"
	"github.com/amatgil/uiuapp/gesture"
	"github.com/amatgil/uiuapp/prim"
)

// Sink receives resolved glyph text, one call per emission
type Sink interface {
	Append(text string)
}

// Feedback is told about arming and emission, e.g. to play a sound
type Feedback interface {
	Armed()
	Emitted(text string)
}

// Options configures a Controller; zero fields take defaults
type Options struct {
	Delay    time.Duration
	DeadZone float64
	Policy   ArmPolicy
	Clock    Clock
	Provider prim.Provider
	Sink     Sink
	Feedback Feedback
	Logger   logrus.FieldLogger
}

// Controller arbitrates between a tap and a press-and-hold radial gesture
// It exclusively owns the gesture state and at most one pending activation timer
type Controller struct {
	mu       sync.Mutex
	state    gesture.State
	pending  Timer
	gen      uint64 // bumped on every start, release and cancel; stale timers compare against it
	down     bool
	delay    time.Duration
	deadZone float64
	policy   ArmPolicy
	clock    Clock
	provider prim.Provider
	sink     Sink
	feedback Feedback
	log      logrus.FieldLogger

	subMu   sync.Mutex
	subs    map[int]func(gesture.Snapshot)
	nextSub int
}

type discardSink struct{}

func (discardSink) Append(string) {}

type noFeedback struct{}

func (noFeedback) Armed()         {}
func (noFeedback) Emitted(string) {}

// NewController creates a controller in the idle state
func NewController(opts Options) *Controller {
	c := &Controller{
		delay:    opts.Delay,
		deadZone: opts.DeadZone,
		policy:   opts.Policy,
		clock:    opts.Clock,
		provider: opts.Provider,
		sink:     opts.Sink,
		feedback: opts.Feedback,
		log:      opts.Logger,
		subs:     make(map[int]func(gesture.Snapshot)),
	}
	if c.delay <= 0 {
		c.delay = constants.ActivationDelay
	}
	if c.deadZone <= 0 {
		c.deadZone = constants.DeadZoneRadius
	}
	if c.policy == 0 {
		c.policy = ArmOnDelay
	}
	if c.clock == nil {
		c.clock = NewSystemClock()
	}
	if c.provider == nil {
		c.provider = prim.Builtin()
	}
	if c.sink == nil {
		c.sink = discardSink{}
	}
	if c.feedback == nil {
		c.feedback = noFeedback{}
	}
	if c.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.log = l
	}
	return c
}

// PointerDown starts a gesture over cell at origin
// Any previous gesture is cancelled and its timer stopped before the new one starts
func (c *Controller) PointerDown(origin gesture.Point, cell catalog.KeypadCell) {
	c.mu.Lock()
	c.stopPending()
	if c.state.Gesturing() {
		c.log.WithField("gen", c.gen).Debug("gesture superseded by new press")
	}
	c.state.Start(origin, cell)
	c.gen++
	c.down = true

	if c.policy&ArmOnDelay != 0 && cell.NumAlternates() > 0 {
		gen := c.gen
		c.pending = c.clock.AfterFunc(c.delay, func() { c.fire(gen) })
	}
	c.log.WithFields(logrus.Fields{"gen": c.gen, "alternates": cell.NumAlternates()}).Debug("gesture started")
	snap := c.state.Snapshot()
	c.mu.Unlock()

	c.notify(snap)
}

// PointerMove tracks the pointer while it is down, armed or not
func (c *Controller) PointerMove(p gesture.Point) {
	c.mu.Lock()
	if !c.down {
		c.mu.Unlock()
		return
	}
	c.state.Update(p)

	armed := false
	if c.policy&ArmOnDrag != 0 && !c.state.Active() && c.state.ExceedsDeadZone(c.deadZone) {
		if armed = c.state.Arm(); armed {
			c.stopPending()
			c.log.WithField("gen", c.gen).Debug("armed by drag")
		}
	}
	snap := c.state.Snapshot()
	c.mu.Unlock()

	if armed {
		c.feedback.Armed()
	}
	c.notify(snap)
}

// fire is the deferred activation; it no-ops unless gen still names the live gesture
func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || !c.down || c.state.Active() {
		c.mu.Unlock()
		c.log.WithField("gen", gen).Debug("stale activation ignored")
		return
	}
	c.pending = nil
	c.state.Update(c.state.Current())
	armed := c.state.Arm()
	snap := c.state.Snapshot()
	c.mu.Unlock()

	if !armed {
		return
	}
	c.log.WithFields(logrus.Fields{"gen": gen, "selection": snap.Selection}).Debug("armed by delay")
	c.feedback.Armed()
	c.notify(snap)
}

// PointerUp ends the gesture, appends the resolved text to the sink and returns it
// The bool is false when no gesture was in progress
func (c *Controller) PointerUp() (string, bool) {
	c.mu.Lock()
	if !c.down {
		c.mu.Unlock()
		return "", false
	}
	c.stopPending()
	c.gen++
	g, ok := c.state.Resolve()
	armed := c.state.Active()
	selection := c.state.Selection()
	c.state.Reset()
	c.down = false
	snap := c.state.Snapshot()
	c.mu.Unlock()

	var text string
	if ok {
		text = catalog.Text(g, c.provider)
	}
	if text != "" {
		c.sink.Append(text)
		c.feedback.Emitted(text)
	}
	c.log.WithFields(logrus.Fields{"armed": armed, "selection": selection, "text": text}).Debug("gesture released")
	c.notify(snap)
	return text, ok
}

// Cancel discards the current gesture without emitting anything
func (c *Controller) Cancel() {
	c.mu.Lock()
	if !c.down && !c.state.Gesturing() {
		c.mu.Unlock()
		return
	}
	c.stopPending()
	c.gen++
	c.state.Reset()
	c.down = false
	snap := c.state.Snapshot()
	c.mu.Unlock()

	c.log.Debug("gesture cancelled")
	c.notify(snap)
}

// Snapshot returns a copy of the current gesture state
func (c *Controller) Snapshot() gesture.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Snapshot()
}

// Down reports whether a pointer is currently held
func (c *Controller) Down() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.down
}

// Subscribe registers fn to receive a snapshot after every state change
func (c *Controller) Subscribe(fn func(gesture.Snapshot)) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Controller) notify(snap gesture.Snapshot) {
	c.subMu.Lock()
	fns := make([]func(gesture.Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// stopPending must be called with mu held
func (c *Controller) stopPending() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}
