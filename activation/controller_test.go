package activation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amatgil/uiuapp/catalog"
	"github.com/amatgil/uiuapp/gesture"
	"github.com/amatgil/uiuapp/prim"
)

type recordingSink struct {
	mu    sync.Mutex
	calls []string
}

func (s *recordingSink) Append(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, text)
}

func (s *recordingSink) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

type countingFeedback struct {
	armed   int
	emitted []string
}

func (f *countingFeedback) Armed()              { f.armed++ }
func (f *countingFeedback) Emitted(text string) { f.emitted = append(f.emitted, text) }

// leakyClock hands out timers whose Stop never prevents the callback, so tests can fire late
type leakyClock struct {
	fns []func()
}

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return true }

func (l *leakyClock) Now() time.Time { return time.Time{} }
func (l *leakyClock) AfterFunc(_ time.Duration, f func()) Timer {
	l.fns = append(l.fns, f)
	return leakyTimer{}
}

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func literalCell(t *testing.T, texts ...string) catalog.KeypadCell {
	t.Helper()
	glyphs := make([]catalog.GlyphCell, len(texts))
	for i, s := range texts {
		glyphs[i] = catalog.Literal{Text: s}
	}
	cell, err := catalog.NewKeypadCell(glyphs...)
	require.NoError(t, err)
	return cell
}

type fixture struct {
	clock    *MockClock
	sink     *recordingSink
	feedback *countingFeedback
	ctrl     *Controller
}

func newFixture(policy ArmPolicy) *fixture {
	f := &fixture{
		clock:    NewMockClock(epoch),
		sink:     &recordingSink{},
		feedback: &countingFeedback{},
	}
	f.ctrl = NewController(Options{
		Delay:    500 * time.Millisecond,
		DeadZone: 30,
		Policy:   policy,
		Clock:    f.clock,
		Provider: prim.Builtin(),
		Sink:     f.sink,
		Feedback: f.feedback,
	})
	return f
}

func TestTapEmitsDefault(t *testing.T) {
	f := newFixture(ArmOnDelay)
	f.ctrl.PointerDown(gesture.Point{X: 10, Y: 10}, literalCell(t, "A", "B", "C"))

	text, ok := f.ctrl.PointerUp()
	require.True(t, ok)
	assert.Equal(t, "A", text)
	assert.Equal(t, []string{"A"}, f.sink.Calls())
	assert.Zero(t, f.clock.Pending())
	assert.Equal(t, gesture.PhaseIdle, f.ctrl.Snapshot().Phase)
}

func TestHoldArmsAfterDelay(t *testing.T) {
	f := newFixture(ArmOnDelay)
	origin := gesture.Point{X: 100, Y: 100}
	f.ctrl.PointerDown(origin, literalCell(t, "A", "B", "C", "D", "E"))

	f.clock.Advance(499 * time.Millisecond)
	assert.False(t, f.ctrl.Snapshot().Active)

	f.clock.Advance(time.Millisecond)
	assert.True(t, f.ctrl.Snapshot().Active)
	assert.Equal(t, 1, f.feedback.armed)

	f.ctrl.PointerMove(origin.Add(gesture.Polar(50, 91)))
	text, ok := f.ctrl.PointerUp()
	require.True(t, ok)
	assert.Equal(t, "C", text)
	assert.Equal(t, []string{"C"}, f.sink.Calls())
}

func TestMovesBeforeArmingAreTracked(t *testing.T) {
	f := newFixture(ArmOnDelay)
	origin := gesture.Point{X: 100, Y: 100}
	f.ctrl.PointerDown(origin, literalCell(t, "A", "B", "C", "D", "E"))

	f.ctrl.PointerMove(origin.Add(gesture.Polar(50, 180)))
	snap := f.ctrl.Snapshot()
	assert.False(t, snap.Active)
	assert.Equal(t, 2, snap.Selection)

	f.clock.Advance(500 * time.Millisecond)
	snap = f.ctrl.Snapshot()
	assert.True(t, snap.Active)
	assert.Equal(t, 2, snap.Highlight.Selected())

	text, _ := f.ctrl.PointerUp()
	assert.Equal(t, "D", text)
}

func TestReleaseBeforeDelayCancelsActivation(t *testing.T) {
	f := newFixture(ArmOnDelay)
	f.ctrl.PointerDown(gesture.Point{X: 1, Y: 1}, literalCell(t, "A", "B"))
	f.clock.Advance(200 * time.Millisecond)

	text, _ := f.ctrl.PointerUp()
	assert.Equal(t, "A", text)
	assert.Zero(t, f.clock.Pending())

	f.clock.Advance(time.Second)
	assert.False(t, f.ctrl.Snapshot().Active)
	assert.Zero(t, f.feedback.armed)
	assert.Equal(t, []string{"A"}, f.sink.Calls())
}

func TestLateFireAfterReleaseIsIgnored(t *testing.T) {
	clock := &leakyClock{}
	sink := &recordingSink{}
	fb := &countingFeedback{}
	ctrl := NewController(Options{Clock: clock, Sink: sink, Feedback: fb})

	ctrl.PointerDown(gesture.Point{}, literalCell(t, "A", "B", "C"))
	ctrl.PointerUp()
	require.Len(t, clock.fns, 1)

	clock.fns[0]()

	snap := ctrl.Snapshot()
	assert.False(t, snap.Active)
	assert.Equal(t, gesture.PhaseIdle, snap.Phase)
	assert.Zero(t, fb.armed)
	assert.Equal(t, []string{"A"}, sink.Calls())
}

func TestLateFireDoesNotArmNextGesture(t *testing.T) {
	clock := &leakyClock{}
	ctrl := NewController(Options{Clock: clock})

	ctrl.PointerDown(gesture.Point{}, literalCell(t, "A", "B"))
	ctrl.PointerUp()
	ctrl.PointerDown(gesture.Point{X: 40}, literalCell(t, "X", "Y"))
	require.Len(t, clock.fns, 2)

	clock.fns[0]()
	assert.False(t, ctrl.Snapshot().Active, "timer of the first gesture must not arm the second")

	clock.fns[1]()
	assert.True(t, ctrl.Snapshot().Active)
}

func TestNewPressCancelsPriorTimer(t *testing.T) {
	f := newFixture(ArmOnDelay)
	f.ctrl.PointerDown(gesture.Point{}, literalCell(t, "A", "B"))
	f.clock.Advance(300 * time.Millisecond)
	f.ctrl.PointerDown(gesture.Point{X: 50}, literalCell(t, "X", "Y"))
	assert.Equal(t, 1, f.clock.Pending())

	f.clock.Advance(300 * time.Millisecond)
	assert.False(t, f.ctrl.Snapshot().Active)

	f.clock.Advance(200 * time.Millisecond)
	snap := f.ctrl.Snapshot()
	assert.True(t, snap.Active)
	def := snap.Cell.Default()
	assert.Equal(t, catalog.Literal{Text: "X"}, def)
	assert.Empty(t, f.sink.Calls())
}

func TestIdiomEmittedInOneCall(t *testing.T) {
	f := newFixture(ArmOnDelay)
	cell, err := catalog.NewKeypadCell(catalog.NewIdiom(prim.Sub, prim.By, prim.Not))
	require.NoError(t, err)

	f.ctrl.PointerDown(gesture.Point{}, cell)
	text, _ := f.ctrl.PointerUp()

	assert.Equal(t, "-⊸¬", text)
	assert.Equal(t, []string{"-⊸¬"}, f.sink.Calls())
}

func TestLiteralPassthroughAndExperimental(t *testing.T) {
	f := newFixture(ArmOnDelay)

	f.ctrl.PointerDown(gesture.Point{}, literalCell(t, "0", "1"))
	text, _ := f.ctrl.PointerUp()
	assert.Equal(t, "0", text)

	cell, err := catalog.NewKeypadCell(catalog.Experimental())
	require.NoError(t, err)
	f.ctrl.PointerDown(gesture.Point{}, cell)
	text, ok := f.ctrl.PointerUp()
	assert.True(t, ok)
	assert.Empty(t, text)

	assert.Equal(t, []string{"0"}, f.sink.Calls())
	assert.Equal(t, []string{"0"}, f.feedback.emitted)
}

func TestCellWithoutAlternatesNeverArms(t *testing.T) {
	f := newFixture(ArmOnBoth)
	f.ctrl.PointerDown(gesture.Point{}, literalCell(t, "A"))
	assert.Zero(t, f.clock.Pending())

	f.ctrl.PointerMove(gesture.Point{X: 200})
	f.clock.Advance(time.Second)
	assert.False(t, f.ctrl.Snapshot().Active)

	text, _ := f.ctrl.PointerUp()
	assert.Equal(t, "A", text)
}

func TestDragPolicyArmsOutsideDeadZone(t *testing.T) {
	f := newFixture(ArmOnDrag)
	f.ctrl.PointerDown(gesture.Point{}, literalCell(t, "A", "B", "C", "D", "E"))
	assert.Zero(t, f.clock.Pending(), "drag policy schedules no timer")

	f.ctrl.PointerMove(gesture.Point{X: 0, Y: 20})
	assert.False(t, f.ctrl.Snapshot().Active)

	f.ctrl.PointerMove(gesture.Point{X: 0, Y: 40})
	assert.True(t, f.ctrl.Snapshot().Active)
	assert.Equal(t, 1, f.feedback.armed)

	f.ctrl.PointerMove(gesture.Point{X: -40, Y: 0})
	text, _ := f.ctrl.PointerUp()
	assert.Equal(t, "D", text)
}

func TestDragPolicyShortDragIsTap(t *testing.T) {
	f := newFixture(ArmOnDrag)
	f.ctrl.PointerDown(gesture.Point{}, literalCell(t, "A", "B"))
	f.ctrl.PointerMove(gesture.Point{X: 10, Y: 10})
	f.clock.Advance(5 * time.Second)

	text, _ := f.ctrl.PointerUp()
	assert.Equal(t, "A", text)
}

func TestBothPolicyArmsOnce(t *testing.T) {
	f := newFixture(ArmOnBoth)
	f.ctrl.PointerDown(gesture.Point{}, literalCell(t, "A", "B", "C"))
	f.ctrl.PointerMove(gesture.Point{X: 60})
	assert.True(t, f.ctrl.Snapshot().Active)
	assert.Zero(t, f.clock.Pending(), "drag arming stops the delay timer")

	f.clock.Advance(time.Second)
	assert.Equal(t, 1, f.feedback.armed)
}

func TestCancelDiscards(t *testing.T) {
	f := newFixture(ArmOnDelay)
	f.ctrl.PointerDown(gesture.Point{}, literalCell(t, "A", "B"))
	f.clock.Advance(600 * time.Millisecond)
	require.True(t, f.ctrl.Snapshot().Active)

	f.ctrl.Cancel()
	assert.False(t, f.ctrl.Down())
	assert.Equal(t, gesture.PhaseIdle, f.ctrl.Snapshot().Phase)

	_, ok := f.ctrl.PointerUp()
	assert.False(t, ok)
	assert.Empty(t, f.sink.Calls())
}

func TestMoveWithoutPressIsIgnored(t *testing.T) {
	f := newFixture(ArmOnDrag)
	f.ctrl.PointerMove(gesture.Point{X: 500})
	assert.Equal(t, gesture.Point{}, f.ctrl.Snapshot().Current)
}

func TestSubscribersSeeEveryChange(t *testing.T) {
	f := newFixture(ArmOnDelay)
	var phases []gesture.Phase
	unsubscribe := f.ctrl.Subscribe(func(s gesture.Snapshot) { phases = append(phases, s.Phase) })

	f.ctrl.PointerDown(gesture.Point{}, literalCell(t, "A", "B"))
	f.ctrl.PointerMove(gesture.Point{X: 5})
	f.clock.Advance(500 * time.Millisecond)
	f.ctrl.PointerUp()

	assert.Equal(t, []gesture.Phase{
		gesture.PhaseTap,
		gesture.PhaseTap,
		gesture.PhaseArmed,
		gesture.PhaseIdle,
	}, phases)

	unsubscribe()
	f.ctrl.PointerDown(gesture.Point{}, literalCell(t, "A"))
	assert.Len(t, phases, 4)
}

func TestSystemClockArms(t *testing.T) {
	sink := &recordingSink{}
	ctrl := NewController(Options{Delay: 5 * time.Millisecond, Sink: sink})
	origin := gesture.Point{X: 10, Y: 10}

	ctrl.PointerDown(origin, literalCell(t, "A", "B", "C"))
	require.Eventually(t, func() bool { return ctrl.Snapshot().Active }, time.Second, time.Millisecond)

	ctrl.PointerMove(origin.Add(gesture.Polar(40, 180)))
	text, _ := ctrl.PointerUp()
	assert.Equal(t, "C", text)
	assert.Equal(t, []string{"C"}, sink.Calls())
}

func TestParseArmPolicy(t *testing.T) {
	tests := map[string]ArmPolicy{"": ArmOnDelay, "delay": ArmOnDelay, "Drag": ArmOnDrag, " both ": ArmOnBoth}
	for in, want := range tests {
		got, err := ParseArmPolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseArmPolicy("hover")
	assert.Error(t, err)
	assert.Equal(t, "both", ArmOnBoth.String())
}
