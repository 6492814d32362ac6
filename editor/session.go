package editor

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amatgil/uiuapp/config"
)

// Evaluator runs code and returns the resulting stack
type Evaluator interface {
	Eval(ctx context.Context, code string) ([]Output, error)
}

// ErrNoInterpreter is returned by NoEvaluator
var ErrNoInterpreter = errors.New("no interpreter configured")

// ErrTimeout is returned when evaluation outlives the execution limit
var ErrTimeout = errors.New("execution limit exceeded")

// NoEvaluator rejects every run
type NoEvaluator struct{}

func (NoEvaluator) Eval(context.Context, string) ([]Output, error) {
	return nil, ErrNoInterpreter
}

// EchoEvaluator pushes every non-blank line back as a text value, last line first
type EchoEvaluator struct{}

func (EchoEvaluator) Eval(ctx context.Context, code string) ([]Output, error) {
	var outs []Output
	for _, line := range strings.Split(code, "\n") {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		outs = append([]Output{{Kind: OutputText, Text: line}}, outs...)
	}
	return outs, nil
}

// Session ties the input buffer, the history and an evaluator together
type Session struct {
	Input   *Buffer
	History *Scrollback

	eval Evaluator
	hl   Highlighter
	log  logrus.FieldLogger

	mu       sync.Mutex
	settings config.Settings
}

// NewSession creates an empty session; nil collaborators take placeholders
func NewSession(eval Evaluator, hl Highlighter, settings *config.Settings, log logrus.FieldLogger) *Session {
	if eval == nil {
		eval = NoEvaluator{}
	}
	if hl == nil {
		hl = NewGlyphHighlighter(nil)
	}
	if settings == nil {
		settings = config.Default()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Session{
		Input:    &Buffer{},
		History:  &Scrollback{},
		eval:     eval,
		hl:       hl,
		log:      log,
		settings: *settings,
	}
}

// Settings returns a copy of the current settings
func (s *Session) Settings() config.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings applies fn to the live settings
func (s *Session) UpdateSettings(fn func(*config.Settings)) {
	s.mu.Lock()
	fn(&s.settings)
	s.mu.Unlock()
}

// Run evaluates the input and appends the input and its results to the history
// On failure the error text becomes the output and the submitted input is removed
// Text appended while the evaluation runs stays in the input
func (s *Session) Run(ctx context.Context) error {
	settings := s.Settings()
	src := s.Input.String()

	in := Entry{Kind: EntryInput, Source: src}
	if spans, err := s.hl.Highlight(src); err != nil {
		in.Err = err.Error()
	} else {
		in.Spans = spans
	}
	s.History.Push(in)

	outs, err := s.evaluate(ctx, src, settings.ExecutionLimit)
	if err != nil {
		s.History.Push(Entry{Kind: EntryOutput, Outputs: []Output{{Kind: OutputText, Text: err.Error()}}})
		s.Input.TrimPrefix(src)
		s.log.WithError(err).Debug("run failed")
		return err
	}

	for i := range outs {
		if outs[i].Kind == OutputText {
			outs[i].Text = truncate(outs[i].Text, settings.MaxOutputChars)
		}
	}
	s.History.Push(Entry{Kind: EntryOutput, Outputs: outs})
	if settings.CleanInputOnRun {
		s.Input.TrimPrefix(src)
	}
	s.log.WithField("values", len(outs)).Debug("run finished")
	return nil
}

func (s *Session) evaluate(ctx context.Context, src string, limit time.Duration) ([]Output, error) {
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	type result struct {
		outs []Output
		err  error
	}
	done := make(chan result, 1)
	go func() {
		outs, err := s.eval.Eval(ctx, src)
		done <- result{outs, err}
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(r.err, context.DeadlineExceeded) {
			return nil, errors.Wrapf(ErrTimeout, "after %s", limit)
		}
		return r.outs, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.Wrapf(ErrTimeout, "after %s", limit)
		}
		return nil, ctx.Err()
	}
}

// Recall copies a past input back into the buffer when the buffer is empty
func (s *Session) Recall(id uuid.UUID) bool {
	if !s.Input.IsEmpty() {
		return false
	}
	e, ok := s.History.Find(id)
	if !ok || e.Kind != EntryInput {
		return false
	}
	s.Input.Set(e.Text())
	return true
}

func (s *Session) ClearHistory() {
	s.History.Clear()
}

// truncate keeps at most limit runes, marking the cut with an ellipsis
func truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i] + "..."
		}
		n++
	}
	return text
}
