package editor

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/amatgil/uiuapp/catalog"
	"github.com/amatgil/uiuapp/config"
)

// OutputKind tags a value produced by evaluation
type OutputKind uint8

const (
	OutputText OutputKind = iota
	OutputImage
	OutputGif
	OutputAudio
)

func (k OutputKind) String() string {
	switch k {
	case OutputText:
		return "text"
	case OutputImage:
		return "image"
	case OutputGif:
		return "gif"
	case OutputAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// Output is one stack value; Data holds encoded media for non-text kinds
type Output struct {
	Kind OutputKind
	Text string
	Data []byte
}

// EntryKind distinguishes submitted code from its results
type EntryKind uint8

const (
	EntryInput EntryKind = iota
	EntryOutput
)

// Entry is one scrollback item
// Input entries carry highlighted Spans, or Err when highlighting failed
type Entry struct {
	ID      uuid.UUID
	Kind    EntryKind
	Source  string
	Spans   []catalog.Span
	Err     string
	Outputs []Output
}

// Text returns what recalling the entry puts back into the input
func (e Entry) Text() string {
	if e.Kind != EntryInput {
		return ""
	}
	if e.Err != "" && len(e.Spans) == 0 {
		return e.Err
	}
	if len(e.Spans) == 0 {
		return e.Source
	}
	var sb strings.Builder
	for _, s := range e.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// Outputs returns the entry's values in display order
// Top-at-top keeps evaluation order; bottom-at-top reverses it
func Outputs(e Entry, ordering config.StackOrdering) []Output {
	out := append([]Output(nil), e.Outputs...)
	if ordering == config.BottomAtTop {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Scrollback is the append-only run history
type Scrollback struct {
	mu      sync.RWMutex
	entries []Entry
}

// Push stores e under a fresh id and returns it
func (s *Scrollback) Push(e Entry) Entry {
	e.ID = uuid.New()
	s.mu.Lock()
	s.entries = append(s.entries, e)
	s.mu.Unlock()
	return e
}

// Entries returns a copy of the history, oldest first
func (s *Scrollback) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry(nil), s.entries...)
}

func (s *Scrollback) Find(id uuid.UUID) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

func (s *Scrollback) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Scrollback) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}
