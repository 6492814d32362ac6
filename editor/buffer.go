package editor

import (
	"strings"
	"sync"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Buffer is the pending, not yet evaluated, input
// It is the sink the activation controller appends glyph text to
type Buffer struct {
	mu   sync.Mutex
	text string
}

// Append adds text at the end; the result is kept in NFC
func (b *Buffer) Append(text string) {
	if text == "" {
		return
	}
	b.mu.Lock()
	b.text = norm.NFC.String(b.text + text)
	b.mu.Unlock()
}

// Backspace removes the last grapheme cluster, reporting whether anything was removed
func (b *Buffer) Backspace() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.text == "" {
		return false
	}
	last := 0
	g := uniseg.NewGraphemes(b.text)
	for g.Next() {
		last, _ = g.Positions()
	}
	b.text = b.text[:last]
	return true
}

func (b *Buffer) Newline() { b.Append("\n") }

func (b *Buffer) Clear() {
	b.mu.Lock()
	b.text = ""
	b.mu.Unlock()
}

// TrimPrefix removes prefix from the start of the content, keeping anything after it
// It reports false and leaves the content alone when it no longer starts with prefix
func (b *Buffer) TrimPrefix(prefix string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !strings.HasPrefix(b.text, prefix) {
		return false
	}
	b.text = b.text[len(prefix):]
	return true
}

// Set replaces the whole content
func (b *Buffer) Set(text string) {
	b.mu.Lock()
	b.text = norm.NFC.String(text)
	b.mu.Unlock()
}

func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

func (b *Buffer) IsEmpty() bool {
	return b.String() == ""
}

// Lines splits the content for display; an empty buffer has one empty line
func (b *Buffer) Lines() []string {
	return strings.Split(b.String(), "\n")
}
