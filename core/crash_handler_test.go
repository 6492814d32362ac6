package core

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
)

type fakeScreen struct {
	finis int
}

func (f *fakeScreen) Fini() { f.finis++ }

func withCrashHooks(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var buf bytes.Buffer
	code := -1
	crashOutput = &buf
	crashExit = func(c int) { code = c }
	t.Cleanup(func() {
		crashOutput = os.Stderr
		crashExit = os.Exit
		RegisterCrashScreen(nil)
	})
	return &buf, &code
}

func TestHandleCrashNil(t *testing.T) {
	buf, code := withCrashHooks(t)
	HandleCrash(nil)
	if buf.Len() != 0 || *code != -1 {
		t.Errorf("Expected nil panic to be ignored, got output %q code %d", buf.String(), *code)
	}
}

func TestHandleCrashRestoresScreen(t *testing.T) {
	buf, code := withCrashHooks(t)
	scr := &fakeScreen{}
	RegisterCrashScreen(scr)

	HandleCrash("boom")

	if scr.finis != 1 {
		t.Errorf("Expected screen finalized once, got %d", scr.finis)
	}
	if *code != 1 {
		t.Errorf("Expected exit code 1, got %d", *code)
	}
	if !strings.Contains(buf.String(), "boom") || !strings.Contains(buf.String(), "Stack Trace") {
		t.Errorf("Expected crash report, got %q", buf.String())
	}

	// Screen is released after the first report
	HandleCrash("again")
	if scr.finis != 1 {
		t.Errorf("Expected screen finalized only once, got %d", scr.finis)
	}
}

func TestGoRecovers(t *testing.T) {
	var mu sync.Mutex
	done := make(chan struct{})
	var buf bytes.Buffer
	crashOutput = &lockedWriter{mu: &mu, w: &buf}
	crashExit = func(int) { close(done) }
	t.Cleanup(func() {
		crashOutput = os.Stderr
		crashExit = os.Exit
	})

	Go(func() { panic("worker failed") })
	<-done

	mu.Lock()
	defer mu.Unlock()
	if !strings.Contains(buf.String(), "worker failed") {
		t.Errorf("Expected panic value in report, got %q", buf.String())
	}
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
