package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestWatcherDetectsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeFile(t, path, "levels: []\n")

	w, err := New(path, WithDebounceDuration(10*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	// Give the backend a moment to arm before writing.
	time.Sleep(50 * time.Millisecond)
	writeFile(t, path, "levels: [1]\n")

	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification within 5s")
	}
}

func TestWatcherPollingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeFile(t, path, "a\n")

	var changes atomic.Int32
	w, err := New(path,
		WithForcePoll(true),
		WithPollInterval(20*time.Millisecond),
		WithDebounceDuration(10*time.Millisecond),
		WithOnChange(func() { changes.Add(1) }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Error("forced poll should report polling mode")
	}

	time.Sleep(50 * time.Millisecond)
	writeFile(t, path, "a longer body\n")

	deadline := time.After(5 * time.Second)
	for changes.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("polling never observed the change")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestWatcherDoubleStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeFile(t, path, "x\n")

	w, err := New(path, WithForcePoll(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := w.Start(); err != ErrAlreadyStarted {
		t.Errorf("second Start = %v, want ErrAlreadyStarted", err)
	}
}

func TestWatcherStopIdempotent(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "seed.yaml"), WithForcePoll(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	w.Stop()
	w.Stop()
	if w.IsStarted() {
		t.Error("watcher still reports started after Stop")
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	var fired atomic.Int32
	b := newDebouncer(30 * time.Millisecond)
	for i := 0; i < 10; i++ {
		b.trigger(func() { fired.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("burst fired %d times, want 1", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	var fired atomic.Int32
	b := newDebouncer(20 * time.Millisecond)
	b.trigger(func() { fired.Add(1) })
	b.cancel()
	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("cancelled trigger still fired %d times", got)
	}
}

func TestEnvBoolForcesPolling(t *testing.T) {
	t.Setenv("SP_FORCE_POLL", "true")

	path := filepath.Join(t.TempDir(), "seed.yaml")
	writeFile(t, path, "x\n")

	w, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if !w.IsPolling() {
		t.Error("SP_FORCE_POLL=true should force polling mode")
	}
}
