package composer

import (
	"testing"
	"time"
)

func TestAutoSaveDebounce(t *testing.T) {
	a := NewAutoSave(50 * time.Millisecond)

	a.Notify(true)
	if state, _ := a.Status(); state != SaveSaving {
		t.Fatalf("state = %v, want saving", state)
	}

	// Second mutation before the window elapses cancels the first transition.
	time.Sleep(20 * time.Millisecond)
	secondAt := time.Now()
	a.Notify(true)

	// Just after the first window would have fired: still saving.
	time.Sleep(40 * time.Millisecond)
	if state, _ := a.Status(); state != SaveSaving {
		t.Fatalf("state = %v, want saving (first transition must be cancelled)", state)
	}

	// After the second window elapses: exactly one saved transition,
	// timestamped after the second mutation's window.
	time.Sleep(30 * time.Millisecond)
	state, savedAt := a.Status()
	if state != SaveSaved {
		t.Fatalf("state = %v, want saved", state)
	}
	if savedAt.Before(secondAt.Add(50 * time.Millisecond)) {
		t.Errorf("savedAt %v precedes second mutation's window", savedAt)
	}
}

func TestAutoSaveEmptyContentStaysIdle(t *testing.T) {
	a := NewAutoSave(10 * time.Millisecond)
	a.Notify(false)
	if state, _ := a.Status(); state != SaveIdle {
		t.Errorf("state = %v, want idle for empty content", state)
	}
	time.Sleep(30 * time.Millisecond)
	if state, _ := a.Status(); state != SaveIdle {
		t.Errorf("state = %v, want idle after window", state)
	}
}

func TestAutoSaveStopCancelsPending(t *testing.T) {
	a := NewAutoSave(20 * time.Millisecond)
	a.Notify(true)
	a.Stop()
	time.Sleep(50 * time.Millisecond)
	if state, _ := a.Status(); state == SaveSaved {
		t.Error("stopped controller still transitioned to saved")
	}
}

func TestAutoSaveLabel(t *testing.T) {
	a := NewAutoSave(5 * time.Millisecond)
	if got := a.Label(); got != "" {
		t.Errorf("idle label = %q, want empty", got)
	}
	a.Notify(true)
	if got := a.Label(); got != "Saving…" {
		t.Errorf("label = %q, want Saving…", got)
	}
	time.Sleep(20 * time.Millisecond)
	if got := a.Label(); got != "Saved just now" {
		t.Errorf("label = %q, want Saved just now", got)
	}
}

func TestRelativeLabel(t *testing.T) {
	testCases := []struct {
		elapsed time.Duration
		want    string
	}{
		{3 * time.Second, "just now"},
		{45 * time.Second, "45s ago"},
		{5 * time.Minute, "5m ago"},
		{2 * time.Hour, "2h ago"},
	}
	for _, tc := range testCases {
		if got := relativeLabel(tc.elapsed); got != tc.want {
			t.Errorf("relativeLabel(%v) = %q, want %q", tc.elapsed, got, tc.want)
		}
	}
}
