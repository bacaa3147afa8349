package composer

import (
	"fmt"
	"sync"
	"time"
)

// SaveState is the user-facing auto-save indicator state.
type SaveState string

const (
	SaveIdle   SaveState = "idle"
	SaveSaving SaveState = "saving"
	SaveSaved  SaveState = "saved"
)

// AutoSave derives a "Saving… / Saved <relative time>" indicator from content
// mutations without saving on every keystroke. Each mutation restarts the
// debounce window; the saved transition fires only after a quiet period, so a
// new mutation cancels a pending transition (last-write-wins).
type AutoSave struct {
	mu      sync.Mutex
	window  time.Duration
	state   SaveState
	savedAt time.Time
	timer   *time.Timer
	gen     uint64
}

// NewAutoSave creates a controller with the given debounce window.
func NewAutoSave(window time.Duration) *AutoSave {
	return &AutoSave{window: window, state: SaveIdle}
}

// Notify records a content mutation. Empty content never shows "saving".
func (a *AutoSave) Notify(nonEmpty bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if !nonEmpty {
		a.state = SaveIdle
		return
	}

	a.state = SaveSaving
	gen := a.gen
	a.timer = time.AfterFunc(a.window, func() { a.complete(gen) })
}

func (a *AutoSave) complete(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	// A newer mutation restarted the window; this transition is stale.
	if gen != a.gen {
		return
	}
	a.state = SaveSaved
	a.savedAt = time.Now()
	a.timer = nil
}

// Status returns the current state and the last save timestamp (zero if none).
func (a *AutoSave) Status() (SaveState, time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state, a.savedAt
}

// Label renders the relative save indicator, computed at display time.
func (a *AutoSave) Label() string {
	state, savedAt := a.Status()
	switch state {
	case SaveSaving:
		return "Saving…"
	case SaveSaved:
		return "Saved " + relativeLabel(time.Since(savedAt))
	default:
		return ""
	}
}

// Stop cancels any pending transition; call when the session is dropped.
func (a *AutoSave) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// Reset returns the indicator to idle and cancels pending transitions.
func (a *AutoSave) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.state = SaveIdle
	a.savedAt = time.Time{}
}

func relativeLabel(elapsed time.Duration) string {
	switch {
	case elapsed < 10*time.Second:
		return "just now"
	case elapsed < time.Minute:
		return fmt.Sprintf("%ds ago", int(elapsed.Seconds()))
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	}
}
