package composer

import (
	"sync"
	"testing"
	"time"

	"github.com/postwave/composer-core/internal/models"
)

type releaseRecorder struct {
	mu    sync.Mutex
	calls map[string]int
}

func newReleaseRecorder() *releaseRecorder {
	return &releaseRecorder{calls: make(map[string]int)}
}

func (r *releaseRecorder) release(ref models.MediaRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[ref.ID]++
}

func (r *releaseRecorder) count(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[id]
}

func TestSetContentIdempotent(t *testing.T) {
	s := NewStore(time.Hour, nil)
	if !s.SetContent("s1", "hello") {
		t.Fatal("first SetContent reported no change")
	}
	draft, _ := s.Snapshot("s1")
	first := draft.UpdatedAt

	if s.SetContent("s1", "hello") {
		t.Error("equal content reported a change")
	}
	draft, _ = s.Snapshot("s1")
	if !draft.UpdatedAt.Equal(first) {
		t.Error("equal content bumped UpdatedAt")
	}
}

func TestClearAtomic(t *testing.T) {
	rec := newReleaseRecorder()
	s := NewStore(time.Hour, rec.release)

	at := time.Now().Add(time.Hour)
	s.SetContent("s1", "draft text")
	s.SetScheduledFor("s1", &at)
	s.AttachMedia("s1", models.MediaRef{ID: "m1"})
	s.AttachMedia("s1", models.MediaRef{ID: "m2"})

	s.Clear("s1")

	draft, ok := s.Snapshot("s1")
	if !ok {
		t.Fatal("session vanished on clear")
	}
	if draft.Content != "" || draft.ScheduledFor != nil || len(draft.Media) != 0 {
		t.Errorf("clear left residue: %+v", draft)
	}
	if rec.count("m1") != 1 || rec.count("m2") != 1 {
		t.Errorf("media released %d/%d times, want exactly once each", rec.count("m1"), rec.count("m2"))
	}
}

func TestRemoveMediaReleasesExactlyOnce(t *testing.T) {
	rec := newReleaseRecorder()
	s := NewStore(time.Hour, rec.release)

	s.AttachMedia("s1", models.MediaRef{ID: "m1"})
	if _, ok := s.RemoveMedia("s1", "m1"); !ok {
		t.Fatal("first removal failed")
	}
	if _, ok := s.RemoveMedia("s1", "m1"); ok {
		t.Error("second removal of same ref succeeded")
	}
	if rec.count("m1") != 1 {
		t.Errorf("released %d times, want 1", rec.count("m1"))
	}
}

func TestClearAfterRemoveDoesNotDoubleRelease(t *testing.T) {
	rec := newReleaseRecorder()
	s := NewStore(time.Hour, rec.release)

	s.AttachMedia("s1", models.MediaRef{ID: "m1"})
	s.AttachMedia("s1", models.MediaRef{ID: "m2"})
	s.RemoveMedia("s1", "m1")
	s.Clear("s1")

	if rec.count("m1") != 1 {
		t.Errorf("removed ref released %d times, want 1", rec.count("m1"))
	}
	if rec.count("m2") != 1 {
		t.Errorf("cleared ref released %d times, want 1", rec.count("m2"))
	}
}

func TestSnapshotCopiesMedia(t *testing.T) {
	s := NewStore(time.Hour, nil)
	s.AttachMedia("s1", models.MediaRef{ID: "m1"})
	draft, _ := s.Snapshot("s1")
	draft.Media[0].ID = "mutated"

	fresh, _ := s.Snapshot("s1")
	if fresh.Media[0].ID != "m1" {
		t.Error("snapshot leaked internal media slice")
	}
}

func TestSubmitReentrancyGuard(t *testing.T) {
	s := NewStore(time.Hour, nil)
	if !s.BeginSubmit("s1") {
		t.Fatal("first BeginSubmit blocked")
	}
	if s.BeginSubmit("s1") {
		t.Error("duplicate submission allowed while in flight")
	}
	s.EndSubmit("s1")
	if !s.BeginSubmit("s1") {
		t.Error("submission blocked after EndSubmit")
	}
}

func TestContentMutationFeedsAutoSave(t *testing.T) {
	s := NewStore(30*time.Millisecond, nil)
	s.SetContent("s1", "hello")
	if state, _, _ := s.SaveStatus("s1"); state != SaveSaving {
		t.Fatalf("state = %v, want saving", state)
	}
	time.Sleep(60 * time.Millisecond)
	state, savedAt, label := s.SaveStatus("s1")
	if state != SaveSaved {
		t.Fatalf("state = %v, want saved", state)
	}
	if savedAt.IsZero() {
		t.Error("savedAt not recorded")
	}
	if label != "Saved just now" {
		t.Errorf("label = %q", label)
	}
}

func TestDropStopsSession(t *testing.T) {
	rec := newReleaseRecorder()
	s := NewStore(10*time.Millisecond, rec.release)
	s.SetContent("s1", "hello")
	s.AttachMedia("s1", models.MediaRef{ID: "m1"})
	s.Drop("s1")

	if _, ok := s.Snapshot("s1"); ok {
		t.Error("dropped session still present")
	}
	if rec.count("m1") != 1 {
		t.Errorf("dropped session media released %d times, want 1", rec.count("m1"))
	}
}
