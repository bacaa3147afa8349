package composer

import (
	"sync"
	"time"

	"github.com/postwave/composer-core/internal/models"
)

// Draft is the in-progress post body and scheduling metadata for one session.
type Draft struct {
	Content      string            `json:"content"`
	ScheduledFor *time.Time        `json:"scheduledFor"`
	Media        []models.MediaRef `json:"media"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// MediaReleaser frees the external resource behind a media ref (the preview
// object). The store guarantees it is invoked exactly once per ref, at
// removal or draft clear, never both.
type MediaReleaser func(ref models.MediaRef)

type session struct {
	draft    Draft
	saver    *AutoSave
	inFlight bool
}

// Store is the single shared holder for drafts being composed, keyed by
// session. Every composer surface reads and writes through it, so switching
// surfaces never loses text. All mutation is mutex-guarded last-write-wins.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	window   time.Duration
	release  MediaReleaser
}

// NewStore creates a draft store with the given auto-save debounce window.
// releaser may be nil when media previews need no external cleanup.
func NewStore(window time.Duration, releaser MediaReleaser) *Store {
	return &Store{
		sessions: make(map[string]*session),
		window:   window,
		release:  releaser,
	}
}

func (s *Store) get(sessionID string) *session {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{saver: NewAutoSave(s.window)}
		s.sessions[sessionID] = sess
	}
	return sess
}

// SetContent replaces the draft body. Setting an equal string is a no-op:
// it neither bumps UpdatedAt nor restarts the auto-save window.
func (s *Store) SetContent(sessionID, content string) bool {
	s.mu.Lock()
	sess := s.get(sessionID)
	if sess.draft.Content == content {
		s.mu.Unlock()
		return false
	}
	sess.draft.Content = content
	sess.draft.UpdatedAt = time.Now()
	saver := sess.saver
	s.mu.Unlock()

	saver.Notify(content != "")
	return true
}

// SetScheduledFor sets or clears the draft's scheduled time.
func (s *Store) SetScheduledFor(sessionID string, at *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(sessionID)
	sess.draft.ScheduledFor = at
	sess.draft.UpdatedAt = time.Now()
}

// AttachMedia appends a media ref to the draft.
func (s *Store) AttachMedia(sessionID string, ref models.MediaRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(sessionID)
	sess.draft.Media = append(sess.draft.Media, ref)
	sess.draft.UpdatedAt = time.Now()
}

// RemoveMedia detaches a media ref by ID and releases its preview exactly
// once. A second removal of the same ID reports false.
func (s *Store) RemoveMedia(sessionID, mediaID string) (models.MediaRef, bool) {
	s.mu.Lock()
	sess := s.get(sessionID)
	var removed models.MediaRef
	found := false
	media := sess.draft.Media[:0]
	for _, ref := range sess.draft.Media {
		if !found && ref.ID == mediaID {
			removed = ref
			found = true
			continue
		}
		media = append(media, ref)
	}
	sess.draft.Media = media
	if found {
		sess.draft.UpdatedAt = time.Now()
	}
	s.mu.Unlock()

	if found && s.release != nil {
		s.release(removed)
	}
	return removed, found
}

// Clear atomically resets content, scheduled time, and media. Remaining media
// previews are each released exactly once. No intermediate state is
// observable: the draft swap happens under the lock in one step.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return
	}
	released := sess.draft.Media
	sess.draft = Draft{}
	saver := sess.saver
	s.mu.Unlock()

	saver.Reset()
	if s.release != nil {
		for _, ref := range released {
			s.release(ref)
		}
	}
}

// Snapshot returns a copy of the current draft.
func (s *Store) Snapshot(sessionID string) (Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return Draft{}, false
	}
	draft := sess.draft
	draft.Media = append([]models.MediaRef(nil), sess.draft.Media...)
	return draft, true
}

// SaveStatus exposes the session's auto-save indicator.
func (s *Store) SaveStatus(sessionID string) (SaveState, time.Time, string) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return SaveIdle, time.Time{}, ""
	}
	state, savedAt := sess.saver.Status()
	return state, savedAt, sess.saver.Label()
}

// BeginSubmit marks the session as having a posting request in flight.
// Returns false when a submission is already running (re-entrancy guard).
func (s *Store) BeginSubmit(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.get(sessionID)
	if sess.inFlight {
		return false
	}
	sess.inFlight = true
	return true
}

// EndSubmit clears the in-flight flag.
func (s *Store) EndSubmit(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.inFlight = false
	}
}

// Drop forgets a session entirely, cancelling pending auto-save timers and
// releasing any remaining media previews.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	sess.saver.Stop()
	if s.release != nil {
		for _, ref := range sess.draft.Media {
			s.release(ref)
		}
	}
}
