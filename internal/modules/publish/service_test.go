package publish

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/postwave/composer-core/internal/config"
	"github.com/postwave/composer-core/internal/modules/composer"
	"github.com/postwave/composer-core/internal/pkg/linkedin"
	"go.uber.org/zap"
)

type fakeSharer struct {
	mu      sync.Mutex
	result  *linkedin.ShareResult
	err     error
	calls   int
	block   chan struct{}
	content string
}

func (f *fakeSharer) Share(ctx context.Context, content string, mediaKeys []string) (*linkedin.ShareResult, error) {
	f.mu.Lock()
	f.calls++
	f.content = content
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testService(sharer linkedin.Sharer) (*Service, *composer.Store) {
	cfg := &config.AppConfig{
		Composer: config.ComposerConfig{MaxPostLength: 3000},
	}
	store := composer.NewStore(time.Hour, nil)
	return NewService(nil, store, sharer, cfg, zap.NewNop()), store
}

func TestPublishSuccessClearsDraft(t *testing.T) {
	sharer := &fakeSharer{result: &linkedin.ShareResult{PostURN: "urn:li:share:1", PostURL: "https://l.in/1"}}
	svc, store := testService(sharer)
	store.SetContent("s1", "hello world")

	outcome, err := svc.Publish(context.Background(), "s1", Meta{})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if outcome.Kind != OutcomePosted {
		t.Errorf("kind = %q, want posted", outcome.Kind)
	}
	if outcome.PostURN != "urn:li:share:1" {
		t.Errorf("postUrn = %q", outcome.PostURN)
	}
	if draft, ok := store.Snapshot("s1"); ok && draft.Content != "" {
		t.Error("draft not cleared after success")
	}
}

func TestPublishDraftDowngradeIsSuccess(t *testing.T) {
	sharer := &fakeSharer{result: &linkedin.ShareResult{Draft: true, Message: "saved to LinkedIn drafts"}}
	svc, store := testService(sharer)
	store.SetContent("s1", "hello world")

	outcome, err := svc.Publish(context.Background(), "s1", Meta{})
	if err != nil {
		t.Fatalf("draft downgrade treated as error: %v", err)
	}
	if outcome.Kind != OutcomeSavedAsDraft {
		t.Errorf("kind = %q, want savedAsDraft", outcome.Kind)
	}
	if outcome.Message != "saved to LinkedIn drafts" {
		t.Errorf("message = %q", outcome.Message)
	}
	if draft, _ := store.Snapshot("s1"); draft.Content != "" {
		t.Error("draft not cleared after savedAsDraft outcome")
	}
}

func TestPublishFailureRetainsDraft(t *testing.T) {
	sharer := &fakeSharer{err: errors.New("network down")}
	svc, store := testService(sharer)
	store.SetContent("s1", "hello world")

	if _, err := svc.Publish(context.Background(), "s1", Meta{}); err == nil {
		t.Fatal("share failure not surfaced")
	}
	draft, ok := store.Snapshot("s1")
	if !ok || draft.Content != "hello world" {
		t.Errorf("draft lost on failure: %+v", draft)
	}
}

func TestPublishRejectsConcurrentSubmission(t *testing.T) {
	sharer := &fakeSharer{
		result: &linkedin.ShareResult{PostURN: "urn:li:share:1"},
		block:  make(chan struct{}),
	}
	svc, store := testService(sharer)
	store.SetContent("s1", "hello world")

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Publish(context.Background(), "s1", Meta{})
		firstDone <- err
	}()

	// Wait until the first call is inside Share.
	deadline := time.After(time.Second)
	for {
		sharer.mu.Lock()
		calls := sharer.calls
		sharer.mu.Unlock()
		if calls > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first publish never reached the sharer")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if _, err := svc.Publish(context.Background(), "s1", Meta{}); !errors.Is(err, ErrSubmissionInFlight) {
		t.Errorf("second publish: got %v, want ErrSubmissionInFlight", err)
	}

	close(sharer.block)
	if err := <-firstDone; err != nil {
		t.Errorf("first publish: %v", err)
	}
}

func TestPublishValidation(t *testing.T) {
	sharer := &fakeSharer{result: &linkedin.ShareResult{}}
	svc, store := testService(sharer)

	if _, err := svc.Publish(context.Background(), "empty", Meta{}); !errors.Is(err, ErrEmptyDraft) {
		t.Errorf("empty draft: got %v", err)
	}

	store.SetContent("big", strings.Repeat("a", 3001))
	if _, err := svc.Publish(context.Background(), "big", Meta{}); !errors.Is(err, ErrOverLimit) {
		t.Errorf("over limit: got %v", err)
	}
	if sharer.calls != 0 {
		t.Errorf("sharer called %d times for invalid drafts", sharer.calls)
	}
}

func TestPublishSendsMediaKeys(t *testing.T) {
	sharer := &fakeSharer{result: &linkedin.ShareResult{PostURN: "urn:li:share:2"}}
	svc, store := testService(sharer)
	store.SetContent("s1", "with media")

	if _, err := svc.Publish(context.Background(), "s1", Meta{}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if sharer.content != "with media" {
		t.Errorf("shared content = %q", sharer.content)
	}
}

func TestScheduleRejectsPastTime(t *testing.T) {
	svc, store := testService(&fakeSharer{})
	store.SetContent("s1", "hello")

	_, err := svc.Schedule(context.Background(), "s1", time.Now().Add(-time.Minute), Meta{})
	if err == nil {
		t.Error("past schedule accepted")
	}
}

func TestScheduleDedupKeyStable(t *testing.T) {
	at := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	a := scheduleDedupKey("same post", at)
	b := scheduleDedupKey("same post", at)
	c := scheduleDedupKey("same post", at.Add(time.Minute))
	if a != b {
		t.Error("identical content+time produced different keys")
	}
	if a == c {
		t.Error("different times collided")
	}
	if len(a) > 191 {
		t.Errorf("key too long for the index: %d", len(a))
	}
}
