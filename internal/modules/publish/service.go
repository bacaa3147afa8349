package publish

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/postwave/composer-core/internal/config"
	"github.com/postwave/composer-core/internal/models"
	"github.com/postwave/composer-core/internal/modules/composer"
	"github.com/postwave/composer-core/internal/pkg/linkedin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrSubmissionInFlight rejects a second posting request for a session
	// while the first is still running.
	ErrSubmissionInFlight = errors.New("a posting request is already in flight")
	ErrEmptyDraft         = errors.New("draft is empty")
	ErrOverLimit          = errors.New("draft exceeds the character limit")
	ErrDuplicateSchedule  = errors.New("an identical post is already scheduled")
)

// Meta carries the optional post metadata supplied at publish time.
type Meta struct {
	Tone     string
	PostType string
	Hashtags []string
}

// Service publishes and schedules finished drafts.
type Service struct {
	db     *gorm.DB
	store  *composer.Store
	sharer linkedin.Sharer
	cfg    *config.AppConfig
	log    *zap.Logger
}

func NewService(db *gorm.DB, store *composer.Store, sharer linkedin.Sharer, cfg *config.AppConfig, log *zap.Logger) *Service {
	return &Service{db: db, store: store, sharer: sharer, cfg: cfg, log: log}
}

// Publish sends the session's draft through the posting collaborator.
// The draft is cleared only after a successful outcome; on failure it stays
// intact so nothing is lost. A collaborator response of {draft:true} maps to
// OutcomeSavedAsDraft, which is informational, not an error.
func (s *Service) Publish(ctx context.Context, sessionID string, meta Meta) (Outcome, error) {
	draft, err := s.validateDraft(sessionID)
	if err != nil {
		return Outcome{}, err
	}

	if !s.store.BeginSubmit(sessionID) {
		return Outcome{}, ErrSubmissionInFlight
	}
	defer s.store.EndSubmit(sessionID)

	if !s.cfg.PostingEnabled() {
		return s.saveLocalDraft(sessionID, draft, meta)
	}

	mediaKeys := make([]string, 0, len(draft.Media))
	for _, ref := range draft.Media {
		mediaKeys = append(mediaKeys, ref.Key)
	}

	res, err := s.sharer.Share(ctx, draft.Content, mediaKeys)
	if err != nil {
		s.log.Warn("share failed, draft retained",
			zap.String("session", sessionID), zap.Error(err))
		return Outcome{}, err
	}

	post := models.PostModel{
		Content:  draft.Content,
		PostType: meta.PostType,
		Tone:     meta.Tone,
		Hashtags: meta.Hashtags,
		Media:    draft.Media,
		PostURN:  res.PostURN,
		Message:  res.Message,
	}
	outcome := Outcome{PostURN: res.PostURN, PostURL: res.PostURL, Message: res.Message}
	if res.Draft {
		post.Status = models.PostDraft
		outcome.Kind = OutcomeSavedAsDraft
	} else {
		now := time.Now()
		post.Status = models.PostPublished
		post.PublishedAt = &now
		outcome.Kind = OutcomePosted
	}

	if s.db != nil {
		if err := s.db.Create(&post).Error; err != nil {
			s.log.Warn("failed to persist published post", zap.Error(err))
		}
		outcome.PostID = post.ID
	}

	s.store.Clear(sessionID)
	return outcome, nil
}

// saveLocalDraft records the post without contacting the collaborator.
func (s *Service) saveLocalDraft(sessionID string, draft composer.Draft, meta Meta) (Outcome, error) {
	post := models.PostModel{
		Content:  draft.Content,
		Status:   models.PostDraft,
		PostType: meta.PostType,
		Tone:     meta.Tone,
		Hashtags: meta.Hashtags,
		Media:    draft.Media,
		Message:  "posting is disabled, saved locally",
	}
	if s.db != nil {
		if err := s.db.Create(&post).Error; err != nil {
			return Outcome{}, err
		}
	}
	s.store.Clear(sessionID)
	return Outcome{Kind: OutcomeSavedAsDraft, PostID: post.ID, Message: post.Message}, nil
}

// Schedule stores the draft for later dispatch. Scheduling the same content
// for the same time twice yields ErrDuplicateSchedule.
func (s *Service) Schedule(ctx context.Context, sessionID string, at time.Time, meta Meta) (*models.PostModel, error) {
	if at.Before(time.Now()) {
		return nil, errors.New("scheduled time is in the past")
	}
	draft, err := s.validateDraft(sessionID)
	if err != nil {
		return nil, err
	}

	post := models.PostModel{
		Content:     draft.Content,
		Status:      models.PostScheduled,
		PostType:    meta.PostType,
		Tone:        meta.Tone,
		Hashtags:    meta.Hashtags,
		Media:       draft.Media,
		ScheduledAt: &at,
		DedupKey:    scheduleDedupKey(draft.Content, at),
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil, ErrDuplicateSchedule
		}
		return nil, err
	}

	s.store.Clear(sessionID)
	return &post, nil
}

// DispatchDue publishes every scheduled post whose time has come. Called by
// the scheduler; returns the number of posts attempted.
func (s *Service) DispatchDue(ctx context.Context) (int, error) {
	var due []models.PostModel
	err := s.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", models.PostScheduled, time.Now()).
		Order("scheduled_at asc").
		Find(&due).Error
	if err != nil {
		return 0, err
	}

	for i := range due {
		post := &due[i]
		mediaKeys := make([]string, 0, len(post.Media))
		for _, ref := range post.Media {
			mediaKeys = append(mediaKeys, ref.Key)
		}

		res, err := s.sharer.Share(ctx, post.Content, mediaKeys)
		if err != nil {
			s.log.Warn("scheduled dispatch failed",
				zap.String("post", post.ID), zap.Error(err))
			post.Status = models.PostFailed
			post.Message = err.Error()
		} else if res.Draft {
			post.Status = models.PostDraft
			post.Message = res.Message
		} else {
			now := time.Now()
			post.Status = models.PostPublished
			post.PublishedAt = &now
			post.PostURN = res.PostURN
			post.Message = res.Message
		}
		if err := s.db.Save(post).Error; err != nil {
			s.log.Warn("failed to update dispatched post", zap.Error(err))
		}
	}
	return len(due), nil
}

func (s *Service) validateDraft(sessionID string) (composer.Draft, error) {
	draft, ok := s.store.Snapshot(sessionID)
	if !ok || strings.TrimSpace(draft.Content) == "" {
		return composer.Draft{}, ErrEmptyDraft
	}
	if composer.CountCharacters(draft.Content) > s.cfg.Composer.MaxPostLength {
		return composer.Draft{}, ErrOverLimit
	}
	return draft, nil
}

func scheduleDedupKey(content string, at time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", content, at.Unix())))
	return hex.EncodeToString(sum[:])
}
