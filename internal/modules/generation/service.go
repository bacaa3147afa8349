package generation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/postwave/composer-core/internal/config"
	"github.com/postwave/composer-core/internal/models"
	"github.com/postwave/composer-core/internal/modules/fonts"
	"github.com/postwave/composer-core/internal/pkg/taskqueue"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskTypeSuggestions is the queue type for async suggestion generation.
const TaskTypeSuggestions = "generation.suggestions"

// ErrNoAPIKey signals that no AI provider with a key is configured.
var ErrNoAPIKey = errors.New("no AI provider configured")

// APIKeyHelpURL points users at the provider setup docs when generation is
// requested without a configured key.
const APIKeyHelpURL = "https://github.com/postwave/composer-core#configuring-ai-providers"

type providerCaller func(ctx context.Context, provider *config.AIProvider, systemPrompt, prompt string) (string, error)

// Service runs AI generation calls and owns the context capturer.
type Service struct {
	db       *gorm.DB
	cfg      *config.AppConfig
	tasks    *taskqueue.Service
	capturer *Capturer
	log      *zap.Logger
	call     providerCaller
}

func NewService(db *gorm.DB, cfg *config.AppConfig, tasks *taskqueue.Service, log *zap.Logger) *Service {
	return &Service{
		db:       db,
		cfg:      cfg,
		tasks:    tasks,
		capturer: NewCapturer(),
		log:      log,
		call:     callProvider,
	}
}

// Capturer exposes the service's context capturer so other modules can
// register consumers or read the live context.
func (s *Service) Capturer() *Capturer { return s.capturer }

// Generate produces a post body for the brief. The provider's markdown output
// is folded to Unicode styled text before return, so the caller receives
// final post content with no literal markers. The generation context is
// captured only when the call succeeds.
func (s *Service) Generate(ctx context.Context, sessionID string, dto GenerateDTO) (string, error) {
	if strings.TrimSpace(dto.Topic) == "" {
		return "", errors.New("topic is required")
	}
	provider := s.cfg.ActiveAIProvider()
	if provider == nil {
		return "", ErrNoAPIKey
	}

	timeout := time.Duration(s.cfg.AI.GenerationTimeoutSec) * time.Second
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	systemPrompt, prompt := buildPostPrompt(dto)
	raw, err := s.call(callCtx, provider, systemPrompt, prompt)
	if err != nil {
		return "", err
	}

	content := fonts.IngestMarkdown(raw)
	captured := s.capturer.Capture(sessionID, dto)
	s.persistRecord(sessionID, dto, content, provider, captured.CapturedAt)
	return content, nil
}

// persistRecord stores the generation as an analytics row. Failures are
// logged, not surfaced: the generated content is already in hand.
func (s *Service) persistRecord(sessionID string, dto GenerateDTO, content string, provider *config.AIProvider, capturedAt time.Time) {
	if s.db == nil {
		return
	}
	record := models.GenerationRecordModel{
		SessionID:  sessionID,
		Topic:      dto.Topic,
		Tone:       dto.Tone,
		Length:     dto.Length,
		Context:    dto.Context,
		PostType:   dto.PostType,
		Content:    content,
		Provider:   provider.Type,
		Model:      provider.DefaultModel,
		CapturedAt: capturedAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		s.log.Warn("failed to persist generation record", zap.Error(err))
	}
}

// EnqueueSuggestions queues an async suggestions task. Identical briefs
// dedup to the same task while one is pending.
func (s *Service) EnqueueSuggestions(ctx context.Context, sessionID string, dto enqueueSuggestionsDTO) (*taskqueue.Task, error) {
	if strings.TrimSpace(dto.Topic) == "" {
		return nil, errors.New("topic is required")
	}
	if !s.cfg.HasAIKey() {
		return nil, ErrNoAPIKey
	}
	payload := SuggestionsPayload{
		SessionID: sessionID,
		Topic:     dto.Topic,
		Tone:      dto.Tone,
		Count:     dto.Count,
	}
	dedup := strings.ToLower(strings.TrimSpace(dto.Topic)) + "|" + strings.ToLower(dto.Tone)
	return s.tasks.Enqueue(ctx, TaskTypeSuggestions, payload, dedup)
}

// ProcessNextSuggestions pops and runs one pending suggestions task.
// Returns false when the queue is empty. Meant to be driven by the scheduler.
func (s *Service) ProcessNextSuggestions(ctx context.Context) (bool, error) {
	task, err := s.tasks.NextPending(ctx, TaskTypeSuggestions)
	if err != nil || task == nil {
		return false, err
	}

	var payload SuggestionsPayload
	if err := unmarshalTaskPayload(task, &payload); err != nil {
		_ = s.tasks.UpdateStatus(ctx, task.ID, taskqueue.TaskFailed, nil, err.Error())
		return true, nil
	}

	result, err := s.runSuggestions(ctx, payload)
	if err != nil {
		s.log.Warn("suggestions task failed", zap.String("task", task.ID), zap.Error(err))
		_ = s.tasks.UpdateStatus(ctx, task.ID, taskqueue.TaskFailed, nil, err.Error())
		return true, nil
	}
	_ = s.tasks.UpdateStatus(ctx, task.ID, taskqueue.TaskCompleted, result, "")
	return true, nil
}

func (s *Service) runSuggestions(ctx context.Context, payload SuggestionsPayload) (*SuggestionsResult, error) {
	provider := s.cfg.ActiveAIProvider()
	if provider == nil {
		return nil, ErrNoAPIKey
	}

	timeout := time.Duration(s.cfg.AI.GenerationTimeoutSec) * time.Second
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	systemPrompt, prompt := buildSuggestionsPrompt(payload.Topic, payload.Tone, payload.Count)
	raw, err := s.call(callCtx, provider, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var result SuggestionsResult
	if err := unmarshalAIJSON(raw, &result); err != nil {
		return nil, err
	}
	if len(result.Suggestions) == 0 {
		return nil, errors.New("empty suggestions from AI")
	}
	return &result, nil
}

func unmarshalTaskPayload(task *taskqueue.Task, out interface{}) error {
	if len(task.Payload) == 0 {
		return errors.New("task has no payload")
	}
	return json.Unmarshal(task.Payload, out)
}
