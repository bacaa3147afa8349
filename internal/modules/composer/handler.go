package composer

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/postwave/composer-core/internal/config"
	"github.com/postwave/composer-core/internal/modules/fonts"
	"github.com/postwave/composer-core/internal/pkg/response"
)

// Handler exposes the draft composer over HTTP.
type Handler struct {
	store *Store
	cfg   *config.AppConfig
}

func NewHandler(store *Store, cfg *config.AppConfig) *Handler {
	return &Handler{store: store, cfg: cfg}
}

// RegisterRoutes mounts the composer endpoints.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	drafts := api.Group("/drafts", authMW)
	drafts.GET("/:session", h.getDraft)
	drafts.PUT("/:session/content", h.setContent)
	drafts.PUT("/:session/schedule", h.setSchedule)
	drafts.DELETE("/:session", h.clear)
	drafts.GET("/:session/save-status", h.saveStatus)
	drafts.GET("/:session/count", h.count)
	drafts.POST("/:session/transform", h.transform)
}

type draftResponse struct {
	Draft
	Account Account `json:"account"`
}

func (h *Handler) respondDraft(c *gin.Context, draft Draft) {
	response.OK(c, draftResponse{
		Draft:   draft,
		Account: ComputeAccount(draft.Content, h.cfg.Composer.MaxPostLength),
	})
}

func (h *Handler) getDraft(c *gin.Context) {
	draft, ok := h.store.Snapshot(c.Param("session"))
	if !ok {
		draft = Draft{}
	}
	h.respondDraft(c, draft)
}

type setContentDTO struct {
	Content string `json:"content"`
}

func (h *Handler) setContent(c *gin.Context) {
	var dto setContentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	sessionID := c.Param("session")
	h.store.SetContent(sessionID, dto.Content)
	draft, _ := h.store.Snapshot(sessionID)
	h.respondDraft(c, draft)
}

type setScheduleDTO struct {
	ScheduledFor *time.Time `json:"scheduledFor"`
}

func (h *Handler) setSchedule(c *gin.Context) {
	var dto setScheduleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if dto.ScheduledFor != nil && dto.ScheduledFor.Before(time.Now()) {
		response.UnprocessableEntity(c, "scheduled time is in the past")
		return
	}
	sessionID := c.Param("session")
	h.store.SetScheduledFor(sessionID, dto.ScheduledFor)
	draft, _ := h.store.Snapshot(sessionID)
	h.respondDraft(c, draft)
}

func (h *Handler) clear(c *gin.Context) {
	h.store.Clear(c.Param("session"))
	response.NoContent(c)
}

func (h *Handler) saveStatus(c *gin.Context) {
	state, savedAt, label := h.store.SaveStatus(c.Param("session"))
	resp := gin.H{"status": state, "label": label}
	if !savedAt.IsZero() {
		resp["savedAt"] = savedAt
	}
	response.OK(c, resp)
}

func (h *Handler) count(c *gin.Context) {
	draft, _ := h.store.Snapshot(c.Param("session"))
	response.OK(c, ComputeAccount(draft.Content, h.cfg.Composer.MaxPostLength))
}

type transformDTO struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Style string `json:"style" binding:"required"`
}

// transform restyles a code-point range of the current draft content.
// An empty selection leaves the text alone; the caller treats the style as
// pending for future typed characters.
func (h *Handler) transform(c *gin.Context) {
	var dto transformDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	style, ok := fonts.ParseStyle(dto.Style)
	if !ok {
		response.BadRequest(c, "unknown style: "+dto.Style)
		return
	}

	sessionID := c.Param("session")
	draft, _ := h.store.Snapshot(sessionID)
	transformed, newEnd := fonts.TransformRange(draft.Content, dto.Start, dto.End, style)
	h.store.SetContent(sessionID, transformed)

	response.OK(c, gin.H{
		"content": transformed,
		"newEnd":  newEnd,
		"account": ComputeAccount(transformed, h.cfg.Composer.MaxPostLength),
	})
}
