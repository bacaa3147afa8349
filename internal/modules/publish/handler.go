package publish

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/postwave/composer-core/internal/models"
	"github.com/postwave/composer-core/internal/pkg/pagination"
	"github.com/postwave/composer-core/internal/pkg/response"
	"gorm.io/gorm"
)

// Handler exposes posting and scheduling over HTTP.
type Handler struct {
	svc *Service
	db  *gorm.DB
}

func NewHandler(svc *Service, db *gorm.DB) *Handler {
	return &Handler{svc: svc, db: db}
}

// RegisterRoutes mounts the publish endpoints.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	posts := api.Group("/posts", authMW)
	posts.POST("", h.publish)
	posts.POST("/schedule", h.schedule)
	posts.GET("", h.list)
	posts.GET("/:id", h.get)
}

func sessionOrDefault(session string) string {
	if session == "" {
		return "default"
	}
	return session
}

func (h *Handler) publish(c *gin.Context) {
	var dto postDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	outcome, err := h.svc.Publish(c.Request.Context(), sessionOrDefault(dto.Session), Meta{
		Tone:     dto.Tone,
		PostType: dto.PostType,
		Hashtags: dto.Hashtags,
	})
	switch {
	case err == nil:
		response.Created(c, outcome)
	case errors.Is(err, ErrSubmissionInFlight):
		response.Conflict(c, err.Error())
	case errors.Is(err, ErrEmptyDraft), errors.Is(err, ErrOverLimit):
		response.UnprocessableEntity(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func (h *Handler) schedule(c *gin.Context) {
	var dto scheduleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "scheduledFor is required")
		return
	}

	post, err := h.svc.Schedule(c.Request.Context(), sessionOrDefault(dto.Session), dto.ScheduledFor, Meta{
		Tone:     dto.Tone,
		PostType: dto.PostType,
		Hashtags: dto.Hashtags,
	})
	switch {
	case err == nil:
		response.Created(c, post)
	case errors.Is(err, ErrDuplicateSchedule):
		response.Conflict(c, err.Error())
	case errors.Is(err, ErrEmptyDraft), errors.Is(err, ErrOverLimit):
		response.UnprocessableEntity(c, err.Error())
	default:
		response.BadRequest(c, err.Error())
	}
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	query := h.db.Model(&models.PostModel{}).Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var posts []models.PostModel
	meta, err := pagination.Paginate(query, q, &posts)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, posts, meta)
}

func (h *Handler) get(c *gin.Context) {
	var post models.PostModel
	err := h.db.First(&post, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, post)
}
