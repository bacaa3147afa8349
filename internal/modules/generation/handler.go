package generation

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/postwave/composer-core/internal/pkg/response"
	"github.com/postwave/composer-core/internal/pkg/taskqueue"
)

// Handler exposes AI generation over HTTP.
type Handler struct {
	svc   *Service
	tasks *taskqueue.Service
}

func NewHandler(svc *Service, tasks *taskqueue.Service) *Handler {
	return &Handler{svc: svc, tasks: tasks}
}

// RegisterRoutes mounts the generation endpoints.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	ai := api.Group("/ai", authMW)
	ai.POST("/generate", h.generate)
	ai.POST("/suggestions", h.enqueueSuggestions)
	ai.GET("/tasks/:id", h.getTask)
	ai.DELETE("/tasks/:id", h.cancelTask)
}

func sessionFromQuery(c *gin.Context) string {
	if session := c.Query("session"); session != "" {
		return session
	}
	return "default"
}

func (h *Handler) generate(c *gin.Context) {
	var dto GenerateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "topic is required")
		return
	}

	content, err := h.svc.Generate(c.Request.Context(), sessionFromQuery(c), dto)
	if err != nil {
		if errors.Is(err, ErrNoAPIKey) {
			response.BadRequestHelp(c, "no AI provider configured: add an API key first", APIKeyHelpURL)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"content": content})
}

func (h *Handler) enqueueSuggestions(c *gin.Context) {
	var dto enqueueSuggestionsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "topic is required")
		return
	}

	task, err := h.svc.EnqueueSuggestions(c.Request.Context(), sessionFromQuery(c), dto)
	if err != nil {
		if errors.Is(err, ErrNoAPIKey) {
			response.BadRequestHelp(c, "no AI provider configured: add an API key first", APIKeyHelpURL)
			return
		}
		response.BadRequest(c, err.Error())
		return
	}
	response.Created(c, task)
}

func (h *Handler) getTask(c *gin.Context) {
	task, err := h.tasks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if task == nil {
		response.NotFoundMsg(c, "task not found or expired")
		return
	}
	response.OK(c, task)
}

func (h *Handler) cancelTask(c *gin.Context) {
	if err := h.tasks.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.NoContent(c)
}
