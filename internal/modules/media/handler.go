package media

import (
	"github.com/gin-gonic/gin"
	"github.com/postwave/composer-core/internal/modules/composer"
	"github.com/postwave/composer-core/internal/pkg/response"
)

// 100 MiB, above LinkedIn's own video ceiling.
const maxUploadBytes = 100 << 20

// Handler exposes draft media upload and removal.
type Handler struct {
	svc   *Service
	store *composer.Store
}

func NewHandler(svc *Service, store *composer.Store) *Handler {
	return &Handler{svc: svc, store: store}
}

// RegisterRoutes mounts the media endpoints under the drafts group.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	drafts := api.Group("/drafts", authMW)
	drafts.POST("/:session/media", h.upload)
	drafts.DELETE("/:session/media/:id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "multipart field 'file' is required")
		return
	}
	if file.Size > maxUploadBytes {
		response.UnprocessableEntity(c, "file is too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer src.Close()

	sessionID := c.Param("session")
	ref, err := h.svc.Upload(c.Request.Context(), sessionID, file.Filename,
		file.Header.Get("Content-Type"), src, file.Size)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	h.store.AttachMedia(sessionID, ref)
	response.Created(c, ref)
}

// remove detaches the ref and lets the store release the stored object.
// Removing the same id twice is a 404 the second time.
func (h *Handler) remove(c *gin.Context) {
	_, ok := h.store.RemoveMedia(c.Param("session"), c.Param("id"))
	if !ok {
		response.NotFoundMsg(c, "media not attached to this draft")
		return
	}
	response.NoContent(c)
}
