package settings

import (
	"github.com/gin-gonic/gin"
	"github.com/postwave/composer-core/internal/config"
	"github.com/postwave/composer-core/internal/pkg/response"
)

// Handler exposes read-only runtime settings for composer surfaces.
type Handler struct {
	cfg *config.AppConfig
}

func NewHandler(cfg *config.AppConfig) *Handler {
	return &Handler{cfg: cfg}
}

// RegisterRoutes mounts the settings endpoints.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authMW gin.HandlerFunc) {
	settings := api.Group("/settings", authMW)
	settings.GET("/api-keys", h.apiKeys)
	settings.GET("/composer", h.composer)
}

// apiKeys reports key presence only. Key material never leaves the server.
func (h *Handler) apiKeys(c *gin.Context) {
	providers := make([]gin.H, 0, len(h.cfg.AI.Providers))
	for _, p := range h.cfg.AI.Providers {
		providers = append(providers, gin.H{
			"id":      p.ID,
			"name":    p.Name,
			"type":    p.Type,
			"enabled": p.Enabled,
			"hasKey":  p.APIKey != "",
		})
	}
	response.OK(c, gin.H{
		"hasKey":    h.cfg.HasAIKey(),
		"providers": providers,
	})
}

func (h *Handler) composer(c *gin.Context) {
	response.OK(c, gin.H{
		"maxPostLength":      h.cfg.Composer.MaxPostLength,
		"autoSaveDebounceMs": h.cfg.Composer.AutoSaveDebounceMS,
		"postingEnabled":     h.cfg.PostingEnabled(),
	})
}
