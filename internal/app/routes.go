package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/postwave/composer-core/internal/middleware"
	"github.com/postwave/composer-core/internal/modules/composer"
	"github.com/postwave/composer-core/internal/modules/generation"
	"github.com/postwave/composer-core/internal/modules/media"
	"github.com/postwave/composer-core/internal/modules/publish"
	"github.com/postwave/composer-core/internal/modules/settings"
	"github.com/postwave/composer-core/internal/pkg/linkedin"
	pkgredis "github.com/postwave/composer-core/internal/pkg/redis"
	"github.com/postwave/composer-core/internal/pkg/response"
	"github.com/postwave/composer-core/internal/pkg/taskqueue"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(rc *pkgredis.Client, store *composer.Store, mediaSvc *media.Service) {
	r := a.router
	cfg := a.cfg
	authMW := middleware.Auth(cfg)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":     "composer-core",
		"version":  "1.0.0",
		"homepage": "https://github.com/postwave/composer-core",
		"issues":   "https://github.com/postwave/composer-core/issues",
	}

	taskSvc := taskqueue.NewService(rc)
	sharer := linkedin.New(cfg.LinkedIn.Endpoint, cfg.LinkedIn.Token)

	genSvc := generation.NewService(a.db, cfg, taskSvc, a.logger.Named("GenerationService"))
	pubSvc := publish.NewService(a.db, store, sharer, cfg, a.logger.Named("PublishService"))

	a.registerCronJobs(genSvc, pubSvc, taskSvc)

	r.GET("/", func(c *gin.Context) {
		response.OK(c, appInfo)
	})

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth(cfg))
	api.Use(middleware.RateLimit(rc.Raw()))

	api.GET("/ping", func(c *gin.Context) {
		response.OK(c, gin.H{"pong": true})
	})
	api.GET("/uptime", func(c *gin.Context) {
		response.OK(c, gin.H{"uptime": time.Since(processStart).Truncate(time.Second).String()})
	})

	composer.NewHandler(store, cfg).RegisterRoutes(api, authMW)
	generation.NewHandler(genSvc, taskSvc).RegisterRoutes(api, authMW)
	publish.NewHandler(pubSvc, a.db).RegisterRoutes(api, authMW)
	media.NewHandler(mediaSvc, store).RegisterRoutes(api, authMW)
	settings.NewHandler(cfg).RegisterRoutes(api, authMW)
}
