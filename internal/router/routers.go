package router

import (
	"time"

	"github.com/notemind/notemind/config"
	"github.com/notemind/notemind/internal/constants"
	"github.com/notemind/notemind/internal/handler"
	"github.com/notemind/notemind/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler   *handler.AuthHandler
	noteHandler   *handler.NoteHandler
	tagHandler    *handler.TagHandler
	healthHandler *handler.HealthHandler

	sessionMw *middleware.SessionMiddleware
	cfg       *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	note *handler.NoteHandler,
	tag *handler.TagHandler,
	health *handler.HealthHandler,
	sessionMw *middleware.SessionMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:   auth,
		noteHandler:   note,
		tagHandler:    tag,
		healthHandler: health,
		sessionMw:     sessionMw,
		cfg:           cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.cfg.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS(r.cfg.App.AllowedOrigin))

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.HealthCheck)

		api.Use(middleware.RateLimit(r.cfg.RateLimit.Request, time.Duration(r.cfg.RateLimit.Duration)*time.Second))

		r.authRoutes(api)
		r.noteRoutes(api)
		r.tagRoutes(api)
	}

	return router
}
