package http

import (
	stdhttp "net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wishwall-server/internal/config"
	"github.com/vovakirdan/wishwall-server/internal/core"
)

// NewServer builds the HTTP server with the REST, WebSocket and static
// routes.
func NewServer(service *core.Service, registry *core.Registry, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))

	handlers := NewWishHandlers(service, logger)
	limiter := newRateLimiter(cfg.WriteRateLimit)

	router.GET("/health", healthHandler)

	api := router.Group("/api")
	api.GET("/wishes", handlers.ListWishes)
	api.POST("/wishes", RateLimitMiddleware(limiter), handlers.AddWish)
	api.DELETE("/wishes/:id", RateLimitMiddleware(limiter), handlers.DeleteWish)

	router.GET("/ws", gin.WrapH(NewWSHandler(registry, logger)))

	if cfg.StaticDir != "" {
		router.Static("/static", cfg.StaticDir)
		index := filepath.Join(cfg.StaticDir, "index.html")
		// Any unmatched route serves the front-end entry point.
		router.NoRoute(func(c *gin.Context) {
			c.File(index)
		})
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
