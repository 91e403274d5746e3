package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/threadster/api/handler"
	"github.com/use-agent/threadster/api/middleware"
	"github.com/use-agent/threadster/config"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain (global):
//
//	RequestLogger → Recovery → CORS
//
// CORS is global rather than per-group so OPTIONS preflights, which have no
// registered route, still receive CORS headers.
func NewRouter(sc handler.ThreadScraper, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORS))

	r.NoRoute(handler.NotFound())

	r.GET("/", handler.Home())

	api := r.Group("/api")
	api.GET("/health", handler.Health(startTime))
	api.GET("/threadster", handler.Thread(sc))

	return r
}
