package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/use-agent/threadster/config"
)

// CORS returns cross-origin middleware powered by gin-contrib/cors.
//
// Every origin is allowed unless cfg.AllowOrigin names a single origin, in
// which case /api/* only advertises that origin and other paths stay open.
// Requests from other origins are still served, just without
// Access-Control-Allow-Origin; the browser enforces the policy.
// Install it with Use on the engine so preflights for unregistered methods
// are still answered.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	open := cors.New(baseCORSConfig(nil))

	if cfg.AllowOrigin == "" || cfg.AllowOrigin == "*" {
		return open
	}

	restricted := cors.New(baseCORSConfig([]string{cfg.AllowOrigin}))

	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			if origin := c.GetHeader("Origin"); origin != "" && origin != cfg.AllowOrigin {
				c.Next()
				return
			}
			restricted(c)
			return
		}
		open(c)
	}
}

func baseCORSConfig(origins []string) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{"GET", "HEAD", "OPTIONS"}
	cc.MaxAge = 12 * time.Hour
	if len(origins) == 0 {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cc
}
