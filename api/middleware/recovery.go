package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/threadster/models"
)

// Recovery turns a panic anywhere in the handler chain into the catch-all
// 500 {ok:false, message:"Error occurred: ..."} response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		fault := models.NewUnexpectedFault(fmt.Errorf("%v", recovered))
		slog.Error("panic recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, fault.ToResponse())
	})
}
