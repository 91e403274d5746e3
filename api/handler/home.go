package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/threadster/models"
)

// Banner is the plain-text body of GET /.
const Banner = "✅ Threadster API is running! Use /api/threadster?id=THREAD_ID_OR_LINK"

// Home returns a handler for GET /.
func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, Banner)
	}
}

// NotFound answers unknown routes in the API's error shape.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{OK: false, Message: "Not found"})
	}
}
