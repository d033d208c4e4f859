// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// User-visible failures are plain status-coded text, not structured API
// payloads. Handlers map domain errors onto these.

func BadRequestResponse(c *gin.Context, message string) {
	if message == "" {
		message = "invalid request"
	}
	c.String(http.StatusBadRequest, message)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "unauthorized"
	}
	c.String(http.StatusUnauthorized, message)
}

func NotFoundResponse(c *gin.Context, message string) {
	if message == "" {
		message = "not found"
	}
	c.String(http.StatusNotFound, message)
}

func ConflictResponse(c *gin.Context, message string) {
	c.String(http.StatusConflict, message)
}

func InternalErrorResponse(c *gin.Context) {
	c.String(http.StatusInternalServerError, "internal server error")
}
