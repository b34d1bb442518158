// Package httperr writes error responses for errors tagged with an apperr.Kind.
package httperr

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"todo_backend/internal/shared/apperr"
)

// Response is the JSON body of every error response.
type Response struct {
	Error string `json:"error"`
}

// Status maps an error kind to its HTTP status code.
func Status(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond aborts the request with the status and message derived from err.
// Internal errors are logged and reported with a generic message.
func Respond(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := Status(kind)

	switch kind {
	case apperr.KindInternal:
		slog.Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
		)
	case apperr.KindUnauthorized:
		c.Header("WWW-Authenticate", "Bearer")
	}

	c.AbortWithStatusJSON(status, Response{Error: apperr.Message(err)})
}

// BadRequest aborts with 400 and msg.
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{Error: msg})
}
