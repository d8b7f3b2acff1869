package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// ErrorHandler middleware turns panics into a 500 error envelope
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		message := "An unexpected error occurred"
		if err, ok := recovered.(string); ok {
			message = err
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "INTERNAL_ERROR", Message: message},
		})
	})
}

// Auth middleware checks the Authorization header against token. The header may
// carry the bare token or "Bearer <token>".
func Auth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, http.StatusUnauthorized, "UNAUTHENTICATED", "missing authorization header")
			return
		}
		if subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(header, "Bearer ")), []byte(token)) != 1 {
			abort(c, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid token")
			return
		}
		c.Next()
	}
}

// writeError maps a domain error onto an HTTP status and error code
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		abort(c, http.StatusBadRequest, "INVALID_CONFIGURATION", err.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		abort(c, http.StatusBadRequest, "INVALID_AMOUNT", err.Error())
	case errors.Is(err, domain.ErrInvalidIndex):
		abort(c, http.StatusBadRequest, "INVALID_INDEX", err.Error())
	case errors.Is(err, domain.ErrInvalidProjection):
		abort(c, http.StatusBadRequest, "INVALID_PROJECTION", err.Error())
	case errors.Is(err, domain.ErrDuplicateAccount):
		abort(c, http.StatusConflict, "DUPLICATE_ACCOUNT", err.Error())
	case errors.Is(err, domain.ErrUnknownAccount):
		abort(c, http.StatusNotFound, "UNKNOWN_ACCOUNT", err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		abort(c, http.StatusNotFound, "SESSION_NOT_FOUND", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		abort(c, http.StatusServiceUnavailable, "CANCELLED", err.Error())
	default:
		abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func badRequest(c *gin.Context, err error) {
	abort(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
}
