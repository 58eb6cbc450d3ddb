package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rise-labs/shelf-backend/internal/service"
	"go.uber.org/zap"
)

// writeError maps service errors to a status and a client-safe message.
// Unclassified errors are logged and reported as a generic 500.
func writeError(c *gin.Context, log *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token expired, login again"})
	case errors.Is(err, service.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request cancelled"})
	default:
		log.Errorw("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, service.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "rejected"
	case errors.Is(err, service.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
