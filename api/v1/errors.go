package v1

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmatt-net/site/services"
	"github.com/pkg/errors"
)

// respondServiceError maps service errors onto the API's error envelope
func respondServiceError(c *gin.Context, action string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrDuplicateSlug):
		status = http.StatusConflict
	default:
		slog.Error(action+" failed", "err", err)
	}

	c.JSON(status, gin.H{
		"status":  "error",
		"message": "Failed to " + action + ": " + err.Error(),
	})
}
