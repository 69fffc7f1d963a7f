package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
)

// respondError maps application errors onto HTTP responses. Every inbound
// error surfaces as a structured body; nothing is swallowed.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnsupportedWebhookType),
		errors.Is(err, apperrors.ErrIncompleteCampaign),
		errors.Is(err, apperrors.ErrInvalidTransition):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrTriggerFailed):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
