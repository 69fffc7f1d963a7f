package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err        error
		wantStatus int
	}{
		{fmt.Errorf("%w: campaign c1", apperrors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: bad status", apperrors.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: bulk_export", apperrors.ErrUnsupportedWebhookType), http.StatusBadRequest},
		{apperrors.ErrIncompleteCampaign, http.StatusBadRequest},
		{fmt.Errorf("%w: cannot pause a draft campaign", apperrors.ErrInvalidTransition), http.StatusBadRequest},
		{apperrors.ErrNotConfigured, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: n8n returned status 500", apperrors.ErrTriggerFailed), http.StatusBadGateway},
		{errors.New("database on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}
