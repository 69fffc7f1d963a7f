package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brightmark/marketing-dispatcher-backend/internal/config"
	"github.com/brightmark/marketing-dispatcher-backend/internal/middleware"
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
	"github.com/brightmark/marketing-dispatcher-backend/internal/services"
)

type WebhookHandler struct {
	webhookService *services.WebhookService
	cfg            *config.IntegrationConfig
}

func NewWebhookHandler(webhookService *services.WebhookService, cfg *config.IntegrationConfig) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		cfg:            cfg,
	}
}

// HandleWebhook godoc
// @Summary Handle a typed n8n webhook callback
// @Description Route a signed callback to the reconciliation routine registered for the webhook id
// @Tags webhooks
// @Accept json
// @Produce json
// @Param webhook_id path string true "Webhook ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/n8n-webhook/{webhook_id} [post]
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	// Set by the signature middleware after verification.
	webhook := c.MustGet(middleware.ContextWebhook).(*models.Webhook)
	rawBody := c.MustGet(middleware.ContextWebhookRaw).([]byte)

	result, err := h.webhookService.Dispatch(webhook.WebhookType, rawBody)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"success": true,
		"message": result.Message,
	}
	if result.ContactID != "" {
		response["contact_id"] = result.ContactID
	}
	c.JSON(http.StatusOK, response)
}

// RegisterWebhook godoc
// @Summary Register a webhook
// @Description Register a typed callback endpoint and return its signing secret
// @Tags webhooks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.RegisterWebhookRequest true "Webhook registration"
// @Success 201 {object} models.RegisterWebhookResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/webhooks [post]
func (h *WebhookHandler) RegisterWebhook(c *gin.Context) {
	var req models.RegisterWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	webhook, err := h.webhookService.Register(req.WebhookID, req.WebhookType)
	if err != nil {
		respondError(c, err)
		return
	}

	webhookURL := fmt.Sprintf("%s/api/v1/n8n-webhook/%s",
		strings.TrimRight(h.cfg.CallbackBaseURL, "/"), webhook.WebhookID)

	c.JSON(http.StatusCreated, models.RegisterWebhookResponse{
		WebhookID:     webhook.WebhookID,
		WebhookURL:    webhookURL,
		WebhookSecret: webhook.Secret,
	})
}
