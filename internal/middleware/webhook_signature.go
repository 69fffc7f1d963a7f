package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

// Context keys set by WebhookSignatureAuth for the downstream handler.
const (
	ContextWebhook    = "webhook"
	ContextWebhookRaw = "webhook_raw_body"
)

// WebhookSecretStore looks up webhook registrations for signature checks.
type WebhookSecretStore interface {
	GetByWebhookID(webhookID string) (*models.Webhook, error)
}

// WebhookSignatureAuth verifies the HMAC-SHA256 signature over the raw
// request body, keyed by the secret registered for the webhook_id path
// parameter. Unknown ids and bad signatures both answer 403 so callers
// cannot enumerate registered ids.
func WebhookSignatureAuth(store WebhookSecretStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		webhookID := c.Param("webhook_id")

		webhook, err := store.GetByWebhookID(webhookID)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Invalid webhook ID",
			})
			c.Abort()
			return
		}

		signature := c.GetHeader("X-N8N-Webhook-Signature")
		if signature == "" {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Webhook signature is required",
			})
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Failed to read request body",
			})
			c.Abort()
			return
		}
		// Restore the body for the handler.
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		mac := hmac.New(sha256.New, []byte(webhook.Secret))
		mac.Write(body)
		expected := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(expected), []byte(signature)) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Invalid webhook signature",
			})
			c.Abort()
			return
		}

		c.Set(ContextWebhook, webhook)
		c.Set(ContextWebhookRaw, body)
		c.Next()
	}
}
