package models

import (
	"time"
)

// Webhook types the dispatcher routes on.
const (
	WebhookCampaignStatus  = "campaign_status"
	WebhookContactUpdate   = "contact_update"
	WebhookQRCodeGenerated = "qr_code_generated"
)

// Webhook is a registered inbound callback: its secret signs the raw request
// body (HMAC-SHA256) and its type selects the reconciliation routine.
type Webhook struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	WebhookID   string    `json:"webhook_id" gorm:"type:varchar(64);not null;uniqueIndex"`
	Secret      string    `json:"-" gorm:"type:varchar(128);not null"`
	WebhookType string    `json:"webhook_type" gorm:"type:varchar(50);not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the Webhook model
func (Webhook) TableName() string {
	return "webhooks"
}

// RegisterWebhookRequest registers a callback endpoint for the automation worker.
type RegisterWebhookRequest struct {
	WebhookID   string `json:"webhook_id" example:"evo-delivery-1"`
	WebhookType string `json:"webhook_type" binding:"required" example:"campaign_status"`
}

// RegisterWebhookResponse returns the callback URL and the signing secret.
// The secret is only shown once, at registration time.
type RegisterWebhookResponse struct {
	WebhookID     string `json:"webhook_id"`
	WebhookURL    string `json:"webhook_url"`
	WebhookSecret string `json:"webhook_secret"`
}

// WorkflowStatusRequest is the workflow execution status callback.
type WorkflowStatusRequest struct {
	ExecutionID string `json:"execution_id" binding:"required" example:"8231"`
	CampaignID  string `json:"campaign_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Status      string `json:"status" binding:"required" example:"started"`
	Message     string `json:"message"`
}
