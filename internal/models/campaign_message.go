package models

import (
	"time"
)

// CampaignMessage is one ledger row tracking delivery of a campaign's message
// to a single contact. The unique index on (campaign_id, contact_id) makes the
// status callback an upsert, so worker retries are safe.
type CampaignMessage struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	CampaignID   string     `json:"campaign_id" gorm:"not null;type:uuid;uniqueIndex:idx_campaign_contact;index"`
	ContactID    string     `json:"contact_id" gorm:"not null;type:uuid;uniqueIndex:idx_campaign_contact"`
	Status       string     `json:"status" gorm:"type:varchar(50);not null;default:'pending'"`
	MessageID    string     `json:"message_id" gorm:"type:varchar(255)"`
	ErrorMessage string     `json:"error_message" gorm:"type:text"`
	SentAt       *time.Time `json:"sent_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the CampaignMessage model
func (CampaignMessage) TableName() string {
	return "campaign_messages"
}

// UpdateMessageStatusRequest is the per-contact delivery status callback sent
// by the automation worker while it processes a campaign batch.
type UpdateMessageStatusRequest struct {
	CampaignID   string `json:"campaign_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	ContactID    string `json:"contact_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440002"`
	Status       string `json:"status" binding:"required" example:"delivered"`
	MessageID    string `json:"message_id" example:"wamid.HBgv=="`
	ErrorMessage string `json:"error_message"`
}

// CampaignStats holds the aggregate counters recomputed from the ledger.
type CampaignStats struct {
	TotalMessages  int `json:"total_messages"`
	TotalSent      int `json:"total_sent"`
	TotalDelivered int `json:"total_delivered"`
	TotalFailed    int `json:"total_failed"`
	Pending        int `json:"pending"`
}
