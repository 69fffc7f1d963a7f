package models

import (
	"time"
)

// Campaign represents a bulk-message dispatch job targeting a contact list
// with a message template. The aggregate counters are a cache recomputed from
// the campaign message ledger; only the stats service writes them.
type Campaign struct {
	ID     string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID string         `json:"user_id" gorm:"not null;index;type:uuid"`
	Title  string         `json:"title" gorm:"type:varchar(255);not null"`
	Status CampaignStatus `json:"status" gorm:"type:varchar(20);index;default:'draft'"`

	// References resolved at trigger time
	ListID     *string `json:"list_id" gorm:"type:uuid;index"`
	TemplateID *string `json:"template_id" gorm:"type:uuid;index"`

	// Scheduling
	IsScheduled   bool       `json:"is_scheduled" gorm:"default:false"`
	ScheduledTime *time.Time `json:"scheduled_time"`

	// Aggregate counters, recomputed from the ledger
	TotalMessages  int `json:"total_messages" gorm:"default:0"`
	TotalSent      int `json:"total_sent" gorm:"default:0"`
	TotalDelivered int `json:"total_delivered" gorm:"default:0"`
	TotalFailed    int `json:"total_failed" gorm:"default:0"`

	// Workflow execution linkage reported by the automation worker
	WorkflowExecutionID string     `json:"workflow_execution_id" gorm:"type:varchar(255)"`
	WorkflowStatus      string     `json:"workflow_status" gorm:"type:varchar(50)"`
	WorkflowMessage     string     `json:"workflow_message" gorm:"type:text"`
	WorkflowUpdatedAt   *time.Time `json:"workflow_updated_at"`

	StartedAt         *time.Time `json:"started_at"`
	SentAt            *time.Time `json:"sent_at"`
	CompletedAt       *time.Time `json:"completed_at"`
	LastUpdatedAt     *time.Time `json:"last_updated_at"`
	LastStatusMessage string     `json:"last_status_message" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// CreateCampaignRequest represents the request to create a new campaign
type CreateCampaignRequest struct {
	Title         string     `json:"title" binding:"required" example:"September promo blast"`
	ListID        *string    `json:"list_id" example:"550e8400-e29b-41d4-a716-446655440010"`
	TemplateID    *string    `json:"template_id" example:"550e8400-e29b-41d4-a716-446655440011"`
	IsScheduled   bool       `json:"is_scheduled" example:"false"`
	ScheduledTime *time.Time `json:"scheduled_time" example:"2025-09-14T08:00:00Z"`
}

// CampaignResponse represents the response for campaign operations
type CampaignResponse struct {
	ID                string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID            string     `json:"user_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	Title             string     `json:"title" example:"September promo blast"`
	Status            string     `json:"status" example:"processing"`
	ListID            *string    `json:"list_id"`
	TemplateID        *string    `json:"template_id"`
	IsScheduled       bool       `json:"is_scheduled"`
	ScheduledTime     *time.Time `json:"scheduled_time"`
	TotalMessages     int        `json:"total_messages" example:"120"`
	TotalSent         int        `json:"total_sent" example:"118"`
	TotalDelivered    int        `json:"total_delivered" example:"110"`
	TotalFailed       int        `json:"total_failed" example:"2"`
	StartedAt         *time.Time `json:"started_at"`
	SentAt            *time.Time `json:"sent_at"`
	CompletedAt       *time.Time `json:"completed_at"`
	LastStatusMessage string     `json:"last_status_message"`
	CreatedAt         string     `json:"created_at" example:"2025-09-01T10:30:00Z"`
	UpdatedAt         string     `json:"updated_at" example:"2025-09-01T10:30:00Z"`
}

// CampaignDetailResponse is the integration-facing campaign payload consumed
// by the automation worker when it resolves a triggered campaign.
type CampaignDetailResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Status          string     `json:"status"`
	ScheduledTime   *time.Time `json:"scheduled_time"`
	ListID          *string    `json:"list_id"`
	TemplateID      *string    `json:"template_id"`
	TemplateContent string     `json:"template_content"`
	CreatedAt       string     `json:"created_at"`
	AuthorID        string     `json:"author_id"`
}
