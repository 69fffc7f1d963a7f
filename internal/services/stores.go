package services

import (
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

// Store interfaces consumed by the services. The gorm repositories in
// internal/database/repository implement them; tests substitute in-memory
// fakes.

type CampaignStore interface {
	Create(campaign *models.Campaign) error
	GetByID(id string) (*models.Campaign, error)
	GetByUserID(userID string, limit, offset int) ([]*models.Campaign, int64, error)
	UpdateFields(id string, fields map[string]interface{}) error
	Delete(id string) error
}

type ContactStore interface {
	Create(contact *models.Contact) error
	GetByID(id string) (*models.Contact, error)
	GetByExternalID(externalID string) (*models.Contact, error)
	Update(contact *models.Contact) error
}

type ContactListStore interface {
	GetByID(id string) (*models.ContactList, error)
	GetContacts(listID string) ([]models.Contact, error)
}

type TemplateStore interface {
	GetByID(id string) (*models.Template, error)
}

type MessageStore interface {
	Upsert(msg *models.CampaignMessage) error
	GetStats(campaignID string) (*models.CampaignStats, error)
	GetByCampaign(campaignID string) ([]models.CampaignMessage, error)
}

type WebhookStore interface {
	GetByWebhookID(webhookID string) (*models.Webhook, error)
	Save(webhook *models.Webhook) error
}

type QRCodeStore interface {
	UpdateFields(id string, fields map[string]interface{}) error
}
