package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

type WebhookRepository struct {
	db *gorm.DB
}

func NewWebhookRepository(db *gorm.DB) *WebhookRepository {
	return &WebhookRepository{db: db}
}

// GetByWebhookID retrieves a webhook registration by its public identifier.
func (r *WebhookRepository) GetByWebhookID(webhookID string) (*models.Webhook, error) {
	var webhook models.Webhook
	err := r.db.First(&webhook, "webhook_id = ?", webhookID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: webhook %s", apperrors.ErrNotFound, webhookID)
		}
		return nil, err
	}
	return &webhook, nil
}

// Save registers a webhook, replacing the secret and type when the
// webhook_id is already registered.
func (r *WebhookRepository) Save(webhook *models.Webhook) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "webhook_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"secret", "webhook_type"}),
	}).Create(webhook).Error
}
