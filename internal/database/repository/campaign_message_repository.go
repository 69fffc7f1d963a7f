package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

type CampaignMessageRepository struct {
	db *gorm.DB
}

func NewCampaignMessageRepository(db *gorm.DB) *CampaignMessageRepository {
	return &CampaignMessageRepository{db: db}
}

// Upsert inserts or updates the ledger row for (campaign_id, contact_id).
// The unique index makes concurrent and retried callbacks converge on a
// single row; sent_at is only touched when the new status carries one, so a
// late "failed" update does not erase an earlier delivery timestamp.
func (r *CampaignMessageRepository) Upsert(msg *models.CampaignMessage) error {
	now := time.Now()
	assignments := map[string]interface{}{
		"status":        msg.Status,
		"message_id":    msg.MessageID,
		"error_message": msg.ErrorMessage,
		"updated_at":    now,
	}
	if msg.SentAt != nil {
		assignments["sent_at"] = *msg.SentAt
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "campaign_id"}, {Name: "contact_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(msg).Error
}

// GetStats recomputes the aggregate counters for a campaign from its ledger
// rows in a single scan.
func (r *CampaignMessageRepository) GetStats(campaignID string) (*models.CampaignStats, error) {
	var stats models.CampaignStats
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total_messages,
			COUNT(*) FILTER (WHERE status IN ('sent', 'delivered')) AS total_sent,
			COUNT(*) FILTER (WHERE status = 'delivered') AS total_delivered,
			COUNT(*) FILTER (WHERE status = 'failed') AS total_failed,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending
		FROM campaign_messages
		WHERE campaign_id = ?`, campaignID).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetByCampaign retrieves all ledger rows for a campaign.
func (r *CampaignMessageRepository) GetByCampaign(campaignID string) ([]models.CampaignMessage, error) {
	var messages []models.CampaignMessage
	err := r.db.Where("campaign_id = ?", campaignID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
