package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create creates a new campaign
func (r *CampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// GetByID retrieves a campaign by ID
func (r *CampaignRepository) GetByID(id string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.First(&campaign, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: campaign %s", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &campaign, nil
}

// GetByUserID retrieves a page of campaigns for a specific user along with
// the total count.
func (r *CampaignRepository) GetByUserID(userID string, limit, offset int) ([]*models.Campaign, int64, error) {
	var total int64
	if err := r.db.Model(&models.Campaign{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []*models.Campaign
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&campaigns).Error
	return campaigns, total, err
}

// UpdateFields updates selected campaign columns atomically. Used by all
// callback paths so concurrent writers never clobber unrelated fields.
func (r *CampaignRepository) UpdateFields(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.Campaign{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: campaign %s", apperrors.ErrNotFound, id)
	}
	return nil
}

// Delete removes a campaign and its ledger rows in one transaction.
func (r *CampaignRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&models.CampaignMessage{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Campaign{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: campaign %s", apperrors.ErrNotFound, id)
		}
		return nil
	})
}
