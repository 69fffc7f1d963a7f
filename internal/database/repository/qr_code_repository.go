package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

type QRCodeRepository struct {
	db *gorm.DB
}

func NewQRCodeRepository(db *gorm.DB) *QRCodeRepository {
	return &QRCodeRepository{db: db}
}

// UpdateFields updates selected QR code columns atomically.
func (r *QRCodeRepository) UpdateFields(id string, fields map[string]interface{}) error {
	result := r.db.Model(&models.QRCode{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: qr code %s", apperrors.ErrNotFound, id)
	}
	return nil
}
