package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create creates a new contact
func (r *ContactRepository) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

// GetByID retrieves a contact by ID
func (r *ContactRepository) GetByID(id string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contact %s", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &contact, nil
}

// GetByExternalID retrieves a contact by the automation worker's contact id.
func (r *ContactRepository) GetByExternalID(externalID string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, "external_id = ?", externalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contact with external_id %s", apperrors.ErrNotFound, externalID)
		}
		return nil, err
	}
	return &contact, nil
}

// Update saves the full contact record
func (r *ContactRepository) Update(contact *models.Contact) error {
	return r.db.Save(contact).Error
}
