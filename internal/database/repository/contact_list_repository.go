package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/brightmark/marketing-dispatcher-backend/internal/apperrors"
	"github.com/brightmark/marketing-dispatcher-backend/internal/models"
)

type ContactListRepository struct {
	db *gorm.DB
}

func NewContactListRepository(db *gorm.DB) *ContactListRepository {
	return &ContactListRepository{db: db}
}

// GetByID retrieves a contact list by ID
func (r *ContactListRepository) GetByID(id string) (*models.ContactList, error) {
	var list models.ContactList
	err := r.db.First(&list, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: list %s", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &list, nil
}

// GetContacts retrieves the members of a list through the membership table.
func (r *ContactListRepository) GetContacts(listID string) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.
		Joins("JOIN list_contacts ON list_contacts.contact_id = contacts.id").
		Where("list_contacts.list_id = ?", listID).
		Order("list_contacts.created_at ASC").
		Find(&contacts).Error
	return contacts, err
}
