package models

import (
	"time"

	"gorm.io/datatypes"
)

// Contact represents a message recipient. ExternalID correlates the contact
// with the automation worker's own contact identity; CustomFields is an
// open-ended attribute bag for list-specific data.
type Contact struct {
	ID           string            `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name         string            `json:"name" gorm:"type:varchar(255);not null"`
	FirstName    string            `json:"first_name" gorm:"type:varchar(255)"`
	LastName     string            `json:"last_name" gorm:"type:varchar(255)"`
	PhoneNumber  string            `json:"phone_number" gorm:"type:varchar(50);index"`
	Email        string            `json:"email" gorm:"type:varchar(255)"`
	ExternalID   string            `json:"external_id" gorm:"type:varchar(255);index"`
	CustomFields datatypes.JSONMap `json:"custom_fields" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Contact model
func (Contact) TableName() string {
	return "contacts"
}

// ContactResponse is the integration-facing contact payload returned when the
// automation worker fetches the members of a list.
type ContactResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	PhoneNumber  string            `json:"phone_number"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Email        string            `json:"email"`
	CustomFields map[string]string `json:"custom_fields"`
}

// ToResponse converts a Contact into its integration payload.
func (c *Contact) ToResponse() ContactResponse {
	custom := make(map[string]string, len(c.CustomFields))
	for k, v := range c.CustomFields {
		if s, ok := v.(string); ok {
			custom[k] = s
		}
	}
	return ContactResponse{
		ID:           c.ID,
		Name:         c.Name,
		PhoneNumber:  c.PhoneNumber,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		CustomFields: custom,
	}
}
