package models

import (
	"time"
)

// ContactList represents a named collection of contacts owned by an operator.
type ContactList struct {
	ID          string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID      string `json:"user_id" gorm:"not null;index;type:uuid"`
	Title       string `json:"title" gorm:"type:varchar(255);not null"`
	Description string `json:"description" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the ContactList model
func (ContactList) TableName() string {
	return "contact_lists"
}

// ListContact is a membership row linking a contact to a list. The dispatcher
// core only reads membership; rows are written by the import tooling.
type ListContact struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ListID    string    `json:"list_id" gorm:"not null;type:uuid;uniqueIndex:idx_list_contact"`
	ContactID string    `json:"contact_id" gorm:"not null;type:uuid;uniqueIndex:idx_list_contact"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the ListContact model
func (ListContact) TableName() string {
	return "list_contacts"
}
