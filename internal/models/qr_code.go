package models

import (
	"time"
)

// QRCode tracks an asynchronously generated QR code image. Generation happens
// in the automation worker; this record is updated by the qr_code_generated
// webhook when the image is ready.
type QRCode struct {
	ID          string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID      string     `json:"user_id" gorm:"not null;index;type:uuid"`
	Label       string     `json:"label" gorm:"type:varchar(255)"`
	TargetURL   string     `json:"target_url" gorm:"type:text"`
	ImageURL    string     `json:"image_url" gorm:"type:text"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:'pending'"`
	GeneratedAt *time.Time `json:"generated_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the QRCode model
func (QRCode) TableName() string {
	return "qr_codes"
}
