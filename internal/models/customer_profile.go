package models

import "time"

type CustomerProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex" json:"user_id"`

	FirstName   string `gorm:"size:100" json:"first_name"`
	LastName    string `gorm:"size:100" json:"last_name"`
	PhoneNumber string `gorm:"size:20" json:"phone_number"`
	Address     string `gorm:"size:255" json:"address"`

	IDCardURL        string `gorm:"size:255" json:"id_card_url"`
	DriverLicenseURL string `gorm:"size:255" json:"driver_license_url"`
	AgreementSigned  bool   `gorm:"default:false" json:"agreement_signed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
