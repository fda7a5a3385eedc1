package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	CarID uint `gorm:"index" json:"car_id"`
	Car   Car  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"car"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	TotalAmount float64 `json:"total_amount"`
	Status      string  `gorm:"size:20;default:'PENDING';index" json:"status"`

	PickupLocation string `gorm:"size:255" json:"pickup_location"`
	ReturnLocation string `gorm:"size:255" json:"return_location"`
	IsDelivery     bool   `gorm:"default:false" json:"is_delivery"`

	IDCardURL        string `gorm:"size:255" json:"id_card_url"`
	DriverLicenseURL string `gorm:"size:255" json:"driver_license_url"`

	AssignedDriver string `gorm:"size:100" json:"assigned_driver"`
	DriverPhone    string `gorm:"size:20" json:"driver_phone"`

	ProcessedByID *uint `json:"processed_by_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
