package models

import "time"

const (
	CarAvailable   = "AVAILABLE"
	CarRented      = "RENTED"
	CarMaintenance = "MAINTENANCE"
	CarUnavailable = "UNAVAILABLE"
)

type Car struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Make        string  `gorm:"size:100;not null" json:"make"`
	Model       string  `gorm:"size:100;not null" json:"model"`
	Year        int     `json:"year"`
	PlateNumber string  `gorm:"size:20;uniqueIndex;not null" json:"plate_number"`
	Category    string  `gorm:"size:50" json:"category"`
	DailyRate   float64 `json:"daily_rate"`

	Features []string `gorm:"serializer:json" json:"features"`
	Location string   `gorm:"size:255" json:"location"`
	ImageURL string   `gorm:"size:255" json:"image_url"`

	// Operator-maintained flag. Booking-derived availability is the
	// authoritative signal for admission, this one is not consulted there.
	Status string `gorm:"size:20;default:'AVAILABLE'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidCarStatus(s string) bool {
	switch s {
	case CarAvailable, CarRented, CarMaintenance, CarUnavailable:
		return true
	}
	return false
}
