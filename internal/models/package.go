package models

import "time"

type Package struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Price    float64 `json:"price"`
	Period   string  `gorm:"size:50" json:"period"`
	Category string  `gorm:"size:50" json:"category"`

	Features []string `gorm:"serializer:json" json:"features"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
