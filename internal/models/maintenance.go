package models

import "time"

const (
	MaintenanceScheduled  = "SCHEDULED"
	MaintenanceInProgress = "IN_PROGRESS"
	MaintenanceCompleted  = "COMPLETED"
)

type Maintenance struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CarID uint `gorm:"index" json:"car_id"`
	Car   Car  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"car"`

	Description string  `gorm:"size:255" json:"description"`
	Cost        float64 `json:"cost"`
	Status      string  `gorm:"size:20;default:'SCHEDULED'" json:"status"`

	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidMaintenanceStatus(s string) bool {
	switch s {
	case MaintenanceScheduled, MaintenanceInProgress, MaintenanceCompleted:
		return true
	}
	return false
}
