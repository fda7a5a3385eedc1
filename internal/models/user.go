package models

import "time"

const (
	RoleCustomer = "CUSTOMER"
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'CUSTOMER'" json:"role"`

	Profile *CustomerProfile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profile,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsStaff(role string) bool {
	return role == RoleEmployee || role == RoleAdmin
}

func IsValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}
