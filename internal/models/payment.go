package models

import "time"

const (
	PaymentReceived = "RECEIVED"
	PaymentRejected = "REJECTED"
)

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint    `gorm:"index" json:"booking_id"`
	Booking   Booking `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"booking"`

	Amount float64 `json:"amount"`

	// "MOBILE_MONEY" or "BANK_TRANSFER"
	Method string `gorm:"size:30" json:"method"`
	Status string `gorm:"size:20;default:'RECEIVED'" json:"status"`

	// Internal reference assigned at submission time.
	Reference string `gorm:"size:64;uniqueIndex" json:"reference"`

	// Operator-side id: mobile-money transaction id or bank slip number,
	// plus the paying account/phone it came from.
	TransactionID   string `gorm:"size:100" json:"transaction_id"`
	PayerIdentifier string `gorm:"size:100" json:"payer_identifier"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
