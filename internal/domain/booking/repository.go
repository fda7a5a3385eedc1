package booking

import (
	"context"
	"time"

	"github.com/rentwheels/fleet-api/internal/models"
)

type Repository interface {
	// -------- Car --------
	GetCar(
		ctx context.Context,
		id uint,
	) (*models.Car, error)

	// -------- Profile --------
	GetProfile(
		ctx context.Context,
		userID uint,
	) (*models.CustomerProfile, error)

	// -------- Booking (admission + create) --------

	// CreateBooking runs the admission check and the insert as one unit:
	// inside a transaction, conflicting rows are counted under a row lock
	// and the insert only happens when the count is zero. Returns the
	// "booking_conflict" business error on overlap.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	HasBlockingConflict(
		ctx context.Context,
		carID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Payment --------

	// SavePaymentAndBooking persists the payment row and the booking's
	// status change in a single transaction.
	SavePaymentAndBooking(
		ctx context.Context,
		p *models.Payment,
		b *models.Booking,
	) error
}
