package booking

import (
	"context"

	"github.com/rentwheels/fleet-api/internal/audit"
	domain "github.com/rentwheels/fleet-api/internal/domain/booking"
	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/models"
)

// CancelBooking is the customer-facing cancel: only the booking's owner may
// use it (staff cancel through the transition usecase).
type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
	userID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if b.UserID != userID {
		return nil, httperr.ErrBusiness("not_booking_owner")
	}

	if err := domain.Cancel(b, nil); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
