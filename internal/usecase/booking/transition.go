package booking

import (
	"context"

	"github.com/rentwheels/fleet-api/internal/audit"
	domain "github.com/rentwheels/fleet-api/internal/domain/booking"
	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/models"
)

// ======================================================
// STAFF TRANSITION
// ======================================================

type TransitionInput struct {
	BookingID uint
	StaffID   uint
	Action    domain.Action

	// Driver details, consumed by approve/start when the booking
	// requested delivery.
	Driver      string
	DriverPhone string
}

type TransitionBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransitionBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransitionBooking {
	return &TransitionBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *TransitionBooking) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	switch in.Action {
	case domain.ActionVerify:
		err = domain.Verify(b, in.StaffID)
	case domain.ActionReject:
		err = domain.Reject(b, in.StaffID)
	case domain.ActionApprove:
		err = domain.Approve(b, in.StaffID, in.Driver)
	case domain.ActionStart:
		err = domain.Start(b, in.StaffID, in.Driver, in.DriverPhone)
	case domain.ActionComplete:
		err = domain.Complete(b, in.StaffID)
	case domain.ActionCancel:
		err = domain.Cancel(b, &in.StaffID)
	default:
		err = httperr.ErrBusiness("unknown_action")
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.StaffID,
		Action:   "booking_" + string(in.Action),
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"status": b.Status},
	})

	return b, nil
}
