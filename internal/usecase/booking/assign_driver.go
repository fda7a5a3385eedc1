package booking

import (
	"context"
	"strings"

	"github.com/rentwheels/fleet-api/internal/audit"
	domain "github.com/rentwheels/fleet-api/internal/domain/booking"
	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/models"
)

type AssignDriver struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAssignDriver(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AssignDriver {
	return &AssignDriver{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AssignDriver) Execute(
	ctx context.Context,
	bookingID uint,
	staffID uint,
	driver string,
	driverPhone string,
) (*models.Booking, error) {

	driver = strings.TrimSpace(driver)
	if driver == "" {
		return nil, httperr.ErrBusiness("driver_required")
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if domain.Status(b.Status).IsTerminal() {
		return nil, httperr.ErrBusiness("invalid_transition")
	}

	b.AssignedDriver = driver
	if driverPhone = strings.TrimSpace(driverPhone); driverPhone != "" {
		b.DriverPhone = driverPhone
	}
	b.ProcessedByID = &staffID

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &staffID,
		Action:   "driver_assigned",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"driver": driver},
	})

	return b, nil
}
