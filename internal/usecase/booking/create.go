package booking

import (
	"context"
	"time"

	"github.com/rentwheels/fleet-api/internal/audit"
	domain "github.com/rentwheels/fleet-api/internal/domain/booking"
	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/models"
)

const dateLayout = "2006-01-02"

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID uint
	CarID  uint

	StartDate string
	EndDate   string

	PickupLocation string
	ReturnLocation string
	IsDelivery     bool

	IDCardURL        string
	DriverLicenseURL string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// Documents can ride on the request or fall back to what the customer
	// already uploaded to their profile. Without both, no booking exists.
	idCard := in.IDCardURL
	license := in.DriverLicenseURL
	if idCard == "" || license == "" {
		if profile, err := uc.repo.GetProfile(ctx, in.UserID); err == nil {
			if idCard == "" {
				idCard = profile.IDCardURL
			}
			if license == "" {
				license = profile.DriverLicenseURL
			}
		}
	}
	if idCard == "" || license == "" {
		return nil, httperr.ErrBusiness("missing_documents")
	}

	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	if end.Before(start) {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if start.Before(today) {
		return nil, httperr.ErrBusiness("start_date_in_past")
	}

	car, err := uc.repo.GetCar(ctx, in.CarID)
	if err != nil {
		return nil, httperr.ErrBusiness("car_not_found")
	}

	// Whole days, inclusive of both ends: Jan 1 to Jan 3 bills 3 days.
	days := int(end.Sub(start).Hours()/24) + 1
	total := float64(days) * car.DailyRate

	b := &models.Booking{
		UserID:           in.UserID,
		CarID:            car.ID,
		StartDate:        start,
		EndDate:          end,
		TotalAmount:      total,
		Status:           string(domain.InitialStatus()),
		PickupLocation:   in.PickupLocation,
		ReturnLocation:   in.ReturnLocation,
		IsDelivery:       in.IsDelivery,
		IDCardURL:        idCard,
		DriverLicenseURL: license,
	}

	// Admission check and insert happen atomically inside the repository.
	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"car_id": car.ID,
			"start":  in.StartDate,
			"end":    in.EndDate,
		},
	})

	return b, nil
}
