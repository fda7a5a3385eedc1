package booking

import (
	"strings"

	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Verify(b *models.Booking, staffID uint) error {
	return apply(b, ActionVerify, &staffID)
}

func Reject(b *models.Booking, staffID uint) error {
	return apply(b, ActionReject, &staffID)
}

// Approve requires a driver name when the booking asked for delivery.
func Approve(b *models.Booking, staffID uint, driver string) error {
	driver = strings.TrimSpace(driver)
	if b.IsDelivery && driver == "" && b.AssignedDriver == "" {
		return httperr.ErrBusiness("driver_required")
	}
	if driver != "" {
		b.AssignedDriver = driver
	}
	return apply(b, ActionApprove, &staffID)
}

func Pay(b *models.Booking) error {
	return apply(b, ActionPay, b.ProcessedByID)
}

// Start moves the rental to ACTIVE. Delivery bookings must carry both the
// driver name and a contact phone by this point.
func Start(b *models.Booking, staffID uint, driver, driverPhone string) error {
	if driver = strings.TrimSpace(driver); driver != "" {
		b.AssignedDriver = driver
	}
	if driverPhone = strings.TrimSpace(driverPhone); driverPhone != "" {
		b.DriverPhone = driverPhone
	}
	if b.IsDelivery && (b.AssignedDriver == "" || b.DriverPhone == "") {
		return httperr.ErrBusiness("driver_required")
	}
	return apply(b, ActionStart, &staffID)
}

func Complete(b *models.Booking, staffID uint) error {
	return apply(b, ActionComplete, &staffID)
}

// Cancel is customer- or staff-initiated; staffID is nil for the owner.
func Cancel(b *models.Booking, staffID *uint) error {
	return apply(b, ActionCancel, staffID)
}

func apply(b *models.Booking, action Action, processedBy *uint) error {
	next, err := Next(Status(b.Status), action)
	if err != nil {
		return err
	}
	b.Status = string(next)
	if processedBy != nil {
		b.ProcessedByID = processedBy
	}
	return nil
}
