package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/rentwheels/fleet-api/internal/domain/booking"
	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Car / Profile
// --------------------------------------------------

func (r *BookingGormRepository) GetCar(
	ctx context.Context,
	id uint,
) (*models.Car, error) {

	var car models.Car
	if err := r.db.WithContext(ctx).First(&car, id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *BookingGormRepository) GetProfile(
	ctx context.Context,
	userID uint,
) (*models.CustomerProfile, error) {

	var profile models.CustomerProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// --------------------------------------------------
// Booking (admission + create)
// --------------------------------------------------

// conflictQuery selects bookings for the car, in a blocking status, whose
// inclusive [start_date, end_date] range intersects [start, end].
func (r *BookingGormRepository) conflictQuery(
	tx *gorm.DB,
	carID uint,
	start time.Time,
	end time.Time,
) *gorm.DB {

	q := tx.Model(&models.Booking{})
	if tx.Dialector.Name() == "postgres" {
		// Lock the conflicting set so two concurrent admissions for the
		// same car serialize instead of both passing the check.
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q.Where(
		"car_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
		carID,
		domain.BlockingStatusStrings(),
		end,
		start,
	)
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := r.conflictQuery(tx, b.CarID, b.StartDate, b.EndDate).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("booking_conflict")
		}

		return tx.Create(b).Error
	})
}

func (r *BookingGormRepository) HasBlockingConflict(
	ctx context.Context,
	carID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"car_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
			carID,
			domain.BlockingStatusStrings(),
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *BookingGormRepository) SavePaymentAndBooking(
	ctx context.Context,
	p *models.Payment,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Save(b).Error
	})
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
