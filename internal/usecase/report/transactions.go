package report

import (
	"context"
	"time"

	"github.com/rentwheels/fleet-api/internal/models"
)

type TransactionFilter struct {
	From  *time.Time
	To    *time.Time
	Page  int
	Limit int
}

type TransactionPage struct {
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Total    int64            `json:"total"`
	Payments []models.Payment `json:"payments"`
}

func (s *Service) Transactions(ctx context.Context, f TransactionFilter) (*TransactionPage, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}

	q := s.db.WithContext(ctx).Model(&models.Payment{})

	if f.From != nil {
		q = q.Where("payments.created_at >= ?", *f.From)
	}
	if f.To != nil {
		// Whole-day inclusive: anything before midnight of the next day.
		q = q.Where("payments.created_at < ?", f.To.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var payments []models.Payment
	if err := q.
		Preload("Booking").
		Preload("Booking.User").
		Order("payments.created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	return &TransactionPage{
		Page:     f.Page,
		Limit:    f.Limit,
		Total:    total,
		Payments: payments,
	}, nil
}
