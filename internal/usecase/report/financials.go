package report

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/rentwheels/fleet-api/internal/domain/booking"
	"github.com/rentwheels/fleet-api/internal/models"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type FinancialReport struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalExpenses float64 `json:"total_expenses"`
	NetProfit     float64 `json:"net_profit"`
	ProfitMargin  float64 `json:"profit_margin"`

	PendingBookings int64 `json:"pending_bookings"`
	ActiveRentals   int64 `json:"active_rentals"`
	TotalCustomers  int64 `json:"total_customers"`
}

// Financials recomputes the dashboard figures on every call. Revenue only
// counts COMPLETED bookings, expenses only COMPLETED maintenance.
func (s *Service) Financials(ctx context.Context) (*FinancialReport, error) {
	rep := &FinancialReport{}

	if err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", string(domain.StatusCompleted)).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&rep.TotalRevenue).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Model(&models.Maintenance{}).
		Where("status = ?", models.MaintenanceCompleted).
		Select("COALESCE(SUM(cost), 0)").
		Scan(&rep.TotalExpenses).Error; err != nil {
		return nil, err
	}

	rep.NetProfit = rep.TotalRevenue - rep.TotalExpenses
	rep.ProfitMargin = Margin(rep.NetProfit, rep.TotalRevenue)

	if err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", string(domain.StatusPending)).
		Count(&rep.PendingBookings).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ?", string(domain.StatusActive)).
		Count(&rep.ActiveRentals).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleCustomer).
		Count(&rep.TotalCustomers).Error; err != nil {
		return nil, err
	}

	return rep, nil
}

// Margin is netProfit over revenue as a percentage, defined as 0 when
// there is no revenue.
func Margin(netProfit, totalRevenue float64) float64 {
	if totalRevenue == 0 {
		return 0
	}
	return netProfit / totalRevenue * 100
}
