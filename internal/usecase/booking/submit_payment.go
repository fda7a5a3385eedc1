package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/rentwheels/fleet-api/internal/audit"
	domain "github.com/rentwheels/fleet-api/internal/domain/booking"
	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SubmitPaymentInput struct {
	BookingID uint
	UserID    uint

	// "MOBILE_MONEY" or "BANK_TRANSFER"
	Method          string
	TransactionID   string
	PayerIdentifier string
}

// ======================================================
// USE CASE
// ======================================================

// SubmitPayment records a mobile-money/bank reference against an APPROVED
// booking and moves it to PAID, both inside one transaction.
type SubmitPayment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubmitPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SubmitPayment {
	return &SubmitPayment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SubmitPayment) Execute(
	ctx context.Context,
	in SubmitPaymentInput,
) (*models.Payment, error) {

	if strings.TrimSpace(in.TransactionID) == "" {
		return nil, httperr.ErrBusiness("missing_transaction_id")
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if b.UserID != in.UserID {
		return nil, httperr.ErrBusiness("not_booking_owner")
	}

	if err := domain.Pay(b); err != nil {
		return nil, err
	}

	p := &models.Payment{
		BookingID:       b.ID,
		Amount:          b.TotalAmount,
		Method:          in.Method,
		Status:          models.PaymentReceived,
		Reference:       uuid.NewString(),
		TransactionID:   in.TransactionID,
		PayerIdentifier: in.PayerIdentifier,
	}

	if err := uc.repo.SavePaymentAndBooking(ctx, p, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "payment_submitted",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{
			"booking_id": b.ID,
			"amount":     p.Amount,
			"method":     p.Method,
		},
	})

	return p, nil
}
