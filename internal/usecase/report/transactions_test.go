package report

import (
	"context"
	"testing"
	"time"

	"github.com/rentwheels/fleet-api/internal/models"
)

func TestTransactionsToFilterIsWholeDayInclusive(t *testing.T) {
	db := setupTestDB(t)

	mk := func(ref string, createdAt time.Time) {
		p := models.Payment{
			Amount:    100,
			Method:    "MOBILE_MONEY",
			Status:    models.PaymentReceived,
			Reference: ref,
			CreatedAt: createdAt,
		}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed payment: %v", err)
		}
	}

	mk("inside-day", time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC))
	mk("last-second", time.Date(2030, 1, 10, 23, 59, 59, 0, time.UTC))
	// Stamped exactly at midnight of the day after `to`: must be excluded.
	mk("next-midnight", time.Date(2030, 1, 11, 0, 0, 0, 0, time.UTC))
	mk("before-window", time.Date(2030, 1, 9, 23, 59, 59, 0, time.UTC))

	from := time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)

	page, err := NewService(db).Transactions(context.Background(), TransactionFilter{
		From: &from,
		To:   &to,
	})
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}

	if page.Total != 2 {
		t.Fatalf("expected 2 payments on Jan 10, got %d", page.Total)
	}
	for _, p := range page.Payments {
		if p.Reference == "next-midnight" || p.Reference == "before-window" {
			t.Fatalf("payment %q leaked into the window", p.Reference)
		}
	}
}

func TestTransactionsPagination(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 5; i++ {
		p := models.Payment{
			Amount:    float64(10 * (i + 1)),
			Method:    "BANK_TRANSFER",
			Status:    models.PaymentReceived,
			Reference: "ref-" + string(rune('a'+i)),
			CreatedAt: time.Date(2030, 1, 1+i, 12, 0, 0, 0, time.UTC),
		}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed payment: %v", err)
		}
	}

	page, err := NewService(db).Transactions(context.Background(), TransactionFilter{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if page.Total != 5 {
		t.Fatalf("total = %d, want 5", page.Total)
	}
	if len(page.Payments) != 2 {
		t.Fatalf("page size = %d, want 2", len(page.Payments))
	}
}
