package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rentwheels/fleet-api/internal/models"
)

func bookingRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	h := newBookingHandler(db)
	r := gin.New()
	g := r.Group("/", as(userID, role))
	g.POST("/bookings", h.Create)
	g.GET("/bookings/my", h.ListMy)
	g.GET("/bookings/:id", h.Get)
	g.PATCH("/bookings/:id/cancel", h.Cancel)
	g.PATCH("/bookings/:id/status", h.UpdateStatus)
	g.PATCH("/bookings/:id/assign-driver", h.AssignDriver)
	return r
}

func createBookingBody(carID uint, start, end string) map[string]any {
	return map[string]any{
		"car_id":             carID,
		"start_date":         start,
		"end_date":           end,
		"id_card_url":        "/uploads/id.png",
		"driver_license_url": "/uploads/dl.png",
	}
}

func seedBooking(t *testing.T, db *gorm.DB, userID, carID uint, start, end, status string) models.Booking {
	t.Helper()
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	b := models.Booking{
		UserID:           userID,
		CarID:            carID,
		StartDate:        s,
		EndDate:          e,
		TotalAmount:      100,
		Status:           status,
		IDCardURL:        "/uploads/id.png",
		DriverLicenseURL: "/uploads/dl.png",
	}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b
}

func TestCreateBookingRequiresDocuments(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "c@test.dev", models.RoleCustomer)
	car := seedCar(t, db, "KAA 001A", 50)
	r := bookingRouter(db, user.ID, user.Role)

	body := map[string]any{
		"car_id":     car.ID,
		"start_date": "2030-01-10",
		"end_date":   "2030-01-12",
	}
	w := doJSON(t, r, http.MethodPost, "/bookings", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "missing_documents") {
		t.Fatalf("expected missing_documents, body=%s", w.Body.String())
	}
}

func TestCreateBookingFallsBackToProfileDocuments(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "c@test.dev", models.RoleCustomer)
	car := seedCar(t, db, "KAA 001A", 50)
	db.Create(&models.CustomerProfile{
		UserID:           user.ID,
		IDCardURL:        "/uploads/profile-id.png",
		DriverLicenseURL: "/uploads/profile-dl.png",
	})
	r := bookingRouter(db, user.ID, user.Role)

	w := doJSON(t, r, http.MethodPost, "/bookings", map[string]any{
		"car_id":     car.ID,
		"start_date": "2030-01-10",
		"end_date":   "2030-01-12",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var b models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.IDCardURL != "/uploads/profile-id.png" || b.DriverLicenseURL != "/uploads/profile-dl.png" {
		t.Fatalf("profile documents not carried onto booking: %+v", b)
	}
}

func TestCreateBookingComputesTotalAndStartsPending(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "c@test.dev", models.RoleCustomer)
	car := seedCar(t, db, "KAA 001A", 50)
	r := bookingRouter(db, user.ID, user.Role)

	w := doJSON(t, r, http.MethodPost, "/bookings", createBookingBody(car.ID, "2030-01-10", "2030-01-12"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var b models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Status != "PENDING" {
		t.Fatalf("expected PENDING got %s", b.Status)
	}
	// Jan 10 to Jan 12 inclusive is 3 billable days.
	if b.TotalAmount != 150 {
		t.Fatalf("expected total 150 got %v", b.TotalAmount)
	}
}

func TestBookingAdmissionOverlap(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "c@test.dev", models.RoleCustomer)
	car := seedCar(t, db, "KAA 001A", 50)
	r := bookingRouter(db, user.ID, user.Role)

	// COMPLETED bookings do not block; APPROVED ones do.
	seedBooking(t, db, user.ID, car.ID, "2030-01-01", "2030-01-03", "COMPLETED")
	seedBooking(t, db, user.ID, car.ID, "2030-01-10", "2030-01-15", "APPROVED")

	// Touches the COMPLETED booking's boundary only: admitted.
	w := doJSON(t, r, http.MethodPost, "/bookings", createBookingBody(car.ID, "2030-01-03", "2030-01-05"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	// Overlaps the APPROVED range: rejected.
	w = doJSON(t, r, http.MethodPost, "/bookings", createBookingBody(car.ID, "2030-01-12", "2030-01-20"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}

	// Inclusive boundary: starting the day an APPROVED booking ends conflicts.
	w = doJSON(t, r, http.MethodPost, "/bookings", createBookingBody(car.ID, "2030-01-15", "2030-01-18"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on boundary got %d body=%s", w.Code, w.Body.String())
	}

	// A different car is unaffected.
	other := seedCar(t, db, "KBB 002B", 50)
	w = doJSON(t, r, http.MethodPost, "/bookings", createBookingBody(other.ID, "2030-01-12", "2030-01-20"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for other car got %d body=%s", w.Code, w.Body.String())
	}
}

func TestCustomerCannotReadOthersBooking(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@test.dev", models.RoleCustomer)
	intruder := seedUser(t, db, "other@test.dev", models.RoleCustomer)
	staff := seedUser(t, db, "staff@test.dev", models.RoleEmployee)
	car := seedCar(t, db, "KAA 001A", 50)
	b := seedBooking(t, db, owner.ID, car.ID, "2030-01-10", "2030-01-12", "PENDING")

	w := doJSON(t, bookingRouter(db, intruder.ID, intruder.Role), http.MethodGet, fmt.Sprintf("/bookings/%d", b.ID), nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}

	w = doJSON(t, bookingRouter(db, owner.ID, owner.Role), http.MethodGet, fmt.Sprintf("/bookings/%d", b.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner got %d", w.Code)
	}

	w = doJSON(t, bookingRouter(db, staff.ID, staff.Role), http.MethodGet, fmt.Sprintf("/bookings/%d", b.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff got %d", w.Code)
	}
}

func TestStatusPatchEnforcesTransitionTable(t *testing.T) {
	db := setupTestDB(t)
	customer := seedUser(t, db, "c@test.dev", models.RoleCustomer)
	staff := seedUser(t, db, "e@test.dev", models.RoleEmployee)
	car := seedCar(t, db, "KAA 001A", 50)
	b := seedBooking(t, db, customer.ID, car.ID, "2030-01-10", "2030-01-12", "PENDING")
	r := bookingRouter(db, staff.ID, staff.Role)

	path := fmt.Sprintf("/bookings/%d/status", b.ID)

	// Skipping straight to ACTIVE is not a legal transition.
	w := doJSON(t, r, http.MethodPatch, path, map[string]any{"status": "ACTIVE"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for PENDING->ACTIVE got %d body=%s", w.Code, w.Body.String())
	}

	// Unknown status strings are rejected outright.
	w = doJSON(t, r, http.MethodPatch, path, map[string]any{"status": "SHIPPED"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status got %d", w.Code)
	}

	// The legal chain walks through.
	for _, status := range []string{"VERIFIED", "APPROVED", "ACTIVE", "COMPLETED"} {
		w = doJSON(t, r, http.MethodPatch, path, map[string]any{"status": status})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for ->%s got %d body=%s", status, w.Code, w.Body.String())
		}
	}

	// COMPLETED is terminal.
	w = doJSON(t, r, http.MethodPatch, path, map[string]any{"status": "CANCELLED"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for exit from COMPLETED got %d", w.Code)
	}

	var final models.Booking
	if err := db.First(&final, b.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if final.Status != "COMPLETED" {
		t.Fatalf("expected COMPLETED got %s", final.Status)
	}
	if final.ProcessedByID == nil || *final.ProcessedByID != staff.ID {
		t.Fatalf("expected processed_by %d got %v", staff.ID, final.ProcessedByID)
	}
}

func TestApproveDeliveryRequiresDriver(t *testing.T) {
	db := setupTestDB(t)
	customer := seedUser(t, db, "c@test.dev", models.RoleCustomer)
	staff := seedUser(t, db, "e@test.dev", models.RoleEmployee)
	car := seedCar(t, db, "KAA 001A", 50)

	b := seedBooking(t, db, customer.ID, car.ID, "2030-01-10", "2030-01-12", "VERIFIED")
	db.Model(&models.Booking{}).Where("id = ?", b.ID).Update("is_delivery", true)

	r := bookingRouter(db, staff.ID, staff.Role)
	path := fmt.Sprintf("/bookings/%d/status", b.ID)

	w := doJSON(t, r, http.MethodPatch, path, map[string]any{"status": "APPROVED"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without driver got %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPatch, path, map[string]any{"status": "APPROVED", "assigned_driver": "J. Otieno"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with driver got %d body=%s", w.Code, w.Body.String())
	}
}

func TestCustomerCancelOwnBookingOnly(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@test.dev", models.RoleCustomer)
	intruder := seedUser(t, db, "other@test.dev", models.RoleCustomer)
	car := seedCar(t, db, "KAA 001A", 50)
	b := seedBooking(t, db, owner.ID, car.ID, "2030-01-10", "2030-01-12", "PENDING")

	path := fmt.Sprintf("/bookings/%d/cancel", b.ID)

	w := doJSON(t, bookingRouter(db, intruder.ID, intruder.Role), http.MethodPatch, path, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}

	w = doJSON(t, bookingRouter(db, owner.ID, owner.Role), http.MethodPatch, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var reloaded models.Booking
	db.First(&reloaded, b.ID)
	if reloaded.Status != "CANCELLED" {
		t.Fatalf("expected CANCELLED got %s", reloaded.Status)
	}

	// Cancelled bookings no longer block the car.
	r := bookingRouter(db, owner.ID, owner.Role)
	w = doJSON(t, r, http.MethodPost, "/bookings", createBookingBody(car.ID, "2030-01-10", "2030-01-12"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 after cancel got %d body=%s", w.Code, w.Body.String())
	}
}

func TestSubmitPaymentMovesApprovedToPaid(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@test.dev", models.RoleCustomer)
	car := seedCar(t, db, "KAA 001A", 50)
	b := seedBooking(t, db, owner.ID, car.ID, "2030-01-10", "2030-01-12", "APPROVED")

	h := newPaymentHandler(db)
	r := gin.New()
	g := r.Group("/", as(owner.ID, owner.Role))
	g.POST("/bookings/:id/payments", h.Submit)

	path := fmt.Sprintf("/bookings/%d/payments", b.ID)
	w := doJSON(t, r, http.MethodPost, path, map[string]any{
		"method":           "MOBILE_MONEY",
		"transaction_id":   "MM-889923",
		"payer_identifier": "+254700000000",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var p models.Payment
	if err := db.Where("booking_id = ?", b.ID).First(&p).Error; err != nil {
		t.Fatalf("payment row: %v", err)
	}
	if p.Amount != b.TotalAmount {
		t.Fatalf("expected amount %v got %v", b.TotalAmount, p.Amount)
	}
	if p.Reference == "" {
		t.Fatalf("expected a generated reference")
	}

	var reloaded models.Booking
	db.First(&reloaded, b.ID)
	if reloaded.Status != "PAID" {
		t.Fatalf("expected PAID got %s", reloaded.Status)
	}

	// A second submission is rejected: PAID has no pay transition.
	w = doJSON(t, r, http.MethodPost, path, map[string]any{
		"method":         "MOBILE_MONEY",
		"transaction_id": "MM-889924",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on double pay got %d", w.Code)
	}
}
