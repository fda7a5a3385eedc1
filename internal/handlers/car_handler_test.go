package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	infraRepo "github.com/rentwheels/fleet-api/internal/infra/repository"
	"github.com/rentwheels/fleet-api/internal/models"
)

func carRouter(db *gorm.DB) *gin.Engine {
	h := NewCarHandler(db, infraRepo.NewBookingGormRepository(db))
	r := gin.New()
	r.GET("/cars", h.List)
	r.GET("/cars/:id", h.Get)
	r.GET("/cars/:id/availability", h.Availability)
	r.POST("/cars", h.Create)
	r.PATCH("/cars/:id", h.Update)
	r.DELETE("/cars/:id", h.Delete)
	return r
}

func decodeCars(t *testing.T, body []byte) []models.Car {
	t.Helper()
	var cars []models.Car
	if err := json.Unmarshal(body, &cars); err != nil {
		t.Fatalf("decode cars: %v", err)
	}
	return cars
}

func TestCreateCarRejectsDuplicatePlate(t *testing.T) {
	db := setupTestDB(t)
	r := carRouter(db)

	body := map[string]any{
		"make":         "Toyota",
		"model":        "RAV4",
		"year":         2022,
		"plate_number": "kaa 001a",
		"category":     "SUV",
		"daily_rate":   50,
		"features":     []string{"bluetooth", "awd"},
	}
	w := doJSON(t, r, http.MethodPost, "/cars", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var car models.Car
	if err := json.Unmarshal(w.Body.Bytes(), &car); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if car.PlateNumber != "KAA 001A" {
		t.Fatalf("expected normalized plate, got %q", car.PlateNumber)
	}
	if car.Category != "suv" {
		t.Fatalf("expected lowercased category, got %q", car.Category)
	}

	w = doJSON(t, r, http.MethodPost, "/cars", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate plate got %d body=%s", w.Code, w.Body.String())
	}
}

func TestListCarsAvailabilityWindow(t *testing.T) {
	db := setupTestDB(t)
	r := carRouter(db)
	user := seedUser(t, db, "c@test.dev", models.RoleCustomer)

	booked := seedCar(t, db, "KAA 001A", 50)
	free := seedCar(t, db, "KBB 002B", 60)
	released := seedCar(t, db, "KCC 003C", 70)

	seedBooking(t, db, user.ID, booked.ID, "2030-01-10", "2030-01-15", "APPROVED")
	// Cancelled bookings do not block availability.
	seedBooking(t, db, user.ID, released.ID, "2030-01-10", "2030-01-15", "CANCELLED")

	w := doJSON(t, r, http.MethodGet, "/cars?startDate=2030-01-12&endDate=2030-01-20", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	cars := decodeCars(t, w.Body.Bytes())
	ids := map[uint]bool{}
	for _, c := range cars {
		ids[c.ID] = true
	}
	if ids[booked.ID] {
		t.Fatalf("booked car should be excluded from the window")
	}
	if !ids[free.ID] || !ids[released.ID] {
		t.Fatalf("free/released cars missing from response: %v", ids)
	}

	// Window entirely after the booking: all three show up.
	w = doJSON(t, r, http.MethodGet, "/cars?startDate=2030-02-01&endDate=2030-02-05", nil)
	if got := len(decodeCars(t, w.Body.Bytes())); got != 3 {
		t.Fatalf("expected 3 cars got %d", got)
	}

	// Inclusive boundary: a window starting the day the booking ends still
	// excludes the car.
	w = doJSON(t, r, http.MethodGet, "/cars?startDate=2030-01-15&endDate=2030-01-18", nil)
	cars = decodeCars(t, w.Body.Bytes())
	for _, c := range cars {
		if c.ID == booked.ID {
			t.Fatalf("boundary window should exclude the booked car")
		}
	}
}

func TestCarAvailabilityEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := carRouter(db)
	user := seedUser(t, db, "c@test.dev", models.RoleCustomer)
	car := seedCar(t, db, "KAA 001A", 50)

	seedBooking(t, db, user.ID, car.ID, "2030-01-10", "2030-01-15", "APPROVED")

	check := func(path string) (int, bool) {
		w := doJSON(t, r, http.MethodGet, path, nil)
		var resp struct {
			Available bool `json:"available"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		return w.Code, resp.Available
	}

	base := fmt.Sprintf("/cars/%d/availability", car.ID)

	if code, avail := check(base + "?startDate=2030-01-12&endDate=2030-01-20"); code != http.StatusOK || avail {
		t.Fatalf("overlapping window: code=%d available=%v", code, avail)
	}
	// Inclusive boundary: the booking's end date still conflicts.
	if code, avail := check(base + "?startDate=2030-01-15&endDate=2030-01-18"); code != http.StatusOK || avail {
		t.Fatalf("boundary window: code=%d available=%v", code, avail)
	}
	if code, avail := check(base + "?startDate=2030-02-01&endDate=2030-02-05"); code != http.StatusOK || !avail {
		t.Fatalf("clear window: code=%d available=%v", code, avail)
	}

	if w := doJSON(t, r, http.MethodGet, base+"?startDate=2030-01-20&endDate=2030-01-10", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/cars/999/availability?startDate=2030-01-01&endDate=2030-01-02", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown car got %d", w.Code)
	}
}

func TestListCarsCategoryFilter(t *testing.T) {
	db := setupTestDB(t)
	r := carRouter(db)

	seedCar(t, db, "KAA 001A", 50)
	sedan := models.Car{Make: "Honda", Model: "Accord", Year: 2021, PlateNumber: "KDD 004D", Category: "sedan", DailyRate: 40, Status: models.CarAvailable}
	if err := db.Create(&sedan).Error; err != nil {
		t.Fatalf("seed sedan: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/cars?category=SEDAN", nil)
	cars := decodeCars(t, w.Body.Bytes())
	if len(cars) != 1 || cars[0].ID != sedan.ID {
		t.Fatalf("expected only the sedan, got %d cars", len(cars))
	}
}

func TestDeleteCarBlockedByActiveBookings(t *testing.T) {
	db := setupTestDB(t)
	r := carRouter(db)
	user := seedUser(t, db, "c@test.dev", models.RoleCustomer)
	car := seedCar(t, db, "KAA 001A", 50)

	b := seedBooking(t, db, user.ID, car.ID, "2030-01-10", "2030-01-15", "APPROVED")

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/cars/%d", car.ID), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 while booking is blocking got %d body=%s", w.Code, w.Body.String())
	}

	db.Model(&models.Booking{}).Where("id = ?", b.ID).Update("status", "COMPLETED")

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/cars/%d", car.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after completion got %d body=%s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.Car{}).Where("id = ?", car.ID).Count(&count)
	if count != 0 {
		t.Fatalf("car row should be gone")
	}
}

func TestUpdateCarValidatesStatus(t *testing.T) {
	db := setupTestDB(t)
	r := carRouter(db)
	car := seedCar(t, db, "KAA 001A", 50)

	path := fmt.Sprintf("/cars/%d", car.ID)

	w := doJSON(t, r, http.MethodPatch, path, map[string]any{"status": "FLYING"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPatch, path, map[string]any{"status": models.CarMaintenance, "daily_rate": 75})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var reloaded models.Car
	db.First(&reloaded, car.ID)
	if reloaded.Status != models.CarMaintenance || reloaded.DailyRate != 75 {
		t.Fatalf("update not applied: %+v", reloaded)
	}
	if reloaded.Make != "Toyota" {
		t.Fatalf("untouched field changed: %+v", reloaded)
	}
}
