package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rentwheels/fleet-api/internal/audit"
	dbpkg "github.com/rentwheels/fleet-api/internal/db"
	infraRepo "github.com/rentwheels/fleet-api/internal/infra/repository"
	"github.com/rentwheels/fleet-api/internal/logger"
	"github.com/rentwheels/fleet-api/internal/middleware"
	"github.com/rentwheels/fleet-api/internal/models"
	ucBooking "github.com/rentwheels/fleet-api/internal/usecase/booking"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// as simulates AuthMiddleware for a given principal.
func as(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUserRole, role)
		c.Next()
	}
}

func newBookingHandler(db *gorm.DB) *BookingHandler {
	repo := infraRepo.NewBookingGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db), logger.Nop())
	return NewBookingHandler(
		db,
		ucBooking.NewCreateBooking(repo, dispatcher),
		ucBooking.NewTransitionBooking(repo, dispatcher),
		ucBooking.NewCancelBooking(repo, dispatcher),
		ucBooking.NewAssignDriver(repo, dispatcher),
	)
}

func newPaymentHandler(db *gorm.DB) *PaymentHandler {
	repo := infraRepo.NewBookingGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db), logger.Nop())
	return NewPaymentHandler(db, ucBooking.NewSubmitPayment(repo, dispatcher))
}

func seedCar(t *testing.T, db *gorm.DB, plate string, rate float64) models.Car {
	t.Helper()
	car := models.Car{
		Make:        "Toyota",
		Model:       "RAV4",
		Year:        2022,
		PlateNumber: plate,
		Category:    "suv",
		DailyRate:   rate,
		Status:      models.CarAvailable,
	}
	if err := db.Create(&car).Error; err != nil {
		t.Fatalf("seed car: %v", err)
	}
	return car
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x", Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
