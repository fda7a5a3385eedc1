package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/rentwheels/fleet-api/internal/domain/booking"
	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/httpresp"
	"github.com/rentwheels/fleet-api/internal/models"
)

type CarHandler struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewCarHandler(db *gorm.DB, repo domain.Repository) *CarHandler {
	return &CarHandler{db: db, repo: repo}
}

// --------- Requests ---------

type CreateCarRequest struct {
	Make        string   `json:"make" binding:"required"`
	Model       string   `json:"model" binding:"required"`
	Year        int      `json:"year" binding:"required"`
	PlateNumber string   `json:"plate_number" binding:"required"`
	Category    string   `json:"category"`
	DailyRate   float64  `json:"daily_rate" binding:"required"`
	Features    []string `json:"features"`
	Location    string   `json:"location"`
	ImageURL    string   `json:"image_url"`
}

type UpdateCarRequest struct {
	Make      *string   `json:"make,omitempty"`
	Model     *string   `json:"model,omitempty"`
	Year      *int      `json:"year,omitempty"`
	Category  *string   `json:"category,omitempty"`
	DailyRate *float64  `json:"daily_rate,omitempty"`
	Features  *[]string `json:"features,omitempty"`
	Location  *string   `json:"location,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	Status    *string   `json:"status,omitempty"`
}

// --------- Handlers ---------

// List supports category/status filters plus an availability window:
// with startDate+endDate, cars that have a blocking booking overlapping
// the window are excluded.
func (h *CarHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	status := strings.TrimSpace(c.Query("status"))
	startStr := c.Query("startDate")
	endStr := c.Query("endDate")

	q := h.db.Model(&models.Car{})

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if startStr != "" && endStr != "" {
		start, err1 := time.Parse("2006-01-02", startStr)
		end, err2 := time.Parse("2006-01-02", endStr)
		if err1 != nil || err2 != nil {
			httperr.BadRequest(c, "invalid_date", "startDate and endDate must be YYYY-MM-DD.")
			return
		}

		q = q.Where(
			"id NOT IN (?)",
			h.db.Model(&models.Booking{}).
				Select("car_id").
				Where(
					"status IN ? AND start_date <= ? AND end_date >= ?",
					domain.BlockingStatusStrings(), end, start,
				),
		)
	}

	var cars []models.Car
	if err := q.Order("id ASC").Find(&cars).Error; err != nil {
		httperr.Internal(c, "failed_to_list_cars", "Could not list cars.")
		return
	}

	c.JSON(http.StatusOK, cars)
}

func (h *CarHandler) Get(c *gin.Context) {
	var car models.Car
	if err := h.db.First(&car, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "car_not_found", "Car not found.")
		return
	}
	httpresp.OK(c, car)
}

// Availability answers whether one car is free over an inclusive date
// range, using the same blocking-status predicate booking admission uses.
func (h *CarHandler) Availability(c *gin.Context) {
	var car models.Car
	if err := h.db.First(&car, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "car_not_found", "Car not found.")
		return
	}

	start, err1 := time.Parse("2006-01-02", c.Query("startDate"))
	end, err2 := time.Parse("2006-01-02", c.Query("endDate"))
	if err1 != nil || err2 != nil || end.Before(start) {
		httperr.BadRequest(c, "invalid_date", "startDate and endDate must be YYYY-MM-DD.")
		return
	}

	conflict, err := h.repo.HasBlockingConflict(c.Request.Context(), car.ID, start, end)
	if err != nil {
		httperr.Internal(c, "failed_to_check_availability", "Could not check availability.")
		return
	}

	httpresp.OK(c, gin.H{"car_id": car.ID, "available": !conflict})
}

func (h *CarHandler) Create(c *gin.Context) {
	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	car := models.Car{
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		PlateNumber: strings.ToUpper(strings.TrimSpace(req.PlateNumber)),
		Category:    strings.ToLower(req.Category),
		DailyRate:   req.DailyRate,
		Features:    req.Features,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Status:      models.CarAvailable,
	}

	if err := h.db.Create(&car).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "plate_already_exists", "A car with this plate number already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_car", "Could not create car.")
		return
	}

	c.JSON(http.StatusCreated, car)
}

func (h *CarHandler) Update(c *gin.Context) {
	var car models.Car
	if err := h.db.First(&car, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "car_not_found", "Car not found.")
		return
	}

	var req UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Status != nil && !models.IsValidCarStatus(*req.Status) {
		httperr.BadRequest(c, "invalid_status", "Unknown car status.")
		return
	}

	if req.Make != nil {
		car.Make = *req.Make
	}
	if req.Model != nil {
		car.Model = *req.Model
	}
	if req.Year != nil {
		car.Year = *req.Year
	}
	if req.Category != nil {
		car.Category = strings.ToLower(*req.Category)
	}
	if req.DailyRate != nil {
		car.DailyRate = *req.DailyRate
	}
	if req.Features != nil {
		car.Features = *req.Features
	}
	if req.Location != nil {
		car.Location = *req.Location
	}
	if req.ImageURL != nil {
		car.ImageURL = *req.ImageURL
	}
	if req.Status != nil {
		car.Status = *req.Status
	}

	if err := h.db.Save(&car).Error; err != nil {
		httperr.Internal(c, "failed_to_update_car", "Could not update car.")
		return
	}

	c.JSON(http.StatusOK, car)
}

// Delete refuses to remove a car that still has bookings in a blocking
// status.
func (h *CarHandler) Delete(c *gin.Context) {
	var car models.Car
	if err := h.db.First(&car, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "car_not_found", "Car not found.")
		return
	}

	var count int64
	if err := h.db.Model(&models.Booking{}).
		Where("car_id = ? AND status IN ?", car.ID, domain.BlockingStatusStrings()).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_car", "Could not delete car.")
		return
	}

	if count > 0 {
		httperr.BadRequest(c, "car_has_active_bookings", "Car still has active bookings.")
		return
	}

	if err := h.db.Delete(&car).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_car", "Could not delete car.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "car deleted"})
}
