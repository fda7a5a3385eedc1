package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/rentwheels/fleet-api/internal/domain/booking"
	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/middleware"
	"github.com/rentwheels/fleet-api/internal/models"
	ucBooking "github.com/rentwheels/fleet-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db *gorm.DB

	createUC     *ucBooking.CreateBooking
	transitionUC *ucBooking.TransitionBooking
	cancelUC     *ucBooking.CancelBooking
	assignUC     *ucBooking.AssignDriver
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	transitionUC *ucBooking.TransitionBooking,
	cancelUC *ucBooking.CancelBooking,
	assignUC *ucBooking.AssignDriver,
) *BookingHandler {
	return &BookingHandler{
		db:           db,
		createUC:     createUC,
		transitionUC: transitionUC,
		cancelUC:     cancelUC,
		assignUC:     assignUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CarID     uint   `json:"car_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`

	PickupLocation string `json:"pickup_location"`
	ReturnLocation string `json:"return_location"`
	IsDelivery     bool   `json:"is_delivery"`

	// Optional when the customer's profile already carries the documents.
	IDCardURL        string `json:"id_card_url"`
	DriverLicenseURL string `json:"driver_license_url"`
}

type UpdateStatusRequest struct {
	Status      string `json:"status" binding:"required"`
	Driver      string `json:"assigned_driver"`
	DriverPhone string `json:"driver_phone"`
}

type AssignDriverRequest struct {
	Driver      string `json:"assigned_driver" binding:"required"`
	DriverPhone string `json:"driver_phone"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:           userID,
		CarID:            req.CarID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		PickupLocation:   req.PickupLocation,
		ReturnLocation:   req.ReturnLocation,
		IsDelivery:       req.IsDelivery,
		IDCardURL:        req.IDCardURL,
		DriverLicenseURL: req.DriverLicenseURL,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) ListMy(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var bookings []models.Booking
	if err := h.db.
		Preload("Car").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// Get returns a booking to its owner or to staff; other customers get 403.
func (h *BookingHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var b models.Booking
	if err := h.db.
		Preload("Car").
		Preload("User").
		First(&b, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if b.UserID != userID && !models.IsStaff(role) {
		httperr.Forbidden(c, "not_booking_owner", "You cannot access this booking.")
		return
	}

	c.JSON(http.StatusOK, b)
}

// List is the staff view over all bookings, filterable by status and car.
func (h *BookingHandler) List(c *gin.Context) {
	status := c.Query("status")
	carIDStr := c.Query("carId")

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	q := h.db.Model(&models.Booking{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if carIDStr != "" {
		if carID, err := strconv.Atoi(carIDStr); err == nil {
			q = q.Where("car_id = ?", carID)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	var bookings []models.Booking
	if err := q.
		Preload("Car").
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"limit":    limit,
		"total":    total,
		"bookings": bookings,
	})
}

// ======================================================
// STATUS (staff)
// ======================================================

// UpdateStatus resolves the requested status to a state-machine action, so
// illegal jumps (PENDING straight to ACTIVE, exits from terminal states)
// come back as 400 instead of being written through.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be numeric.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	action, ok := domain.ActionForTarget(domain.Status(req.Status))
	if !ok {
		httperr.BadRequest(c, "invalid_status", "Unknown booking status.")
		return
	}

	b, err := h.transitionUC.Execute(c.Request.Context(), ucBooking.TransitionInput{
		BookingID:   uint(bookingID),
		StaffID:     staffID,
		Action:      action,
		Driver:      req.Driver,
		DriverPhone: req.DriverPhone,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) AssignDriver(c *gin.Context) {
	staffID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be numeric.")
		return
	}

	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.assignUC.Execute(c.Request.Context(), uint(bookingID), staffID, req.Driver, req.DriverPhone)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// CANCEL (owner)
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be numeric.")
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), uint(bookingID), userID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func writeBookingError(c *gin.Context, err error) {
	if !httperr.IsBusiness(err) {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch code := httperr.BusinessCode(err); code {
	case "booking_not_found", "car_not_found":
		httperr.NotFound(c, code, "Resource not found.")
	case "not_booking_owner":
		httperr.Forbidden(c, code, "You cannot access this booking.")
	case "booking_conflict":
		httperr.BadRequest(c, code, "The car is already booked for these dates.")
	case "missing_documents":
		httperr.BadRequest(c, code, "ID card and driver license documents are required.")
	case "invalid_date", "invalid_date_range", "start_date_in_past",
		"invalid_transition", "unknown_action", "driver_required",
		"missing_transaction_id":
		httperr.BadRequest(c, code, "The request cannot be processed in the booking's current state.")
	default:
		httperr.BadRequest(c, code, "The request could not be processed.")
	}
}
