package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/httpresp"
	"github.com/rentwheels/fleet-api/internal/middleware"
	"github.com/rentwheels/fleet-api/internal/models"
	ucBooking "github.com/rentwheels/fleet-api/internal/usecase/booking"
)

type PaymentHandler struct {
	db       *gorm.DB
	submitUC *ucBooking.SubmitPayment
}

func NewPaymentHandler(db *gorm.DB, submitUC *ucBooking.SubmitPayment) *PaymentHandler {
	return &PaymentHandler{db: db, submitUC: submitUC}
}

// --------- Requests ---------

type SubmitPaymentRequest struct {
	Method          string `json:"method" binding:"required,oneof=MOBILE_MONEY BANK_TRANSFER"`
	TransactionID   string `json:"transaction_id" binding:"required"`
	PayerIdentifier string `json:"payer_identifier"`
}

// --------- Handlers ---------

// Submit records a mobile-money/bank reference for an APPROVED booking
// owned by the caller and moves it to PAID.
func (h *PaymentHandler) Submit(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be numeric.")
		return
	}

	var req SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	p, err := h.submitUC.Execute(c.Request.Context(), ucBooking.SubmitPaymentInput{
		BookingID:       uint(bookingID),
		UserID:          userID,
		Method:          req.Method,
		TransactionID:   req.TransactionID,
		PayerIdentifier: req.PayerIdentifier,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// List is the staff view over all payments.
func (h *PaymentHandler) List(c *gin.Context) {
	var payments []models.Payment
	if err := h.db.
		Preload("Booking").
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_payments", "Could not list payments.")
		return
	}

	httpresp.List(c, payments)
}
