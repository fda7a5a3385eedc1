package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/httpresp"
	"github.com/rentwheels/fleet-api/internal/models"
)

type MaintenanceHandler struct {
	db *gorm.DB
}

func NewMaintenanceHandler(db *gorm.DB) *MaintenanceHandler {
	return &MaintenanceHandler{db: db}
}

// --------- Requests ---------

type CreateMaintenanceRequest struct {
	CarID       uint    `json:"car_id" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Cost        float64 `json:"cost"`
}

type UpdateMaintenanceRequest struct {
	Description *string  `json:"description,omitempty"`
	Cost        *float64 `json:"cost,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

// --------- Handlers ---------

func (h *MaintenanceHandler) List(c *gin.Context) {
	status := c.Query("status")
	carID := c.Query("carId")

	q := h.db.Model(&models.Maintenance{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if carID != "" {
		q = q.Where("car_id = ?", carID)
	}

	var records []models.Maintenance
	if err := q.Preload("Car").Order("created_at DESC").Find(&records).Error; err != nil {
		httperr.Internal(c, "failed_to_list_maintenance", "Could not list maintenance records.")
		return
	}

	httpresp.List(c, records)
}

func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var car models.Car
	if err := h.db.First(&car, req.CarID).Error; err != nil {
		httperr.NotFound(c, "car_not_found", "Car not found.")
		return
	}

	rec := models.Maintenance{
		CarID:       car.ID,
		Description: req.Description,
		Cost:        req.Cost,
		Status:      models.MaintenanceScheduled,
	}

	if err := h.db.Create(&rec).Error; err != nil {
		httperr.Internal(c, "failed_to_create_maintenance", "Could not create maintenance record.")
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *MaintenanceHandler) Update(c *gin.Context) {
	var rec models.Maintenance
	if err := h.db.First(&rec, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "maintenance_not_found", "Maintenance record not found.")
		return
	}

	var req UpdateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Status != nil && !models.IsValidMaintenanceStatus(*req.Status) {
		httperr.BadRequest(c, "invalid_status", "Unknown maintenance status.")
		return
	}

	if req.Description != nil {
		rec.Description = *req.Description
	}
	if req.Cost != nil {
		rec.Cost = *req.Cost
	}
	if req.Status != nil && *req.Status != rec.Status {
		now := time.Now()
		switch *req.Status {
		case models.MaintenanceInProgress:
			rec.StartedAt = &now
		case models.MaintenanceCompleted:
			rec.CompletedAt = &now
		}
		rec.Status = *req.Status
	}

	if err := h.db.Save(&rec).Error; err != nil {
		httperr.Internal(c, "failed_to_update_maintenance", "Could not update maintenance record.")
		return
	}

	c.JSON(http.StatusOK, rec)
}
