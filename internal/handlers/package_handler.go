package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/models"
)

type PackageHandler struct {
	db *gorm.DB
}

func NewPackageHandler(db *gorm.DB) *PackageHandler {
	return &PackageHandler{db: db}
}

// --------- Requests ---------

type CreatePackageRequest struct {
	Name     string   `json:"name" binding:"required"`
	Price    float64  `json:"price" binding:"required"`
	Period   string   `json:"period" binding:"required"`
	Category string   `json:"category"`
	Features []string `json:"features"`
}

type UpdatePackageRequest struct {
	Name     *string   `json:"name,omitempty"`
	Price    *float64  `json:"price,omitempty"`
	Period   *string   `json:"period,omitempty"`
	Category *string   `json:"category,omitempty"`
	Features *[]string `json:"features,omitempty"`
	IsActive *bool     `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *PackageHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Model(&models.Package{})

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if activeStr == "true" {
		q = q.Where("is_active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("is_active = ?", false)
	}

	var packages []models.Package
	if err := q.Order("id ASC").Find(&packages).Error; err != nil {
		httperr.Internal(c, "failed_to_list_packages", "Could not list packages.")
		return
	}

	c.JSON(http.StatusOK, packages)
}

func (h *PackageHandler) Get(c *gin.Context) {
	var pkg models.Package
	if err := h.db.First(&pkg, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "package_not_found", "Package not found.")
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (h *PackageHandler) Create(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	pkg := models.Package{
		Name:     req.Name,
		Price:    req.Price,
		Period:   req.Period,
		Category: strings.ToLower(req.Category),
		Features: req.Features,
		IsActive: true,
	}

	if err := h.db.Create(&pkg).Error; err != nil {
		httperr.Internal(c, "failed_to_create_package", "Could not create package.")
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

func (h *PackageHandler) Update(c *gin.Context) {
	var pkg models.Package
	if err := h.db.First(&pkg, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "package_not_found", "Package not found.")
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.Price != nil {
		pkg.Price = *req.Price
	}
	if req.Period != nil {
		pkg.Period = *req.Period
	}
	if req.Category != nil {
		pkg.Category = strings.ToLower(*req.Category)
	}
	if req.Features != nil {
		pkg.Features = *req.Features
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	if err := h.db.Save(&pkg).Error; err != nil {
		httperr.Internal(c, "failed_to_update_package", "Could not update package.")
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// Delete is a soft delete: the row stays, is_active flips to false.
func (h *PackageHandler) Delete(c *gin.Context) {
	var pkg models.Package
	if err := h.db.First(&pkg, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "package_not_found", "Package not found.")
		return
	}

	pkg.IsActive = false
	if err := h.db.Save(&pkg).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_package", "Could not deactivate package.")
		return
	}

	c.JSON(http.StatusOK, pkg)
}
