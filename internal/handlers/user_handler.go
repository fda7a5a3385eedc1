package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rentwheels/fleet-api/internal/audit"
	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/middleware"
	"github.com/rentwheels/fleet-api/internal/models"
)

type UserHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewUserHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// --------- Handlers ---------

func (h *UserHandler) List(c *gin.Context) {
	role := c.Query("role")

	q := h.db.Model(&models.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Preload("Profile").Order("id ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not list users.")
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	var user models.User
	if err := h.db.Preload("Profile").First(&user, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !models.IsValidRole(req.Role) {
		httperr.BadRequest(c, "invalid_role", "Role must be CUSTOMER, EMPLOYEE or ADMIN.")
		return
	}

	var user models.User
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	previous := user.Role
	user.Role = req.Role

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_role", "Could not update role.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "role_changed",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"from": previous, "to": user.Role},
	})

	c.JSON(http.StatusOK, user)
}
