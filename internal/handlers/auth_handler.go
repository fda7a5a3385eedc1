package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rentwheels/fleet-api/internal/auth"
	"github.com/rentwheels/fleet-api/internal/config"
	"github.com/rentwheels/fleet-api/internal/httperr"
	"github.com/rentwheels/fleet-api/internal/middleware"
	"github.com/rentwheels/fleet-api/internal/models"
)

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	denylist auth.TokenDenylist
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, denylist auth.TokenDenylist) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, denylist: denylist}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`

	IDCardURL        *string `json:"id_card_url,omitempty"`
	DriverLicenseURL *string `json:"driver_license_url,omitempty"`
	AgreementSigned  *bool   `json:"agreement_signed,omitempty"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "user_already_exists", "A user with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleCustomer,
		Profile: &models.CustomerProfile{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			PhoneNumber: req.PhoneNumber,
		},
	}

	if err := h.db.Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "user_already_exists", "A user with this email already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Could not create user.")
		return
	}

	token, err := auth.GenerateToken(&user, h.config.JWTSecret)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
			return
		}
		httperr.Internal(c, "internal_error", "Could not log in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	token, err := auth.GenerateToken(&user, h.config.JWTSecret)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
		"token": token,
	})
}

// Logout revokes the presented token for the remainder of its lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(middleware.ContextTokenID)
	if jti == "" {
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
		return
	}

	ttl := auth.TokenTTL
	if expVal, ok := c.Get(middleware.ContextTokenExpiry); ok {
		if exp, ok := expVal.(time.Time); ok {
			ttl = time.Until(exp)
		}
	}

	if err := h.denylist.Revoke(c.Request.Context(), jti, ttl); err != nil {
		httperr.Internal(c, "failed_to_logout", "Could not revoke token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.Preload("Profile").First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"profile": user.Profile,
	})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	// Upsert: a profile row may not exist yet for users created before
	// profiles were attached at registration.
	var profile models.CustomerProfile
	if err := h.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			httperr.Internal(c, "failed_to_get_profile", "Could not load profile.")
			return
		}
		profile = models.CustomerProfile{UserID: userID}
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.IDCardURL != nil {
		profile.IDCardURL = *req.IDCardURL
	}
	if req.DriverLicenseURL != nil {
		profile.DriverLicenseURL = *req.DriverLicenseURL
	}
	if req.AgreementSigned != nil {
		profile.AgreementSigned = *req.AgreementSigned
	}

	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not save profile.")
		return
	}

	c.JSON(http.StatusOK, profile)
}
