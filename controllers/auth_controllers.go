package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/L1quidL1ght/glimpse/models"
	"github.com/L1quidL1ght/glimpse/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// Login verifies a 4-digit PIN against the active staff roster and
// issues a session. Format is rejected locally before any database
// work; on failure nothing is persisted and the caller re-prompts.
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Pin string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !pinPattern.MatchString(req.Pin) {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("PIN must be exactly 4 digits"))
		return
	}

	var staffList []models.Staff
	if err := ac.DB.Where("is_active = ?", true).Find(&staffList).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	var match *models.Staff
	for i := range staffList {
		if bcrypt.CompareHashAndPassword([]byte(staffList[i].PinHash), []byte(req.Pin)) == nil {
			match = &staffList[i]
			break
		}
	}
	if match == nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid PIN"))
		return
	}

	token, expiresAt, err := utils.GenerateSessionToken(match.ID, match.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Staff %q signed in (role=%s)", match.Name, match.Role)

	utils.RespondJSON(c, http.StatusOK, "Signed in", gin.H{
		"user": gin.H{
			"id":   match.ID,
			"name": match.Name,
			"role": match.Role,
		},
		"session": gin.H{
			"token":      token,
			"expires_at": expiresAt.Format(time.RFC3339),
		},
	})
}

// Logout blacklists the presented token until its natural expiry.
func (ac *AuthController) Logout(c *gin.Context) {
	tokenInterface, exists := c.Get("token")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no session token in context"))
		return
	}
	token := tokenInterface.(string)

	until := time.Now().Add(utils.SessionTTL)
	if claims, err := utils.ParseSessionToken(token); err == nil && claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, until)

	utils.RespondJSON(c, http.StatusOK, "Signed out", nil)
}

// Me reports the identity behind the bearer token. The role here is the
// authoritative one; clients must not gate anything on locally cached
// copies.
func (ac *AuthController) Me(c *gin.Context) {
	staffIDInterface, exists := c.Get("staff_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("staff id not found in context"))
		return
	}
	staffID, ok := staffIDInterface.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid staff id type"))
		return
	}

	var staff models.Staff
	if err := ac.DB.First(&staff, staffID).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}
	if !staff.IsActive {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("account deactivated"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile", gin.H{
		"id":   staff.ID,
		"name": staff.Name,
		"role": staff.Role,
	})
}
