package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/L1quidL1ght/glimpse/events"
	"github.com/L1quidL1ght/glimpse/models"
	"github.com/L1quidL1ght/glimpse/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

// verifyAdminPin re-proves admin identity for a mutation: the caller's
// stored hash is compared against a freshly supplied PIN. The role in
// the token got the request through the middleware, but a mutation of
// staff accounts demands more than a possibly stolen token.
func (sc *StaffController) verifyAdminPin(c *gin.Context, adminPin string) error {
	if !pinPattern.MatchString(adminPin) {
		return utils.NewPermissionError("admin PIN required")
	}

	staffID, ok := c.Get("staff_id")
	if !ok {
		return utils.NewPermissionError("unauthenticated")
	}

	var actor models.Staff
	if err := sc.DB.First(&actor, staffID).Error; err != nil {
		return utils.NewPermissionError("acting staff account not found")
	}
	if actor.Role != models.RoleAdmin || !actor.IsActive {
		return utils.NewPermissionError("admin access required")
	}
	if bcrypt.CompareHashAndPassword([]byte(actor.PinHash), []byte(adminPin)) != nil {
		return utils.NewPermissionError("admin PIN does not match")
	}
	return nil
}

// pinInUse reports whether any other staff account already answers to
// this PIN. Hashes are salted, so the check has to walk the roster.
func (sc *StaffController) pinInUse(pin string, excludeID uint) (bool, error) {
	var staffList []models.Staff
	if err := sc.DB.Find(&staffList).Error; err != nil {
		return false, err
	}
	for _, s := range staffList {
		if s.ID == excludeID {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(s.PinHash), []byte(pin)) == nil {
			return true, nil
		}
	}
	return false, nil
}

// GetAllStaff lists accounts. PIN hashes never serialize.
func (sc *StaffController) GetAllStaff(c *gin.Context) {
	var staffList []models.Staff
	if err := sc.DB.Order("name ASC").Find(&staffList).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of staff", staffList)
}

func (sc *StaffController) CreateStaff(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Pin      string `json:"pin" binding:"required"`
		Role     string `json:"role" binding:"required"`
		AdminPin string `json:"admin_pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.verifyAdminPin(c, req.AdminPin); err != nil {
		utils.RespondClassified(c, err)
		return
	}

	if !pinPattern.MatchString(req.Pin) {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("PIN must be exactly 4 digits"))
		return
	}
	if req.Role != models.RoleStaff && req.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("role must be staff or admin"))
		return
	}

	inUse, err := sc.pinInUse(req.Pin, 0)
	if err != nil {
		utils.RespondClassified(c, err)
		return
	}
	if inUse {
		utils.RespondError(c, http.StatusConflict, utils.NewConflictError("PIN already in use"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	staff := models.Staff{
		Name:     req.Name,
		Role:     req.Role,
		PinHash:  string(hashed),
		IsActive: true,
	}
	if err := sc.DB.Create(&staff).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	utils.InfoLogger.Printf("New staff account %q created (role=%s)", staff.Name, staff.Role)
	events.BroadcastStaffNotification(fmt.Sprintf("Staff account %q created", staff.Name))
	utils.RespondJSON(c, http.StatusCreated, "Staff created", staff)
}

func (sc *StaffController) UpdateStaff(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("staff_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid staff id"))
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Pin      *string `json:"pin"`
		Role     *string `json:"role"`
		IsActive *bool   `json:"is_active"`
		AdminPin string  `json:"admin_pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.verifyAdminPin(c, req.AdminPin); err != nil {
		utils.RespondClassified(c, err)
		return
	}

	var staff models.Staff
	if err := sc.DB.First(&staff, id).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Role != nil {
		if *req.Role != models.RoleStaff && *req.Role != models.RoleAdmin {
			utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("role must be staff or admin"))
			return
		}
		staff.Role = *req.Role
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}
	if req.Pin != nil {
		if !pinPattern.MatchString(*req.Pin) {
			utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("PIN must be exactly 4 digits"))
			return
		}
		inUse, err := sc.pinInUse(*req.Pin, staff.ID)
		if err != nil {
			utils.RespondClassified(c, err)
			return
		}
		if inUse {
			utils.RespondError(c, http.StatusConflict, utils.NewConflictError("PIN already in use"))
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Pin), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		staff.PinHash = string(hashed)
	}

	if err := sc.DB.Save(&staff).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Staff updated", staff)
}

func (sc *StaffController) DeleteStaff(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("staff_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid staff id"))
		return
	}

	var req struct {
		AdminPin string `json:"admin_pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.verifyAdminPin(c, req.AdminPin); err != nil {
		utils.RespondClassified(c, err)
		return
	}

	if actorID, ok := c.Get("staff_id"); ok {
		if uid, ok := actorID.(uint); ok && uid == uint(id) {
			utils.RespondError(c, http.StatusBadRequest,
				utils.NewValidationError("cannot delete your own account"))
			return
		}
	}

	var staff models.Staff
	if err := sc.DB.First(&staff, id).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	if err := sc.DB.Delete(&models.Staff{}, id).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	utils.InfoLogger.Printf("Staff account %q deleted", staff.Name)
	events.BroadcastStaffNotification(fmt.Sprintf("Staff account %q deleted", staff.Name))
	utils.RespondJSON(c, http.StatusOK, "Staff deleted", gin.H{"staff_id": id})
}
