package controllers

import (
	"net/http"
	"strconv"

	"github.com/L1quidL1ght/glimpse/models"
	"github.com/L1quidL1ght/glimpse/services"
	"github.com/L1quidL1ght/glimpse/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VisitController struct {
	DB *gorm.DB
}

func NewVisitController(db *gorm.DB) *VisitController {
	return &VisitController{DB: db}
}

var validOrderCategories = map[string]bool{
	models.OrderCategoryAppetizer: true,
	models.OrderCategoryEntree:    true,
	models.OrderCategoryCocktail:  true,
	models.OrderCategoryDessert:   true,
}

// CreateVisit records a visit with its line items in one call.
func (vc *VisitController) CreateVisit(c *gin.Context) {
	guestID, err := strconv.Atoi(c.Param("guest_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid guest id"))
		return
	}

	type orderReq struct {
		Category string `json:"category"`
		Item     string `json:"item"`
	}
	var req struct {
		Date        string     `json:"date" binding:"required"`
		PartySize   int        `json:"party_size"`
		TableNumber string     `json:"table_number"`
		Notes       string     `json:"notes"`
		Orders      []orderReq `json:"orders"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var guest models.Guest
	if err := vc.DB.First(&guest, guestID).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	for _, o := range req.Orders {
		if !validOrderCategories[o.Category] {
			utils.RespondError(c, http.StatusBadRequest,
				utils.NewValidationError("order category must be appetizer, entree, cocktail or dessert"))
			return
		}
	}

	if req.PartySize < 1 {
		req.PartySize = 1
	}

	visit := models.Visit{
		GuestID:     guest.ID,
		Date:        req.Date,
		PartySize:   req.PartySize,
		TableNumber: req.TableNumber,
		Notes:       req.Notes,
	}

	err = vc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&visit).Error; err != nil {
			return err
		}
		for _, o := range req.Orders {
			order := models.VisitOrder{
				VisitID:  visit.ID,
				Category: o.Category,
				Item:     o.Item,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			visit.Orders = append(visit.Orders, order)
		}
		return nil
	})
	if err != nil {
		utils.RespondClassified(c, err)
		return
	}

	// Detail read model now includes the visit; let caches catch up.
	if err := services.RecordChange(vc.DB, "guests", guest.ID, "UPDATE"); err != nil {
		utils.ErrorLogger.Printf("journal write failed for visit on guest %d: %v", guest.ID, err)
	}

	utils.RespondJSON(c, http.StatusCreated, "Visit recorded", visit)
}

// GetGuestVisits lists a guest's visits, newest first, with line items.
func (vc *VisitController) GetGuestVisits(c *gin.Context) {
	guestID, err := strconv.Atoi(c.Param("guest_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid guest id"))
		return
	}

	var visits []models.Visit
	if err := vc.DB.Preload("Orders").
		Where("guest_id = ?", guestID).
		Order("date DESC").
		Find(&visits).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of visits", visits)
}

// DeleteVisit removes a visit and its line items, items first.
func (vc *VisitController) DeleteVisit(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("visit_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid visit id"))
		return
	}

	var visit models.Visit
	if err := vc.DB.First(&visit, id).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	err = vc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("visit_id = ?", visit.ID).Delete(&models.VisitOrder{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Visit{}, visit.ID).Error
	})
	if err != nil {
		utils.RespondClassified(c, err)
		return
	}

	if err := services.RecordChange(vc.DB, "guests", visit.GuestID, "UPDATE"); err != nil {
		utils.ErrorLogger.Printf("journal write failed for deleted visit %d: %v", visit.ID, err)
	}

	utils.RespondJSON(c, http.StatusOK, "Visit deleted", gin.H{"visit_id": id})
}
