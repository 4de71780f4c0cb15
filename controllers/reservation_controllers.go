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

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

var validReservationStatuses = map[string]bool{
	models.ReservationConfirmed: true,
	models.ReservationCancelled: true,
	models.ReservationCompleted: true,
	models.ReservationNoShow:    true,
}

// GetAllReservations lists reservations ordered by date then time.
// Optional exact-match date filter and status filter.
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	query := rc.DB.Preload("Guest").Order("date ASC, time ASC")

	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// CreateReservation books a table. The initial status is always
// confirmed; whatever the caller sends for status is ignored.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		GuestID         uint   `json:"guest_id" binding:"required"`
		Date            string `json:"date" binding:"required"`
		Time            string `json:"time" binding:"required"`
		PartySize       int    `json:"party_size"`
		Section         string `json:"section"`
		TableNumber     string `json:"table_number"`
		SpecialRequests string `json:"special_requests"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var guest models.Guest
	if err := rc.DB.First(&guest, req.GuestID).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	if req.PartySize < 1 {
		req.PartySize = 1
	}

	reservation := models.Reservation{
		GuestID:         guest.ID,
		Date:            req.Date,
		Time:            req.Time,
		PartySize:       req.PartySize,
		Section:         req.Section,
		TableNumber:     req.TableNumber,
		SpecialRequests: req.SpecialRequests,
		Status:          models.ReservationConfirmed,
	}

	if err := rc.DB.Create(&reservation).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	if err := services.RecordChange(rc.DB, "reservations", reservation.ID, "INSERT"); err != nil {
		utils.ErrorLogger.Printf("journal write failed for reservation %d: %v", reservation.ID, err)
	}

	utils.InfoLogger.Printf("Reservation created for guest %d on %s %s", guest.ID, req.Date, req.Time)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// UpdateReservation is a partial patch. Any status may be set to any
// other; the floor UI relies on completed -> confirmed as an undo.
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid reservation id"))
		return
	}

	var req struct {
		Date            *string `json:"date"`
		Time            *string `json:"time"`
		PartySize       *int    `json:"party_size"`
		Section         *string `json:"section"`
		TableNumber     *string `json:"table_number"`
		SpecialRequests *string `json:"special_requests"`
		Status          *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	if req.Status != nil {
		if !validReservationStatuses[*req.Status] {
			utils.RespondError(c, http.StatusBadRequest,
				utils.NewValidationError("status must be confirmed, cancelled, completed or no_show"))
			return
		}
		reservation.Status = *req.Status
	}
	if req.Date != nil {
		reservation.Date = *req.Date
	}
	if req.Time != nil {
		reservation.Time = *req.Time
	}
	if req.PartySize != nil && *req.PartySize >= 1 {
		reservation.PartySize = *req.PartySize
	}
	if req.Section != nil {
		reservation.Section = *req.Section
	}
	if req.TableNumber != nil {
		reservation.TableNumber = *req.TableNumber
	}
	if req.SpecialRequests != nil {
		reservation.SpecialRequests = *req.SpecialRequests
	}

	if err := rc.DB.Save(&reservation).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	if err := services.RecordChange(rc.DB, "reservations", reservation.ID, "UPDATE"); err != nil {
		utils.ErrorLogger.Printf("journal write failed for reservation %d: %v", reservation.ID, err)
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation updated", reservation)
}

// DeleteReservation is a hard delete; reservations own no children.
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid reservation id"))
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	if err := rc.DB.Delete(&models.Reservation{}, id).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	if err := services.RecordChange(rc.DB, "reservations", uint(id), "DELETE"); err != nil {
		utils.ErrorLogger.Printf("journal write failed for deleted reservation %d: %v", id, err)
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", gin.H{"reservation_id": id})
}
