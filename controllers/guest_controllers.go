package controllers

import (
	"net/http"
	"strconv"

	"github.com/L1quidL1ght/glimpse/cache"
	"github.com/L1quidL1ght/glimpse/models"
	"github.com/L1quidL1ght/glimpse/services"
	"github.com/L1quidL1ght/glimpse/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GuestController struct {
	DB      *gorm.DB
	Saver   *services.GuestSaver
	Deleter *services.GuestDeleter
	Filter  *services.GuestFilter
	Cache   *cache.GuestCache
}

func NewGuestController(db *gorm.DB, guestCache *cache.GuestCache) *GuestController {
	return &GuestController{
		DB:      db,
		Saver:   services.NewGuestSaver(db, guestCache),
		Deleter: services.NewGuestDeleter(db, guestCache),
		Filter:  services.NewGuestFilter(db),
		Cache:   guestCache,
	}
}

// GetAllGuests lists the directory. Filter dimensions (tag, birthday
// month, anniversary month, name) intersect; the unfiltered list is
// served from cache when possible.
func (gc *GuestController) GetAllGuests(c *gin.Context) {
	filters := services.GuestFilters{
		Tag:  c.Query("tag"),
		Name: c.Query("name"),
	}
	if m, err := strconv.Atoi(c.Query("birthday_month")); err == nil && m >= 1 && m <= 12 {
		filters.BirthdayMonth = m
	}
	if m, err := strconv.Atoi(c.Query("anniversary_month")); err == nil && m >= 1 && m <= 12 {
		filters.AnniversaryMonth = m
	}

	if !filters.Active() {
		if guests, ok := gc.Cache.GetGuestList(c.Request.Context()); ok {
			utils.RespondJSON(c, http.StatusOK, "List of guests", guests)
			return
		}
	}

	guests, err := gc.Filter.Apply(filters)
	if err != nil {
		utils.RespondClassified(c, err)
		return
	}

	if !filters.Active() {
		gc.Cache.SetGuestList(c.Request.Context(), guests)
	}

	utils.RespondJSON(c, http.StatusOK, "List of guests", guests)
}

// GetGuestByID returns the full aggregate.
func (gc *GuestController) GetGuestByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("guest_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid guest id"))
		return
	}

	if guest, ok := gc.Cache.GetGuest(c.Request.Context(), uint(id)); ok {
		utils.RespondJSON(c, http.StatusOK, "Guest detail", guest)
		return
	}

	var guest models.Guest
	if err := gc.DB.
		Preload("Tags").
		Preload("TablePreferences").
		Preload("FoodPreferences").
		Preload("WinePreferences").
		Preload("CocktailPreferences").
		Preload("SpiritsPreferences").
		Preload("Allergies").
		Preload("ImportantDates").
		Preload("Notables").
		Preload("Note").
		Preload("Connections").
		Preload("Connections.ConnectedGuest").
		Preload("Visits").
		Preload("Visits.Orders").
		First(&guest, id).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	gc.Cache.SetGuest(c.Request.Context(), &guest)
	utils.RespondJSON(c, http.StatusOK, "Guest detail", guest)
}

// CreateGuest runs the save workflow without an existing id.
func (gc *GuestController) CreateGuest(c *gin.Context) {
	var input services.GuestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	guest, err := gc.Saver.Save(input, nil)
	if err != nil {
		utils.RespondClassified(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Guest created", guest)
}

// UpdateGuest runs the full-replace save workflow for an existing id.
func (gc *GuestController) UpdateGuest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("guest_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid guest id"))
		return
	}

	var input services.GuestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	guestID := uint(id)
	guest, err := gc.Saver.Save(input, &guestID)
	if err != nil {
		utils.RespondClassified(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Guest updated", guest)
}

// DeleteGuest runs the cascading delete. The admin requirement on the
// root row is enforced inside the workflow so the step trail reports
// where a non-admin attempt stopped.
func (gc *GuestController) DeleteGuest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("guest_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid guest id"))
		return
	}

	role := c.GetString("role")
	trail, err := gc.Deleter.Delete(uint(id), role)
	if err != nil {
		appErr := utils.Classify(err)
		utils.RespondJSON(c, appErr.HTTPStatus(), appErr.Message, gin.H{"trail": trail})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Guest deleted", gin.H{
		"guest_id": id,
		"trail":    trail,
	})
}
