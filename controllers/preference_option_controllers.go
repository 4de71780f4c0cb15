package controllers

import (
	"net/http"

	"github.com/L1quidL1ght/glimpse/models"
	"github.com/L1quidL1ght/glimpse/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PreferenceOptionController struct {
	DB *gorm.DB
}

func NewPreferenceOptionController(db *gorm.DB) *PreferenceOptionController {
	return &PreferenceOptionController{DB: db}
}

// GetOptions serves the autocomplete vocabulary, most used first.
func (pc *PreferenceOptionController) GetOptions(c *gin.Context) {
	query := pc.DB.Order("usage_count DESC, text ASC")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var options []models.PreferenceOption
	if err := query.Find(&options).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Preference options", options)
}
