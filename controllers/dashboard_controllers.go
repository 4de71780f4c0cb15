package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/L1quidL1ght/glimpse/events"
	"github.com/L1quidL1ght/glimpse/models"
	"github.com/L1quidL1ght/glimpse/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetDashboardStats aggregates the numbers the admin landing page
// shows. The route is already admin-gated; the in-handler check stays
// because the numbers include roster size.
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
		return
	}

	today := time.Now().Format("2006-01-02")
	monthPrefix := time.Now().Format("2006-01") + "%"

	var stats struct {
		TotalGuests      int64 `json:"total_guests"`
		ActiveStaff      int64 `json:"active_staff"`
		VisitsThisMonth  int64 `json:"visits_this_month"`
		ReservationStats struct {
			TodayTotal     int64 `json:"today_total"`
			TodayConfirmed int64 `json:"today_confirmed"`
			TodayCompleted int64 `json:"today_completed"`
			TodayCancelled int64 `json:"today_cancelled"`
			TodayNoShow    int64 `json:"today_no_show"`
		} `json:"reservation_stats"`
	}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalGuests, dc.DB.Model(&models.Guest{})},
		{&stats.ActiveStaff, dc.DB.Model(&models.Staff{}).Where("is_active = ?", true)},
		{&stats.VisitsThisMonth, dc.DB.Model(&models.Visit{}).Where("date LIKE ?", monthPrefix)},
		{&stats.ReservationStats.TodayTotal, dc.DB.Model(&models.Reservation{}).Where("date = ?", today)},
		{&stats.ReservationStats.TodayConfirmed, dc.DB.Model(&models.Reservation{}).Where("date = ? AND status = ?", today, models.ReservationConfirmed)},
		{&stats.ReservationStats.TodayCompleted, dc.DB.Model(&models.Reservation{}).Where("date = ? AND status = ?", today, models.ReservationCompleted)},
		{&stats.ReservationStats.TodayCancelled, dc.DB.Model(&models.Reservation{}).Where("date = ? AND status = ?", today, models.ReservationCancelled)},
		{&stats.ReservationStats.TodayNoShow, dc.DB.Model(&models.Reservation{}).Where("date = ? AND status = ?", today, models.ReservationNoShow)},
	}
	for _, q := range counts {
		if err := q.query.Count(q.dest).Error; err != nil {
			utils.RespondClassified(c, err)
			return
		}
	}

	events.BroadcastMessage(events.Message{
		Event: events.EventDashboardUpdate,
		Data:  stats,
	})

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// ExportGuestPDF renders a one-page profile sheet for pre-shift
// briefings.
func (dc *DashboardController) ExportGuestPDF(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("guest_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.NewValidationError("invalid guest id"))
		return
	}

	var guest models.Guest
	if err := dc.DB.
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
		First(&guest, id).Error; err != nil {
		utils.RespondClassified(c, err)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, guest.Name)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if guest.Phone != nil {
		pdf.Cell(0, 6, "Phone: "+*guest.Phone)
		pdf.Ln(6)
	}
	if guest.Email != nil {
		pdf.Cell(0, 6, "Email: "+*guest.Email)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	section := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, title)
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		for _, line := range lines {
			pdf.Cell(0, 6, "  - "+line)
			pdf.Ln(6)
		}
		pdf.Ln(2)
	}

	var tags []string
	for _, t := range guest.Tags {
		tags = append(tags, t.Tag)
	}
	section("Tags", tags)

	var allergies []string
	for _, a := range guest.Allergies {
		allergies = append(allergies, a.Value)
	}
	section("Allergies", allergies)

	var tablePrefs []string
	for _, p := range guest.TablePreferences {
		tablePrefs = append(tablePrefs, p.Value)
	}
	section("Table", tablePrefs)

	golden := func(value string, isGolden bool) string {
		if isGolden {
			return value + " *"
		}
		return value
	}
	var food, wine, cocktails, spirits []string
	for _, p := range guest.FoodPreferences {
		food = append(food, golden(p.Value, p.Golden))
	}
	for _, p := range guest.WinePreferences {
		wine = append(wine, golden(p.Value, p.Golden))
	}
	for _, p := range guest.CocktailPreferences {
		cocktails = append(cocktails, golden(p.Value, p.Golden))
	}
	for _, p := range guest.SpiritsPreferences {
		spirits = append(spirits, golden(p.Value, p.Golden))
	}
	section("Food", food)
	section("Wine", wine)
	section("Cocktails", cocktails)
	section("Spirits", spirits)

	var dates []string
	for _, d := range guest.ImportantDates {
		dates = append(dates, fmt.Sprintf("%s (%s)", d.Label, d.MonthDay))
	}
	section("Important dates", dates)

	var notables []string
	for _, n := range guest.Notables {
		notables = append(notables, n.Value)
	}
	section("Notables", notables)

	if guest.Note != nil && guest.Note.Body != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Notes")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, guest.Note.Body, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=guest-%d.pdf", guest.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
