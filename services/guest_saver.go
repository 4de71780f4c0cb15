package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/L1quidL1ght/glimpse/cache"
	"github.com/L1quidL1ght/glimpse/models"
	"github.com/L1quidL1ght/glimpse/utils"
	"gorm.io/gorm"
)

// GuestInput is the full form state for a guest profile. Updates are a
// full replace: every dependent collection ends up containing exactly
// what the form submitted.
type GuestInput struct {
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	MemberNumber *string `json:"member_number"`
	AvatarURL    *string `json:"avatar_url"`

	Tags                []string             `json:"tags"`
	TablePreferences    []string             `json:"table_preferences"`
	FoodPreferences     []PreferenceInput    `json:"food_preferences"`
	WinePreferences     []PreferenceInput    `json:"wine_preferences"`
	CocktailPreferences []PreferenceInput    `json:"cocktail_preferences"`
	SpiritsPreferences  []PreferenceInput    `json:"spirits_preferences"`
	Allergies           []string             `json:"allergies"`
	ImportantDates      []ImportantDateInput `json:"important_dates"`
	Notables            []string             `json:"notables"`
	Note                string               `json:"note"`
	Connections         []ConnectionInput    `json:"connections"`
}

type PreferenceInput struct {
	Value  string `json:"value"`
	Golden bool   `json:"golden"`
}

type ImportantDateInput struct {
	Label    string `json:"label"`
	MonthDay string `json:"month_day"` // MM-DD
}

type ConnectionInput struct {
	TargetName   string `json:"target_name"`
	Relationship string `json:"relationship"`
}

type GuestSaver struct {
	DB    *gorm.DB
	Cache *cache.GuestCache
}

func NewGuestSaver(db *gorm.DB, guestCache *cache.GuestCache) *GuestSaver {
	return &GuestSaver{DB: db, Cache: guestCache}
}

// Save creates a guest when existingID is nil, otherwise rewrites the
// aggregate for that id. The whole workflow runs in one transaction;
// dependent collections are deleted and re-inserted from the form state
// rather than diffed. Only the vocabulary upsert runs outside the
// transaction (best effort, after commit).
func (gs *GuestSaver) Save(input GuestInput, existingID *uint) (*models.Guest, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, utils.NewValidationError("guest name is required")
	}

	var guest models.Guest
	action := "INSERT"

	err := gs.DB.Transaction(func(tx *gorm.DB) error {
		if existingID != nil {
			action = "UPDATE"
			if err := tx.First(&guest, *existingID).Error; err != nil {
				return utils.NewNotFoundError(fmt.Sprintf("guest %d not found", *existingID))
			}

			guest.Name = input.Name
			guest.Email = input.Email
			guest.Phone = input.Phone
			guest.MemberNumber = input.MemberNumber
			guest.AvatarURL = input.AvatarURL
			if err := tx.Save(&guest).Error; err != nil {
				return err
			}

			if err := gs.clearDependents(tx, guest.ID); err != nil {
				return err
			}
		} else {
			guest = models.Guest{
				Name:         input.Name,
				Email:        input.Email,
				Phone:        input.Phone,
				MemberNumber: input.MemberNumber,
				AvatarURL:    input.AvatarURL,
			}
			if err := tx.Create(&guest).Error; err != nil {
				return err
			}
		}

		return gs.insertDependents(tx, guest.ID, input)
	})
	if err != nil {
		return nil, err
	}

	// Vocabulary upserts must never block a successful save.
	gs.upsertVocabulary(input)

	if err := RecordChange(gs.DB, "guests", guest.ID, action); err != nil {
		utils.ErrorLogger.Printf("journal write failed for guest %d: %v", guest.ID, err)
	}
	if existingID == nil {
		// A fresh guest has no detail key yet; only the list is stale.
		gs.Cache.InvalidateList(context.Background())
	} else {
		gs.Cache.InvalidateGuest(context.Background(), guest.ID)
	}

	utils.InfoLogger.Printf("Guest %q saved (id=%d, action=%s)", guest.Name, guest.ID, action)
	return &guest, nil
}

// clearDependents removes every dependent row ahead of the re-insert.
// Connections go in both directions so no one-sided mirror survives.
func (gs *GuestSaver) clearDependents(tx *gorm.DB, guestID uint) error {
	deletes := []struct {
		name  string
		query *gorm.DB
	}{
		{"tags", tx.Where("guest_id = ?", guestID).Delete(&models.GuestTag{})},
		{"table preferences", tx.Where("guest_id = ?", guestID).Delete(&models.TablePreference{})},
		{"food preferences", tx.Where("guest_id = ?", guestID).Delete(&models.FoodPreference{})},
		{"wine preferences", tx.Where("guest_id = ?", guestID).Delete(&models.WinePreference{})},
		{"cocktail preferences", tx.Where("guest_id = ?", guestID).Delete(&models.CocktailPreference{})},
		{"spirits preferences", tx.Where("guest_id = ?", guestID).Delete(&models.SpiritsPreference{})},
		{"allergies", tx.Where("guest_id = ?", guestID).Delete(&models.Allergy{})},
		{"important dates", tx.Where("guest_id = ?", guestID).Delete(&models.ImportantDate{})},
		{"notables", tx.Where("guest_id = ?", guestID).Delete(&models.Notable{})},
		{"notes", tx.Where("guest_id = ?", guestID).Delete(&models.Note{})},
		{"outgoing connections", tx.Where("guest_id = ?", guestID).Delete(&models.Connection{})},
		{"incoming connections", tx.Where("connected_guest_id = ?", guestID).Delete(&models.Connection{})},
	}

	for _, d := range deletes {
		if d.query.Error != nil {
			return fmt.Errorf("clear %s: %w", d.name, d.query.Error)
		}
	}
	return nil
}

func (gs *GuestSaver) insertDependents(tx *gorm.DB, guestID uint, input GuestInput) error {
	for _, tag := range nonEmpty(input.Tags) {
		if err := tx.Create(&models.GuestTag{GuestID: guestID, Tag: tag}).Error; err != nil {
			return fmt.Errorf("insert tag: %w", err)
		}
	}
	for _, v := range nonEmpty(input.TablePreferences) {
		if err := tx.Create(&models.TablePreference{GuestID: guestID, Value: v}).Error; err != nil {
			return fmt.Errorf("insert table preference: %w", err)
		}
	}
	for _, p := range input.FoodPreferences {
		if strings.TrimSpace(p.Value) == "" {
			continue
		}
		if err := tx.Create(&models.FoodPreference{GuestID: guestID, Value: p.Value, Golden: p.Golden}).Error; err != nil {
			return fmt.Errorf("insert food preference: %w", err)
		}
	}
	for _, p := range input.WinePreferences {
		if strings.TrimSpace(p.Value) == "" {
			continue
		}
		if err := tx.Create(&models.WinePreference{GuestID: guestID, Value: p.Value, Golden: p.Golden}).Error; err != nil {
			return fmt.Errorf("insert wine preference: %w", err)
		}
	}
	for _, p := range input.CocktailPreferences {
		if strings.TrimSpace(p.Value) == "" {
			continue
		}
		if err := tx.Create(&models.CocktailPreference{GuestID: guestID, Value: p.Value, Golden: p.Golden}).Error; err != nil {
			return fmt.Errorf("insert cocktail preference: %w", err)
		}
	}
	for _, p := range input.SpiritsPreferences {
		if strings.TrimSpace(p.Value) == "" {
			continue
		}
		if err := tx.Create(&models.SpiritsPreference{GuestID: guestID, Value: p.Value, Golden: p.Golden}).Error; err != nil {
			return fmt.Errorf("insert spirits preference: %w", err)
		}
	}
	for _, v := range nonEmpty(input.Allergies) {
		if err := tx.Create(&models.Allergy{GuestID: guestID, Value: v}).Error; err != nil {
			return fmt.Errorf("insert allergy: %w", err)
		}
	}
	for _, d := range input.ImportantDates {
		if strings.TrimSpace(d.Label) == "" || strings.TrimSpace(d.MonthDay) == "" {
			continue
		}
		if err := tx.Create(&models.ImportantDate{GuestID: guestID, Label: d.Label, MonthDay: d.MonthDay}).Error; err != nil {
			return fmt.Errorf("insert important date: %w", err)
		}
	}
	for _, v := range nonEmpty(input.Notables) {
		if err := tx.Create(&models.Notable{GuestID: guestID, Value: v}).Error; err != nil {
			return fmt.Errorf("insert notable: %w", err)
		}
	}
	if strings.TrimSpace(input.Note) != "" {
		if err := tx.Create(&models.Note{GuestID: guestID, Body: input.Note}).Error; err != nil {
			return fmt.Errorf("insert note: %w", err)
		}
	}

	return gs.insertConnections(tx, guestID, input.Connections)
}

// insertConnections resolves each target by name and writes mirrored
// rows. Unresolvable or self-referencing targets are logged and skipped,
// never surfaced as an error.
func (gs *GuestSaver) insertConnections(tx *gorm.DB, guestID uint, conns []ConnectionInput) error {
	for _, conn := range conns {
		name := strings.TrimSpace(conn.TargetName)
		if name == "" {
			continue
		}

		var target models.Guest
		if err := tx.Where("name = ?", name).First(&target).Error; err != nil {
			utils.InfoLogger.Printf("connection target %q not found for guest %d, skipping", name, guestID)
			continue
		}
		if target.ID == guestID {
			utils.InfoLogger.Printf("guest %d cannot connect to itself, skipping", guestID)
			continue
		}

		pair := []models.Connection{
			{GuestID: guestID, ConnectedGuestID: target.ID, Relationship: conn.Relationship},
			{GuestID: target.ID, ConnectedGuestID: guestID, Relationship: conn.Relationship},
		}
		for _, row := range pair {
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert connection: %w", err)
			}
		}
	}
	return nil
}

// upsertVocabulary feeds distinct preference values into the shared
// autocomplete table. Errors are logged and swallowed.
func (gs *GuestSaver) upsertVocabulary(input GuestInput) {
	categories := map[string][]PreferenceInput{
		"food":     input.FoodPreferences,
		"wine":     input.WinePreferences,
		"cocktail": input.CocktailPreferences,
		"spirits":  input.SpiritsPreferences,
	}

	for category, prefs := range categories {
		for _, p := range prefs {
			text := strings.TrimSpace(p.Value)
			if text == "" {
				continue
			}
			if err := UpsertPreferenceOption(gs.DB, category, text); err != nil {
				utils.ErrorLogger.Printf("vocabulary upsert failed (%s/%s): %v", category, text, err)
			}
		}
	}
}

// UpsertPreferenceOption appends a value to the vocabulary or bumps its
// usage count.
func UpsertPreferenceOption(db *gorm.DB, category, text string) error {
	var option models.PreferenceOption
	err := db.Where("category = ? AND text = ?", category, text).First(&option).Error
	if err == nil {
		return db.Model(&option).Update("usage_count", gorm.Expr("usage_count + 1")).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(&models.PreferenceOption{Category: category, Text: text, UsageCount: 1}).Error
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
