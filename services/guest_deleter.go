package services

import (
	"context"
	"fmt"

	"github.com/L1quidL1ght/glimpse/cache"
	"github.com/L1quidL1ght/glimpse/models"
	"github.com/L1quidL1ght/glimpse/utils"
	"gorm.io/gorm"
)

// DeleteStep is one entry in the workflow trail, reported to the caller
// on success and logged for operator diagnosis on failure.
type DeleteStep struct {
	Step        string `json:"step"`
	RowsRemoved int64  `json:"rows_removed"`
}

type GuestDeleter struct {
	DB    *gorm.DB
	Cache *cache.GuestCache
}

func NewGuestDeleter(db *gorm.DB, guestCache *cache.GuestCache) *GuestDeleter {
	return &GuestDeleter{DB: db, Cache: guestCache}
}

// Delete removes a guest and every dependent row, children before
// parent. Dependent tables fall to any authenticated role; the root row
// additionally requires admin, checked up front and enforced at the
// final step. The whole sequence runs in one transaction, so a failure
// at any step rolls the aggregate back instead of leaving it
// half-deleted. The returned trail names each step and its row count.
func (gd *GuestDeleter) Delete(guestID uint, actorRole string) ([]DeleteStep, error) {
	var guest models.Guest
	if err := gd.DB.First(&guest, guestID).Error; err != nil {
		return nil, utils.NewNotFoundError(fmt.Sprintf("guest %d not found", guestID))
	}
	isAdmin := actorRole == models.RoleAdmin

	trail := make([]DeleteStep, 0, 18)
	record := func(step string, res *gorm.DB) error {
		if res.Error != nil {
			return fmt.Errorf("delete %s: %w", step, res.Error)
		}
		trail = append(trail, DeleteStep{Step: step, RowsRemoved: res.RowsAffected})
		return nil
	}

	err := gd.DB.Transaction(func(tx *gorm.DB) error {
		// Simple dependents, no ordering constraints among themselves.
		simple := []struct {
			step  string
			model interface{}
		}{
			{"tags", &models.GuestTag{}},
			{"table_preferences", &models.TablePreference{}},
			{"food_preferences", &models.FoodPreference{}},
			{"wine_preferences", &models.WinePreference{}},
			{"cocktail_preferences", &models.CocktailPreference{}},
			{"spirits_preferences", &models.SpiritsPreference{}},
			{"allergies", &models.Allergy{}},
			{"important_dates", &models.ImportantDate{}},
			{"notables", &models.Notable{}},
			{"notes", &models.Note{}},
		}
		for _, s := range simple {
			if err := record(s.step, tx.Where("guest_id = ?", guestID).Delete(s.model)); err != nil {
				return err
			}
		}

		// Connections where the guest is either endpoint.
		if err := record("connections_outgoing",
			tx.Where("guest_id = ?", guestID).Delete(&models.Connection{})); err != nil {
			return err
		}
		if err := record("connections_incoming",
			tx.Where("connected_guest_id = ?", guestID).Delete(&models.Connection{})); err != nil {
			return err
		}

		if err := record("reservations",
			tx.Where("guest_id = ?", guestID).Delete(&models.Reservation{})); err != nil {
			return err
		}

		// Visit orders reference visits, not the guest, so enumerate
		// visits first.
		var visitIDs []uint
		if err := tx.Model(&models.Visit{}).Where("guest_id = ?", guestID).
			Pluck("id", &visitIDs).Error; err != nil {
			return fmt.Errorf("list visits: %w", err)
		}
		if len(visitIDs) > 0 {
			if err := record("visit_orders",
				tx.Where("visit_id IN ?", visitIDs).Delete(&models.VisitOrder{})); err != nil {
				return err
			}
		} else {
			trail = append(trail, DeleteStep{Step: "visit_orders", RowsRemoved: 0})
		}
		if err := record("visits",
			tx.Where("guest_id = ?", guestID).Delete(&models.Visit{})); err != nil {
			return err
		}

		// Root row: strongest check for the only irreversible step.
		if !isAdmin {
			return utils.NewPermissionError("admin role required to delete a guest")
		}
		return record("guest", tx.Delete(&models.Guest{}, guestID))
	})
	if err != nil {
		utils.ErrorLogger.Printf("Cascading delete of guest %d aborted after %d steps: %v",
			guestID, len(trail), err)
		return trail, err
	}

	for _, step := range trail {
		utils.InfoLogger.Printf("guest %d delete: %s removed %d rows", guestID, step.Step, step.RowsRemoved)
	}

	if err := RecordChange(gd.DB, "guests", guestID, "DELETE"); err != nil {
		utils.ErrorLogger.Printf("journal write failed for deleted guest %d: %v", guestID, err)
	}
	gd.Cache.InvalidateGuest(context.Background(), guestID)

	return trail, nil
}
