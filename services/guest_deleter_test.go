package services

import (
	"testing"

	"github.com/L1quidL1ght/glimpse/cache"
	"github.com/L1quidL1ght/glimpse/models"
	"github.com/L1quidL1ght/glimpse/utils"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// seedGuestAggregate builds a guest with at least one row in every
// dependent table, including a mirrored connection to a second guest
// and a visit with line items.
func seedGuestAggregate(t *testing.T, db *gorm.DB) (uint, uint) {
	guest := models.Guest{Name: "Cascade Target"}
	assert.NoError(t, db.Create(&guest).Error)
	other := models.Guest{Name: "Other Guest"}
	assert.NoError(t, db.Create(&other).Error)

	assert.NoError(t, db.Create(&models.GuestTag{GuestID: guest.ID, Tag: "VIP"}).Error)
	assert.NoError(t, db.Create(&models.TablePreference{GuestID: guest.ID, Value: "corner booth"}).Error)
	assert.NoError(t, db.Create(&models.FoodPreference{GuestID: guest.ID, Value: "Duck", Golden: true}).Error)
	assert.NoError(t, db.Create(&models.WinePreference{GuestID: guest.ID, Value: "Burgundy"}).Error)
	assert.NoError(t, db.Create(&models.CocktailPreference{GuestID: guest.ID, Value: "Negroni"}).Error)
	assert.NoError(t, db.Create(&models.SpiritsPreference{GuestID: guest.ID, Value: "Mezcal"}).Error)
	assert.NoError(t, db.Create(&models.Allergy{GuestID: guest.ID, Value: "Shellfish"}).Error)
	assert.NoError(t, db.Create(&models.ImportantDate{GuestID: guest.ID, Label: models.DateLabelBirthday, MonthDay: "02-14"}).Error)
	assert.NoError(t, db.Create(&models.Notable{GuestID: guest.ID, Value: "Food critic"}).Error)
	assert.NoError(t, db.Create(&models.Note{GuestID: guest.ID, Body: "Comp dessert."}).Error)

	assert.NoError(t, db.Create(&models.Connection{GuestID: guest.ID, ConnectedGuestID: other.ID, Relationship: "friend"}).Error)
	assert.NoError(t, db.Create(&models.Connection{GuestID: other.ID, ConnectedGuestID: guest.ID, Relationship: "friend"}).Error)

	assert.NoError(t, db.Create(&models.Reservation{GuestID: guest.ID, Date: "2026-09-01", Time: "19:00", PartySize: 2}).Error)

	visit := models.Visit{GuestID: guest.ID, Date: "2026-08-01", PartySize: 4}
	assert.NoError(t, db.Create(&visit).Error)
	assert.NoError(t, db.Create(&models.VisitOrder{VisitID: visit.ID, Category: models.OrderCategoryEntree, Item: "Ribeye"}).Error)
	assert.NoError(t, db.Create(&models.VisitOrder{VisitID: visit.ID, Category: models.OrderCategoryDessert, Item: "Tart"}).Error)

	return guest.ID, other.ID
}

func TestGuestDeleterCascadesAsAdmin(t *testing.T) {
	db := setupTestDB(t)
	guestID, otherID := seedGuestAggregate(t, db)

	deleter := NewGuestDeleter(db, cache.NewGuestCache(nil))
	trail, err := deleter.Delete(guestID, models.RoleAdmin)
	assert.NoError(t, err)
	assert.NotEmpty(t, trail)
	assert.Equal(t, "guest", trail[len(trail)-1].Step)

	for _, model := range []interface{}{
		&models.GuestTag{}, &models.TablePreference{}, &models.FoodPreference{},
		&models.WinePreference{}, &models.CocktailPreference{}, &models.SpiritsPreference{},
		&models.Allergy{}, &models.ImportantDate{}, &models.Notable{}, &models.Note{},
		&models.Reservation{}, &models.Visit{},
	} {
		var n int64
		assert.NoError(t, db.Model(model).Where("guest_id = ?", guestID).Count(&n).Error)
		assert.Zero(t, n)
	}

	// Both directions of every connection go, incoming included.
	var conns int64
	db.Model(&models.Connection{}).
		Where("guest_id = ? OR connected_guest_id = ?", guestID, guestID).
		Count(&conns)
	assert.Zero(t, conns)

	var orders int64
	db.Model(&models.VisitOrder{}).Count(&orders)
	assert.Zero(t, orders)

	var gone models.Guest
	assert.Error(t, db.First(&gone, guestID).Error)

	// The other guest is untouched.
	var other models.Guest
	assert.NoError(t, db.First(&other, otherID).Error)
}

func TestGuestDeleterNonAdminStopsAtGuestRow(t *testing.T) {
	db := setupTestDB(t)
	guestID, _ := seedGuestAggregate(t, db)

	deleter := NewGuestDeleter(db, cache.NewGuestCache(nil))
	trail, err := deleter.Delete(guestID, models.RoleStaff)
	assert.Error(t, err)
	assert.Equal(t, utils.KindPermission, utils.Classify(err).Kind)

	// Every dependent step ran; the trail stops short of the root row.
	assert.NotEmpty(t, trail)
	for _, step := range trail {
		assert.NotEqual(t, "guest", step.Step)
	}

	// The transaction rolled back, so the aggregate is intact.
	var guest models.Guest
	assert.NoError(t, db.First(&guest, guestID).Error)
	var tags int64
	db.Model(&models.GuestTag{}).Where("guest_id = ?", guestID).Count(&tags)
	assert.EqualValues(t, 1, tags)
}

func TestGuestDeleterMissingGuest(t *testing.T) {
	db := setupTestDB(t)

	deleter := NewGuestDeleter(db, cache.NewGuestCache(nil))
	trail, err := deleter.Delete(999, models.RoleAdmin)
	assert.Error(t, err)
	assert.Nil(t, trail)
	assert.Equal(t, utils.KindNotFound, utils.Classify(err).Kind)
}

func TestGuestDeleterWritesJournal(t *testing.T) {
	db := setupTestDB(t)
	guestID, _ := seedGuestAggregate(t, db)

	deleter := NewGuestDeleter(db, cache.NewGuestCache(nil))
	_, err := deleter.Delete(guestID, models.RoleAdmin)
	assert.NoError(t, err)

	var change models.DBChange
	assert.NoError(t, db.Where("table_name = ? AND record_id = ? AND action_type = ?",
		"guests", guestID, "DELETE").First(&change).Error)
	assert.False(t, change.Processed)
}
