package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/L1quidL1ght/glimpse/models"
)

func TestCreateAndFetchGuest(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Server", "1234", models.RoleStaff)
	r := newTestServer(db)
	token := loginTest(t, r, "1234")

	w := doJSON(t, r, "POST", "/guests", token, map[string]interface{}{
		"name":      "Iris Vale",
		"tags":      []string{"VIP"},
		"allergies": []string{"Tree nuts"},
		"food_preferences": []map[string]interface{}{
			{"value": "Branzino", "golden": true},
		},
		"note": "Always greets the chef.",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	guestID := uint(data["id"].(float64))
	assert.NotZero(t, guestID)

	w = doJSON(t, r, "GET", "/guests/"+itoa(guestID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, w)
	detail := body["data"].(map[string]interface{})
	assert.Equal(t, "Iris Vale", detail["name"])

	tags := detail["tags"].([]interface{})
	assert.Len(t, tags, 1)
	assert.Equal(t, "VIP", tags[0].(map[string]interface{})["tag"])

	prefs := detail["food_preferences"].([]interface{})
	assert.Len(t, prefs, 1)
	assert.Equal(t, true, prefs[0].(map[string]interface{})["golden"])

	note := detail["note"].(map[string]interface{})
	assert.Equal(t, "Always greets the chef.", note["body"])
}

func TestUpdateGuestReplacesCollections(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Server", "1234", models.RoleStaff)
	r := newTestServer(db)
	token := loginTest(t, r, "1234")

	w := doJSON(t, r, "POST", "/guests", token, map[string]interface{}{
		"name":      "Replace Me",
		"allergies": []string{"Dairy", "Eggs"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	guestID := uint(decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64))

	w = doJSON(t, r, "PUT", "/guests/"+itoa(guestID), token, map[string]interface{}{
		"name":      "Replace Me",
		"allergies": []string{"Sesame"},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var allergies []models.Allergy
	assert.NoError(t, db.Where("guest_id = ?", guestID).Find(&allergies).Error)
	assert.Len(t, allergies, 1)
	assert.Equal(t, "Sesame", allergies[0].Value)
}

func TestGuestListFilters(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Server", "1234", models.RoleStaff)
	r := newTestServer(db)
	token := loginTest(t, r, "1234")

	vip := seedGuest(t, db, "Filter VIP")
	seedGuest(t, db, "Filter Plain")
	assert.NoError(t, db.Create(&models.GuestTag{GuestID: vip, Tag: "VIP"}).Error)

	w := doJSON(t, r, "GET", "/guests?tag=VIP", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)["data"].([]interface{})
	assert.Len(t, list, 1)
	assert.Equal(t, "Filter VIP", list[0].(map[string]interface{})["name"])
}

func TestDeleteGuestNeedsAdmin(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Server", "1234", models.RoleStaff)
	seedStaff(t, db, "Boss", "0000", models.RoleAdmin)
	r := newTestServer(db)

	guestID := seedGuest(t, db, "Short Lived")
	assert.NoError(t, db.Create(&models.GuestTag{GuestID: guestID, Tag: "VIP"}).Error)

	staffToken := loginTest(t, r, "1234")
	w := doJSON(t, r, "DELETE", "/guests/"+itoa(guestID), staffToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The refusal still reports how far the workflow got.
	body := decodeBody(t, w)
	trail := body["data"].(map[string]interface{})["trail"].([]interface{})
	assert.NotEmpty(t, trail)

	// Rolled back: the guest and its rows survive a staff attempt.
	var guest models.Guest
	assert.NoError(t, db.First(&guest, guestID).Error)

	adminToken := loginTest(t, r, "0000")
	w = doJSON(t, r, "DELETE", "/guests/"+itoa(guestID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, w)
	trail = body["data"].(map[string]interface{})["trail"].([]interface{})
	last := trail[len(trail)-1].(map[string]interface{})
	assert.Equal(t, "guest", last["step"])

	w = doJSON(t, r, "GET", "/guests/"+itoa(guestID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
