package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/L1quidL1ght/glimpse/models"
)

func seedGuest(t *testing.T, db *gorm.DB, name string) uint {
	guest := models.Guest{Name: name}
	assert.NoError(t, db.Create(&guest).Error)
	return guest.ID
}

func TestCreateReservationAlwaysStartsConfirmed(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Host", "1234", models.RoleStaff)
	guestID := seedGuest(t, db, "Walk In")
	r := newTestServer(db)
	token := loginTest(t, r, "1234")

	// A status in the request body is ignored, not honored.
	w := doJSON(t, r, "POST", "/reservations", token, map[string]interface{}{
		"guest_id":   guestID,
		"date":       "2026-09-15",
		"time":       "19:30",
		"party_size": 4,
		"status":     "completed",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, models.ReservationConfirmed, data["status"])
}

func TestCreateReservationUnknownGuest(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Host", "1234", models.RoleStaff)
	r := newTestServer(db)
	token := loginTest(t, r, "1234")

	w := doJSON(t, r, "POST", "/reservations", token, map[string]interface{}{
		"guest_id": 777,
		"date":     "2026-09-15",
		"time":     "19:30",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReservationStatusRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Host", "1234", models.RoleStaff)
	guestID := seedGuest(t, db, "Round Trip")
	r := newTestServer(db)
	token := loginTest(t, r, "1234")

	res := models.Reservation{GuestID: guestID, Date: "2026-09-15", Time: "20:00", PartySize: 2, Status: models.ReservationConfirmed}
	assert.NoError(t, db.Create(&res).Error)

	w := doJSON(t, r, "PATCH", "/reservations/"+itoa(res.ID), token, map[string]string{
		"status": models.ReservationCompleted,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Completed back to confirmed is the undo path; no transition rule
	// blocks it.
	w = doJSON(t, r, "PATCH", "/reservations/"+itoa(res.ID), token, map[string]string{
		"status": models.ReservationConfirmed,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var saved models.Reservation
	assert.NoError(t, db.First(&saved, res.ID).Error)
	assert.Equal(t, models.ReservationConfirmed, saved.Status)
}

func TestUpdateReservationRejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Host", "1234", models.RoleStaff)
	guestID := seedGuest(t, db, "Strict")
	r := newTestServer(db)
	token := loginTest(t, r, "1234")

	res := models.Reservation{GuestID: guestID, Date: "2026-09-15", Time: "20:00", PartySize: 2, Status: models.ReservationConfirmed}
	assert.NoError(t, db.Create(&res).Error)

	w := doJSON(t, r, "PATCH", "/reservations/"+itoa(res.ID), token, map[string]string{
		"status": "seated",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListReservationsOrderedAndFiltered(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Host", "1234", models.RoleStaff)
	guestID := seedGuest(t, db, "Regular")
	r := newTestServer(db)
	token := loginTest(t, r, "1234")

	assert.NoError(t, db.Create(&models.Reservation{GuestID: guestID, Date: "2026-09-16", Time: "18:00", PartySize: 2, Status: models.ReservationConfirmed}).Error)
	assert.NoError(t, db.Create(&models.Reservation{GuestID: guestID, Date: "2026-09-15", Time: "21:00", PartySize: 2, Status: models.ReservationConfirmed}).Error)
	assert.NoError(t, db.Create(&models.Reservation{GuestID: guestID, Date: "2026-09-15", Time: "19:00", PartySize: 2, Status: models.ReservationCancelled}).Error)

	w := doJSON(t, r, "GET", "/reservations", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	list := body["data"].([]interface{})
	assert.Len(t, list, 3)

	first := list[0].(map[string]interface{})
	assert.Equal(t, "2026-09-15", first["date"])
	assert.Equal(t, "19:00", first["time"])

	w = doJSON(t, r, "GET", "/reservations?date=2026-09-15&status=confirmed", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	list = body["data"].([]interface{})
	assert.Len(t, list, 1)
	assert.Equal(t, "21:00", list[0].(map[string]interface{})["time"])
}

func TestDeleteReservation(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Host", "1234", models.RoleStaff)
	guestID := seedGuest(t, db, "Leaving")
	r := newTestServer(db)
	token := loginTest(t, r, "1234")

	res := models.Reservation{GuestID: guestID, Date: "2026-09-15", Time: "20:00", PartySize: 2, Status: models.ReservationConfirmed}
	assert.NoError(t, db.Create(&res).Error)

	w := doJSON(t, r, "DELETE", "/reservations/"+itoa(res.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var gone models.Reservation
	assert.Error(t, db.First(&gone, res.ID).Error)
}
