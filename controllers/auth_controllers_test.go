package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/L1quidL1ght/glimpse/cache"
	"github.com/L1quidL1ght/glimpse/models"
	"github.com/L1quidL1ght/glimpse/router"
	"github.com/L1quidL1ght/glimpse/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.Staff{},
		&models.Guest{},
		&models.GuestTag{},
		&models.TablePreference{},
		&models.FoodPreference{},
		&models.WinePreference{},
		&models.CocktailPreference{},
		&models.SpiritsPreference{},
		&models.Allergy{},
		&models.ImportantDate{},
		&models.Notable{},
		&models.Note{},
		&models.Connection{},
		&models.Visit{},
		&models.VisitOrder{},
		&models.Reservation{},
		&models.PreferenceOption{},
		&models.DBChange{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newTestServer(db *gorm.DB) *gin.Engine {
	return router.SetupRouter(db, cache.NewGuestCache(nil))
}

func seedStaff(t *testing.T, db *gorm.DB, name, pin, role string) uint {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	assert.NoError(t, err)

	staff := models.Staff{Name: name, Role: role, PinHash: string(hashed), IsActive: true}
	assert.NoError(t, db.Create(&staff).Error)
	return staff.ID
}

// doJSON fires a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func loginTest(t *testing.T, r *gin.Engine, pin string) string {
	w := doJSON(t, r, "POST", "/auth/login", "", map[string]string{"pin": pin})
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	session := data["session"].(map[string]interface{})
	token := session["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestLoginIssuesSession(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Dana", "1234", models.RoleAdmin)
	r := newTestServer(db)

	w := doJSON(t, r, "POST", "/auth/login", "", map[string]string{"pin": "1234"})
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["status"])

	data := body["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "Dana", user["name"])
	assert.Equal(t, "admin", user["role"])

	session := data["session"].(map[string]interface{})
	assert.NotEmpty(t, session["token"])

	expiresAt, err := time.Parse(time.RFC3339, session["expires_at"].(string))
	assert.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))
}

func TestLoginRejectsBadPinFormat(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Dana", "1234", models.RoleAdmin)
	r := newTestServer(db)

	// Format check happens before any roster scan.
	w := doJSON(t, r, "POST", "/auth/login", "", map[string]string{"pin": "12ab"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", "/auth/login", "", map[string]string{"pin": "12345"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRejectsWrongPin(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Dana", "1234", models.RoleAdmin)
	r := newTestServer(db)

	w := doJSON(t, r, "POST", "/auth/login", "", map[string]string{"pin": "9999"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginIgnoresInactiveStaff(t *testing.T) {
	db := setupTestDB(t)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.DefaultCost)
	created := models.Staff{Name: "Gone", Role: models.RoleStaff, PinHash: string(hashed), IsActive: false}
	assert.NoError(t, db.Create(&created).Error)

	// The deactivated flag must survive the insert; a column default
	// would overwrite the zero value here.
	var stored models.Staff
	assert.NoError(t, db.First(&stored, created.ID).Error)
	assert.False(t, stored.IsActive)

	r := newTestServer(db)
	w := doJSON(t, r, "POST", "/auth/login", "", map[string]string{"pin": "4321"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "Dana", "1234", models.RoleAdmin)
	r := newTestServer(db)

	token := loginTest(t, r, "1234")

	w := doJSON(t, r, "GET", "/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "POST", "/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// The same token must be refused from now on.
	w = doJSON(t, r, "GET", "/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	db := setupTestDB(t)
	r := newTestServer(db)

	w := doJSON(t, r, "GET", "/guests", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, "GET", "/guests", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
