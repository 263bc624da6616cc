package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
	"github.com/homekaro/home-service-api/routes"
	"github.com/homekaro/home-service-api/utils"
)

// setupTestDB uses an in-memory SQLite database, named per test so
// parallel packages never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Address{},
		&models.Worker{},
		&models.Service{},
		&models.Booking{},
		&models.Review{},
		&models.Complaint{},
	))

	return db
}

// setupTestApp wires the full route table against the test database
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	utils.InitLogger()

	db := setupTestDB(t)

	app := fiber.New()
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"message": "Server is running",
		})
	})
	routes.SetupAuthRoutes(app, db)
	routes.SetupUserRoutes(app, db)
	routes.SetupServiceRoutes(app, db)
	routes.SetupBookingRoutes(app, db)
	routes.SetupWorkerRoutes(app, db)
	routes.SetupReviewRoutes(app, db)
	routes.SetupAddressRoutes(app, db)
	routes.SetupComplaintRoutes(app, db)
	routes.SetupAdminRoutes(app, db)
	routes.SetupDashboardRoutes(app, db)

	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// registerUser registers through the real endpoint and returns the
// session token plus the new user id.
func registerUser(t *testing.T, app *fiber.App, email string, role models.Role) (string, uint) {
	t.Helper()

	resp := doRequest(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
		"phone":    "9876543210",
		"role":     role,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeMap(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user := body["user"].(map[string]interface{})
	return token, uint(user["id"].(float64))
}

// seedAdmin inserts an admin directly (admins are never self-registered)
// and logs in through the admin gate.
func seedAdmin(t *testing.T, app *fiber.App, db *gorm.DB) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Email:    "admin@homekaro.test",
		Password: string(hash),
		Name:     "Platform Admin",
		Role:     models.RoleAdmin,
	}).Error)

	resp := doRequest(t, app, "POST", "/api/auth/admin/login", "", fiber.Map{
		"email":    "admin@homekaro.test",
		"password": "admin123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return decodeMap(t, resp)["token"].(string)
}

func seedService(t *testing.T, app *fiber.App, name, category string, price float64) uint {
	t.Helper()

	resp := doRequest(t, app, "POST", "/api/services", "", fiber.Map{
		"name":       name,
		"category":   category,
		"base_price": price,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return uint(decodeMap(t, resp)["ID"].(float64))
}

// workerProfileID resolves the worker profile id for a user id
func workerProfileID(t *testing.T, db *gorm.DB, userID uint) uint {
	t.Helper()

	var worker models.Worker
	require.NoError(t, db.Where("user_id = ?", userID).First(&worker).Error)
	return worker.ID
}

func TestHealthCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doRequest(t, app, "GET", "/api/health", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeMap(t, resp)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Server is running", body["message"])
}
