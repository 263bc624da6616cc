package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/models"
)

func createAddress(t *testing.T, app *fiber.App, token, street string, isDefault bool) uint {
	t.Helper()

	resp := doRequest(t, app, "POST", "/api/addresses", token, fiber.Map{
		"type":       "HOME",
		"street":     street,
		"city":       "Mumbai",
		"state":      "Maharashtra",
		"zip_code":   "400001",
		"is_default": isDefault,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return uint(decodeMap(t, resp)["ID"].(float64))
}

func countDefaults(t *testing.T, db *gorm.DB, customerUserID uint) int64 {
	t.Helper()

	var customer models.Customer
	require.NoError(t, db.Where("user_id = ?", customerUserID).First(&customer).Error)

	var n int64
	require.NoError(t, db.Model(&models.Address{}).
		Where("customer_id = ? AND is_default = ?", customer.ID, true).
		Count(&n).Error)
	return n
}

// TestDefaultAddressInvariant checks that at most one address is ever
// flagged default, through create, create-as-default and set-default.
func TestDefaultAddressInvariant(t *testing.T) {
	app, db := setupTestApp(t)

	token, userID := registerUser(t, app, "cust@example.com", models.RoleCustomer)

	first := createAddress(t, app, token, "1 First Street", true)
	second := createAddress(t, app, token, "2 Second Street", true)
	assert.EqualValues(t, 1, countDefaults(t, db, userID))

	// The newest default won
	resp := doRequest(t, app, "GET", "/api/addresses", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decodeList(t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, float64(second), list[0]["ID"])
	assert.Equal(t, true, list[0]["is_default"])

	// Flip the default back to the first address
	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/addresses/%d/default", first), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, countDefaults(t, db, userID))

	resp = doRequest(t, app, "GET", "/api/addresses", token, nil)
	list = decodeList(t, resp)
	assert.Equal(t, float64(first), list[0]["ID"])
}

func TestAddressRoutesAreCustomerOnly(t *testing.T) {
	app, _ := setupTestApp(t)

	workerToken, _ := registerUser(t, app, "pro@example.com", models.RoleWorker)

	resp := doRequest(t, app, "POST", "/api/addresses", workerToken, fiber.Map{
		"street": "3 Worker Lane",
		"city":   "Pune",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/addresses", workerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAddressOwnership(t *testing.T) {
	app, _ := setupTestApp(t)

	tokenA, _ := registerUser(t, app, "a@example.com", models.RoleCustomer)
	tokenB, _ := registerUser(t, app, "b@example.com", models.RoleCustomer)

	addrID := createAddress(t, app, tokenA, "4 Private Road", false)

	// Another customer can neither update nor delete it
	resp := doRequest(t, app, "PUT", fmt.Sprintf("/api/addresses/%d", addrID), tokenB, fiber.Map{
		"street": "hijacked",
		"city":   "Delhi",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, "DELETE", fmt.Sprintf("/api/addresses/%d", addrID), tokenB, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// The owner can delete it
	resp = doRequest(t, app, "DELETE", fmt.Sprintf("/api/addresses/%d", addrID), tokenA, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Address deleted successfully", decodeMap(t, resp)["message"])

	resp = doRequest(t, app, "GET", "/api/addresses", tokenA, nil)
	assert.Empty(t, decodeList(t, resp))
}

func TestUpdateAddress(t *testing.T) {
	app, _ := setupTestApp(t)

	token, _ := registerUser(t, app, "cust@example.com", models.RoleCustomer)
	addrID := createAddress(t, app, token, "5 Old Street", false)

	resp := doRequest(t, app, "PUT", fmt.Sprintf("/api/addresses/%d", addrID), token, fiber.Map{
		"type":       "WORK",
		"street":     "6 New Street",
		"city":       "Chennai",
		"state":      "Tamil Nadu",
		"zip_code":   "600001",
		"is_default": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeMap(t, resp)
	assert.Equal(t, "6 New Street", body["street"])
	assert.Equal(t, "Chennai", body["city"])
	assert.Equal(t, true, body["is_default"])
}
