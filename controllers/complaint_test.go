package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homekaro/home-service-api/models"
)

func TestCreateComplaintValidation(t *testing.T) {
	app, db := setupTestApp(t)

	token, _ := registerUser(t, app, "cust@example.com", models.RoleCustomer)

	// Undersized title
	resp := doRequest(t, app, "POST", "/api/complaints", token, fiber.Map{
		"title":       "Bad",
		"description": "The worker never showed up at all.",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Title must be at least 5 characters", decodeMap(t, resp)["error"])

	// Undersized description
	resp = doRequest(t, app, "POST", "/api/complaints", token, fiber.Map{
		"title":       "No show",
		"description": "too short",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Description must be at least 20 characters", decodeMap(t, resp)["error"])

	// Unknown priority
	resp = doRequest(t, app, "POST", "/api/complaints", token, fiber.Map{
		"title":       "No show",
		"description": "The worker never showed up at all.",
		"priority":    "CATASTROPHIC",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid priority", decodeMap(t, resp)["error"])

	// Nothing persisted from any rejected request
	var count int64
	require.NoError(t, db.Model(&models.Complaint{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateComplaintDefaults(t *testing.T) {
	app, _ := setupTestApp(t)

	token, _ := registerUser(t, app, "cust@example.com", models.RoleCustomer)

	resp := doRequest(t, app, "POST", "/api/complaints", token, fiber.Map{
		"title":       "Overcharged for materials",
		"description": "I was billed for paint that was never used on the job.",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeMap(t, resp)
	assert.Equal(t, string(models.ComplaintOpen), body["status"])
	assert.Equal(t, string(models.PriorityMedium), body["priority"])
}

func TestComplaintVisibility(t *testing.T) {
	app, db := setupTestApp(t)

	ownerToken, _ := registerUser(t, app, "owner@example.com", models.RoleCustomer)
	otherToken, _ := registerUser(t, app, "other@example.com", models.RoleCustomer)
	adminToken := seedAdmin(t, app, db)

	resp := doRequest(t, app, "POST", "/api/complaints", ownerToken, fiber.Map{
		"title":       "Damaged furniture",
		"description": "The sofa was scratched while the team moved it around.",
		"priority":    "HIGH",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	complaintID := uint(decodeMap(t, resp)["ID"].(float64))

	path := fmt.Sprintf("/api/complaints/%d", complaintID)

	// Owner sees it
	resp = doRequest(t, app, "GET", path, ownerToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Another customer does not
	resp = doRequest(t, app, "GET", path, otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Access denied", decodeMap(t, resp)["error"])

	// Admins always do
	resp = doRequest(t, app, "GET", path, adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The owner's list only carries their own complaints
	resp = doRequest(t, app, "GET", "/api/complaints/my", otherToken, nil)
	assert.Empty(t, decodeList(t, resp))
	resp = doRequest(t, app, "GET", "/api/complaints/my", ownerToken, nil)
	assert.Len(t, decodeList(t, resp), 1)
}
