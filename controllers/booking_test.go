package controllers_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homekaro/home-service-api/models"
)

func bookingPayload(serviceID uint, amount float64) fiber.Map {
	return fiber.Map{
		"service_id":   serviceID,
		"scheduled_at": time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
		"total_amount": amount,
		"address": fiber.Map{
			"street":   "12 MG Road",
			"city":     "Bengaluru",
			"state":    "Karnataka",
			"zip_code": "560001",
		},
	}
}

// TestBookingLifecycle walks one job end to end: open booking, accept,
// complete, review, and the rating recompute after a second job.
func TestBookingLifecycle(t *testing.T) {
	app, db := setupTestApp(t)

	customerToken, _ := registerUser(t, app, "cust@example.com", models.RoleCustomer)
	workerToken, workerUserID := registerUser(t, app, "pro@example.com", models.RoleWorker)
	serviceID := seedService(t, app, "Deep Cleaning", "Cleaning", 850)

	// A booking without a worker enters the open pool as PENDING
	resp := doRequest(t, app, "POST", "/api/bookings", customerToken, bookingPayload(serviceID, 850))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	booking := decodeMap(t, resp)
	bookingID := uint(booking["ID"].(float64))
	assert.Equal(t, string(models.StatusPending), booking["status"])
	assert.Nil(t, booking["worker_id"])
	assert.Equal(t, 850.0, booking["total_amount"])

	resp = doRequest(t, app, "GET", "/api/workers/jobs/available", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	jobs := decodeList(t, resp)
	require.Len(t, jobs, 1)

	// The worker claims it
	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/bookings/%d/accept", bookingID), workerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	booking = decodeMap(t, resp)
	assert.Equal(t, string(models.StatusConfirmed), booking["status"])
	assert.NotNil(t, booking["worker_id"])

	// A second worker racing for the same job gets a conflict
	secondToken, _ := registerUser(t, app, "pro2@example.com", models.RoleWorker)
	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/bookings/%d/accept", bookingID), secondToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Job is no longer available", decodeMap(t, resp)["error"])

	// The pool is empty again and the job sits in the worker's list
	resp = doRequest(t, app, "GET", "/api/workers/jobs/available", "", nil)
	assert.Empty(t, decodeList(t, resp))

	resp = doRequest(t, app, "GET", "/api/bookings/worker", workerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	mine := decodeList(t, resp)
	require.Len(t, mine, 1)
	assert.Equal(t, string(models.StatusConfirmed), mine[0]["status"])

	// Progress and complete
	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/bookings/%d/status", bookingID), workerToken, fiber.Map{
		"status": models.StatusInProgress,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/bookings/%d/status", bookingID), workerToken, fiber.Map{
		"status": models.StatusCompleted,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	booking = decodeMap(t, resp)
	assert.Equal(t, string(models.StatusCompleted), booking["status"])
	assert.NotNil(t, booking["completed_at"])

	// Completion bumped the worker's job counter
	workerID := workerProfileID(t, db, workerUserID)
	var worker models.Worker
	require.NoError(t, db.First(&worker, workerID).Error)
	assert.Equal(t, 1, worker.TotalJobs)

	// First review sets the cached rating outright
	resp = doRequest(t, app, "POST", "/api/reviews", customerToken, fiber.Map{
		"worker_id":  workerID,
		"booking_id": bookingID,
		"rating":     5,
		"comment":    "Spotless work, right on time.",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.NoError(t, db.First(&worker, workerID).Error)
	assert.Equal(t, 5.0, worker.Rating)

	// A second booking straight to this worker starts CONFIRMED
	payload := bookingPayload(serviceID, 900)
	payload["worker_id"] = workerID
	resp = doRequest(t, app, "POST", "/api/bookings", customerToken, payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	second := decodeMap(t, resp)
	assert.Equal(t, string(models.StatusConfirmed), second["status"])

	// A 4-star review pulls the mean down to 4.5
	resp = doRequest(t, app, "POST", "/api/reviews", customerToken, fiber.Map{
		"worker_id": workerID,
		"rating":    4,
		"comment":   "Good, slightly late.",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.NoError(t, db.First(&worker, workerID).Error)
	assert.Equal(t, 4.5, worker.Rating)
}

func TestCreateBookingValidation(t *testing.T) {
	app, _ := setupTestApp(t)

	token, _ := registerUser(t, app, "cust@example.com", models.RoleCustomer)
	serviceID := seedService(t, app, "Plumbing Visit", "Plumbing", 350)

	cases := []struct {
		name    string
		mutate  func(fiber.Map)
		wantErr string
	}{
		{
			name:    "missing service",
			mutate:  func(p fiber.Map) { delete(p, "service_id") },
			wantErr: "Invalid service ID",
		},
		{
			name:    "missing schedule",
			mutate:  func(p fiber.Map) { delete(p, "scheduled_at") },
			wantErr: "Invalid date format",
		},
		{
			name:    "negative amount",
			mutate:  func(p fiber.Map) { p["total_amount"] = -1 },
			wantErr: "Invalid amount",
		},
		{
			name:    "missing street",
			mutate:  func(p fiber.Map) { p["address"] = fiber.Map{"city": "Bengaluru"} },
			wantErr: "Street address and city are required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := bookingPayload(serviceID, 350)
			tc.mutate(payload)

			resp := doRequest(t, app, "POST", "/api/bookings", token, payload)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tc.wantErr, decodeMap(t, resp)["error"])
		})
	}
}

func TestAcceptBookingNotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	workerToken, _ := registerUser(t, app, "pro@example.com", models.RoleWorker)

	resp := doRequest(t, app, "PUT", "/api/bookings/9999/accept", workerToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Booking not found", decodeMap(t, resp)["error"])
}

func TestAcceptBookingIsWorkerOnly(t *testing.T) {
	app, _ := setupTestApp(t)

	customerToken, _ := registerUser(t, app, "cust@example.com", models.RoleCustomer)
	serviceID := seedService(t, app, "Gardening", "Outdoor", 200)

	resp := doRequest(t, app, "POST", "/api/bookings", customerToken, bookingPayload(serviceID, 200))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	bookingID := uint(decodeMap(t, resp)["ID"].(float64))

	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/bookings/%d/accept", bookingID), customerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, "GET", "/api/bookings/worker", customerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateBookingStatusInvalid(t *testing.T) {
	app, _ := setupTestApp(t)

	token, _ := registerUser(t, app, "cust@example.com", models.RoleCustomer)
	serviceID := seedService(t, app, "Painting", "Renovation", 500)

	resp := doRequest(t, app, "POST", "/api/bookings", token, bookingPayload(serviceID, 500))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	bookingID := uint(decodeMap(t, resp)["ID"].(float64))

	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/bookings/%d/status", bookingID), token, fiber.Map{
		"status": "TELEPORTED",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid status", decodeMap(t, resp)["error"])
}

// Transition-table validation only applies when the flag is set; with it
// on, a PENDING booking cannot jump straight to COMPLETED.
func TestStatusTransitionEnforcement(t *testing.T) {
	t.Setenv("BOOKING_ENFORCE_TRANSITIONS", "true")

	app, _ := setupTestApp(t)

	token, _ := registerUser(t, app, "cust@example.com", models.RoleCustomer)
	serviceID := seedService(t, app, "AC Repair", "Appliances", 650)

	resp := doRequest(t, app, "POST", "/api/bookings", token, bookingPayload(serviceID, 650))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	bookingID := uint(decodeMap(t, resp)["ID"].(float64))

	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/bookings/%d/status", bookingID), token, fiber.Map{
		"status": models.StatusCompleted,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeMap(t, resp)["error"], "Invalid transition")

	// The legal next step still works
	resp = doRequest(t, app, "PUT", fmt.Sprintf("/api/bookings/%d/status", bookingID), token, fiber.Map{
		"status": models.StatusConfirmed,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetMyBookings(t *testing.T) {
	app, _ := setupTestApp(t)

	tokenA, _ := registerUser(t, app, "a@example.com", models.RoleCustomer)
	tokenB, _ := registerUser(t, app, "b@example.com", models.RoleCustomer)
	serviceID := seedService(t, app, "Pest Control", "Cleaning", 1200)

	resp := doRequest(t, app, "POST", "/api/bookings", tokenA, bookingPayload(serviceID, 1200))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Each customer only sees their own bookings
	resp = doRequest(t, app, "GET", "/api/bookings/my", tokenA, nil)
	assert.Len(t, decodeList(t, resp), 1)

	resp = doRequest(t, app, "GET", "/api/bookings/my", tokenB, nil)
	assert.Empty(t, decodeList(t, resp))
}

func TestGetBookingNotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	token, _ := registerUser(t, app, "cust@example.com", models.RoleCustomer)

	resp := doRequest(t, app, "GET", "/api/bookings/424242", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
