package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trail-profile-service/models"
	"trail-profile-service/services"
)

func TestRecentActivitiesLimitFallsBackOnBadInput(t *testing.T) {
	db := openTestDB(t)
	activityService := services.NewActivityService(db)

	userID := seedProfileRow(t, db, "Ana")
	for _, title := range []string{"a", "b"} {
		_, err := activityService.CreateActivity(userID, &services.CreateActivityRequest{
			Type:  models.ActivityTrailCompleted,
			Title: title,
		})
		require.NoError(t, err)
	}

	app := fiber.New()
	SetupActivityRoutes(app, activityService)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/activities/recent?limit=abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var views []models.ActivityView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	assert.Len(t, views, 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/activities/recent?limit=1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	assert.Len(t, views, 1)
}
