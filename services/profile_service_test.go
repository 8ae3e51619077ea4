package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trail-profile-service/models"
)

func TestCreateProfileCreatesZeroedStatistics(t *testing.T) {
	db := openTestDB(t)
	svc := newTestProfileService(db)

	userID := newTestUserID(t)
	view, err := svc.CreateProfile(&CreateProfileRequest{
		UserID:      userID,
		DisplayName: "Ana",
		Bio:         "trail runner",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, view.UserID)
	assert.Equal(t, models.ExperienceBeginner, view.ExperienceLevel)
	assert.Equal(t, models.PrivacyPublic, view.PrivacyLevel)
	assert.True(t, view.IsActive)
	assert.False(t, view.IsVerified)
	assert.Zero(t, view.TotalPoints)

	var stats models.Statistics
	require.NoError(t, db.First(&stats, "user_profile_id = ?", view.ID).Error)
	assert.Zero(t, stats.TotalTrailsCompleted)
}

func TestCreateProfileDuplicateUserConflicts(t *testing.T) {
	db := openTestDB(t)
	svc := newTestProfileService(db)

	userID := newTestUserID(t)
	_, err := svc.CreateProfile(&CreateProfileRequest{UserID: userID, DisplayName: "Ana"})
	require.NoError(t, err)

	_, err = svc.CreateProfile(&CreateProfileRequest{UserID: userID, DisplayName: "Other"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestUpdateProfileTouchesOnlyProvidedFields(t *testing.T) {
	db := openTestDB(t)
	svc := newTestProfileService(db)

	userID := newTestUserID(t)
	_, err := svc.CreateProfile(&CreateProfileRequest{
		UserID:      userID,
		DisplayName: "Ana",
		Bio:         "original bio",
	})
	require.NoError(t, err)

	newName := "Ana Clara"
	view, err := svc.UpdateProfile(userID, &UpdateProfileRequest{DisplayName: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Ana Clara", view.DisplayName)
	assert.Equal(t, "original bio", view.Bio)
}

func TestUpdateProfileUnknownUserNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := newTestProfileService(db)

	name := "x"
	_, err := svc.UpdateProfile(newTestUserID(t), &UpdateProfileRequest{DisplayName: &name})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeactivateAndVerifyAreIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc := newTestProfileService(db)

	userID := seedProfile(t, db, "Ana")

	require.NoError(t, svc.DeactivateProfile(userID))
	require.NoError(t, svc.DeactivateProfile(userID))
	require.NoError(t, svc.VerifyProfile(userID))
	require.NoError(t, svc.VerifyProfile(userID))

	var profile models.UserProfile
	require.NoError(t, db.First(&profile, "user_id = ?", userID).Error)
	assert.False(t, profile.IsActive)
	assert.True(t, profile.IsVerified)
}

func TestSearchProfilesFilters(t *testing.T) {
	db := openTestDB(t)
	svc := newTestProfileService(db)

	loc := "Chapada Diamantina"
	_, err := svc.CreateProfile(&CreateProfileRequest{
		UserID:      newTestUserID(t),
		DisplayName: "Maria Trilheira",
		Location:    &loc,
	})
	require.NoError(t, err)

	inactive := seedProfile(t, db, "Maria Parada")
	require.NoError(t, svc.DeactivateProfile(inactive))

	name := "maria"
	page, err := svc.SearchProfiles(&name, nil, nil, 0, 20)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Maria Trilheira", page.Content[0].DisplayName)

	locFilter := "chapada"
	page, err = svc.SearchProfiles(nil, &locFilter, nil, 0, 20)
	require.NoError(t, err)
	assert.Len(t, page.Content, 1)
	assert.Equal(t, int64(1), page.TotalElements)
}

func TestRankingByPointsOrderAndWindow(t *testing.T) {
	db := openTestDB(t)
	svc := newTestProfileService(db)

	names := []string{"a", "b", "c"}
	points := []int{5, 50, 20}
	for i, n := range names {
		userID := seedProfile(t, db, n)
		var profile models.UserProfile
		require.NoError(t, db.First(&profile, "user_id = ?", userID).Error)
		require.NoError(t, db.Model(&models.Statistics{}).
			Where("user_profile_id = ?", profile.ID).
			Update("total_points", points[i]).Error)
	}

	page, err := svc.GetRankingByPoints(0, 2)
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "b", page.Content[0].DisplayName)
	assert.Equal(t, "c", page.Content[1].DisplayName)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)

	page, err = svc.GetRankingByPoints(1, 2)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "a", page.Content[0].DisplayName)

	// Window past the end is empty, not an error.
	page, err = svc.GetRankingByPoints(5, 2)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
}

func TestGetProfileByUserIDUsesCache(t *testing.T) {
	db := openTestDB(t)
	svc := newTestProfileService(db)

	userID := seedProfile(t, db, "Ana")

	first, err := svc.GetProfileByUserID(userID)
	require.NoError(t, err)

	// Mutate behind the cache; the cached view should still be served.
	require.NoError(t, db.Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Update("display_name", "changed").Error)

	second, err := svc.GetProfileByUserID(userID)
	require.NoError(t, err)
	assert.Equal(t, first.DisplayName, second.DisplayName)

	// An update through the service invalidates the entry.
	newName := "Ana Luiza"
	_, err = svc.UpdateProfile(userID, &UpdateProfileRequest{DisplayName: &newName})
	require.NoError(t, err)

	third, err := svc.GetProfileByUserID(userID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Luiza", third.DisplayName)
}
