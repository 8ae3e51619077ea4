package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trail-profile-service/models"
)

func TestCreateActivityDefaults(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)

	userID := seedProfile(t, db, "Ana")

	view, err := svc.CreateActivity(userID, &CreateActivityRequest{
		Type:  models.ActivityTrailCompleted,
		Title: "Trilha do Ouro",
	})
	require.NoError(t, err)
	assert.True(t, view.IsPublic)
	assert.Zero(t, view.Likes)
	assert.Zero(t, view.Comments)
	require.NotNil(t, view.CompletedAt)
	assert.Equal(t, "Ana", view.UserDisplayName)
}

func TestCreatePrivateActivityStaysPrivate(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)

	userID := seedProfile(t, db, "Ana")
	private := false
	view, err := svc.CreateActivity(userID, &CreateActivityRequest{
		Type:     models.ActivityTrailCompleted,
		Title:    "Trilha Secreta",
		IsPublic: &private,
	})
	require.NoError(t, err)
	assert.False(t, view.IsPublic)

	var stored models.Activity
	require.NoError(t, db.First(&stored, "id = ?", view.ID).Error)
	assert.False(t, stored.IsPublic)
}

func TestCreateActivityUnknownUserNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)

	_, err := svc.CreateActivity(newTestUserID(t), &CreateActivityRequest{
		Type:  models.ActivityTrailCompleted,
		Title: "x",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLikeActivityThreeTimes(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)

	userID := seedProfile(t, db, "Ana")
	view, err := svc.CreateActivity(userID, &CreateActivityRequest{
		Type:  models.ActivityPhotoShared,
		Title: "Mirante",
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		view, err = svc.LikeActivity(view.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, view.Likes)

	view, err = svc.AddComment(view.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Comments)
}

func TestUpdateActivityPartial(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)

	userID := seedProfile(t, db, "Ana")
	distance := 8.5
	view, err := svc.CreateActivity(userID, &CreateActivityRequest{
		Type:     models.ActivityTrailCompleted,
		Title:    "Trilha do Ouro",
		Distance: &distance,
	})
	require.NoError(t, err)

	newTitle := "Trilha do Ouro Velho"
	updated, err := svc.UpdateActivity(view.ID, &UpdateActivityRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	require.NotNil(t, updated.Distance)
	assert.Equal(t, 8.5, *updated.Distance)
}

func TestGetUserActivitiesPagination(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)

	userID := seedProfile(t, db, "Ana")
	for i := 0; i < 5; i++ {
		_, err := svc.CreateActivity(userID, &CreateActivityRequest{
			Type:  models.ActivityTrailCompleted,
			Title: "t",
		})
		require.NoError(t, err)
	}

	page, err := svc.GetUserActivities(userID, 0, 2)
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)

	last, err := svc.GetUserActivities(userID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Content, 1)
}

func TestPublicActivitiesExcludePrivate(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)

	userID := seedProfile(t, db, "Ana")
	private := false
	_, err := svc.CreateActivity(userID, &CreateActivityRequest{
		Type:     models.ActivityReviewPosted,
		Title:    "hidden",
		IsPublic: &private,
	})
	require.NoError(t, err)
	_, err = svc.CreateActivity(userID, &CreateActivityRequest{
		Type:  models.ActivityReviewPosted,
		Title: "visible",
	})
	require.NoError(t, err)

	public, err := svc.GetPublicActivities()
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "visible", public[0].Title)

	recent, err := svc.GetRecentActivities(10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestActivitySums(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)

	userID := seedProfile(t, db, "Ana")

	sum, err := svc.GetTotalDistanceByUser(userID)
	require.NoError(t, err)
	assert.Nil(t, sum)

	d1, d2 := 5.0, 7.5
	m1, m2 := 60, 45
	_, err = svc.CreateActivity(userID, &CreateActivityRequest{
		Type: models.ActivityTrailCompleted, Title: "a", Distance: &d1, Duration: &m1,
	})
	require.NoError(t, err)
	_, err = svc.CreateActivity(userID, &CreateActivityRequest{
		Type: models.ActivityTrailCompleted, Title: "b", Distance: &d2, Duration: &m2,
	})
	require.NoError(t, err)

	sum, err = svc.GetTotalDistanceByUser(userID)
	require.NoError(t, err)
	require.NotNil(t, sum)
	assert.Equal(t, 12.5, *sum)

	dur, err := svc.GetTotalDurationByUser(userID)
	require.NoError(t, err)
	require.NotNil(t, dur)
	assert.Equal(t, 105, *dur)
}

func TestCountUserActivitiesByType(t *testing.T) {
	db := openTestDB(t)
	svc := NewActivityService(db)

	userID := seedProfile(t, db, "Ana")
	_, err := svc.CreateActivity(userID, &CreateActivityRequest{Type: models.ActivityTrailCompleted, Title: "a"})
	require.NoError(t, err)
	_, err = svc.CreateActivity(userID, &CreateActivityRequest{Type: models.ActivityPhotoShared, Title: "b"})
	require.NoError(t, err)

	count, err := svc.CountUserActivitiesByType(userID, models.ActivityTrailCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	total, err := svc.CountUserActivities(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
