package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trail-profile-service/models"
)

func TestEnsureStatisticsLazyCreates(t *testing.T) {
	db := openTestDB(t)
	svc := NewStatisticsService(db)

	userID := seedProfile(t, db, "Ana")

	// Drop the row created alongside the profile to exercise the lazy path.
	require.NoError(t, db.Where("1 = 1").Delete(&models.Statistics{}).Error)

	stats, err := svc.GetStatisticsByUserID(userID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalPoints)

	again, err := svc.GetStatisticsByUserID(userID)
	require.NoError(t, err)
	assert.Equal(t, stats.ID, again.ID)
}

func TestStatisticsRequireExistingProfile(t *testing.T) {
	db := openTestDB(t)
	svc := NewStatisticsService(db)

	_, err := svc.GetStatisticsByUserID(newTestUserID(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSetTrailStatisticsOverwritesAbsoluteValues(t *testing.T) {
	db := openTestDB(t)
	svc := NewStatisticsService(db)

	userID := seedProfile(t, db, "Ana")

	distance := 12.5
	duration := 90
	stats, err := svc.SetTrailStatistics(userID, &TrailStatsSet{
		TotalDistanceKm:  &distance,
		TotalTimeMinutes: &duration,
	})
	require.NoError(t, err)
	assert.Equal(t, 12.5, stats.TotalDistanceKm)
	assert.Equal(t, 90, stats.TotalTimeMinutes)

	// Setting again replaces, it does not add.
	stats, err = svc.SetTrailStatistics(userID, &TrailStatsSet{TotalDistanceKm: &distance})
	require.NoError(t, err)
	assert.Equal(t, 12.5, stats.TotalDistanceKm)
	assert.Equal(t, 90, stats.TotalTimeMinutes)
}

func TestIncrementTrailStatisticsAddsDeltas(t *testing.T) {
	db := openTestDB(t)
	svc := NewStatisticsService(db)

	userID := seedProfile(t, db, "Ana")

	trails := 1
	distance := 5.0
	for i := 0; i < 3; i++ {
		_, err := svc.IncrementTrailStatistics(userID, &TrailStatsIncrement{
			Trails:     &trails,
			DistanceKm: &distance,
		})
		require.NoError(t, err)
	}

	stats, err := svc.GetStatisticsByUserID(userID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTrailsCompleted)
	assert.Equal(t, 15.0, stats.TotalDistanceKm)
}

func TestIncrementTrailsCompletedDefaultStep(t *testing.T) {
	db := openTestDB(t)
	svc := NewStatisticsService(db)

	userID := seedProfile(t, db, "Ana")

	_, err := svc.IncrementTrailsCompleted(userID, 1)
	require.NoError(t, err)
	stats, err := svc.IncrementTrailsCompleted(userID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTrailsCompleted)
}

func TestUpdateLastActivityStampsNow(t *testing.T) {
	db := openTestDB(t)
	svc := NewStatisticsService(db)

	userID := seedProfile(t, db, "Ana")

	stats, err := svc.UpdateLastActivity(userID)
	require.NoError(t, err)
	require.NotNil(t, stats.LastActivityAt)
}

func TestStatisticsRankingOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewStatisticsService(db)

	users := make([]string, 3)
	points := []int{10, 30, 20}
	for i := range users {
		users[i] = seedProfile(t, db, "u")
		_, err := svc.SetAchievementStatistics(users[i], &AchievementStatsSet{TotalPoints: &points[i]})
		require.NoError(t, err)
	}

	page, err := svc.GetRankingByPoints(0, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 3)
	assert.Equal(t, 30, page.Content[0].TotalPoints)
	assert.Equal(t, 20, page.Content[1].TotalPoints)
	assert.Equal(t, 10, page.Content[2].TotalPoints)
}

func TestRecomputeRanksGlobalAndLocal(t *testing.T) {
	db := openTestDB(t)
	profiles := newTestProfileService(db)
	svc := NewStatisticsService(db)

	mk := func(location string, points int) string {
		userID := newTestUserID(t)
		loc := location
		_, err := profiles.CreateProfile(&CreateProfileRequest{
			UserID:      userID,
			DisplayName: "u",
			Location:    &loc,
		})
		require.NoError(t, err)
		_, err = svc.SetAchievementStatistics(userID, &AchievementStatsSet{TotalPoints: &points})
		require.NoError(t, err)
		return userID
	}

	first := mk("São Paulo", 100)
	second := mk("Sao Paulo", 50)
	third := mk("Rio de Janeiro", 75)

	require.NoError(t, svc.RecomputeRanks())

	get := func(userID string) *models.Statistics {
		stats, err := svc.GetStatisticsByUserID(userID)
		require.NoError(t, err)
		return stats
	}

	assert.Equal(t, 1, get(first).GlobalRank)
	assert.Equal(t, 2, get(third).GlobalRank)
	assert.Equal(t, 3, get(second).GlobalRank)

	// Spelling variants of the same city share one local bucket.
	assert.Equal(t, 1, get(first).LocalRank)
	assert.Equal(t, 2, get(second).LocalRank)
	assert.Equal(t, 1, get(third).LocalRank)
}

func TestAggregatesNilOnEmptyTable(t *testing.T) {
	db := openTestDB(t)
	svc := NewStatisticsService(db)

	avg, err := svc.GetAveragePoints()
	require.NoError(t, err)
	assert.Nil(t, avg)

	max, err := svc.GetMaxTrailsCompleted()
	require.NoError(t, err)
	assert.Nil(t, max)
}

func TestGetFormattedStatistics(t *testing.T) {
	db := openTestDB(t)
	svc := NewStatisticsService(db)

	userID := seedProfile(t, db, "Ana")

	distance := 10.0
	duration := 125
	_, err := svc.SetTrailStatistics(userID, &TrailStatsSet{
		TotalDistanceKm:  &distance,
		TotalTimeMinutes: &duration,
	})
	require.NoError(t, err)

	view, err := svc.GetFormattedStatisticsByUserID(userID)
	require.NoError(t, err)
	assert.Equal(t, "10.00 km", view.TotalDistanceFormatted)
	assert.Equal(t, "2:05", view.TotalTimeFormatted)
	assert.Equal(t, "12:30 /km", view.AveragePaceFormatted)
}
