package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"trail-profile-service/models"
)

func seedBadge(t *testing.T, db *gorm.DB) *models.Badge {
	t.Helper()
	svc := NewBadgeService(db)
	badge, err := svc.CreateBadge(&CreateBadgeRequest{
		Name:        "Teste",
		Description: "d",
		IconURL:     "/icons/t.svg",
		Type:        models.BadgeTypeTrail,
		Rarity:      models.RarityCommon,
	})
	require.NoError(t, err)
	return badge
}

func TestCreateAchievementOncePerBadge(t *testing.T) {
	db := openTestDB(t)
	svc := NewAchievementService(db)

	userID := seedProfile(t, db, "Ana")
	badge := seedBadge(t, db)

	achievement, err := svc.CreateAchievement(&CreateAchievementRequest{
		UserID:   userID,
		BadgeID:  badge.ID,
		Metadata: map[string]interface{}{"source": "manual"},
	})
	require.NoError(t, err)
	assert.Zero(t, achievement.Progress)
	assert.False(t, achievement.IsCompleted)

	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(achievement.Metadata), &meta))
	assert.Equal(t, "manual", meta["source"])

	_, err = svc.CreateAchievement(&CreateAchievementRequest{UserID: userID, BadgeID: badge.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestUpdateProgressCompletesAtHundred(t *testing.T) {
	db := openTestDB(t)
	svc := NewAchievementService(db)

	userID := seedProfile(t, db, "Ana")
	badge := seedBadge(t, db)

	achievement, err := svc.CreateAchievement(&CreateAchievementRequest{UserID: userID, BadgeID: badge.ID})
	require.NoError(t, err)

	updated, err := svc.UpdateProgress(achievement.ID, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Progress)
	assert.False(t, updated.IsCompleted)

	updated, err = svc.UpdateProgress(achievement.ID, 100)
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	require.NotNil(t, updated.CompletedAt)
}

func TestCompletedAchievementIgnoresFurtherProgress(t *testing.T) {
	db := openTestDB(t)
	svc := NewAchievementService(db)

	userID := seedProfile(t, db, "Ana")
	badge := seedBadge(t, db)

	achievement, err := svc.CreateAchievement(&CreateAchievementRequest{UserID: userID, BadgeID: badge.ID})
	require.NoError(t, err)

	completed, err := svc.CompleteAchievement(achievement.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, completed.Progress)
	firstCompletedAt := completed.CompletedAt

	// Updates and increments are no-ops once completed.
	after, err := svc.UpdateProgress(achievement.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 100, after.Progress)
	assert.Equal(t, firstCompletedAt.Unix(), after.CompletedAt.Unix())

	after, err = svc.IncrementProgress(achievement.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 100, after.Progress)

	again, err := svc.CompleteAchievement(achievement.ID)
	require.NoError(t, err)
	assert.Equal(t, firstCompletedAt.Unix(), again.CompletedAt.Unix())
}

func TestIncrementMatchesAbsoluteUpdate(t *testing.T) {
	db := openTestDB(t)
	svc := NewAchievementService(db)

	userID := seedProfile(t, db, "Ana")
	badge := seedBadge(t, db)

	achievement, err := svc.CreateAchievement(&CreateAchievementRequest{UserID: userID, BadgeID: badge.ID})
	require.NoError(t, err)

	_, err = svc.IncrementProgress(achievement.ID, 30)
	require.NoError(t, err)
	updated, err := svc.IncrementProgress(achievement.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, 60, updated.Progress)

	pct, err := svc.GetCompletionPercentage(achievement.ID)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, pct, 0.001)
}

func TestCheckAndCreateTrailAchievementsAutoUnlocks(t *testing.T) {
	db := openTestDB(t)
	svc := NewAchievementService(db)
	badges := NewBadgeService(db)

	require.NoError(t, badges.CreateDefaultBadges())
	userID := seedProfile(t, db, "Ana")

	// One trail unlocks only "Primeira Trilha" (threshold 1).
	require.NoError(t, svc.CheckAndCreateTrailAchievements(userID, 1))

	unlocked, err := svc.GetUserCompletedAchievements(userID)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	require.NotNil(t, unlocked[0].Badge)
	assert.Equal(t, "Primeira Trilha", unlocked[0].Badge.Name)
	assert.True(t, unlocked[0].IsCompleted)

	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(unlocked[0].Metadata), &meta))
	assert.Equal(t, true, meta["auto_created"])

	// Rechecking with the same counter creates nothing new.
	require.NoError(t, svc.CheckAndCreateTrailAchievements(userID, 1))
	total, err := svc.CountUserTotalAchievements(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Ten trails unlock the next tier on top.
	require.NoError(t, svc.CheckAndCreateTrailAchievements(userID, 10))
	completedCount, err := svc.CountUserCompletedAchievements(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), completedCount)
}

func TestCheckAndCreateDistanceAchievements(t *testing.T) {
	db := openTestDB(t)
	svc := NewAchievementService(db)
	badges := NewBadgeService(db)

	require.NoError(t, badges.CreateDefaultBadges())
	userID := seedProfile(t, db, "Ana")

	require.NoError(t, svc.CheckAndCreateDistanceAchievements(userID, 120.0))

	unlocked, err := svc.GetUserCompletedAchievements(userID)
	require.NoError(t, err)
	// Caminhante (10 km) and Maratonista (100 km), not Ultra (500 km).
	assert.Len(t, unlocked, 2)
}

func TestGetUserAchievementsByBadgeType(t *testing.T) {
	db := openTestDB(t)
	svc := NewAchievementService(db)
	badges := NewBadgeService(db)

	require.NoError(t, badges.CreateDefaultBadges())
	userID := seedProfile(t, db, "Ana")

	require.NoError(t, svc.CheckAndCreateTrailAchievements(userID, 10))
	require.NoError(t, svc.CheckAndCreateDistanceAchievements(userID, 10.0))

	trail, err := svc.GetUserAchievementsByBadgeType(userID, models.BadgeTypeTrail)
	require.NoError(t, err)
	assert.Len(t, trail, 2)

	distance, err := svc.GetUserAchievementsByBadgeType(userID, models.BadgeTypeDistance)
	require.NoError(t, err)
	assert.Len(t, distance, 1)
}

func TestDeleteAchievement(t *testing.T) {
	db := openTestDB(t)
	svc := NewAchievementService(db)

	userID := seedProfile(t, db, "Ana")
	badge := seedBadge(t, db)

	achievement, err := svc.CreateAchievement(&CreateAchievementRequest{UserID: userID, BadgeID: badge.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAchievement(achievement.ID))

	err = svc.DeleteAchievement(achievement.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}
