package workers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trail-profile-service/models"
)

func TestResetStaleZeroesInactiveStreaks(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Statistics{}))

	recent := time.Now().Add(-1 * time.Hour)
	stale := time.Now().Add(-72 * time.Hour)

	rows := []models.Statistics{
		{ID: "11111111-0000-4000-8000-000000000001", UserProfileID: "11111111-0000-4000-8000-000000000101",
			CurrentStreak: 5, LongestStreak: 9, LastActivityAt: &recent},
		{ID: "11111111-0000-4000-8000-000000000002", UserProfileID: "11111111-0000-4000-8000-000000000102",
			CurrentStreak: 7, LongestStreak: 7, LastActivityAt: &stale},
		{ID: "11111111-0000-4000-8000-000000000003", UserProfileID: "11111111-0000-4000-8000-000000000103",
			CurrentStreak: 3, LongestStreak: 3},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	worker := NewStreakResetWorker(db)
	require.NoError(t, worker.resetStale())

	var out []models.Statistics
	require.NoError(t, db.Order("id").Find(&out).Error)

	assert.Equal(t, 5, out[0].CurrentStreak)
	assert.Equal(t, 0, out[1].CurrentStreak)
	assert.Equal(t, 0, out[2].CurrentStreak)

	// Longest streak never shrinks.
	assert.Equal(t, 7, out[1].LongestStreak)
}
