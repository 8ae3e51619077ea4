package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"trail-profile-service/cache"
	"trail-profile-service/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.UserProfile{},
		&models.Statistics{},
		&models.Badge{},
		&models.Achievement{},
		&models.Activity{},
		&models.UserSavedTrail{},
	))
	return db
}

func newTestProfileService(db *gorm.DB) *ProfileService {
	return NewProfileService(db, nil, cache.New(""), nil)
}

// seedProfile creates a profile (with its statistics row) and returns the
// generated userId.
func seedProfile(t *testing.T, db *gorm.DB, displayName string) string {
	t.Helper()

	svc := newTestProfileService(db)
	userID := newTestUserID(t)
	_, err := svc.CreateProfile(&CreateProfileRequest{
		UserID:      userID,
		DisplayName: displayName,
	})
	require.NoError(t, err)
	return userID
}

var testUserCounter int

func newTestUserID(t *testing.T) string {
	t.Helper()
	testUserCounter++
	return testUUID(testUserCounter)
}

func testUUID(n int) string {
	const hex = "0123456789abcdef"
	id := []byte("00000000-0000-4000-8000-000000000000")
	for i := len(id) - 1; i >= 0 && n > 0; i-- {
		if id[i] == '-' {
			continue
		}
		id[i] = hex[n%16]
		n /= 16
	}
	return string(id)
}
