package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

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

func seedProfileRow(t *testing.T, db *gorm.DB, displayName string) string {
	t.Helper()
	userID := uuid.NewString()
	profile := models.UserProfile{
		ID:              uuid.NewString(),
		UserID:          userID,
		DisplayName:     displayName,
		ExperienceLevel: models.ExperienceBeginner,
		PrivacyLevel:    models.PrivacyPublic,
		IsActive:        true,
	}
	require.NoError(t, db.Create(&profile).Error)
	return userID
}
