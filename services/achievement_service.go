package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trail-profile-service/models"
)

type CreateAchievementRequest struct {
	UserID      string                 `json:"user_id" validate:"required,uuid"`
	BadgeID     string                 `json:"badge_id" validate:"required,uuid"`
	Description string                 `json:"description" validate:"max=500"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type AchievementService struct {
	DB *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{DB: db}
}

// CreateAchievement starts tracking a badge for a user. One record per
// (profile, badge) pair.
func (s *AchievementService) CreateAchievement(req *CreateAchievementRequest) (*models.Achievement, error) {
	profile, err := s.findProfile(req.UserID)
	if err != nil {
		return nil, err
	}

	var badge models.Badge
	if err := s.DB.First(&badge, "id = ?", req.BadgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("badge %s: %w", req.BadgeID, ErrNotFound)
		}
		return nil, err
	}

	var count int64
	err = s.DB.Model(&models.Achievement{}).
		Where("user_profile_id = ? AND badge_id = ?", profile.ID, badge.ID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("achievement for badge %q: %w", badge.Name, ErrConflict)
	}

	var metadata string
	if req.Metadata != nil {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to encode metadata: %w", err)
		}
		metadata = string(raw)
	}

	achievement := models.Achievement{
		ID:            uuid.NewString(),
		UserProfileID: profile.ID,
		BadgeID:       badge.ID,
		Description:   req.Description,
		Progress:      0,
		IsCompleted:   false,
		Metadata:      metadata,
	}
	if err := s.DB.Create(&achievement).Error; err != nil {
		return nil, err
	}
	achievement.Badge = &badge

	log.Printf("🏆 Achievement created for user %s, badge %q", req.UserID, badge.Name)
	return &achievement, nil
}

func (s *AchievementService) GetAchievementByID(achievementID string) (*models.Achievement, error) {
	var achievement models.Achievement
	err := s.DB.Preload("Badge").First(&achievement, "id = ?", achievementID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("achievement %s: %w", achievementID, ErrNotFound)
		}
		return nil, err
	}
	return &achievement, nil
}

// GetUserAchievements lists all of a user's achievements, newest first.
func (s *AchievementService) GetUserAchievements(userID string) ([]models.Achievement, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	var achievements []models.Achievement
	err = s.DB.Preload("Badge").
		Where("user_profile_id = ?", profile.ID).
		Order("earned_at DESC").
		Find(&achievements).Error
	return achievements, err
}

func (s *AchievementService) GetUserCompletedAchievements(userID string) ([]models.Achievement, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	var achievements []models.Achievement
	err = s.DB.Preload("Badge").
		Where("user_profile_id = ? AND is_completed = ?", profile.ID, true).
		Order("completed_at DESC").
		Find(&achievements).Error
	return achievements, err
}

// GetUserInProgressAchievements lists achievements with some progress
// that have not completed yet.
func (s *AchievementService) GetUserInProgressAchievements(userID string) ([]models.Achievement, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	var achievements []models.Achievement
	err = s.DB.Preload("Badge").
		Where("user_profile_id = ? AND is_completed = ? AND progress > 0", profile.ID, false).
		Order("earned_at DESC").
		Find(&achievements).Error
	return achievements, err
}

func (s *AchievementService) GetUserAchievementsByBadgeType(userID string, badgeType models.BadgeType) ([]models.Achievement, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	var achievements []models.Achievement
	err = s.DB.Preload("Badge").
		Joins("JOIN badges ON badges.id = achievements.badge_id").
		Where("achievements.user_profile_id = ? AND badges.type = ?", profile.ID, badgeType).
		Order("achievements.earned_at DESC").
		Find(&achievements).Error
	return achievements, err
}

// UpdateProgress sets the absolute progress value. Completed achievements
// are returned unchanged; reaching max progress completes the record.
func (s *AchievementService) UpdateProgress(achievementID string, progress int) (*models.Achievement, error) {
	achievement, err := s.GetAchievementByID(achievementID)
	if err != nil {
		return nil, err
	}

	if achievement.IsCompleted {
		log.Printf("⚠️ Ignoring progress update on completed achievement %s", achievementID)
		return achievement, nil
	}

	achievement.Progress = progress
	if progress >= achievement.MaxProgress() {
		now := time.Now()
		achievement.IsCompleted = true
		achievement.CompletedAt = &now
		log.Printf("🏆 Achievement %s completed", achievementID)
	}

	if err := s.DB.Save(achievement).Error; err != nil {
		return nil, err
	}
	return achievement, nil
}

// IncrementProgress adds to the current progress.
func (s *AchievementService) IncrementProgress(achievementID string, increment int) (*models.Achievement, error) {
	achievement, err := s.GetAchievementByID(achievementID)
	if err != nil {
		return nil, err
	}

	if achievement.IsCompleted {
		log.Printf("⚠️ Ignoring progress increment on completed achievement %s", achievementID)
		return achievement, nil
	}

	return s.UpdateProgress(achievementID, achievement.Progress+increment)
}

// CompleteAchievement forces completion regardless of current progress.
// Already-completed records are returned unchanged.
func (s *AchievementService) CompleteAchievement(achievementID string) (*models.Achievement, error) {
	achievement, err := s.GetAchievementByID(achievementID)
	if err != nil {
		return nil, err
	}

	if achievement.IsCompleted {
		return achievement, nil
	}

	now := time.Now()
	achievement.Progress = achievement.MaxProgress()
	achievement.IsCompleted = true
	achievement.CompletedAt = &now

	if err := s.DB.Save(achievement).Error; err != nil {
		return nil, err
	}
	return achievement, nil
}

func (s *AchievementService) DeleteAchievement(achievementID string) error {
	res := s.DB.Delete(&models.Achievement{}, "id = ?", achievementID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("achievement %s: %w", achievementID, ErrNotFound)
	}
	return nil
}

func (s *AchievementService) CountUserCompletedAchievements(userID string) (int64, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return 0, err
	}

	var count int64
	err = s.DB.Model(&models.Achievement{}).
		Where("user_profile_id = ? AND is_completed = ?", profile.ID, true).
		Count(&count).Error
	return count, err
}

func (s *AchievementService) CountUserTotalAchievements(userID string) (int64, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return 0, err
	}

	var count int64
	err = s.DB.Model(&models.Achievement{}).
		Where("user_profile_id = ?", profile.ID).
		Count(&count).Error
	return count, err
}

// GetCompletionPercentage returns progress over max progress as a 0-100
// percentage.
func (s *AchievementService) GetCompletionPercentage(achievementID string) (float64, error) {
	achievement, err := s.GetAchievementByID(achievementID)
	if err != nil {
		return 0, err
	}
	max := achievement.MaxProgress()
	if max == 0 {
		return 0, nil
	}
	return float64(achievement.Progress) / float64(max) * 100.0, nil
}

// CheckAndCreateTrailAchievements walks active trail badges oldest first
// and auto-unlocks every one whose threshold the counter meets.
func (s *AchievementService) CheckAndCreateTrailAchievements(userID string, trailsCompleted int) error {
	return s.checkAndCreate(userID, models.BadgeTypeTrail, float64(trailsCompleted),
		fmt.Sprintf("Conquista automática por completar %d trilhas", trailsCompleted),
		map[string]interface{}{"auto_created": true, "trails_completed": trailsCompleted})
}

// CheckAndCreateDistanceAchievements is the distance-badge variant.
func (s *AchievementService) CheckAndCreateDistanceAchievements(userID string, totalDistance float64) error {
	return s.checkAndCreate(userID, models.BadgeTypeDistance, totalDistance,
		fmt.Sprintf("Conquista automática por percorrer %g km", totalDistance),
		map[string]interface{}{"auto_created": true, "total_distance": totalDistance})
}

func (s *AchievementService) checkAndCreate(userID string, badgeType models.BadgeType, counter float64, description string, metadata map[string]interface{}) error {
	profile, err := s.findProfile(userID)
	if err != nil {
		return err
	}

	var badges []models.Badge
	err = s.DB.Where("is_active = ? AND type = ?", true, badgeType).
		Order("created_at ASC").
		Find(&badges).Error
	if err != nil {
		return err
	}

	for _, badge := range badges {
		var count int64
		err := s.DB.Model(&models.Achievement{}).
			Where("user_profile_id = ? AND badge_id = ?", profile.ID, badge.ID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 || counter < float64(badge.PointsRequired) {
			continue
		}

		achievement, err := s.CreateAchievement(&CreateAchievementRequest{
			UserID:      userID,
			BadgeID:     badge.ID,
			Description: description,
			Metadata:    metadata,
		})
		if err != nil {
			return err
		}
		if _, err := s.CompleteAchievement(achievement.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *AchievementService) findProfile(userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return &profile, nil
}
