package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trail-profile-service/models"
)

type SaveTrailRequest struct {
	TrailID string `json:"trail_id" validate:"required,uuid"`
	Notes   string `json:"notes" validate:"max=500"`
}

// SavedTrailService manages per-user trail bookmarks. Removal is a soft
// delete; saving again reactivates the existing row.
type SavedTrailService struct {
	DB     *gorm.DB
	Trails *TrailServiceClient
}

func NewSavedTrailService(db *gorm.DB, trails *TrailServiceClient) *SavedTrailService {
	return &SavedTrailService{DB: db, Trails: trails}
}

func (s *SavedTrailService) SaveTrail(userID string, req *SaveTrailRequest) (*models.SavedTrailView, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	var existing models.UserSavedTrail
	err = s.DB.First(&existing, "user_profile_id = ? AND trail_id = ?", profile.ID, req.TrailID).Error
	switch {
	case err == nil:
		if existing.IsActive {
			return nil, fmt.Errorf("trail %s already saved: %w", req.TrailID, ErrConflict)
		}
		existing.IsActive = true
		existing.Notes = req.Notes
		if err := s.DB.Save(&existing).Error; err != nil {
			return nil, err
		}
		log.Printf("✅ Trail %s reactivated for user %s", req.TrailID, userID)
		return s.toView(&existing, profile), nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		saved := models.UserSavedTrail{
			ID:            uuid.NewString(),
			UserProfileID: profile.ID,
			TrailID:       req.TrailID,
			Notes:         req.Notes,
			IsActive:      true,
		}
		if err := s.DB.Create(&saved).Error; err != nil {
			// Concurrent save hit the unique (profile, trail) index first.
			if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
				return nil, fmt.Errorf("trail %s already saved: %w", req.TrailID, ErrConflict)
			}
			return nil, err
		}
		log.Printf("✅ Trail %s saved for user %s", req.TrailID, userID)
		return s.toView(&saved, profile), nil

	default:
		return nil, err
	}
}

// UnsaveTrail soft-deletes the active bookmark.
func (s *SavedTrailService) UnsaveTrail(userID, trailID string) error {
	profile, err := s.findProfile(userID)
	if err != nil {
		return err
	}

	var saved models.UserSavedTrail
	err = s.DB.First(&saved, "user_profile_id = ? AND trail_id = ? AND is_active = ?", profile.ID, trailID, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("saved trail %s: %w", trailID, ErrNotFound)
		}
		return err
	}

	saved.IsActive = false
	return s.DB.Save(&saved).Error
}

func (s *SavedTrailService) GetSavedTrails(userID string) ([]models.SavedTrailView, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	var saved []models.UserSavedTrail
	err = s.DB.Where("user_profile_id = ? AND is_active = ?", profile.ID, true).
		Order("saved_at DESC").
		Find(&saved).Error
	if err != nil {
		return nil, err
	}

	views := make([]models.SavedTrailView, 0, len(saved))
	for i := range saved {
		views = append(views, *s.toView(&saved[i], profile))
	}
	return views, nil
}

func (s *SavedTrailService) GetSavedTrailsPaginated(userID string, page, size int) (models.Page[models.SavedTrailView], error) {
	views, err := s.GetSavedTrails(userID)
	if err != nil {
		return models.Page[models.SavedTrailView]{}, err
	}
	return models.NewPage(views, page, size), nil
}

func (s *SavedTrailService) IsTrailSaved(userID, trailID string) (bool, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return false, err
	}

	var count int64
	err = s.DB.Model(&models.UserSavedTrail{}).
		Where("user_profile_id = ? AND trail_id = ? AND is_active = ?", profile.ID, trailID, true).
		Count(&count).Error
	return count > 0, err
}

func (s *SavedTrailService) GetSavedTrailsCount(userID string) (int64, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return 0, err
	}

	var count int64
	err = s.DB.Model(&models.UserSavedTrail{}).
		Where("user_profile_id = ? AND is_active = ?", profile.ID, true).
		Count(&count).Error
	return count, err
}

// GetSavedTrailIDs lists just the trail ids, newest bookmark first.
func (s *SavedTrailService) GetSavedTrailIDs(userID string) ([]string, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	var ids []string
	err = s.DB.Model(&models.UserSavedTrail{}).
		Where("user_profile_id = ? AND is_active = ?", profile.ID, true).
		Order("saved_at DESC").
		Pluck("trail_id", &ids).Error
	return ids, err
}

func (s *SavedTrailService) GetSavedTrailDetails(userID, trailID string) (*models.SavedTrailView, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	var saved models.UserSavedTrail
	err = s.DB.First(&saved, "user_profile_id = ? AND trail_id = ? AND is_active = ?", profile.ID, trailID, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("saved trail %s: %w", trailID, ErrNotFound)
		}
		return nil, err
	}
	return s.toView(&saved, profile), nil
}

// toView joins owner display fields and, when a trail client is
// configured, best-effort trail metadata. Lookup failures leave the trail
// fields null.
func (s *SavedTrailService) toView(saved *models.UserSavedTrail, profile *models.UserProfile) *models.SavedTrailView {
	view := &models.SavedTrailView{
		ID:                    saved.ID,
		UserProfileID:         profile.ID,
		UserDisplayName:       profile.DisplayName,
		UserProfilePictureURL: profile.ProfilePictureURL,
		TrailID:               saved.TrailID,
		Notes:                 saved.Notes,
		SavedAt:               saved.SavedAt,
		IsActive:              saved.IsActive,
	}

	if s.Trails != nil {
		if trail, err := s.Trails.GetTrailByID(saved.TrailID); err == nil {
			if name, ok := trail["name"].(string); ok {
				view.TrailName = &name
			}
			if desc, ok := trail["description"].(string); ok {
				view.TrailDescription = &desc
			}
			if diff, ok := trail["difficulty"].(string); ok {
				view.TrailDifficulty = &diff
			}
			if dist, ok := trail["distanceKm"].(float64); ok {
				view.TrailDistanceKm = &dist
			}
		} else {
			log.Printf("⚠️ Trail lookup failed for %s: %v", saved.TrailID, err)
		}
	}

	return view
}

func (s *SavedTrailService) findProfile(userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return &profile, nil
}
