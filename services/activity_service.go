package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trail-profile-service/models"
)

type CreateActivityRequest struct {
	Type          models.ActivityType `json:"type" validate:"required"`
	Title         string              `json:"title" validate:"required,max=200"`
	Description   string              `json:"description" validate:"max=1000"`
	TrailID       *string             `json:"trail_id" validate:"omitempty,uuid"`
	Distance      *float64            `json:"distance"`
	Duration      *int                `json:"duration"`
	ElevationGain *float64            `json:"elevation_gain"`
	Difficulty    *int                `json:"difficulty" validate:"omitempty,min=1,max=5"`
	Location      *string             `json:"location"`
	PhotoURLs     *string             `json:"photo_urls"`
	IsPublic      *bool               `json:"is_public"`
	CompletedAt   *time.Time          `json:"completed_at"`
}

type UpdateActivityRequest struct {
	Title         *string  `json:"title" validate:"omitempty,max=200"`
	Description   *string  `json:"description" validate:"omitempty,max=1000"`
	Distance      *float64 `json:"distance"`
	Duration      *int     `json:"duration"`
	ElevationGain *float64 `json:"elevation_gain"`
	Difficulty    *int     `json:"difficulty" validate:"omitempty,min=1,max=5"`
	Location      *string  `json:"location"`
	PhotoURLs     *string  `json:"photo_urls"`
	IsPublic      *bool    `json:"is_public"`
}

type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

// CreateActivity records a feed entry for the user. CompletedAt defaults
// to now and visibility defaults to public.
func (s *ActivityService) CreateActivity(userID string, req *CreateActivityRequest) (*models.ActivityView, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	completedAt := time.Now()
	if req.CompletedAt != nil {
		completedAt = *req.CompletedAt
	}

	activity := models.Activity{
		ID:            uuid.NewString(),
		UserProfileID: profile.ID,
		Type:          req.Type,
		Title:         req.Title,
		Description:   req.Description,
		TrailID:       req.TrailID,
		Distance:      req.Distance,
		Duration:      req.Duration,
		ElevationGain: req.ElevationGain,
		Difficulty:    req.Difficulty,
		Location:      req.Location,
		PhotoURLs:     req.PhotoURLs,
		Likes:         0,
		Comments:      0,
		IsPublic:      true,
		CompletedAt:   &completedAt,
	}
	if req.IsPublic != nil {
		activity.IsPublic = *req.IsPublic
	}

	if err := s.DB.Create(&activity).Error; err != nil {
		return nil, err
	}

	log.Printf("✅ Activity %q created for user %s", activity.Title, userID)
	return toActivityView(&activity, profile), nil
}

func (s *ActivityService) GetActivityByID(activityID string) (*models.ActivityView, error) {
	activity, err := s.findActivity(activityID)
	if err != nil {
		return nil, err
	}
	return s.viewWithOwner(activity)
}

// GetUserActivities pages through a user's feed, newest first.
func (s *ActivityService) GetUserActivities(userID string, page, size int) (models.Page[models.ActivityView], error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return models.Page[models.ActivityView]{}, err
	}
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}

	q := s.DB.Model(&models.Activity{}).Where("user_profile_id = ?", profile.ID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return models.Page[models.ActivityView]{}, err
	}

	var activities []models.Activity
	err = q.Order("created_at DESC").Offset(page * size).Limit(size).Find(&activities).Error
	if err != nil {
		return models.Page[models.ActivityView]{}, err
	}

	views := make([]models.ActivityView, 0, len(activities))
	for i := range activities {
		views = append(views, *toActivityView(&activities[i], profile))
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return models.Page[models.ActivityView]{
		Content:       views,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func (s *ActivityService) GetUserActivitiesByType(userID string, activityType models.ActivityType) ([]models.ActivityView, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	var activities []models.Activity
	err = s.DB.Where("user_profile_id = ? AND type = ?", profile.ID, activityType).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}

	views := make([]models.ActivityView, 0, len(activities))
	for i := range activities {
		views = append(views, *toActivityView(&activities[i], profile))
	}
	return views, nil
}

// GetPublicActivities lists every public entry, newest first.
func (s *ActivityService) GetPublicActivities() ([]models.ActivityView, error) {
	var activities []models.Activity
	err := s.DB.Where("is_public = ?", true).Order("created_at DESC").Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return s.viewsWithOwners(activities)
}

// GetRecentActivities lists the latest entries regardless of visibility.
func (s *ActivityService) GetRecentActivities(limit int) ([]models.ActivityView, error) {
	var activities []models.Activity
	err := s.DB.Order("created_at DESC").Limit(limit).Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return s.viewsWithOwners(activities)
}

func (s *ActivityService) GetActivitiesByTrail(trailID string) ([]models.ActivityView, error) {
	var activities []models.Activity
	err := s.DB.Where("trail_id = ?", trailID).Order("created_at DESC").Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return s.viewsWithOwners(activities)
}

// UpdateActivity overwrites the non-nil fields. Type, trail and author
// never change after creation.
func (s *ActivityService) UpdateActivity(activityID string, req *UpdateActivityRequest) (*models.ActivityView, error) {
	activity, err := s.findActivity(activityID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.Distance != nil {
		activity.Distance = req.Distance
	}
	if req.Duration != nil {
		activity.Duration = req.Duration
	}
	if req.ElevationGain != nil {
		activity.ElevationGain = req.ElevationGain
	}
	if req.Difficulty != nil {
		activity.Difficulty = req.Difficulty
	}
	if req.Location != nil {
		activity.Location = req.Location
	}
	if req.PhotoURLs != nil {
		activity.PhotoURLs = req.PhotoURLs
	}
	if req.IsPublic != nil {
		activity.IsPublic = *req.IsPublic
	}

	if err := s.DB.Save(activity).Error; err != nil {
		return nil, err
	}
	return s.viewWithOwner(activity)
}

func (s *ActivityService) DeleteActivity(activityID string) error {
	res := s.DB.Delete(&models.Activity{}, "id = ?", activityID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("activity %s: %w", activityID, ErrNotFound)
	}
	return nil
}

// LikeActivity bumps the like counter.
func (s *ActivityService) LikeActivity(activityID string) (*models.ActivityView, error) {
	return s.bump(activityID, func(a *models.Activity) { a.Likes++ })
}

// AddComment bumps the comment counter.
func (s *ActivityService) AddComment(activityID string) (*models.ActivityView, error) {
	return s.bump(activityID, func(a *models.Activity) { a.Comments++ })
}

func (s *ActivityService) bump(activityID string, mutate func(*models.Activity)) (*models.ActivityView, error) {
	activity, err := s.findActivity(activityID)
	if err != nil {
		return nil, err
	}
	mutate(activity)
	if err := s.DB.Save(activity).Error; err != nil {
		return nil, err
	}
	return s.viewWithOwner(activity)
}

func (s *ActivityService) CountUserActivities(userID string) (int64, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return 0, err
	}
	var count int64
	err = s.DB.Model(&models.Activity{}).Where("user_profile_id = ?", profile.ID).Count(&count).Error
	return count, err
}

func (s *ActivityService) CountUserActivitiesByType(userID string, activityType models.ActivityType) (int64, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return 0, err
	}
	var count int64
	err = s.DB.Model(&models.Activity{}).
		Where("user_profile_id = ? AND type = ?", profile.ID, activityType).
		Count(&count).Error
	return count, err
}

// GetTotalDistanceByUser sums Distance over the user's activities; nil
// when no activity carries a distance.
func (s *ActivityService) GetTotalDistanceByUser(userID string) (*float64, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	var v sql.NullFloat64
	row := s.DB.Model(&models.Activity{}).
		Select("SUM(distance)").
		Where("user_profile_id = ?", profile.ID).
		Row()
	if err := row.Scan(&v); err != nil {
		return nil, err
	}
	if !v.Valid {
		return nil, nil
	}
	return &v.Float64, nil
}

// GetTotalDurationByUser sums Duration over the user's activities.
func (s *ActivityService) GetTotalDurationByUser(userID string) (*int, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	var v sql.NullInt64
	row := s.DB.Model(&models.Activity{}).
		Select("SUM(duration)").
		Where("user_profile_id = ?", profile.ID).
		Row()
	if err := row.Scan(&v); err != nil {
		return nil, err
	}
	if !v.Valid {
		return nil, nil
	}
	n := int(v.Int64)
	return &n, nil
}

func (s *ActivityService) findActivity(activityID string) (*models.Activity, error) {
	var activity models.Activity
	if err := s.DB.First(&activity, "id = ?", activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("activity %s: %w", activityID, ErrNotFound)
		}
		return nil, err
	}
	return &activity, nil
}

func (s *ActivityService) findProfile(userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ActivityService) viewWithOwner(activity *models.Activity) (*models.ActivityView, error) {
	var profile models.UserProfile
	if err := s.DB.First(&profile, "id = ?", activity.UserProfileID).Error; err != nil {
		return nil, err
	}
	return toActivityView(activity, &profile), nil
}

// viewsWithOwners joins author display fields, loading each distinct
// profile once.
func (s *ActivityService) viewsWithOwners(activities []models.Activity) ([]models.ActivityView, error) {
	profiles := make(map[string]*models.UserProfile)
	views := make([]models.ActivityView, 0, len(activities))
	for i := range activities {
		profile, ok := profiles[activities[i].UserProfileID]
		if !ok {
			var p models.UserProfile
			if err := s.DB.First(&p, "id = ?", activities[i].UserProfileID).Error; err != nil {
				return nil, err
			}
			profile = &p
			profiles[p.ID] = profile
		}
		views = append(views, *toActivityView(&activities[i], profile))
	}
	return views, nil
}

func toActivityView(activity *models.Activity, profile *models.UserProfile) *models.ActivityView {
	return &models.ActivityView{
		Activity:              *activity,
		UserDisplayName:       profile.DisplayName,
		UserProfilePictureURL: profile.ProfilePictureURL,
	}
}
