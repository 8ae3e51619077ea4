package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"trail-profile-service/cache"
	"trail-profile-service/models"
	"trail-profile-service/utils"
)

const profileCacheTTL = 5 * time.Minute

type CreateProfileRequest struct {
	UserID            string                  `json:"user_id" validate:"required,uuid"`
	DisplayName       string                  `json:"display_name" validate:"required,max=100"`
	Bio               string                  `json:"bio" validate:"max=500"`
	ProfilePictureURL *string                 `json:"profile_picture_url"`
	DateOfBirth       *time.Time              `json:"date_of_birth"`
	Gender            *models.Gender          `json:"gender"`
	Location          *string                 `json:"location"`
	PhoneNumber       *string                 `json:"phone_number"`
	ExperienceLevel   *models.ExperienceLevel `json:"experience_level"`
	Interests         []string                `json:"interests"`
	ExplorationType   *models.ExplorationType `json:"exploration_type"`
	PrivacyLevel      *models.PrivacyLevel    `json:"privacy_level"`
}

// UpdateProfileRequest carries only the fields to overwrite; nil leaves
// the stored value untouched.
type UpdateProfileRequest struct {
	DisplayName       *string                 `json:"display_name" validate:"omitempty,max=100"`
	Bio               *string                 `json:"bio" validate:"omitempty,max=500"`
	ProfilePictureURL *string                 `json:"profile_picture_url"`
	DateOfBirth       *time.Time              `json:"date_of_birth"`
	Gender            *models.Gender          `json:"gender"`
	Location          *string                 `json:"location"`
	PhoneNumber       *string                 `json:"phone_number"`
	ExperienceLevel   *models.ExperienceLevel `json:"experience_level"`
	Interests         []string                `json:"interests"`
	ExplorationType   *models.ExplorationType `json:"exploration_type"`
	PrivacyLevel      *models.PrivacyLevel    `json:"privacy_level"`
}

type ProfileService struct {
	DB       *gorm.DB
	Auth     *AuthServiceClient
	Cache    cache.Store
	Pictures utils.PictureStore
}

func NewProfileService(db *gorm.DB, auth *AuthServiceClient, store cache.Store, pictures utils.PictureStore) *ProfileService {
	return &ProfileService{DB: db, Auth: auth, Cache: store, Pictures: pictures}
}

// CreateProfile creates the profile together with its zeroed statistics
// row in one transaction. A second call for the same userId is a conflict.
func (s *ProfileService) CreateProfile(req *CreateProfileRequest) (*models.UserProfileView, error) {
	var count int64
	if err := s.DB.Model(&models.UserProfile{}).Where("user_id = ?", req.UserID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("profile for user %s: %w", req.UserID, ErrConflict)
	}

	profile := models.UserProfile{
		ID:                uuid.NewString(),
		UserID:            req.UserID,
		DisplayName:       req.DisplayName,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
		DateOfBirth:       req.DateOfBirth,
		Gender:            req.Gender,
		Location:          req.Location,
		PhoneNumber:       req.PhoneNumber,
		ExperienceLevel:   models.ExperienceBeginner,
		ExplorationType:   req.ExplorationType,
		PrivacyLevel:      models.PrivacyPublic,
		IsActive:          true,
		IsVerified:        false,
	}
	if req.ExperienceLevel != nil {
		profile.ExperienceLevel = *req.ExperienceLevel
	}
	if req.PrivacyLevel != nil {
		profile.PrivacyLevel = *req.PrivacyLevel
	}
	if len(req.Interests) > 0 {
		raw, err := json.Marshal(req.Interests)
		if err != nil {
			return nil, err
		}
		profile.Interests = datatypes.JSON(raw)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		stats := models.Statistics{
			ID:            uuid.NewString(),
			UserProfileID: profile.ID,
		}
		return tx.Create(&stats).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Profile created for user %s", req.UserID)
	return s.composeView(&profile, true), nil
}

func (s *ProfileService) GetProfileByUserID(userID string) (*models.UserProfileView, error) {
	ctx := context.Background()
	cacheKey := "profile:user:" + userID
	if raw, ok := s.Cache.Get(ctx, cacheKey); ok {
		var view models.UserProfileView
		if err := json.Unmarshal(raw, &view); err == nil {
			return &view, nil
		}
	}

	profile, err := s.findByUserID(userID)
	if err != nil {
		return nil, err
	}

	view := s.composeView(profile, true)
	if raw, err := json.Marshal(view); err == nil {
		s.Cache.Set(ctx, cacheKey, raw, profileCacheTTL)
	}
	return view, nil
}

func (s *ProfileService) GetProfileByID(profileID string) (*models.UserProfileView, error) {
	var profile models.UserProfile
	if err := s.DB.First(&profile, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile %s: %w", profileID, ErrNotFound)
		}
		return nil, err
	}
	return s.composeView(&profile, true), nil
}

// UpdateProfile overwrites exactly the non-nil request fields.
func (s *ProfileService) UpdateProfile(userID string, req *UpdateProfileRequest) (*models.UserProfileView, error) {
	profile, err := s.findByUserID(userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.ProfilePictureURL != nil {
		profile.ProfilePictureURL = req.ProfilePictureURL
	}
	if req.DateOfBirth != nil {
		profile.DateOfBirth = req.DateOfBirth
	}
	if req.Gender != nil {
		profile.Gender = req.Gender
	}
	if req.Location != nil {
		profile.Location = req.Location
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = req.PhoneNumber
	}
	if req.ExperienceLevel != nil {
		profile.ExperienceLevel = *req.ExperienceLevel
	}
	if req.Interests != nil {
		raw, err := json.Marshal(req.Interests)
		if err != nil {
			return nil, err
		}
		profile.Interests = datatypes.JSON(raw)
	}
	if req.ExplorationType != nil {
		profile.ExplorationType = req.ExplorationType
	}
	if req.PrivacyLevel != nil {
		profile.PrivacyLevel = *req.PrivacyLevel
	}

	if err := s.DB.Save(profile).Error; err != nil {
		return nil, err
	}
	s.invalidate(userID)
	return s.composeView(profile, true), nil
}

// DeactivateProfile flips IsActive off; calling it again is a no-op.
func (s *ProfileService) DeactivateProfile(userID string) error {
	return s.setFlag(userID, func(p *models.UserProfile) { p.IsActive = false })
}

// VerifyProfile flips IsVerified on; calling it again is a no-op.
func (s *ProfileService) VerifyProfile(userID string) error {
	return s.setFlag(userID, func(p *models.UserProfile) { p.IsVerified = true })
}

func (s *ProfileService) setFlag(userID string, mutate func(*models.UserProfile)) error {
	profile, err := s.findByUserID(userID)
	if err != nil {
		return err
	}
	mutate(profile)
	if err := s.DB.Save(profile).Error; err != nil {
		return err
	}
	s.invalidate(userID)
	return nil
}

// GetActiveProfiles lists active profiles without joining statistics.
func (s *ProfileService) GetActiveProfiles() ([]models.UserProfileView, error) {
	var profiles []models.UserProfile
	if err := s.DB.Where("is_active = ?", true).Find(&profiles).Error; err != nil {
		return nil, err
	}
	views := make([]models.UserProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, *viewWithoutStats(&profiles[i]))
	}
	return views, nil
}

func (s *ProfileService) CountActiveProfiles() (int64, error) {
	var count int64
	err := s.DB.Model(&models.UserProfile{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// SearchProfiles filters active profiles by optional case-insensitive
// displayName/location substrings and exact experience level.
func (s *ProfileService) SearchProfiles(displayName, location *string, level *models.ExperienceLevel, page, size int) (models.Page[models.UserProfileView], error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}

	q := s.DB.Model(&models.UserProfile{}).Where("is_active = ?", true)
	if displayName != nil && *displayName != "" {
		q = q.Where("LOWER(display_name) LIKE ?", "%"+strings.ToLower(*displayName)+"%")
	}
	if location != nil && *location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(*location)+"%")
	}
	if level != nil {
		q = q.Where("experience_level = ?", *level)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return models.Page[models.UserProfileView]{}, err
	}

	var profiles []models.UserProfile
	if err := q.Offset(page * size).Limit(size).Find(&profiles).Error; err != nil {
		return models.Page[models.UserProfileView]{}, err
	}

	views := make([]models.UserProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, *s.composeView(&profiles[i], false))
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return models.Page[models.UserProfileView]{
		Content:       views,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func (s *ProfileService) GetProfilesByLocation(location string) ([]models.UserProfileView, error) {
	var profiles []models.UserProfile
	err := s.DB.
		Where("is_active = ? AND LOWER(location) LIKE ?", true, "%"+strings.ToLower(location)+"%").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	views := make([]models.UserProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, *s.composeView(&profiles[i], false))
	}
	return views, nil
}

func (s *ProfileService) GetProfilesByExperienceLevel(level models.ExperienceLevel) ([]models.UserProfileView, error) {
	var profiles []models.UserProfile
	err := s.DB.Where("is_active = ? AND experience_level = ?", true, level).Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	views := make([]models.UserProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, *s.composeView(&profiles[i], false))
	}
	return views, nil
}

// GetRankingByPoints loads every profile, sorts by total points descending
// and slices the page window. Ties keep load order (stable sort).
func (s *ProfileService) GetRankingByPoints(page, size int) (models.Page[models.UserProfileView], error) {
	return s.ranking(page, size, func(a, b *models.UserProfileView) bool {
		return a.TotalPoints > b.TotalPoints
	})
}

// GetRankingByTrails is GetRankingByPoints for the trails-completed metric.
func (s *ProfileService) GetRankingByTrails(page, size int) (models.Page[models.UserProfileView], error) {
	return s.ranking(page, size, func(a, b *models.UserProfileView) bool {
		return a.TotalTrailsCompleted > b.TotalTrailsCompleted
	})
}

func (s *ProfileService) ranking(page, size int, less func(a, b *models.UserProfileView) bool) (models.Page[models.UserProfileView], error) {
	var profiles []models.UserProfile
	if err := s.DB.Find(&profiles).Error; err != nil {
		return models.Page[models.UserProfileView]{}, err
	}

	views := make([]models.UserProfileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, *s.composeView(&profiles[i], false))
	}
	sort.SliceStable(views, func(i, j int) bool {
		return less(&views[i], &views[j])
	})

	return models.NewPage(views, page, size), nil
}

// UpdateProfilePicture stores the uploaded image under
// {userId}_{epochMillis}{ext} and saves the resulting URL on the profile.
func (s *ProfileService) UpdateProfilePicture(userID string, file *multipart.FileHeader) (*models.UserProfileView, error) {
	profile, err := s.findByUserID(userID)
	if err != nil {
		return nil, err
	}

	if file == nil || file.Size == 0 {
		return nil, fmt.Errorf("empty file: %w", ErrInvalid)
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("file must be an image, got %q: %w", contentType, ErrInvalid)
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	filename := fmt.Sprintf("%s_%d%s", userID, time.Now().UnixMilli(), ext)

	url, err := s.Pictures.Save(file, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to store profile picture: %w", err)
	}

	profile.ProfilePictureURL = &url
	if err := s.DB.Save(profile).Error; err != nil {
		return nil, err
	}
	s.invalidate(userID)

	log.Printf("✅ Profile picture updated for user %s", userID)
	return s.composeView(profile, true), nil
}

func (s *ProfileService) findByUserID(userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) invalidate(userID string) {
	s.Cache.Delete(context.Background(), "profile:user:"+userID)
}

// composeView joins the statistics counters and, when asked, the
// auth-service first name. Bulk paths skip the first-name lookup to avoid
// one collaborator call per row.
func (s *ProfileService) composeView(profile *models.UserProfile, withFirstName bool) *models.UserProfileView {
	view := viewWithoutStats(profile)

	var stats models.Statistics
	if err := s.DB.First(&stats, "user_profile_id = ?", profile.ID).Error; err == nil {
		view.TotalTrailsCompleted = stats.TotalTrailsCompleted
		view.TotalBadgesEarned = stats.TotalBadgesEarned
		view.TotalPoints = stats.TotalPoints
	}

	if withFirstName {
		view.FirstName = s.Auth.FetchFirstName(profile.UserID)
	}
	return view
}

func viewWithoutStats(profile *models.UserProfile) *models.UserProfileView {
	var interests []string
	if len(profile.Interests) > 0 {
		_ = json.Unmarshal(profile.Interests, &interests)
	}
	return &models.UserProfileView{
		ID:                profile.ID,
		UserID:            profile.UserID,
		DisplayName:       profile.DisplayName,
		Bio:               profile.Bio,
		ProfilePictureURL: profile.ProfilePictureURL,
		DateOfBirth:       profile.DateOfBirth,
		Gender:            profile.Gender,
		Location:          profile.Location,
		PhoneNumber:       profile.PhoneNumber,
		ExperienceLevel:   profile.ExperienceLevel,
		Interests:         interests,
		ExplorationType:   profile.ExplorationType,
		PrivacyLevel:      profile.PrivacyLevel,
		IsActive:          profile.IsActive,
		IsVerified:        profile.IsVerified,
		CreatedAt:         profile.CreatedAt,
		UpdatedAt:         profile.UpdatedAt,
	}
}
