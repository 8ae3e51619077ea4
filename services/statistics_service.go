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
	"trail-profile-service/utils"
)

// TrailStatsSet carries absolute values; nil fields are left untouched.
type TrailStatsSet struct {
	TrailsCompleted     *int     `json:"trails_completed"`
	TotalDistanceKm     *float64 `json:"total_distance_km"`
	TotalTimeMinutes    *int     `json:"total_time_minutes"`
	TotalElevationGainM *float64 `json:"total_elevation_gain_m"`
	LongestTrailKm      *float64 `json:"longest_trail_km"`
	HighestElevationM   *int     `json:"highest_elevation_m"`
	TotalPoints         *int     `json:"total_points"`
}

// TrailStatsIncrement carries deltas added to the current counters.
type TrailStatsIncrement struct {
	Trails        *int     `json:"trails"`
	DistanceKm    *float64 `json:"distance_km"`
	TimeMinutes   *int     `json:"time_minutes"`
	ElevationGain *int     `json:"elevation_gain"`
}

type ActivityStatsSet struct {
	PhotosShared     *int `json:"photos_shared"`
	ReviewsPosted    *int `json:"reviews_posted"`
	LikesReceived    *int `json:"likes_received"`
	CommentsReceived *int `json:"comments_received"`
}

type AchievementStatsSet struct {
	BadgesEarned  *int `json:"badges_earned"`
	TotalPoints   *int `json:"total_points"`
	CurrentStreak *int `json:"current_streak"`
	LongestStreak *int `json:"longest_streak"`
}

type SocialStatsSet struct {
	Followers    *int `json:"followers"`
	Following    *int `json:"following"`
	GuidesBooked *int `json:"guides_booked"`
}

type StatisticsService struct {
	DB *gorm.DB
}

func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{DB: db}
}

// EnsureStatistics returns the statistics row for the user, creating a
// zeroed one on first access. The profile itself must already exist.
func (s *StatisticsService) EnsureStatistics(userID string) (*models.Statistics, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	var stats models.Statistics
	err = s.DB.First(&stats, "user_profile_id = ?", profile.ID).Error
	if err == nil {
		return &stats, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	stats = models.Statistics{
		ID:            uuid.NewString(),
		UserProfileID: profile.ID,
	}
	if err := s.DB.Create(&stats).Error; err != nil {
		return nil, err
	}
	log.Printf("✅ Statistics created for user %s", userID)
	return &stats, nil
}

// CreateStatistics creates the row explicitly; a second call conflicts.
func (s *StatisticsService) CreateStatistics(userID string) (*models.Statistics, error) {
	profile, err := s.findProfile(userID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.Statistics{}).Where("user_profile_id = ?", profile.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("statistics for user %s: %w", userID, ErrConflict)
	}

	stats := models.Statistics{
		ID:            uuid.NewString(),
		UserProfileID: profile.ID,
	}
	if err := s.DB.Create(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *StatisticsService) GetStatisticsByUserID(userID string) (*models.Statistics, error) {
	return s.EnsureStatistics(userID)
}

func (s *StatisticsService) GetStatisticsByID(statisticsID string) (*models.Statistics, error) {
	var stats models.Statistics
	if err := s.DB.First(&stats, "id = ?", statisticsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("statistics %s: %w", statisticsID, ErrNotFound)
		}
		return nil, err
	}
	return &stats, nil
}

// GetFormattedStatisticsByUserID returns the counters with presentation
// strings attached.
func (s *StatisticsService) GetFormattedStatisticsByUserID(userID string) (*models.FormattedStatisticsView, error) {
	stats, err := s.EnsureStatistics(userID)
	if err != nil {
		return nil, err
	}
	return formatStatistics(stats), nil
}

// SetTrailStatistics overwrites the given trail counters with absolute
// values.
func (s *StatisticsService) SetTrailStatistics(userID string, req *TrailStatsSet) (*models.Statistics, error) {
	stats, err := s.EnsureStatistics(userID)
	if err != nil {
		return nil, err
	}

	if req.TrailsCompleted != nil {
		stats.TotalTrailsCompleted = *req.TrailsCompleted
	}
	if req.TotalDistanceKm != nil {
		stats.TotalDistanceKm = *req.TotalDistanceKm
	}
	if req.TotalTimeMinutes != nil {
		stats.TotalTimeMinutes = *req.TotalTimeMinutes
	}
	if req.TotalElevationGainM != nil {
		stats.TotalElevationGainM = *req.TotalElevationGainM
	}
	if req.LongestTrailKm != nil {
		stats.LongestTrailKm = int(*req.LongestTrailKm)
	}
	if req.HighestElevationM != nil {
		stats.HighestElevationM = *req.HighestElevationM
	}
	if req.TotalPoints != nil {
		stats.TotalPoints = *req.TotalPoints
	}

	return s.save(stats)
}

// IncrementTrailStatistics adds the given deltas to the trail counters.
func (s *StatisticsService) IncrementTrailStatistics(userID string, req *TrailStatsIncrement) (*models.Statistics, error) {
	stats, err := s.EnsureStatistics(userID)
	if err != nil {
		return nil, err
	}

	if req.Trails != nil {
		stats.TotalTrailsCompleted += *req.Trails
	}
	if req.DistanceKm != nil {
		stats.TotalDistanceKm += *req.DistanceKm
	}
	if req.TimeMinutes != nil {
		stats.TotalTimeMinutes += *req.TimeMinutes
	}
	if req.ElevationGain != nil {
		stats.TotalElevationGainM += float64(*req.ElevationGain)
	}

	return s.save(stats)
}

func (s *StatisticsService) IncrementTrailsCompleted(userID string, increment int) (*models.Statistics, error) {
	stats, err := s.EnsureStatistics(userID)
	if err != nil {
		return nil, err
	}
	stats.TotalTrailsCompleted += increment
	return s.save(stats)
}

func (s *StatisticsService) SetActivityStatistics(userID string, req *ActivityStatsSet) (*models.Statistics, error) {
	stats, err := s.EnsureStatistics(userID)
	if err != nil {
		return nil, err
	}

	if req.PhotosShared != nil {
		stats.TotalPhotosShared = *req.PhotosShared
	}
	if req.ReviewsPosted != nil {
		stats.TotalReviewsPosted = *req.ReviewsPosted
	}
	if req.LikesReceived != nil {
		stats.TotalLikesReceived = *req.LikesReceived
	}
	if req.CommentsReceived != nil {
		stats.TotalCommentsReceived = *req.CommentsReceived
	}

	return s.save(stats)
}

func (s *StatisticsService) SetAchievementStatistics(userID string, req *AchievementStatsSet) (*models.Statistics, error) {
	stats, err := s.EnsureStatistics(userID)
	if err != nil {
		return nil, err
	}

	if req.BadgesEarned != nil {
		stats.TotalBadgesEarned = *req.BadgesEarned
	}
	if req.TotalPoints != nil {
		stats.TotalPoints = *req.TotalPoints
	}
	if req.CurrentStreak != nil {
		stats.CurrentStreak = *req.CurrentStreak
	}
	if req.LongestStreak != nil {
		stats.LongestStreak = *req.LongestStreak
	}

	return s.save(stats)
}

func (s *StatisticsService) SetSocialStatistics(userID string, req *SocialStatsSet) (*models.Statistics, error) {
	stats, err := s.EnsureStatistics(userID)
	if err != nil {
		return nil, err
	}

	if req.Followers != nil {
		stats.TotalFollowers = *req.Followers
	}
	if req.Following != nil {
		stats.TotalFollowing = *req.Following
	}
	if req.GuidesBooked != nil {
		stats.TotalGuidesBooked = *req.GuidesBooked
	}

	return s.save(stats)
}

func (s *StatisticsService) SetRanking(userID string, globalRank, localRank *int) (*models.Statistics, error) {
	stats, err := s.EnsureStatistics(userID)
	if err != nil {
		return nil, err
	}

	if globalRank != nil {
		stats.GlobalRank = *globalRank
	}
	if localRank != nil {
		stats.LocalRank = *localRank
	}

	return s.save(stats)
}

// UpdateLastActivity stamps the row with the current time.
func (s *StatisticsService) UpdateLastActivity(userID string) (*models.Statistics, error) {
	stats, err := s.EnsureStatistics(userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	stats.LastActivityAt = &now
	return s.save(stats)
}

// GetRankingByPoints orders all rows by total points descending and
// slices the page window.
func (s *StatisticsService) GetRankingByPoints(page, size int) (models.Page[models.Statistics], error) {
	return s.rankingPage("total_points DESC", page, size)
}

func (s *StatisticsService) GetRankingByTrails(page, size int) (models.Page[models.Statistics], error) {
	return s.rankingPage("total_trails_completed DESC", page, size)
}

func (s *StatisticsService) GetRankingByDistance(page, size int) (models.Page[models.Statistics], error) {
	return s.rankingPage("total_distance_km DESC", page, size)
}

func (s *StatisticsService) rankingPage(order string, page, size int) (models.Page[models.Statistics], error) {
	var all []models.Statistics
	if err := s.DB.Order(order).Find(&all).Error; err != nil {
		return models.Page[models.Statistics]{}, err
	}
	return models.NewPage(all, page, size), nil
}

// GetRankingByLocation lists rows for profiles in the given location,
// ordered by total points descending.
func (s *StatisticsService) GetRankingByLocation(location string) ([]models.Statistics, error) {
	var stats []models.Statistics
	err := s.DB.
		Joins("JOIN user_profiles ON user_profiles.id = statistics.user_profile_id").
		Where("user_profiles.location = ?", location).
		Order("statistics.total_points DESC").
		Find(&stats).Error
	return stats, err
}

// Aggregates return nil when the table is empty.

func (s *StatisticsService) GetAveragePoints() (*float64, error) {
	return s.avg("total_points")
}

func (s *StatisticsService) GetAverageDistance() (*float64, error) {
	return s.avg("total_distance_km")
}

func (s *StatisticsService) GetAverageTrailsCompleted() (*float64, error) {
	return s.avg("total_trails_completed")
}

func (s *StatisticsService) GetMaxDistance() (*float64, error) {
	var v sql.NullFloat64
	row := s.DB.Model(&models.Statistics{}).Select("MAX(total_distance_km)").Row()
	if err := row.Scan(&v); err != nil {
		return nil, err
	}
	if !v.Valid {
		return nil, nil
	}
	return &v.Float64, nil
}

func (s *StatisticsService) GetMaxTrailsCompleted() (*int, error) {
	return s.maxInt("total_trails_completed")
}

func (s *StatisticsService) GetMaxPoints() (*int, error) {
	return s.maxInt("total_points")
}

func (s *StatisticsService) avg(column string) (*float64, error) {
	var v sql.NullFloat64
	row := s.DB.Model(&models.Statistics{}).Select("AVG(" + column + ")").Row()
	if err := row.Scan(&v); err != nil {
		return nil, err
	}
	if !v.Valid {
		return nil, nil
	}
	return &v.Float64, nil
}

func (s *StatisticsService) maxInt(column string) (*int, error) {
	var v sql.NullInt64
	row := s.DB.Model(&models.Statistics{}).Select("MAX(" + column + ")").Row()
	if err := row.Scan(&v); err != nil {
		return nil, err
	}
	if !v.Valid {
		return nil, nil
	}
	n := int(v.Int64)
	return &n, nil
}

func (s *StatisticsService) save(stats *models.Statistics) (*models.Statistics, error) {
	if err := s.DB.Save(stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *StatisticsService) findProfile(userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return &profile, nil
}

func formatStatistics(stats *models.Statistics) *models.FormattedStatisticsView {
	return &models.FormattedStatisticsView{
		ID:            stats.ID,
		UserProfileID: stats.UserProfileID,

		TotalTrailsCompleted: stats.TotalTrailsCompleted,

		TotalDistanceFormatted:      utils.FormatDistance(stats.TotalDistanceKm),
		TotalTimeFormatted:          utils.FormatTime(stats.TotalTimeMinutes),
		TotalElevationGainFormatted: utils.FormatElevation(stats.TotalElevationGainM),
		LongestTrailFormatted:       utils.FormatDistance(float64(stats.LongestTrailKm)),
		HighestElevationFormatted:   utils.FormatElevation(float64(stats.HighestElevationM)),
		AveragePaceFormatted:        utils.FormatAveragePace(stats.TotalDistanceKm, stats.TotalTimeMinutes),

		TotalDistanceKm:     stats.TotalDistanceKm,
		TotalTimeMinutes:    stats.TotalTimeMinutes,
		TotalElevationGainM: stats.TotalElevationGainM,
		LongestTrailKm:      stats.LongestTrailKm,
		HighestElevationM:   stats.HighestElevationM,

		TotalPhotosShared:     stats.TotalPhotosShared,
		TotalReviewsPosted:    stats.TotalReviewsPosted,
		TotalLikesReceived:    stats.TotalLikesReceived,
		TotalCommentsReceived: stats.TotalCommentsReceived,
		TotalBadgesEarned:     stats.TotalBadgesEarned,
		TotalPoints:           stats.TotalPoints,
		CurrentStreak:         stats.CurrentStreak,
		LongestStreak:         stats.LongestStreak,
		TotalFollowers:        stats.TotalFollowers,
		TotalFollowing:        stats.TotalFollowing,
		TotalGuidesBooked:     stats.TotalGuidesBooked,
		GlobalRank:            stats.GlobalRank,
		LocalRank:             stats.LocalRank,

		LastActivityAt: stats.LastActivityAt,
		UpdatedAt:      stats.UpdatedAt,
	}
}
