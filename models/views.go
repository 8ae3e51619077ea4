package models

import "time"

// Response shapes composed from more than one table or collaborator.

// UserProfileView is the profile response: profile fields joined with the
// headline statistics counters plus the auth-service first name (nil when
// the auth service was unreachable).
type UserProfileView struct {
	ID                string           `json:"id"`
	UserID            string           `json:"user_id"`
	FirstName         *string          `json:"first_name,omitempty"`
	DisplayName       string           `json:"display_name"`
	Bio               string           `json:"bio,omitempty"`
	ProfilePictureURL *string          `json:"profile_picture_url,omitempty"`
	DateOfBirth       *time.Time       `json:"date_of_birth,omitempty"`
	Gender            *Gender          `json:"gender,omitempty"`
	Location          *string          `json:"location,omitempty"`
	PhoneNumber       *string          `json:"phone_number,omitempty"`
	ExperienceLevel   ExperienceLevel  `json:"experience_level"`
	Interests         []string         `json:"interests,omitempty"`
	ExplorationType   *ExplorationType `json:"exploration_type,omitempty"`
	PrivacyLevel      PrivacyLevel     `json:"privacy_level"`
	IsActive          bool             `json:"is_active"`
	IsVerified        bool             `json:"is_verified"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`

	TotalTrailsCompleted int `json:"total_trails_completed"`
	TotalBadgesEarned    int `json:"total_badges_earned"`
	TotalPoints          int `json:"total_points"`
}

// ActivityView is an activity joined with its author's display fields.
type ActivityView struct {
	Activity
	UserDisplayName       string  `json:"user_display_name"`
	UserProfilePictureURL *string `json:"user_profile_picture_url,omitempty"`
}

// SavedTrailView is a saved-trail row joined with the owner's display
// fields. The trail metadata fields are only populated when the optional
// trail-service client is configured; otherwise they stay null.
type SavedTrailView struct {
	ID                    string    `json:"id"`
	UserProfileID         string    `json:"user_profile_id"`
	UserDisplayName       string    `json:"user_display_name"`
	UserProfilePictureURL *string   `json:"user_profile_picture_url,omitempty"`
	TrailID               string    `json:"trail_id"`
	Notes                 string    `json:"notes,omitempty"`
	SavedAt               time.Time `json:"saved_at"`
	IsActive              bool      `json:"is_active"`

	TrailName        *string `json:"trail_name,omitempty"`
	TrailDescription *string `json:"trail_description,omitempty"`
	TrailDifficulty  *string `json:"trail_difficulty,omitempty"`
	TrailDistanceKm  *float64 `json:"trail_distance_km,omitempty"`
}

// FormattedStatisticsView carries the raw counters alongside
// presentation-formatted strings for the mobile app.
type FormattedStatisticsView struct {
	ID            string `json:"id"`
	UserProfileID string `json:"user_profile_id"`

	TotalTrailsCompleted int `json:"total_trails_completed"`

	TotalDistanceFormatted      string `json:"total_distance_formatted"`
	TotalTimeFormatted          string `json:"total_time_formatted"`
	TotalElevationGainFormatted string `json:"total_elevation_gain_formatted"`
	LongestTrailFormatted       string `json:"longest_trail_formatted"`
	HighestElevationFormatted   string `json:"highest_elevation_formatted"`
	AveragePaceFormatted        string `json:"average_pace_formatted"`

	TotalDistanceKm     float64 `json:"total_distance_km"`
	TotalTimeMinutes    int     `json:"total_time_minutes"`
	TotalElevationGainM float64 `json:"total_elevation_gain_m"`
	LongestTrailKm      int     `json:"longest_trail_km"`
	HighestElevationM   int     `json:"highest_elevation_m"`

	TotalPhotosShared     int `json:"total_photos_shared"`
	TotalReviewsPosted    int `json:"total_reviews_posted"`
	TotalLikesReceived    int `json:"total_likes_received"`
	TotalCommentsReceived int `json:"total_comments_received"`
	TotalBadgesEarned     int `json:"total_badges_earned"`
	TotalPoints           int `json:"total_points"`
	CurrentStreak         int `json:"current_streak"`
	LongestStreak         int `json:"longest_streak"`
	TotalFollowers        int `json:"total_followers"`
	TotalFollowing        int `json:"total_following"`
	TotalGuidesBooked     int `json:"total_guides_booked"`
	GlobalRank            int `json:"global_rank"`
	LocalRank             int `json:"local_rank"`

	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Page is the Spring-style pagination envelope used by every paginated
// endpoint. Page numbers are zero-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage slices a fully-loaded list into one page window.
func NewPage[T any](all []T, page, size int) Page[T] {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	start := page * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	totalPages := (len(all) + size - 1) / size
	return Page[T]{
		Content:       all[start:end],
		Page:          page,
		Size:          size,
		TotalElements: int64(len(all)),
		TotalPages:    totalPages,
	}
}
