package models

import "time"

// Statistics holds one row of aggregated counters per profile, created
// lazily on first access. Counters are mutated by explicit set/increment
// calls, never recomputed from Activity rows.
type Statistics struct {
	ID            string `gorm:"primaryKey;type:uuid" json:"id"`
	UserProfileID string `gorm:"column:user_profile_id;uniqueIndex;not null;type:uuid" json:"user_profile_id"`

	// Trail counters
	TotalTrailsCompleted int     `gorm:"default:0" json:"total_trails_completed"`
	TotalDistanceKm      float64 `gorm:"default:0" json:"total_distance_km"`
	TotalTimeMinutes     int     `gorm:"default:0" json:"total_time_minutes"`
	TotalElevationGainM  float64 `gorm:"default:0" json:"total_elevation_gain_m"`
	LongestTrailKm       int     `gorm:"default:0" json:"longest_trail_km"`
	HighestElevationM    int     `gorm:"default:0" json:"highest_elevation_m"`

	// Activity counters
	TotalPhotosShared     int `gorm:"default:0" json:"total_photos_shared"`
	TotalReviewsPosted    int `gorm:"default:0" json:"total_reviews_posted"`
	TotalLikesReceived    int `gorm:"default:0" json:"total_likes_received"`
	TotalCommentsReceived int `gorm:"default:0" json:"total_comments_received"`

	// Achievement counters
	TotalBadgesEarned int `gorm:"default:0" json:"total_badges_earned"`
	TotalPoints       int `gorm:"default:0" json:"total_points"`
	CurrentStreak     int `gorm:"default:0" json:"current_streak"`
	LongestStreak     int `gorm:"default:0" json:"longest_streak"`

	// Social counters
	TotalFollowers    int `gorm:"default:0" json:"total_followers"`
	TotalFollowing    int `gorm:"default:0" json:"total_following"`
	TotalGuidesBooked int `gorm:"default:0" json:"total_guides_booked"`

	// Ranking (best effort, recomputed by the rank scheduler)
	GlobalRank int `gorm:"default:0" json:"global_rank"`
	LocalRank  int `gorm:"default:0" json:"local_rank"`

	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
}

func (Statistics) TableName() string { return "statistics" }
