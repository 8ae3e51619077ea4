package models

import "time"

type ActivityType string

const (
	ActivityTrailCompleted    ActivityType = "TRAIL_COMPLETED"
	ActivityPhotoShared       ActivityType = "PHOTO_SHARED"
	ActivityAchievementEarned ActivityType = "ACHIEVEMENT_EARNED"
	ActivityReviewPosted      ActivityType = "REVIEW_POSTED"
	ActivityGuideBooked       ActivityType = "GUIDE_BOOKED"
	ActivityLocationCheckedIn ActivityType = "LOCATION_CHECKED_IN"
)

func ParseActivityType(s string) (ActivityType, bool) {
	switch ActivityType(s) {
	case ActivityTrailCompleted, ActivityPhotoShared, ActivityAchievementEarned,
		ActivityReviewPosted, ActivityGuideBooked, ActivityLocationCheckedIn:
		return ActivityType(s), true
	}
	return "", false
}

// Activity is a user-authored feed entry. Likes and comments are bare
// counters with no identity tracking.
type Activity struct {
	ID            string       `gorm:"primaryKey;type:uuid" json:"id"`
	UserProfileID string       `gorm:"column:user_profile_id;index;not null;type:uuid" json:"user_profile_id"`
	Type          ActivityType `gorm:"type:varchar(32);not null" json:"type"`
	Title         string       `gorm:"not null;size:200" json:"title"`
	Description   string       `gorm:"size:1000" json:"description,omitempty"`
	TrailID       *string      `gorm:"column:trail_id;index;type:uuid" json:"trail_id,omitempty"`
	Distance      *float64     `json:"distance,omitempty"`
	Duration      *int         `json:"duration,omitempty"`
	ElevationGain *float64     `json:"elevation_gain,omitempty"`
	Difficulty    *int         `json:"difficulty,omitempty"`
	Location      *string      `json:"location,omitempty"`
	PhotoURLs     *string      `gorm:"column:photo_urls" json:"photo_urls,omitempty"`
	Likes         int          `gorm:"default:0" json:"likes"`
	Comments      int          `gorm:"default:0" json:"comments"`
	IsPublic      bool         `json:"is_public"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
}

func (Activity) TableName() string { return "activities" }
