package models

import "time"

// UserSavedTrail bookmarks an external trail for a profile. The
// (user_profile_id, trail_id) pair is unique at the DB level; unsaving
// flips IsActive and re-saving reactivates the same row.
type UserSavedTrail struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserProfileID string    `gorm:"column:user_profile_id;not null;type:uuid;uniqueIndex:idx_saved_trail_profile_trail" json:"user_profile_id"`
	TrailID       string    `gorm:"column:trail_id;not null;type:uuid;uniqueIndex:idx_saved_trail_profile_trail" json:"trail_id"`
	SavedAt       time.Time `gorm:"autoCreateTime" json:"saved_at"`
	Notes         string    `gorm:"size:500" json:"notes,omitempty"`
	IsActive      bool      `gorm:"default:true;not null" json:"is_active"`
}

func (UserSavedTrail) TableName() string { return "user_saved_trails" }
