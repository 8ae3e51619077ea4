package models

import "time"

// Achievement is a (profile, badge) unlock-progress record. The pair is
// unique; progress only advances and completion is terminal.
type Achievement struct {
	ID            string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserProfileID string     `gorm:"column:user_profile_id;not null;type:uuid;uniqueIndex:idx_achievement_profile_badge" json:"user_profile_id"`
	BadgeID       string     `gorm:"column:badge_id;not null;type:uuid;uniqueIndex:idx_achievement_profile_badge" json:"badge_id"`
	Badge         *Badge     `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
	Description   string     `gorm:"size:500" json:"description,omitempty"`
	Progress      int        `gorm:"default:0" json:"progress"`
	IsCompleted   bool       `gorm:"default:false" json:"is_completed"`
	EarnedAt      time.Time  `gorm:"autoCreateTime" json:"earned_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Metadata      string     `gorm:"type:text" json:"metadata,omitempty"`
}

func (Achievement) TableName() string { return "achievements" }

// MaxProgress is fixed at 100 for every achievement, independent of the
// linked badge's MaxProgress field. Known inconsistency with the badge
// catalog (which usually sets max_progress=1); kept pending product
// clarification.
func (Achievement) MaxProgress() int { return 100 }
