package models

import "time"

type BadgeType string

const (
	BadgeTypeTrail        BadgeType = "TRAIL"
	BadgeTypeDistance     BadgeType = "DISTANCE"
	BadgeTypeElevation    BadgeType = "ELEVATION"
	BadgeTypeSocial       BadgeType = "SOCIAL"
	BadgeTypeSpecial      BadgeType = "SPECIAL"
	BadgeTypeAchievement  BadgeType = "ACHIEVEMENT"
	BadgeTypeMilestone    BadgeType = "MILESTONE"
	BadgeTypeSpecialEvent BadgeType = "SPECIAL_EVENT"
	BadgeTypeSeasonal     BadgeType = "SEASONAL"
	BadgeTypeCommunity    BadgeType = "COMMUNITY"
)

func ParseBadgeType(s string) (BadgeType, bool) {
	switch BadgeType(s) {
	case BadgeTypeTrail, BadgeTypeDistance, BadgeTypeElevation, BadgeTypeSocial,
		BadgeTypeSpecial, BadgeTypeAchievement, BadgeTypeMilestone,
		BadgeTypeSpecialEvent, BadgeTypeSeasonal, BadgeTypeCommunity:
		return BadgeType(s), true
	}
	return "", false
}

type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

func ParseRarity(s string) (Rarity, bool) {
	switch Rarity(s) {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return Rarity(s), true
	}
	return "", false
}

// Badge is an admin-managed catalog entry. Name is unique (exact match);
// badges are soft-deactivated, never removed.
type Badge struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name           string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Description    string    `gorm:"not null;size:500" json:"description"`
	IconURL        string    `gorm:"not null" json:"icon_url"`
	Type           BadgeType `gorm:"type:varchar(16);default:'ACHIEVEMENT'" json:"type"`
	Rarity         Rarity    `gorm:"type:varchar(16);default:'COMMON'" json:"rarity"`
	PointsRequired int       `gorm:"default:0" json:"points_required"`
	MaxProgress    int       `gorm:"default:1" json:"max_progress"`
	Criteria       string    `gorm:"size:1000" json:"criteria,omitempty"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Badge) TableName() string { return "badges" }

// BadgeSummary is the trimmed shape returned by the simplified list endpoint.
type BadgeSummary struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	IconURL string    `json:"icon_url"`
	Type    BadgeType `json:"type"`
	Rarity  Rarity    `json:"rarity"`
}
