package models

import (
	"time"

	"gorm.io/datatypes"
)

type Gender string

const (
	GenderMale           Gender = "MALE"
	GenderFemale         Gender = "FEMALE"
	GenderOther          Gender = "OTHER"
	GenderPreferNotToSay Gender = "PREFER_NOT_TO_SAY"
)

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "BEGINNER"
	ExperienceIntermediate ExperienceLevel = "INTERMEDIATE"
	ExperienceAdvanced     ExperienceLevel = "ADVANCED"
	ExperienceExpert       ExperienceLevel = "EXPERT"
)

// ParseExperienceLevel validates a path/query value against the known levels.
func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	switch ExperienceLevel(s) {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceExpert:
		return ExperienceLevel(s), true
	}
	return "", false
}

type ExplorationType string

const (
	ExplorationHiking       ExplorationType = "HIKING"
	ExplorationPhotography  ExplorationType = "PHOTOGRAPHY"
	ExplorationBirdwatching ExplorationType = "BIRDWATCHING"
	ExplorationAdventure    ExplorationType = "ADVENTURE"
	ExplorationResearch     ExplorationType = "RESEARCH"
	ExplorationRelaxation   ExplorationType = "RELAXATION"
)

type PrivacyLevel string

const (
	PrivacyPublic      PrivacyLevel = "PUBLIC"
	PrivacyFriendsOnly PrivacyLevel = "FRIENDS_ONLY"
	PrivacyPrivate     PrivacyLevel = "PRIVATE"
)

// UserProfile is the identity anchor for every other vertical.
// UserID is the auth-service UUID; one profile per external user.
// Profiles are deactivated (IsActive=false), never hard-deleted.
type UserProfile struct {
	ID                string           `gorm:"primaryKey;type:uuid" json:"id"`
	UserID            string           `gorm:"column:user_id;uniqueIndex;not null;type:uuid" json:"user_id"`
	DisplayName       string           `gorm:"size:100" json:"display_name"`
	Bio               string           `gorm:"size:500" json:"bio,omitempty"`
	ProfilePictureURL *string          `json:"profile_picture_url,omitempty"`
	DateOfBirth       *time.Time       `json:"date_of_birth,omitempty"`
	Gender            *Gender          `gorm:"type:varchar(32)" json:"gender,omitempty"`
	Location          *string          `json:"location,omitempty"`
	PhoneNumber       *string          `json:"phone_number,omitempty"`
	ExperienceLevel   ExperienceLevel  `gorm:"type:varchar(16);default:'BEGINNER'" json:"experience_level"`
	Interests         datatypes.JSON   `json:"interests,omitempty"`
	ExplorationType   *ExplorationType `gorm:"type:varchar(16)" json:"exploration_type,omitempty"`
	PrivacyLevel      PrivacyLevel     `gorm:"type:varchar(16);default:'PUBLIC'" json:"privacy_level"`
	IsActive          bool             `gorm:"default:true" json:"is_active"`
	IsVerified        bool             `gorm:"default:false" json:"is_verified"`
	CreatedAt         time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserProfile) TableName() string { return "user_profiles" }
