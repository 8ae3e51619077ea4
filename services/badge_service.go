package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trail-profile-service/models"
)

type CreateBadgeRequest struct {
	Name           string           `json:"name" validate:"required,max=100"`
	Description    string           `json:"description" validate:"required,max=500"`
	IconURL        string           `json:"icon_url" validate:"required"`
	Type           models.BadgeType `json:"type" validate:"required"`
	Rarity         models.Rarity    `json:"rarity" validate:"required"`
	PointsRequired *int             `json:"points_required"`
	MaxProgress    *int             `json:"max_progress"`
	Criteria       string           `json:"criteria"`
}

type UpdateBadgeRequest struct {
	Name           *string           `json:"name" validate:"omitempty,max=100"`
	Description    *string           `json:"description" validate:"omitempty,max=500"`
	IconURL        *string           `json:"icon_url"`
	Type           *models.BadgeType `json:"type"`
	Rarity         *models.Rarity    `json:"rarity"`
	PointsRequired *int              `json:"points_required"`
	MaxProgress    *int              `json:"max_progress"`
	Criteria       *string           `json:"criteria"`
}

type BadgeService struct {
	DB *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{DB: db}
}

// CreateBadge adds a catalog entry. Names are unique by exact match.
func (s *BadgeService) CreateBadge(req *CreateBadgeRequest) (*models.Badge, error) {
	exists, err := s.nameExists(req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("badge named %q: %w", req.Name, ErrConflict)
	}

	badge := models.Badge{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		IconURL:        req.IconURL,
		Type:           req.Type,
		Rarity:         req.Rarity,
		PointsRequired: 0,
		MaxProgress:    1,
		Criteria:       req.Criteria,
		IsActive:       true,
	}
	if req.PointsRequired != nil {
		badge.PointsRequired = *req.PointsRequired
	}
	if req.MaxProgress != nil {
		badge.MaxProgress = *req.MaxProgress
	}

	if err := s.DB.Create(&badge).Error; err != nil {
		return nil, err
	}
	log.Printf("✅ Badge %q created (%s)", badge.Name, badge.ID)
	return &badge, nil
}

func (s *BadgeService) GetBadgeByID(badgeID string) (*models.Badge, error) {
	var badge models.Badge
	if err := s.DB.First(&badge, "id = ?", badgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("badge %s: %w", badgeID, ErrNotFound)
		}
		return nil, err
	}
	return &badge, nil
}

func (s *BadgeService) GetBadgeByName(name string) (*models.Badge, error) {
	var badge models.Badge
	if err := s.DB.First(&badge, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("badge named %q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return &badge, nil
}

// GetAllActiveBadges lists active badges, newest first.
func (s *BadgeService) GetAllActiveBadges() ([]models.Badge, error) {
	var badges []models.Badge
	err := s.DB.Where("is_active = ?", true).Order("created_at DESC").Find(&badges).Error
	return badges, err
}

// GetBadgeSummaries is the trimmed list used by the mobile catalog screen.
func (s *BadgeService) GetBadgeSummaries() ([]models.BadgeSummary, error) {
	badges, err := s.GetAllActiveBadges()
	if err != nil {
		return nil, err
	}
	summaries := make([]models.BadgeSummary, 0, len(badges))
	for _, b := range badges {
		summaries = append(summaries, models.BadgeSummary{
			ID:      b.ID,
			Name:    b.Name,
			IconURL: b.IconURL,
			Type:    b.Type,
			Rarity:  b.Rarity,
		})
	}
	return summaries, nil
}

func (s *BadgeService) GetBadgesByType(t models.BadgeType) ([]models.Badge, error) {
	var badges []models.Badge
	err := s.DB.Where("is_active = ? AND type = ?", true, t).Order("created_at DESC").Find(&badges).Error
	return badges, err
}

func (s *BadgeService) GetBadgesByRarity(r models.Rarity) ([]models.Badge, error) {
	var badges []models.Badge
	err := s.DB.Where("is_active = ? AND rarity = ?", true, r).Order("created_at DESC").Find(&badges).Error
	return badges, err
}

func (s *BadgeService) GetBadgesByTypeAndRarity(t models.BadgeType, r models.Rarity) ([]models.Badge, error) {
	var badges []models.Badge
	err := s.DB.Where("is_active = ? AND type = ? AND rarity = ?", true, t, r).
		Order("created_at DESC").Find(&badges).Error
	return badges, err
}

// GetAvailableBadgesByPoints lists active badges whose points threshold
// is already met, cheapest first.
func (s *BadgeService) GetAvailableBadgesByPoints(points int) ([]models.Badge, error) {
	var badges []models.Badge
	err := s.DB.Where("is_active = ? AND points_required <= ?", true, points).
		Order("points_required ASC").Find(&badges).Error
	return badges, err
}

// UpdateBadge overwrites the non-nil fields. Renaming onto an existing
// name is a conflict.
func (s *BadgeService) UpdateBadge(badgeID string, req *UpdateBadgeRequest) (*models.Badge, error) {
	badge, err := s.GetBadgeByID(badgeID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != badge.Name {
		exists, err := s.nameExists(*req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("badge named %q: %w", *req.Name, ErrConflict)
		}
		badge.Name = *req.Name
	}
	if req.Description != nil {
		badge.Description = *req.Description
	}
	if req.IconURL != nil {
		badge.IconURL = *req.IconURL
	}
	if req.Type != nil {
		badge.Type = *req.Type
	}
	if req.Rarity != nil {
		badge.Rarity = *req.Rarity
	}
	if req.PointsRequired != nil {
		badge.PointsRequired = *req.PointsRequired
	}
	if req.MaxProgress != nil {
		badge.MaxProgress = *req.MaxProgress
	}
	if req.Criteria != nil {
		badge.Criteria = *req.Criteria
	}

	if err := s.DB.Save(badge).Error; err != nil {
		return nil, err
	}
	return badge, nil
}

func (s *BadgeService) DeactivateBadge(badgeID string) (*models.Badge, error) {
	return s.setActive(badgeID, false)
}

func (s *BadgeService) ActivateBadge(badgeID string) (*models.Badge, error) {
	return s.setActive(badgeID, true)
}

func (s *BadgeService) setActive(badgeID string, active bool) (*models.Badge, error) {
	badge, err := s.GetBadgeByID(badgeID)
	if err != nil {
		return nil, err
	}
	badge.IsActive = active
	if err := s.DB.Save(badge).Error; err != nil {
		return nil, err
	}
	return badge, nil
}

func (s *BadgeService) CountActiveBadges() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Badge{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (s *BadgeService) CountBadgesByType(t models.BadgeType) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Badge{}).Where("is_active = ? AND type = ?", true, t).Count(&count).Error
	return count, err
}

type defaultBadge struct {
	name           string
	description    string
	iconURL        string
	badgeType      models.BadgeType
	rarity         models.Rarity
	pointsRequired int
	criteria       string
}

var defaultBadges = []defaultBadge{
	{"Primeira Trilha", "Complete sua primeira trilha", "/icons/first-trail.svg",
		models.BadgeTypeTrail, models.RarityCommon, 1, `{"trails_required": 1}`},
	{"Explorador", "Complete 10 trilhas", "/icons/explorer.svg",
		models.BadgeTypeTrail, models.RarityCommon, 10, `{"trails_required": 10}`},
	{"Aventureiro", "Complete 50 trilhas", "/icons/adventurer.svg",
		models.BadgeTypeTrail, models.RarityRare, 50, `{"trails_required": 50}`},
	{"Mestre das Trilhas", "Complete 100 trilhas", "/icons/trail-master.svg",
		models.BadgeTypeTrail, models.RarityEpic, 100, `{"trails_required": 100}`},
	{"Caminhante", "Percorra 10 km em trilhas", "/icons/walker.svg",
		models.BadgeTypeDistance, models.RarityCommon, 10, `{"distance_required": 10.0}`},
	{"Maratonista", "Percorra 100 km em trilhas", "/icons/marathoner.svg",
		models.BadgeTypeDistance, models.RarityRare, 100, `{"distance_required": 100.0}`},
	{"Ultra Maratonista", "Percorra 500 km em trilhas", "/icons/ultra-marathoner.svg",
		models.BadgeTypeDistance, models.RarityEpic, 500, `{"distance_required": 500.0}`},
	{"Escalador", "Ganhe 1000m de elevação", "/icons/climber.svg",
		models.BadgeTypeElevation, models.RarityCommon, 1000, `{"elevation_required": 1000}`},
	{"Montanhista", "Ganhe 5000m de elevação", "/icons/mountaineer.svg",
		models.BadgeTypeElevation, models.RarityRare, 5000, `{"elevation_required": 5000}`},
	{"Fotógrafo", "Compartilhe 10 fotos", "/icons/photographer.svg",
		models.BadgeTypeSocial, models.RarityCommon, 10, `{"photos_required": 10}`},
	{"Influenciador", "Receba 100 curtidas", "/icons/influencer.svg",
		models.BadgeTypeSocial, models.RarityRare, 100, `{"likes_required": 100}`},
	{"Pioneiro", "Um dos primeiros usuários da plataforma", "/icons/pioneer.svg",
		models.BadgeTypeSpecial, models.RarityLegendary, 0, `{"special": "early_adopter"}`},
	{"Verificado", "Perfil verificado pela equipe", "/icons/verified.svg",
		models.BadgeTypeSpecial, models.RarityRare, 0, `{"special": "verified_profile"}`},
}

// CreateDefaultBadges seeds the stock catalog. Entries that already exist
// by name are skipped, so the call is idempotent.
func (s *BadgeService) CreateDefaultBadges() error {
	log.Println("🏅 Seeding default badge catalog")

	for _, d := range defaultBadges {
		exists, err := s.nameExists(d.name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		points := d.pointsRequired
		if _, err := s.CreateBadge(&CreateBadgeRequest{
			Name:           d.name,
			Description:    d.description,
			IconURL:        d.iconURL,
			Type:           d.badgeType,
			Rarity:         d.rarity,
			PointsRequired: &points,
			Criteria:       d.criteria,
		}); err != nil {
			return err
		}
	}

	log.Println("✅ Default badge catalog ready")
	return nil
}

func (s *BadgeService) nameExists(name string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Badge{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}
