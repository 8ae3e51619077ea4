package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/gosimple/slug"

	"trail-profile-service/models"
)

// StartRankScheduler recomputes global and local ranks every hour. Local
// ranks group profiles by normalized location so spelling variants of the
// same place compete in one bucket.
func (s *StatisticsService) StartRankScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			if err := s.RecomputeRanks(); err != nil {
				log.Printf("[Ranks] ❌ Recompute failed: %v", err)
			}
		}),
	)
}

func (s *StatisticsService) RecomputeRanks() error {
	var stats []models.Statistics
	if err := s.DB.Order("total_points DESC").Find(&stats).Error; err != nil {
		return err
	}

	locations := make(map[string]string, len(stats))
	var profiles []models.UserProfile
	if err := s.DB.Find(&profiles).Error; err != nil {
		return err
	}
	for _, p := range profiles {
		if p.Location != nil {
			locations[p.ID] = slug.Make(*p.Location)
		}
	}

	localCounter := make(map[string]int)
	for i := range stats {
		stats[i].GlobalRank = i + 1

		if loc, ok := locations[stats[i].UserProfileID]; ok && loc != "" {
			localCounter[loc]++
			stats[i].LocalRank = localCounter[loc]
		} else {
			stats[i].LocalRank = 0
		}

		err := s.DB.Model(&models.Statistics{}).
			Where("id = ?", stats[i].ID).
			Updates(map[string]interface{}{
				"global_rank": stats[i].GlobalRank,
				"local_rank":  stats[i].LocalRank,
			}).Error
		if err != nil {
			log.Printf("[Ranks] ⚠️ Failed to update ranks for %s: %v", stats[i].ID, err)
		}
	}

	log.Printf("✅ Ranks recomputed for %d users", len(stats))
	return nil
}
