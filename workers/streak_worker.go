package workers

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"trail-profile-service/models"
)

// StreakResetWorker zeroes the current streak of users who logged no
// activity for more than a full day. Longest streak is untouched.
type StreakResetWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewStreakResetWorker(db *gorm.DB) *StreakResetWorker {
	return &StreakResetWorker{
		db:       db,
		interval: 1 * time.Hour,
	}
}

func (w *StreakResetWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Streak Reset Worker…")
	go w.run(ctx)
}

func (w *StreakResetWorker) run(ctx context.Context) {
	if err := w.resetStale(); err != nil {
		log.Printf("⚠️ Initial streak sweep failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.resetStale(); err != nil {
				log.Printf("❌ Streak sweep failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Streak Reset Worker stopped")
			return
		}
	}
}

func (w *StreakResetWorker) resetStale() error {
	cutoff := time.Now().Add(-48 * time.Hour)

	res := w.db.Model(&models.Statistics{}).
		Where("current_streak > 0 AND (last_activity_at IS NULL OR last_activity_at < ?)", cutoff).
		Update("current_streak", 0)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("✅ Streaks reset for %d inactive users", res.RowsAffected)
	}
	return nil
}
