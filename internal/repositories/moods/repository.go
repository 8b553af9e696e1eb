// Package moods stores mood classifications.
package moods

import (
	"context"
	"time"

	"github.com/calmouapp/calmou/internal/models"
)

// DailyMood is one aggregated day in a mood report.
type DailyMood struct {
	Day     time.Time
	Average float64
	Entries int64
}

type Repository interface {
	Insert(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.MoodEntry, error)
	WeeklyReport(ctx context.Context, userID int64) ([]DailyMood, error)

	// DeleteByUser removes every entry owned by userID and reports how many
	// rows went away; the cascading deletion workflow audits the count.
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
