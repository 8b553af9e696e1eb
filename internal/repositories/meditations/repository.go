// Package meditations stores the meditation catalog and per-user completion history.
package meditations

import (
	"context"
	"time"

	"github.com/calmouapp/calmou/internal/models"
)

// HistoryItem is one completed session joined with its catalog entry.
type HistoryItem struct {
	ID            int64
	MeditationID  int64
	Title         string
	Category      string
	ActualMinutes int
	CompletedAt   time.Time
}

type Repository interface {
	// List returns the whole catalog, optionally narrowed to one category.
	List(ctx context.Context, category string) ([]models.Meditation, error)
	GetByID(ctx context.Context, id int64) (*models.Meditation, error)

	InsertCompletion(ctx context.Context, c *models.MeditationCompletion) (*models.MeditationCompletion, error)
	HistoryByUser(ctx context.Context, userID int64, limit int) ([]HistoryItem, error)
	Stats(ctx context.Context, userID int64) (*models.MeditationStats, error)

	// DeleteCompletion removes one history entry, but only if userID owns it.
	DeleteCompletion(ctx context.Context, id, userID int64) error

	// DeleteByUser removes every completion owned by userID and reports how
	// many rows went away; the cascading deletion workflow audits the count.
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
