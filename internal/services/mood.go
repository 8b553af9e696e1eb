package services

import (
	"context"
	"fmt"

	"github.com/calmouapp/calmou/internal/common"
	"github.com/calmouapp/calmou/internal/models"
	"github.com/calmouapp/calmou/internal/pool"
	"github.com/calmouapp/calmou/internal/repositories/moods"
)

const defaultHistoryLimit = 50

// MoodService records mood classifications and builds mood reports.
type MoodService struct {
	pool *pool.Pool
}

func NewMoodService(p *pool.Pool) *MoodService {
	return &MoodService{pool: p}
}

// Record stores one mood classification. Level must be between 1 and 5.
func (s *MoodService) Record(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	if entry.Level < 1 || entry.Level > 5 {
		return nil, fmt.Errorf("%w: mood level %d out of range", common.ErrInvalidArgument, entry.Level)
	}

	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	return moods.NewPostgresRepository(lease.Conn()).Insert(ctx, entry)
}

// History returns the user's most recent entries, newest first.
func (s *MoodService) History(ctx context.Context, userID int64, limit int) ([]models.MoodEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	return moods.NewPostgresRepository(lease.Conn()).ListByUser(ctx, userID, limit)
}

// WeeklyReport aggregates the trailing seven days into per-day averages.
func (s *MoodService) WeeklyReport(ctx context.Context, userID int64) ([]moods.DailyMood, error) {
	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	return moods.NewPostgresRepository(lease.Conn()).WeeklyReport(ctx, userID)
}
