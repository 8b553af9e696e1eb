package services

import (
	"context"
	"fmt"

	"github.com/calmouapp/calmou/internal/pool"
)

// SystemStats is a whole-deployment snapshot used by the reporting endpoint.
type SystemStats struct {
	Users                 int64
	MoodEntries           int64
	MeditationCompletions int64
	AssessmentResults     int64
}

// StatsService produces deployment-wide counts.
type StatsService struct {
	pool *pool.Pool
}

func NewStatsService(p *pool.Pool) *StatsService {
	return &StatsService{pool: p}
}

func (s *StatsService) Snapshot(ctx context.Context) (*SystemStats, error) {
	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	query :=
		`SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM mood_entries),
			(SELECT COUNT(*) FROM meditation_completions),
			(SELECT COUNT(*) FROM assessment_results)
		 `

	var stats SystemStats
	err = lease.Conn().QueryRow(ctx, query).Scan(
		&stats.Users, &stats.MoodEntries, &stats.MeditationCompletions, &stats.AssessmentResults,
	)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &stats, nil
}
