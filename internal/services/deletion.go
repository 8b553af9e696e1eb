package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/calmouapp/calmou/internal/common"
	"github.com/calmouapp/calmou/internal/dbx"
	"github.com/calmouapp/calmou/internal/logging"
	"github.com/calmouapp/calmou/internal/pool"
	"github.com/calmouapp/calmou/internal/repositories/assessments"
	"github.com/calmouapp/calmou/internal/repositories/meditations"
	"github.com/calmouapp/calmou/internal/repositories/moods"
	"github.com/calmouapp/calmou/internal/repositories/users"
)

// DeletionSummary reports what a completed cascade removed.
type DeletionSummary struct {
	MoodEntries           int64
	MeditationCompletions int64
	AssessmentResults     int64
	Removed               bool
}

// DeletionService removes an account together with its whole data footprint
// in one transaction. Either everything goes, or nothing does.
type DeletionService struct {
	pool *pool.Pool
	log  logging.Logger
}

func NewDeletionService(p *pool.Pool, log logging.Logger) *DeletionService {
	return &DeletionService{pool: p, log: log}
}

// DeleteAccountCascade deletes the user's mood entries, meditation
// completions, and assessment results, then the user row itself, all on one
// leased connection inside a single transaction. A missing user rolls back
// with common.ErrAccountNotFound and a zero summary. Any other failure rolls
// back and is reported as common.ErrTransactionFailure, which the caller may
// retry.
func (s *DeletionService) DeleteAccountCascade(ctx context.Context, userID int64) (DeletionSummary, error) {
	lease, err := s.pool.Acquire(ctx)
	if err != nil {
		return DeletionSummary{}, err
	}
	defer lease.Release()

	var summary DeletionSummary
	err = dbx.WithTx(ctx, lease.Conn(), func(ctx context.Context, tx pgx.Tx) error {
		var err error

		summary.MoodEntries, err = moods.NewPostgresRepository(tx).DeleteByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("deleting mood entries: %w", err)
		}
		summary.MeditationCompletions, err = meditations.NewPostgresRepository(tx).DeleteByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("deleting meditation completions: %w", err)
		}
		summary.AssessmentResults, err = assessments.NewPostgresRepository(tx).DeleteByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("deleting assessment results: %w", err)
		}

		if err := users.NewPostgresRepository(tx).Delete(ctx, userID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrAccountNotFound
			}
			return fmt.Errorf("deleting user row: %w", err)
		}
		summary.Removed = true
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrAccountNotFound) {
			return DeletionSummary{}, common.ErrAccountNotFound
		}
		s.log.Error(ctx, "account cascade rolled back", "user_id", userID, "error", err)
		return DeletionSummary{}, fmt.Errorf("%w: %v", common.ErrTransactionFailure, err)
	}

	s.log.Info(ctx, "account deleted",
		"user_id", userID,
		"mood_entries", summary.MoodEntries,
		"meditation_completions", summary.MeditationCompletions,
		"assessment_results", summary.AssessmentResults,
	)
	return summary, nil
}
