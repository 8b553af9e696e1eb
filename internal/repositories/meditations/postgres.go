package meditations

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/calmouapp/calmou/internal/common"
	"github.com/calmouapp/calmou/internal/dbx"
	"github.com/calmouapp/calmou/internal/models"
)

const meditationColumns = "id, title, description, duration_minutes, audio_url, type, category, cover_image"

type PostgresRepository struct {
	db dbx.Querier
}

func NewPostgresRepository(db dbx.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, category string) ([]models.Meditation, error) {
	query := fmt.Sprintf(
		`SELECT %s
		 FROM meditations
		 WHERE $1 = '' OR category = $1
		 ORDER BY id
		 `, meditationColumns)

	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []models.Meditation
	for rows.Next() {
		m, err := scanMeditation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Meditation, error) {
	query := fmt.Sprintf(
		`SELECT %s
		 FROM meditations
		 WHERE id = $1
		 `, meditationColumns)

	m, err := scanMeditation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) InsertCompletion(ctx context.Context, c *models.MeditationCompletion) (*models.MeditationCompletion, error) {
	query :=
		`INSERT INTO meditation_completions (user_id, meditation_id, actual_minutes)
		 VALUES ($1, $2, $3)
		 RETURNING id, completed_at
		 `

	err := r.db.QueryRow(ctx, query,
		c.UserID, c.MeditationID, c.ActualMinutes,
	).Scan(&c.ID, &c.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) HistoryByUser(ctx context.Context, userID int64, limit int) ([]HistoryItem, error) {
	query :=
		`SELECT c.id, c.meditation_id, m.title, m.category, c.actual_minutes, c.completed_at
		 FROM meditation_completions c
		 JOIN meditations m ON m.id = c.meditation_id
		 WHERE c.user_id = $1
		 ORDER BY c.completed_at DESC
		 LIMIT $2
		 `

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var items []HistoryItem
	for rows.Next() {
		var h HistoryItem
		if err := rows.Scan(&h.ID, &h.MeditationID, &h.Title, &h.Category, &h.ActualMinutes, &h.CompletedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) Stats(ctx context.Context, userID int64) (*models.MeditationStats, error) {
	stats := &models.MeditationStats{Categories: make(map[string]int64)}

	query :=
		`SELECT COUNT(*), COALESCE(SUM(actual_minutes), 0)
		 FROM meditation_completions
		 WHERE user_id = $1
		 `

	err := r.db.QueryRow(ctx, query, userID).Scan(&stats.TotalSessions, &stats.TotalMinutes)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query =
		`SELECT m.category, COUNT(*)
		 FROM meditation_completions c
		 JOIN meditations m ON m.id = c.meditation_id
		 WHERE c.user_id = $1
		 GROUP BY m.category
		 `

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		stats.Categories[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return stats, nil
}

func (r *PostgresRepository) DeleteCompletion(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM meditation_completions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM meditation_completions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanMeditation(row pgx.Row) (*models.Meditation, error) {
	var m models.Meditation
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.DurationMinutes,
		&m.AudioURL, &m.Type, &m.Category, &m.CoverImage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &m, nil
}
