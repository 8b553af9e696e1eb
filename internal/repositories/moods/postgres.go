package moods

import (
	"context"
	"fmt"

	"github.com/calmouapp/calmou/internal/dbx"
	"github.com/calmouapp/calmou/internal/models"
)

type PostgresRepository struct {
	db dbx.Querier
}

func NewPostgresRepository(db dbx.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	query :=
		`INSERT INTO mood_entries (user_id, level, main_feeling, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, recorded_at
		 `

	err := r.db.QueryRow(ctx, query,
		entry.UserID, entry.Level, entry.MainFeeling, entry.Notes,
	).Scan(&entry.ID, &entry.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.MoodEntry, error) {
	query :=
		`SELECT id, user_id, level, main_feeling, notes, recorded_at
		 FROM mood_entries
		 WHERE user_id = $1
		 ORDER BY recorded_at DESC
		 LIMIT $2
		 `

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		var e models.MoodEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Level, &e.MainFeeling, &e.Notes, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entries, nil
}

func (r *PostgresRepository) WeeklyReport(ctx context.Context, userID int64) ([]DailyMood, error) {
	query :=
		`SELECT date_trunc('day', recorded_at) AS day, AVG(level), COUNT(*)
		 FROM mood_entries
		 WHERE user_id = $1 AND recorded_at >= now() - interval '7 days'
		 GROUP BY day
		 ORDER BY day
		 `

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var report []DailyMood
	for rows.Next() {
		var d DailyMood
		if err := rows.Scan(&d.Day, &d.Average, &d.Entries); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		report = append(report, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return report, nil
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM mood_entries WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return tag.RowsAffected(), nil
}
