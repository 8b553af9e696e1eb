package assessments

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

func (r *PostgresRepository) Insert(ctx context.Context, res *models.AssessmentResult) (*models.AssessmentResult, error) {
	query :=
		`INSERT INTO assessment_results (user_id, type, answers, score, result_text)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, taken_at
		 `

	err := r.db.QueryRow(ctx, query,
		res.UserID, res.Type, res.Answers, res.Score, res.ResultText,
	).Scan(&res.ID, &res.TakenAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.AssessmentResult, error) {
	query :=
		`SELECT id, user_id, type, answers, score, result_text, taken_at
		 FROM assessment_results
		 WHERE user_id = $1
		 ORDER BY taken_at DESC
		 LIMIT $2
		 `

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var results []models.AssessmentResult
	for rows.Next() {
		var a models.AssessmentResult
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Answers, &a.Score, &a.ResultText, &a.TakenAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return results, nil
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM assessment_results WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return tag.RowsAffected(), nil
}
