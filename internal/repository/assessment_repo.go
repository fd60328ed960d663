package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"finmitra-backend/internal/models"
)

type AssessmentRepo struct {
	pool *pgxpool.Pool
}

func NewAssessmentRepo(pool *pgxpool.Pool) *AssessmentRepo {
	return &AssessmentRepo{pool: pool}
}

func (r *AssessmentRepo) Create(ctx context.Context, a *models.Assessment) error {
	query := `INSERT INTO assessments (id, session_id, kind, score, risk, verdict, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.SessionID, a.Kind, a.Score, a.Risk, a.Verdict, a.Payload, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

func (r *AssessmentRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]*models.Assessment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := `SELECT id, session_id, kind, score, risk, verdict, payload, created_at
		FROM assessments WHERE session_id = $1
		ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []*models.Assessment
	for rows.Next() {
		a := &models.Assessment{}
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Kind, &a.Score, &a.Risk, &a.Verdict, &a.Payload, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
