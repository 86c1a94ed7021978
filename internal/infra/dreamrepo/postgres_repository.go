package dreamrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunara/astro-api/internal/domain/dream"
)

// PostgresRepository persists dream journal entries in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Save inserts a dream entry.
func (r *PostgresRepository) Save(ctx context.Context, d dream.Dream) error {
	analysis, err := json.Marshal(d.Analysis)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO dreams (id, user_id, dream_text, analysis, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, d.ID, d.UserID, d.DreamText, analysis, d.CreatedAt)
	return err
}

// ListByUser returns the newest entries for a user.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]dream.Dream, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, dream_text, analysis, created_at
		FROM dreams
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dream.Dream
	for rows.Next() {
		var (
			d        dream.Dream
			id       uuid.UUID
			analysis []byte
			created  time.Time
		)
		if err := rows.Scan(&id, &d.UserID, &d.DreamText, &analysis, &created); err != nil {
			return nil, err
		}
		d.ID = id
		d.CreatedAt = created.UTC()
		if len(analysis) > 0 {
			if err := json.Unmarshal(analysis, &d.Analysis); err != nil {
				return nil, err
			}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

var _ dream.Repository = (*PostgresRepository)(nil)
