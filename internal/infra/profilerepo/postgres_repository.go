package profilerepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunara/astro-api/internal/domain/profile"
)

// PostgresRepository persists profiles in Postgres, one row per user.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByUserID fetches the profile for a user.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (profile.Profile, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, birth_date, birth_time, birth_latitude, birth_longitude,
		       sun_sign, moon_sign, ascendant_sign, astro_data, updated_at
		FROM profiles
		WHERE user_id = $1
		LIMIT 1
	`, userID)
	if err != nil {
		return profile.Profile{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return profile.Profile{}, false, rows.Err()
	}
	p, err := scanProfile(rows)
	if err != nil {
		return profile.Profile{}, false, err
	}
	return p, true, rows.Err()
}

// Upsert writes the birth data fields, creating the row if needed.
func (r *PostgresRepository) Upsert(ctx context.Context, p profile.Profile) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (user_id, birth_date, birth_time, birth_latitude, birth_longitude, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (user_id) DO UPDATE SET
			birth_date = EXCLUDED.birth_date,
			birth_time = EXCLUDED.birth_time,
			birth_latitude = EXCLUDED.birth_latitude,
			birth_longitude = EXCLUDED.birth_longitude,
			updated_at = now()
	`, p.UserID, p.BirthDate, nullString(p.BirthTime), p.BirthLatitude, p.BirthLongitude)
	return err
}

// SaveChart overwrites the computed signs and chart payload.
func (r *PostgresRepository) SaveChart(ctx context.Context, userID int64, update profile.ChartUpdate) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE profiles SET
			sun_sign = $2,
			moon_sign = $3,
			ascendant_sign = $4,
			astro_data = $5,
			updated_at = now()
		WHERE user_id = $1
	`, userID, update.SunSign, update.MoonSign, update.AscendantSign, []byte(update.AstroData))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (profile.Profile, error) {
	var (
		p         profile.Profile
		birthTime *string
		sun       *string
		moon      *string
		ascendant *string
		astroData []byte
		updated   time.Time
	)
	if err := row.Scan(&p.UserID, &p.BirthDate, &birthTime, &p.BirthLatitude, &p.BirthLongitude,
		&sun, &moon, &ascendant, &astroData, &updated); err != nil {
		return profile.Profile{}, err
	}
	if birthTime != nil {
		p.BirthTime = *birthTime
	}
	if sun != nil {
		p.SunSign = *sun
	}
	if moon != nil {
		p.MoonSign = *moon
	}
	if ascendant != nil {
		p.AscendantSign = *ascendant
	}
	p.AstroData = astroData
	p.UpdatedAt = updated.UTC()
	return p, nil
}

func nullString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

var _ profile.Repository = (*PostgresRepository)(nil)
