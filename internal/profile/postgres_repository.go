package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `
	id, name, age, gender,
	profile_pic_url, bio, instagram_handle, twitter_handle, phone_number,
	created_at, updated_at
`

// likeEscaper escapes LIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL profile repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a profile by user ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

// GetMany retrieves the profiles that exist among ids.
func (r *PostgresRepository) GetMany(ctx context.Context, ids []string) ([]*Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ANY($1)`
	return r.queryProfiles(ctx, query, ids)
}

// SearchByName returns profiles whose name contains query, ignoring case.
func (r *PostgresRepository) SearchByName(ctx context.Context, query, excludeID string, limit int) ([]*Profile, error) {
	sql := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE id <> $1 AND name ILIKE '%' || $2 || '%'
		ORDER BY name, id
		LIMIT $3
	`
	return r.queryProfiles(ctx, sql, excludeID, likeEscaper.Replace(query), limit)
}

func (r *PostgresRepository) queryProfiles(ctx context.Context, query string, args ...any) ([]*Profile, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Age,
		&p.Gender,
		&p.ProfilePicURL,
		&p.Bio,
		&p.InstagramHandle,
		&p.TwitterHandle,
		&p.PhoneNumber,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save creates or replaces a profile.
func (r *PostgresRepository) Save(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (
			id, name, age, gender,
			profile_pic_url, bio, instagram_handle, twitter_handle, phone_number,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			profile_pic_url = EXCLUDED.profile_pic_url,
			bio = EXCLUDED.bio,
			instagram_handle = EXCLUDED.instagram_handle,
			twitter_handle = EXCLUDED.twitter_handle,
			phone_number = EXCLUDED.phone_number,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Age,
		p.Gender,
		p.ProfilePicURL,
		p.Bio,
		p.InstagramHandle,
		p.TwitterHandle,
		p.PhoneNumber,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
