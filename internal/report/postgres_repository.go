package report

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL report repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// HasPending reports whether a pending report exists for the pair.
func (r *PostgresRepository) HasPending(ctx context.Context, reporterID, reportedID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reports
			WHERE reporter_id = $1 AND reported_user_id = $2 AND status = $3
		)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, reporterID, reportedID, StatusPending).Scan(&exists)
	return exists, err
}

// Create stores a new report.
func (r *PostgresRepository) Create(ctx context.Context, rep *Report) error {
	query := `
		INSERT INTO reports (id, reporter_id, reported_user_id, reason, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		rep.ID,
		rep.ReporterID,
		rep.ReportedUserID,
		string(rep.Reason),
		rep.Description,
		rep.Status,
		rep.CreatedAt,
	)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
