package trip

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tripColumns = `
	id, user_id, start_station, end_station,
	travel_date, to_char(travel_time, 'HH24:MI'),
	is_repeating, repeat_days,
	created_at, updated_at
`

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL trip repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByUserAndID retrieves a trip by owner and trip ID.
func (r *PostgresRepository) GetByUserAndID(ctx context.Context, userID, tripID string) (*Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 AND user_id = $2`

	t, err := scanTrip(r.pool.QueryRow(ctx, query, tripID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListUpcoming returns a user's current and future trips.
func (r *PostgresRepository) ListUpcoming(ctx context.Context, userID string, from time.Time) ([]*Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = $1 AND (travel_date >= $2 OR is_repeating)
		ORDER BY travel_date, travel_time, id
	`
	return r.queryTrips(ctx, query, userID, startOfDay(from))
}

// ListCandidates returns the trips taken on date by anyone but excludeUserID.
func (r *PostgresRepository) ListCandidates(ctx context.Context, date time.Time, excludeUserID string) ([]*Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id <> $3
		  AND (travel_date = $1 OR (is_repeating AND $2::int = ANY(repeat_days)))
		ORDER BY travel_time, created_at, id
	`
	return r.queryTrips(ctx, query, startOfDay(date), int(date.Weekday()), excludeUserID)
}

func (r *PostgresRepository) queryTrips(ctx context.Context, query string, args ...any) ([]*Trip, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trips, nil
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var t Trip
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.StartStation,
		&t.EndStation,
		&t.TravelDate,
		&t.TravelTime,
		&t.IsRepeating,
		&t.RepeatDays,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create creates a new trip.
func (r *PostgresRepository) Create(ctx context.Context, t *Trip) error {
	query := `
		INSERT INTO trips (
			id, user_id, start_station, end_station,
			travel_date, travel_time, is_repeating, repeat_days,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6::text::time, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.UserID,
		t.StartStation,
		t.EndStation,
		startOfDay(t.TravelDate),
		t.TravelTime,
		t.IsRepeating,
		repeatDaysOrEmpty(t.RepeatDays),
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

// Update replaces an existing trip.
func (r *PostgresRepository) Update(ctx context.Context, t *Trip) error {
	query := `
		UPDATE trips SET
			start_station = $2,
			end_station = $3,
			travel_date = $4,
			travel_time = $5::text::time,
			is_repeating = $6,
			repeat_days = $7,
			updated_at = $8
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		t.ID,
		t.StartStation,
		t.EndStation,
		startOfDay(t.TravelDate),
		t.TravelTime,
		t.IsRepeating,
		repeatDaysOrEmpty(t.RepeatDays),
		t.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrTripNotFound
	}

	return nil
}

// Delete deletes a trip by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	return err
}

// DeleteExpired removes non-repeating trips dated before the cutoff.
func (r *PostgresRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM trips WHERE NOT is_repeating AND travel_date < $1`,
		startOfDay(before),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// repeat_days is NOT NULL; a nil slice would be sent as NULL.
func repeatDaysOrEmpty(days []int) []int {
	if days == nil {
		return []int{}
	}
	return days
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
