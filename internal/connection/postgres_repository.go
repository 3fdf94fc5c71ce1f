package connection

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/metroconnect/metroconnect/internal/api/models"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

const connectionColumns = `id, requester_id, recipient_id, status, created_at, updated_at`

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL connection repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a connection by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Connection, error) {
	query := `SELECT ` + connectionColumns + ` FROM connections WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// FindBetween retrieves the connection between two users in either direction.
func (r *PostgresRepository) FindBetween(ctx context.Context, userA, userB string) (*Connection, error) {
	query := `
		SELECT ` + connectionColumns + `
		FROM connections
		WHERE (requester_id = $1 AND recipient_id = $2)
		   OR (requester_id = $2 AND recipient_id = $1)
		LIMIT 1
	`
	return r.getOne(ctx, query, userA, userB)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*Connection, error) {
	c, err := scanConnection(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConnectionNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListForUser returns every connection the user is a party of.
func (r *PostgresRepository) ListForUser(ctx context.Context, userID string) ([]*Connection, error) {
	query := `
		SELECT ` + connectionColumns + `
		FROM connections
		WHERE requester_id = $1 OR recipient_id = $1
		ORDER BY updated_at DESC, id
	`
	return r.queryConnections(ctx, query, userID)
}

// ListBetween returns the connections between userID and any of otherIDs.
func (r *PostgresRepository) ListBetween(ctx context.Context, userID string, otherIDs []string) ([]*Connection, error) {
	if len(otherIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + connectionColumns + `
		FROM connections
		WHERE (requester_id = $1 AND recipient_id = ANY($2))
		   OR (recipient_id = $1 AND requester_id = ANY($2))
	`
	return r.queryConnections(ctx, query, userID, otherIDs)
}

func (r *PostgresRepository) queryConnections(ctx context.Context, query string, args ...any) ([]*Connection, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Connection
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanConnection(row pgx.Row) (*Connection, error) {
	var c Connection
	err := row.Scan(
		&c.ID,
		&c.RequesterID,
		&c.RecipientID,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create stores a new connection. The connections_pair_key index rejects a
// second row for the same pair in either direction.
func (r *PostgresRepository) Create(ctx context.Context, c *Connection) error {
	query := `
		INSERT INTO connections (id, requester_id, recipient_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.RequesterID,
		c.RecipientID,
		string(c.Status),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrConnectionExists
		}
		return err
	}
	return nil
}

// UpdateStatus changes a connection's status.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.ConnectionStatus, updatedAt time.Time) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE connections SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), updatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrConnectionNotFound
	}
	return nil
}

// CreateMessage stores a chat message.
func (r *PostgresRepository) CreateMessage(ctx context.Context, m *Message) error {
	query := `
		INSERT INTO messages (id, connection_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query, m.ID, m.ConnectionID, m.SenderID, m.Content, m.CreatedAt)
	return err
}

// ListMessages returns a connection's messages, oldest first.
func (r *PostgresRepository) ListMessages(ctx context.Context, connectionID string) ([]*Message, error) {
	query := `
		SELECT id, connection_id, sender_id, content, created_at
		FROM messages
		WHERE connection_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, connectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConnectionID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
