package connection

import (
	"context"
	"time"

	"github.com/metroconnect/metroconnect/internal/api/models"
)

// Repository defines the interface for connection and message persistence.
type Repository interface {
	// Get retrieves a connection by ID.
	Get(ctx context.Context, id string) (*Connection, error)

	// FindBetween retrieves the connection between two users in either
	// direction. Returns ErrConnectionNotFound if there is none.
	FindBetween(ctx context.Context, userA, userB string) (*Connection, error)

	// ListForUser returns every connection the user is a party of, most
	// recently updated first.
	ListForUser(ctx context.Context, userID string) ([]*Connection, error)

	// ListBetween returns the connections between userID and any of otherIDs.
	ListBetween(ctx context.Context, userID string, otherIDs []string) ([]*Connection, error)

	// Create stores a new connection.
	// Returns ErrConnectionExists if the pair is already connected in either direction.
	Create(ctx context.Context, c *Connection) error

	// UpdateStatus changes a connection's status.
	UpdateStatus(ctx context.Context, id string, status models.ConnectionStatus, updatedAt time.Time) error

	// CreateMessage stores a chat message.
	CreateMessage(ctx context.Context, m *Message) error

	// ListMessages returns a connection's messages, oldest first.
	ListMessages(ctx context.Context, connectionID string) ([]*Message, error)
}
