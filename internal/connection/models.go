// Package connection manages connection requests between commuters and the
// chat history of accepted connections.
package connection

import (
	"errors"
	"time"

	"github.com/metroconnect/metroconnect/internal/api/models"
)

// Repository errors.
var (
	ErrConnectionNotFound = errors.New("connection not found")
	ErrConnectionExists   = errors.New("connection already exists")
)

// Connection is a request from one user to another.
type Connection struct {
	ID          string
	RequesterID string
	RecipientID string
	Status      models.ConnectionStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Involves reports whether userID is either party of the connection.
func (c *Connection) Involves(userID string) bool {
	return c.RequesterID == userID || c.RecipientID == userID
}

// Other returns the party that is not userID.
func (c *Connection) Other(userID string) string {
	if c.RequesterID == userID {
		return c.RecipientID
	}
	return c.RequesterID
}

// Message is a chat message sent over an accepted connection.
type Message struct {
	ID           string
	ConnectionID string
	SenderID     string
	Content      string
	CreatedAt    time.Time
}
