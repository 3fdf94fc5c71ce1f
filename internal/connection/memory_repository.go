package connection

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/metroconnect/metroconnect/internal/api/models"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	messages    map[string][]*Message
}

// NewInMemoryRepository creates a new in-memory connection repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		connections: make(map[string]*Connection),
		messages:    make(map[string][]*Message),
	}
}

// Get retrieves a connection by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.connections[id]
	if !ok {
		return nil, ErrConnectionNotFound
	}
	cpy := *c
	return &cpy, nil
}

// FindBetween retrieves the connection between two users in either direction.
func (r *InMemoryRepository) FindBetween(_ context.Context, userA, userB string) (*Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c := r.findBetween(userA, userB); c != nil {
		cpy := *c
		return &cpy, nil
	}
	return nil, ErrConnectionNotFound
}

func (r *InMemoryRepository) findBetween(userA, userB string) *Connection {
	for _, c := range r.connections {
		if c.Involves(userA) && c.Other(userA) == userB {
			return c
		}
	}
	return nil
}

// ListForUser returns every connection the user is a party of.
func (r *InMemoryRepository) ListForUser(_ context.Context, userID string) ([]*Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Connection
	for _, c := range r.connections {
		if c.Involves(userID) {
			cpy := *c
			out = append(out, &cpy)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListBetween returns the connections between userID and any of otherIDs.
func (r *InMemoryRepository) ListBetween(_ context.Context, userID string, otherIDs []string) ([]*Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Connection
	for _, c := range r.connections {
		if c.Involves(userID) && slices.Contains(otherIDs, c.Other(userID)) {
			cpy := *c
			out = append(out, &cpy)
		}
	}
	return out, nil
}

// Create stores a new connection.
func (r *InMemoryRepository) Create(_ context.Context, c *Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findBetween(c.RequesterID, c.RecipientID) != nil {
		return ErrConnectionExists
	}
	cpy := *c
	r.connections[c.ID] = &cpy
	return nil
}

// UpdateStatus changes a connection's status.
func (r *InMemoryRepository) UpdateStatus(_ context.Context, id string, status models.ConnectionStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.connections[id]
	if !ok {
		return ErrConnectionNotFound
	}
	c.Status = status
	c.UpdatedAt = updatedAt
	return nil
}

// CreateMessage stores a chat message.
func (r *InMemoryRepository) CreateMessage(_ context.Context, m *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.connections[m.ConnectionID]; !ok {
		return ErrConnectionNotFound
	}
	cpy := *m
	r.messages[m.ConnectionID] = append(r.messages[m.ConnectionID], &cpy)
	return nil
}

// ListMessages returns a connection's messages, oldest first.
func (r *InMemoryRepository) ListMessages(_ context.Context, connectionID string) ([]*Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.messages[connectionID]
	out := make([]*Message, 0, len(stored))
	for _, m := range stored {
		cpy := *m
		out = append(out, &cpy)
	}
	return out, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
