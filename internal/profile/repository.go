package profile

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// Repository errors.
var (
	ErrProfileNotFound = errors.New("profile not found")
)

// Repository defines the interface for profile persistence.
type Repository interface {
	// Get retrieves a profile by user ID.
	Get(ctx context.Context, id string) (*Profile, error)

	// GetMany retrieves the profiles that exist among ids. Missing IDs are skipped.
	GetMany(ctx context.Context, ids []string) ([]*Profile, error)

	// SearchByName returns profiles whose name contains query, ignoring case,
	// excluding excludeID, ordered by name.
	SearchByName(ctx context.Context, query, excludeID string, limit int) ([]*Profile, error)

	// Save creates or replaces a profile.
	Save(ctx context.Context, p *Profile) error
}

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewInMemoryRepository creates a new in-memory profile repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		profiles: make(map[string]*Profile),
	}
}

// Get retrieves a profile by user ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return copyProfile(p), nil
}

// GetMany retrieves the profiles that exist among ids.
func (r *InMemoryRepository) GetMany(_ context.Context, ids []string) ([]*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			out = append(out, copyProfile(p))
		}
	}
	return out, nil
}

// SearchByName returns profiles whose name contains query, ignoring case.
func (r *InMemoryRepository) SearchByName(_ context.Context, query, excludeID string, limit int) ([]*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(query)
	var out []*Profile
	for _, p := range r.profiles {
		if p.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, copyProfile(p))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Save creates or replaces a profile.
func (r *InMemoryRepository) Save(_ context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[p.ID] = copyProfile(p)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
