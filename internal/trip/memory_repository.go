package trip

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu    sync.RWMutex
	trips map[string]*Trip
}

// NewInMemoryRepository creates a new in-memory trip repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		trips: make(map[string]*Trip),
	}
}

// GetByUserAndID retrieves a trip by owner and trip ID.
func (r *InMemoryRepository) GetByUserAndID(_ context.Context, userID, tripID string) (*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.trips[tripID]
	if !ok || t.UserID != userID {
		return nil, ErrTripNotFound
	}

	return t.clone(), nil
}

// ListUpcoming returns a user's current and future trips.
func (r *InMemoryRepository) ListUpcoming(_ context.Context, userID string, from time.Time) ([]*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	from = startOfDay(from)
	var trips []*Trip
	for _, t := range r.trips {
		if t.UserID != userID {
			continue
		}
		if t.IsRepeating || !startOfDay(t.TravelDate).Before(from) {
			trips = append(trips, t.clone())
		}
	}

	sort.Slice(trips, func(i, j int) bool {
		if !trips[i].TravelDate.Equal(trips[j].TravelDate) {
			return trips[i].TravelDate.Before(trips[j].TravelDate)
		}
		if trips[i].TravelTime != trips[j].TravelTime {
			return trips[i].TravelTime < trips[j].TravelTime
		}
		return trips[i].ID < trips[j].ID
	})

	return trips, nil
}

// ListCandidates returns the trips taken on date by anyone but excludeUserID.
func (r *InMemoryRepository) ListCandidates(_ context.Context, date time.Time, excludeUserID string) ([]*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var trips []*Trip
	for _, t := range r.trips {
		if t.UserID == excludeUserID {
			continue
		}
		if t.RunsOn(date) {
			trips = append(trips, t.clone())
		}
	}

	sort.Slice(trips, func(i, j int) bool {
		if trips[i].TravelTime != trips[j].TravelTime {
			return trips[i].TravelTime < trips[j].TravelTime
		}
		if !trips[i].CreatedAt.Equal(trips[j].CreatedAt) {
			return trips[i].CreatedAt.Before(trips[j].CreatedAt)
		}
		return trips[i].ID < trips[j].ID
	})

	return trips, nil
}

// Create creates a new trip.
func (r *InMemoryRepository) Create(_ context.Context, t *Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.trips[t.ID] = t.clone()
	return nil
}

// Update replaces an existing trip.
func (r *InMemoryRepository) Update(_ context.Context, t *Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[t.ID]; !ok {
		return ErrTripNotFound
	}

	r.trips[t.ID] = t.clone()
	return nil
}

// Delete deletes a trip by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.trips, id)
	return nil
}

// DeleteExpired removes non-repeating trips dated before the cutoff.
func (r *InMemoryRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before = startOfDay(before)
	var removed int64
	for id, t := range r.trips {
		if !t.IsRepeating && startOfDay(t.TravelDate).Before(before) {
			delete(r.trips, id)
			removed++
		}
	}
	return removed, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
