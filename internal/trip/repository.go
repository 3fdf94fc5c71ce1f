package trip

import (
	"context"
	"time"
)

// Repository defines the interface for trip data persistence.
type Repository interface {
	// GetByUserAndID retrieves a trip by owner and trip ID.
	// Returns ErrTripNotFound if the trip doesn't exist or belongs to someone else.
	GetByUserAndID(ctx context.Context, userID, tripID string) (*Trip, error)

	// ListUpcoming returns a user's trips dated on or after from, plus their
	// repeating trips, ordered by date then time.
	ListUpcoming(ctx context.Context, userID string, from time.Time) ([]*Trip, error)

	// ListCandidates returns every trip taken on date that is not owned by
	// excludeUserID: trips dated that day and repeating trips whose
	// repeat days include the date's weekday.
	ListCandidates(ctx context.Context, date time.Time, excludeUserID string) ([]*Trip, error)

	// Create creates a new trip.
	Create(ctx context.Context, trip *Trip) error

	// Update replaces an existing trip.
	Update(ctx context.Context, trip *Trip) error

	// Delete deletes a trip by ID.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes non-repeating trips dated before the cutoff and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
