package trip_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metroconnect/metroconnect/internal/database"
	"github.com/metroconnect/metroconnect/internal/testutil"
	"github.com/metroconnect/metroconnect/internal/trip"
)

func newPostgresRepo(t *testing.T) *trip.PostgresRepository {
	t.Helper()

	pool := testutil.NewPool(t)
	require.NoError(t, database.Migrate(context.Background(), pool, zerolog.Nop()))
	testutil.Truncate(t, pool, "trips")

	return trip.NewPostgresRepository(pool)
}

func TestPostgresRepository_RoundTrip(t *testing.T) {
	repo := newPostgresRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	in := &trip.Trip{
		ID:           "trp_pg_roundtrip",
		UserID:       "alice",
		StartStation: "Kashmere Gate",
		EndStation:   "Hauz Khas",
		TravelDate:   time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		TravelTime:   "09:00",
		IsRepeating:  true,
		RepeatDays:   []int{1, 3, 5},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(ctx, in))

	got, err := repo.GetByUserAndID(ctx, "alice", in.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.TravelTime)
	assert.Equal(t, []int{1, 3, 5}, got.RepeatDays)
	assert.True(t, got.TravelDate.Equal(in.TravelDate))

	_, err = repo.GetByUserAndID(ctx, "bob", in.ID)
	assert.ErrorIs(t, err, trip.ErrTripNotFound)

	got.TravelTime = "18:45"
	got.RepeatDays = nil
	got.IsRepeating = false
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByUserAndID(ctx, "alice", in.ID)
	require.NoError(t, err)
	assert.Equal(t, "18:45", got.TravelTime)
	assert.Empty(t, got.RepeatDays)

	require.NoError(t, repo.Delete(ctx, in.ID))
	_, err = repo.GetByUserAndID(ctx, "alice", in.ID)
	assert.ErrorIs(t, err, trip.ErrTripNotFound)
}

func TestPostgresRepository_ListCandidates(t *testing.T) {
	repo := newPostgresRepo(t)
	ctx := context.Background()
	friday := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	seed := []*trip.Trip{
		{ID: "trp_same_day", UserID: "bob", TravelDate: friday, TravelTime: "09:10"},
		{ID: "trp_weekly", UserID: "chris", TravelDate: friday.AddDate(0, 0, -7), TravelTime: "08:50", IsRepeating: true, RepeatDays: []int{5}},
		{ID: "trp_other_day", UserID: "bob", TravelDate: friday.AddDate(0, 0, 1), TravelTime: "09:00"},
		{ID: "trp_own", UserID: "alice", TravelDate: friday, TravelTime: "09:00"},
	}
	for _, tr := range seed {
		tr.StartStation, tr.EndStation = "Rajiv Chowk", "Hauz Khas"
		tr.CreatedAt, tr.UpdatedAt = friday, friday
		require.NoError(t, repo.Create(ctx, tr))
	}

	got, err := repo.ListCandidates(ctx, friday, "alice")
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, tr := range got {
		ids = append(ids, tr.ID)
	}
	assert.Equal(t, []string{"trp_weekly", "trp_same_day"}, ids)
}

func TestPostgresRepository_DeleteExpired(t *testing.T) {
	repo := newPostgresRepo(t)
	ctx := context.Background()
	today := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	for _, tr := range []*trip.Trip{
		{ID: "trp_old", UserID: "bob", TravelDate: today.AddDate(0, 0, -3)},
		{ID: "trp_old_repeating", UserID: "bob", TravelDate: today.AddDate(0, 0, -3), IsRepeating: true, RepeatDays: []int{1}},
		{ID: "trp_today", UserID: "bob", TravelDate: today},
	} {
		tr.StartStation, tr.EndStation, tr.TravelTime = "Rajiv Chowk", "Hauz Khas", "09:00"
		tr.CreatedAt, tr.UpdatedAt = today, today
		require.NoError(t, repo.Create(ctx, tr))
	}

	n, err := repo.DeleteExpired(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	upcoming, err := repo.ListUpcoming(ctx, "bob", today)
	require.NoError(t, err)
	assert.Len(t, upcoming, 2)
}
