package profile_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metroconnect/metroconnect/internal/database"
	"github.com/metroconnect/metroconnect/internal/profile"
	"github.com/metroconnect/metroconnect/internal/testutil"
)

func TestPostgresRepository_SaveAndSearch(t *testing.T) {
	pool := testutil.NewPool(t)
	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))
	testutil.Truncate(t, pool, "profiles")

	repo := profile.NewPostgresRepository(pool)
	now := time.Now().UTC()
	phone := "+919800000000"

	for _, p := range []*profile.Profile{
		{ID: "alice", Name: "Alice Sharma", Age: 27, Gender: "Female", PhoneNumber: &phone},
		{ID: "bob", Name: "Bob Mehta", Age: 31, Gender: "Male"},
		{ID: "priya", Name: "Priya 100%", Age: 24, Gender: "Female"},
	} {
		p.CreatedAt, p.UpdatedAt = now, now
		require.NoError(t, repo.Save(ctx, p))
	}

	got, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got.PhoneNumber)
	assert.Equal(t, phone, *got.PhoneNumber)

	_, err = repo.Get(ctx, "nobody")
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)

	got.Name = "Alice S."
	require.NoError(t, repo.Save(ctx, got))
	got, err = repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice S.", got.Name)

	matches, err := repo.SearchByName(ctx, "ME", "alice", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "bob", matches[0].ID)

	// Wildcards in the query match literally.
	matches, err = repo.SearchByName(ctx, "0%", "alice", 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "priya", matches[0].ID)

	many, err := repo.GetMany(ctx, []string{"bob", "priya", "ghost"})
	require.NoError(t, err)
	assert.Len(t, many, 2)
}
