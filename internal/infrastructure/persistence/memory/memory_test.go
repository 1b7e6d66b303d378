package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/v1/internal/domain/recipe"
	"github.com/pantrychef/v1/internal/domain/units"
	"github.com/pantrychef/v1/test/testutils"
)

func TestCacheRepository_SetGetRoundTrip(t *testing.T) {
	cache := NewCacheRepository()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	exists, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, cache.Delete(ctx, "k"))
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCacheRepository_ExpiryHonorsClock(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cache := NewCacheRepository().WithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))

	now = now.Add(2 * time.Minute)

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestCacheRepository_IncrementCountsWithinWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cache := NewCacheRepository().WithClock(func() time.Time { return now })
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := cache.Increment(ctx, "counter", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// A fresh window restarts the count.
	now = now.Add(2 * time.Minute)
	got, err := cache.Increment(ctx, "counter", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func publishedRecipe(t *testing.T, name string) *recipe.Recipe {
	t.Helper()
	return testutils.NewRecipeBuilder().
		WithName(name).
		WithIngredient("flour", 500, units.UnitGram, "flour-1").
		Published().
		Build()
}

func TestRecipeRepository_SaveAndFind(t *testing.T) {
	repo := NewRecipeRepository()
	ctx := context.Background()
	rec := publishedRecipe(t, "Flatbread")

	require.NoError(t, repo.Save(ctx, rec))

	found, err := repo.FindByID(ctx, rec.ID())
	require.NoError(t, err)
	assert.Equal(t, "Flatbread", found.Name())

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
}

func TestRecipeRepository_FindPublishedPaginates(t *testing.T) {
	repo := NewRecipeRepository()
	ctx := context.Background()

	for _, name := range []string{"Recipe One", "Recipe Two", "Recipe Three"} {
		require.NoError(t, repo.Save(ctx, publishedRecipe(t, name)))
	}
	draft := testutils.NewRecipeBuilder().WithName("Unfinished Draft").Build()
	require.NoError(t, repo.Save(ctx, draft))

	page, total, err := repo.FindPublished(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)

	rest, total, err := repo.FindPublished(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, rest, 1)

	empty, total, err := repo.FindPublished(ctx, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, empty)
}

func TestRecipeRepository_DeleteIsIdempotent(t *testing.T) {
	repo := NewRecipeRepository()
	ctx := context.Background()
	rec := publishedRecipe(t, "Short Lived")

	require.NoError(t, repo.Save(ctx, rec))
	require.NoError(t, repo.Delete(ctx, rec.ID()))
	require.NoError(t, repo.Delete(ctx, rec.ID()))

	_, err := repo.FindByID(ctx, rec.ID())
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
}
