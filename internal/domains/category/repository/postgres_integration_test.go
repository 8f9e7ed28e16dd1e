package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/category"
	"bookstore-catalog/internal/testutil"
)

func TestCategoryRepository(t *testing.T) {
	pg := testutil.NewPostgres(t)
	mem := testutil.NewMemoryCache()
	repo := NewPostgresRepository(pg.Pool, mem, time.Minute)
	ctx := context.Background()

	for _, name := range []string{"Science Fiction", "Fantasy", "Classics"} {
		_, err := repo.Create(ctx, name)
		require.NoError(t, err)
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Classics", "Fantasy", "Science Fiction"}, names)

	poetry, err := repo.Create(ctx, "Poetry")
	require.NoError(t, err)
	assert.False(t, mem.Has(listKey))

	got, found, err := repo.FindByID(ctx, poetry.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, &category.Category{ID: poetry.ID, Name: "Poetry"}, got)

	_, found, err = repo.FindByID(ctx, poetry.ID+100)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCategoryRepository_EmptyList(t *testing.T) {
	pg := testutil.NewPostgres(t)
	repo := NewPostgresRepository(pg.Pool, nil, time.Minute)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}
