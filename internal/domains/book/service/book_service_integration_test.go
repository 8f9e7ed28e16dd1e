package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/book/repository"
	"bookstore-catalog/internal/testutil"
)

func TestCreateBook_UnknownAuthorLeavesNoRows(t *testing.T) {
	pg := testutil.NewPostgres(t)
	category := testutil.SeedCategory(t, pg.Pool, "Fantasy")
	svc := NewService(repository.NewPostgresRepository(pg.Pool))

	_, err := svc.CreateBook(context.Background(), sampleBook(12345, category))
	require.ErrorIs(t, err, model.ErrInvalidReference)

	assert.Zero(t, testutil.Count(t, pg.Pool, "books"))
	assert.Zero(t, testutil.Count(t, pg.Pool, "book_categories"))
}

func TestCreateBook_RoundTripsThroughStorage(t *testing.T) {
	pg := testutil.NewPostgres(t)
	author := testutil.SeedAuthor(t, pg.Pool, "Le Guin")
	poetry := testutil.SeedCategory(t, pg.Pool, "Poetry")
	fantasy := testutil.SeedCategory(t, pg.Pool, "Fantasy")
	svc := NewService(repository.NewPostgresRepository(pg.Pool))

	b, err := svc.CreateBook(context.Background(), sampleBook(author, fantasy, poetry, fantasy))
	require.NoError(t, err)

	assert.Equal(t, "Le Guin", b.AuthorName)
	assert.Equal(t, []model.CategoryLite{{ID: fantasy, Name: "Fantasy"}, {ID: poetry, Name: "Poetry"}}, b.Categories)
	assert.Equal(t, 2, testutil.Count(t, pg.Pool, "book_categories"))
}
