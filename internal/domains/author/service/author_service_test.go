package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/author/model"
)

type stubRepo struct {
	created []string
}

func (s *stubRepo) Create(_ context.Context, name string, bio *string) (*model.Author, error) {
	s.created = append(s.created, name)
	return &model.Author{ID: int64(len(s.created)), Name: name, Bio: bio}, nil
}

func (s *stubRepo) GetByID(context.Context, int64) (*model.Author, bool, error) {
	return nil, false, nil
}

func (s *stubRepo) List(context.Context) ([]model.Author, error) { return []model.Author{}, nil }

func TestAuthorService_Create(t *testing.T) {
	repo := &stubRepo{}
	svc := NewAuthorService(repo)

	a, err := svc.Create(context.Background(), model.CreateAuthorRequest{Name: "  Octavia Butler "})
	require.NoError(t, err)
	assert.Equal(t, "Octavia Butler", a.Name)

	_, err = svc.Create(context.Background(), model.CreateAuthorRequest{Name: "   "})
	assert.Error(t, err)
	_, err = svc.Create(context.Background(), model.CreateAuthorRequest{})
	assert.Error(t, err)

	assert.Equal(t, []string{"Octavia Butler"}, repo.created)
}
