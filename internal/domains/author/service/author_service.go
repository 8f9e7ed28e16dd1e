package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/domains/author/model"
	"bookstore-catalog/internal/domains/author/repository"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, bool, error)
	List(ctx context.Context) ([]model.Author, error)
}

type authorService struct {
	repo repository.RepositoryInterface
}

func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.Create(ctx, strings.TrimSpace(req.Name), req.Bio)
	if err != nil {
		return nil, err
	}

	log.Info().Int64("author_id", a.ID).Str("name", a.Name).Msg("[AuthorService] Author created")
	return a, nil
}

func (s *authorService) GetByID(ctx context.Context, id int64) (*model.Author, bool, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context) ([]model.Author, error) {
	return s.repo.List(ctx)
}
