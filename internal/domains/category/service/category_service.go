package service

import (
	"context"
	"strings"

	"bookstore-catalog/internal/domains/category"
	"bookstore-catalog/pkg/logger"
)

type categoryService struct {
	repo category.CategoryRepository
}

func NewCategoryService(repo category.CategoryRepository) category.CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req *category.CreateCategoryReq) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.Create(ctx, strings.TrimSpace(req.Name))
	if err != nil {
		return nil, err
	}

	logger.Info("category created", map[string]interface{}{
		"category_id": c.ID,
		"name":        c.Name,
	})
	return c, nil
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*category.Category, bool, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *categoryService) List(ctx context.Context) ([]category.Category, error) {
	return s.repo.FindAll(ctx)
}
