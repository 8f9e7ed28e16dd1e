package repository

import (
	"context"

	"bookstore-catalog/internal/domains/author/model"
)

// RepositoryInterface - không có cross-entity validation, chỉ đọc/ghi bảng authors
type RepositoryInterface interface {
	Create(ctx context.Context, name string, bio *string) (*model.Author, error)
	GetByID(ctx context.Context, id int64) (*model.Author, bool, error)
	// List trả về toàn bộ authors theo name
	List(ctx context.Context) ([]model.Author, error)
}
