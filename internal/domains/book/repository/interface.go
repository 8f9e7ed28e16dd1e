package repository

import (
	"context"

	"bookstore-catalog/internal/domains/book/model"
)

// RepositoryInterface - Định nghĩa data access methods cho books
// Absence (không tìm thấy) được trả về qua bool, không phải error
type RepositoryInterface interface {
	GetBook(ctx context.Context, id int64) (*model.Book, bool, error)
	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error)

	// CreateBook insert book + associations trong một transaction
	CreateBook(ctx context.Context, book model.NewBook) (int64, error)
	// UpdateBook trả về false nếu book không tồn tại
	UpdateBook(ctx context.Context, id int64, patch model.BookPatch) (bool, error)
	// DeleteBook trả về false nếu không có row nào bị xóa
	DeleteBook(ctx context.Context, id int64) (bool, error)

	ValidateAuthor(ctx context.Context, authorID int64) (bool, error)
	// MissingCategories trả về các id không tồn tại trong categories
	MissingCategories(ctx context.Context, categoryIDs []int64) ([]int64, error)
}
