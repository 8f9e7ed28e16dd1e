package service

import (
	"context"

	"bookstore-catalog/internal/domains/book/model"
)

// ServiceInterface - Định nghĩa business logic methods
type ServiceInterface interface {
	GetBook(ctx context.Context, id int64) (*model.Book, bool, error)
	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	// CreateBook kiểm tra author + categories trước khi ghi, trả về book đã đọc lại
	CreateBook(ctx context.Context, book model.NewBook) (*model.Book, error)
	// UpdateBook trả về found=false nếu book không tồn tại
	UpdateBook(ctx context.Context, id int64, patch model.BookPatch) (*model.Book, bool, error)
	DeleteBook(ctx context.Context, id int64) (bool, error)
}
