package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/internal/domains/book/repository"
	"bookstore-catalog/internal/shared"
)

// BookService - Implements ServiceInterface
type BookService struct {
	repo repository.RepositoryInterface
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &BookService{repo: repo}
}

// ============================================
// READ
// ============================================

func (s *BookService) GetBook(ctx context.Context, id int64) (*model.Book, bool, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *BookService) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	return s.repo.ListBooks(ctx, filter.WithDefaults())
}

// ============================================
// WRITE
// ============================================

// CreateBook
// 1. Dedupe category ids (giữ thứ tự xuất hiện đầu tiên)
// 2. Validate author + categories, chưa ghi gì nếu có id không tồn tại
// 3. Insert trong transaction
// 4. Đọc lại để có author name + category names
func (s *BookService) CreateBook(ctx context.Context, book model.NewBook) (*model.Book, error) {
	book.CategoryIDs = model.DedupeIDs(book.CategoryIDs)

	if err := s.validateReferences(ctx, &book.AuthorID, book.CategoryIDs); err != nil {
		return nil, err
	}

	id, err := s.repo.CreateBook(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	log.Info().Int64("book_id", id).Int("categories", len(book.CategoryIDs)).Msg("[BookService] Book created")

	created, found, err := s.repo.GetBook(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload book %d: %w", id, err)
	}
	if !found {
		// bị xóa bởi request khác ngay sau khi commit
		return nil, fmt.Errorf("reload book %d: %w", id, model.ErrBookNotFound)
	}
	return created, nil
}

// UpdateBook chỉ validate những reference có trong patch
func (s *BookService) UpdateBook(ctx context.Context, id int64, patch model.BookPatch) (*model.Book, bool, error) {
	var authorID *int64
	if v, ok := patch.AuthorID.Get(); ok {
		authorID = &v
	}

	var categoryIDs []int64
	if patch.ReplacesCategories() {
		v, _ := patch.CategoryIDs.Get()
		categoryIDs = model.DedupeIDs(v)
		if categoryIDs == nil {
			categoryIDs = []int64{}
		}
		patch.CategoryIDs = shared.Some(categoryIDs)
	}

	if err := s.validateReferences(ctx, authorID, categoryIDs); err != nil {
		return nil, false, err
	}

	found, err := s.repo.UpdateBook(ctx, id, patch)
	if err != nil {
		return nil, false, fmt.Errorf("update book %d: %w", id, err)
	}
	if !found {
		return nil, false, nil
	}

	return s.repo.GetBook(ctx, id)
}

func (s *BookService) DeleteBook(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.DeleteBook(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		log.Info().Int64("book_id", id).Msg("[BookService] Book deleted")
	}
	return deleted, nil
}

// validateReferences - author trước, categories sau; cả hai đọc thẳng từ DB
func (s *BookService) validateReferences(ctx context.Context, authorID *int64, categoryIDs []int64) error {
	if authorID != nil {
		exists, err := s.repo.ValidateAuthor(ctx, *authorID)
		if err != nil {
			return err
		}
		if !exists {
			return &model.InvalidReferenceError{Field: "author_id", IDs: []int64{*authorID}}
		}
	}

	if len(categoryIDs) > 0 {
		missing, err := s.repo.MissingCategories(ctx, categoryIDs)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return &model.InvalidReferenceError{Field: "category_ids", IDs: missing}
		}
	}

	return nil
}
