package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/pkg/database"
)

const insertBookSQL = `
	INSERT INTO books (title, description, price, author_id, published_date)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id`

// position = thứ tự trong category_ids, để đọc lại đúng thứ tự đã gửi
const insertBookCategoriesSQL = `
	INSERT INTO book_categories (book_id, category_id, position)
	SELECT $1, u.category_id, u.ord
	FROM unnest($2::bigint[]) WITH ORDINALITY AS u(category_id, ord)`

const deleteBookCategoriesSQL = `DELETE FROM book_categories WHERE book_id = $1`

// lock row để các update đồng thời lên cùng book thay categories tuần tự
const lockBookSQL = `SELECT id FROM books WHERE id = $1 FOR UPDATE`

// createBookTx chạy trong transaction của caller
func createBookTx(ctx context.Context, tx pgx.Tx, book model.NewBook) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, insertBookSQL,
		book.Title,
		book.Description,
		book.Price,
		book.AuthorID,
		book.PublishedDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert book: %w", err)
	}

	if err := insertCategories(ctx, tx, id, book.CategoryIDs); err != nil {
		return 0, err
	}

	return id, nil
}

// updateBookTx: lock -> SET các field có mặt -> thay toàn bộ categories nếu được gửi
func updateBookTx(ctx context.Context, tx pgx.Tx, id int64, patch model.BookPatch) (bool, error) {
	var lockedID int64
	if err := tx.QueryRow(ctx, lockBookSQL, id).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lock book: %w", err)
	}

	if q, ok := BuildUpdateQuery(id, patch); ok {
		if _, err := tx.Exec(ctx, q.SQL, q.Args...); err != nil {
			return false, fmt.Errorf("update book: %w", err)
		}
	}

	if categoryIDs, ok := patch.CategoryIDs.Get(); ok {
		if _, err := tx.Exec(ctx, deleteBookCategoriesSQL, id); err != nil {
			return false, fmt.Errorf("clear book categories: %w", err)
		}
		if err := insertCategories(ctx, tx, id, categoryIDs); err != nil {
			return false, err
		}
	}

	return true, nil
}

// insertCategories ghi toàn bộ associations bằng một statement
func insertCategories(ctx context.Context, tx pgx.Tx, bookID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, insertBookCategoriesSQL, bookID, categoryIDs); err != nil {
		return fmt.Errorf("insert book categories: %w", err)
	}
	return nil
}

// deleteBook - một statement; associations bị xóa theo ON DELETE CASCADE
func deleteBook(ctx context.Context, db database.DBTX, id int64) (bool, error) {
	tag, err := db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete book %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
