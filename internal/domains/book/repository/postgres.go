package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/pkg/database"
)

// postgresRepository - Raw SQL với pgxpool
// Mỗi operation giữ đúng một connection từ pool và luôn release khi xong
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(
		&b.ID,
		&b.Title,
		&b.Description,
		&b.Price,
		&b.AuthorID,
		&b.AuthorName,
		&b.PublishedDate,
	)
}

// ============================================
// READ
// ============================================

// GetBook - book + author name + categories, trên cùng một connection
func (r *postgresRepository) GetBook(ctx context.Context, id int64) (*model.Book, bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	q := BuildGetQuery(id)

	var b model.Book
	if err := scanBook(conn.QueryRow(ctx, q.SQL, q.Args...), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get book %d: %w", id, err)
	}

	books := []model.Book{b}
	if err := attachCategories(ctx, conn, books); err != nil {
		return nil, false, err
	}

	return &books[0], true, nil
}

// ListBooks - query builder lấy rows, assembler gắn categories
func (r *postgresRepository) ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	q := BuildListQuery(filter)

	rows, err := conn.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		log.Error().Err(err).Str("sql", q.SQL).Msg("[BookRepo] List query failed")
		return nil, fmt.Errorf("list books query failed: %w", err)
	}

	books := []model.Book{}
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	if err := attachCategories(ctx, conn, books); err != nil {
		return nil, err
	}

	return books, nil
}

// ============================================
// VALIDATION HELPERS (luôn đọc từ DB, không qua cache)
// ============================================

func (r *postgresRepository) ValidateAuthor(ctx context.Context, authorID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)", authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("validate author: %w", err)
	}
	return exists, nil
}

// MissingCategories - một query cho cả danh sách id.
// array_agg được cast sang text để pq.Array parse.
func (r *postgresRepository) MissingCategories(ctx context.Context, categoryIDs []int64) ([]int64, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	var found []int64
	err := r.pool.QueryRow(ctx,
		"SELECT COALESCE(array_agg(id), '{}')::text FROM categories WHERE id = ANY($1)",
		categoryIDs,
	).Scan(pq.Array(&found))
	if err != nil {
		return nil, fmt.Errorf("validate categories: %w", err)
	}

	return missingIDs(categoryIDs, found), nil
}

// missingIDs trả về phần tử của want không có trong found, giữ thứ tự của want
func missingIDs(want, found []int64) []int64 {
	present := make(map[int64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}

	var missing []int64
	for _, id := range want {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// ============================================
// WRITE
// ============================================

func (r *postgresRepository) CreateBook(ctx context.Context, book model.NewBook) (int64, error) {
	id, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		return createBookTx(ctx, tx, book)
	})
	if err != nil {
		return 0, database.TranslateError(err)
	}
	return id, nil
}

func (r *postgresRepository) UpdateBook(ctx context.Context, id int64, patch model.BookPatch) (bool, error) {
	found, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		return updateBookTx(ctx, tx, id, patch)
	})
	if err != nil {
		return false, database.TranslateError(err)
	}
	return found, nil
}

func (r *postgresRepository) DeleteBook(ctx context.Context, id int64) (bool, error) {
	return deleteBook(ctx, r.pool, id)
}
