package repository

import (
	"context"
	"fmt"

	"bookstore-catalog/internal/domains/book/model"
	"bookstore-catalog/pkg/database"
)

// Một query cho cả trang kết quả, tránh N+1
const categoriesForBooksSQL = `
	SELECT bc.book_id, c.id, c.name
	FROM book_categories bc
	JOIN categories c ON c.id = bc.category_id
	WHERE bc.book_id = ANY($1)
	ORDER BY bc.book_id, bc.position, c.id`

type bookCategoryRow struct {
	BookID   int64
	Category model.CategoryLite
}

// groupCategories gom rows theo book_id, giữ nguyên thứ tự rows
func groupCategories(rows []bookCategoryRow) map[int64][]model.CategoryLite {
	grouped := make(map[int64][]model.CategoryLite)
	for _, row := range rows {
		grouped[row.BookID] = append(grouped[row.BookID], row.Category)
	}
	return grouped
}

// mergeCategories gắn categories vào từng book; book không có association
// nhận slice rỗng (không phải nil)
func mergeCategories(books []model.Book, grouped map[int64][]model.CategoryLite) {
	for i := range books {
		if cats, ok := grouped[books[i].ID]; ok {
			books[i].Categories = cats
		} else {
			books[i].Categories = []model.CategoryLite{}
		}
	}
}

func bookIDs(books []model.Book) []int64 {
	ids := make([]int64, len(books))
	for i := range books {
		ids[i] = books[i].ID
	}
	return ids
}

// attachCategories - batch lookup categories cho tập books đã có.
// Không có book nào thì không chạy query.
func attachCategories(ctx context.Context, db database.DBTX, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}

	rows, err := db.Query(ctx, categoriesForBooksSQL, bookIDs(books))
	if err != nil {
		return fmt.Errorf("query book categories: %w", err)
	}
	defer rows.Close()

	var collected []bookCategoryRow
	for rows.Next() {
		var r bookCategoryRow
		if err := rows.Scan(&r.BookID, &r.Category.ID, &r.Category.Name); err != nil {
			return fmt.Errorf("scan book category: %w", err)
		}
		collected = append(collected, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate book categories: %w", err)
	}

	mergeCategories(books, groupCategories(collected))
	return nil
}
