package model

import (
	"time"

	"github.com/shopspring/decimal"

	"bookstore-catalog/internal/shared"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// DateLayout là format của published_date trên API
const DateLayout = "2006-01-02"

// CategoryLite là category được nhúng trong Book
type CategoryLite struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Book - entity đầy đủ; Categories không nằm trên row books mà được
// resolve qua book_categories mỗi lần đọc
type Book struct {
	ID            int64
	Title         string
	Description   string
	Price         decimal.Decimal
	AuthorID      int64
	AuthorName    string
	PublishedDate time.Time
	Categories    []CategoryLite
}

// NewBook là input của createBook (đã qua validate format)
type NewBook struct {
	Title         string
	Description   string
	Price         decimal.Decimal
	AuthorID      int64
	PublishedDate time.Time
	CategoryIDs   []int64
}

// BookPatch - mỗi field là tri-state. Null được coi như "không update";
// riêng CategoryIDs: null/absent giữ nguyên associations, [] xóa hết.
type BookPatch struct {
	Title         shared.Optional[string]
	Description   shared.Optional[string]
	Price         shared.Optional[decimal.Decimal]
	AuthorID      shared.Optional[int64]
	PublishedDate shared.Optional[time.Time]
	CategoryIDs   shared.Optional[[]int64]
}

// ReplacesCategories reports whether the patch carries a new category set.
func (p BookPatch) ReplacesCategories() bool {
	_, ok := p.CategoryIDs.Get()
	return ok
}

// BookFilter - mọi field đều optional; nil / "" nghĩa là không lọc
type BookFilter struct {
	AuthorID   *int64
	CategoryID *int64
	Search     string
	Limit      int
	Offset     int
}

// WithDefaults clamps pagination into the supported window.
func (f BookFilter) WithDefaults() BookFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// AuditDetails là payload ghi vào audit log khi search
func (f BookFilter) AuditDetails() map[string]any {
	return map[string]any{
		"author_id":   f.AuthorID,
		"category_id": f.CategoryID,
		"search":      f.Search,
		"limit":       f.Limit,
		"offset":      f.Offset,
	}
}

// DedupeIDs bỏ id trùng, giữ thứ tự xuất hiện đầu tiên
func DedupeIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
