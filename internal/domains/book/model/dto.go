package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"bookstore-catalog/internal/shared"
)

// ============ REQUEST DTOs ============

// Description và Price là pointer để phân biệt "không gửi" với "" / 0
type CreateBookRequest struct {
	Title         string           `json:"title"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	AuthorID      int64            `json:"author_id"`
	PublishedDate string           `json:"published_date"`
	CategoryIDs   []int64          `json:"category_ids"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.Length(1, 500)),
		validation.Field(&r.Description, validation.NotNil.Error("description is required")),
		validation.Field(&r.Price, validation.NotNil.Error("price is required"), validation.By(validPrice)),
		validation.Field(&r.AuthorID, validation.Required.Error("author_id is required"), validation.Min(int64(1))),
		validation.Field(&r.PublishedDate,
			validation.Required.Error("published_date is required"),
			validation.Date(DateLayout).Error("published_date must be YYYY-MM-DD"),
		),
		validation.Field(&r.CategoryIDs, validation.NotNil.Error("category_ids is required"), validation.Each(validation.Required, validation.Min(int64(1)))),
	)
}

// ToNewBook gọi sau Validate()
func (r CreateBookRequest) ToNewBook() (NewBook, error) {
	if r.Description == nil || r.Price == nil {
		return NewBook{}, errors.New("description and price are required")
	}
	published, err := time.Parse(DateLayout, r.PublishedDate)
	if err != nil {
		return NewBook{}, err
	}
	return NewBook{
		Title:         r.Title,
		Description:   *r.Description,
		Price:         *r.Price,
		AuthorID:      r.AuthorID,
		PublishedDate: published,
		CategoryIDs:   r.CategoryIDs,
	}, nil
}

// UpdateBookRequest - PATCH semantics, field không gửi lên thì giữ nguyên
type UpdateBookRequest struct {
	Title         shared.Optional[string]          `json:"title"`
	Description   shared.Optional[string]          `json:"description"`
	Price         shared.Optional[decimal.Decimal] `json:"price"`
	AuthorID      shared.Optional[int64]           `json:"author_id"`
	PublishedDate shared.Optional[string]          `json:"published_date"`
	CategoryIDs   shared.Optional[[]int64]         `json:"category_ids"`
}

func (r UpdateBookRequest) Validate() error {
	errs := validation.Errors{}

	if v, ok := r.Title.Get(); ok {
		errs["title"] = validation.Validate(v, validation.Required.Error("title cannot be empty"), validation.Length(1, 500))
	}
	if v, ok := r.Price.Get(); ok {
		errs["price"] = validPrice(v)
	}
	if v, ok := r.AuthorID.Get(); ok {
		errs["author_id"] = validation.Validate(v, validation.Required, validation.Min(int64(1)))
	}
	if v, ok := r.PublishedDate.Get(); ok {
		errs["published_date"] = validation.Validate(v,
			validation.Required, validation.Date(DateLayout).Error("published_date must be YYYY-MM-DD"))
	}
	if v, ok := r.CategoryIDs.Get(); ok {
		errs["category_ids"] = validation.Validate(v, validation.Each(validation.Required, validation.Min(int64(1))))
	}

	return errs.Filter()
}

// ToPatch gọi sau Validate()
func (r UpdateBookRequest) ToPatch() (BookPatch, error) {
	patch := BookPatch{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		AuthorID:    r.AuthorID,
		CategoryIDs: r.CategoryIDs,
	}

	switch {
	case r.PublishedDate.IsNull():
		patch.PublishedDate = shared.Null[time.Time]()
	case r.PublishedDate.IsSet():
		raw, _ := r.PublishedDate.Get()
		published, err := time.Parse(DateLayout, raw)
		if err != nil {
			return BookPatch{}, err
		}
		patch.PublishedDate = shared.Some(published)
	}

	return patch, nil
}

// ListBooksQuery - query string của GET /books
type ListBooksQuery struct {
	AuthorID   *int64 `form:"author_id"`
	CategoryID *int64 `form:"category_id"`
	Search     string `form:"search"`
	Limit      *int   `form:"limit"`
	Offset     *int   `form:"offset"`
	UserID     *int64 `form:"user_id"`
}

func (q ListBooksQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.AuthorID, validation.NilOrNotEmpty, validation.Min(int64(1))),
		validation.Field(&q.CategoryID, validation.NilOrNotEmpty, validation.Min(int64(1))),
		validation.Field(&q.Search, validation.Length(0, 200)),
		validation.Field(&q.Limit,
			validation.NilOrNotEmpty.Error(fmt.Sprintf("limit must be between 1 and %d", MaxListLimit)),
			validation.Min(1), validation.Max(MaxListLimit)),
		validation.Field(&q.Offset, validation.Min(0)),
	)
}

func (q ListBooksQuery) ToFilter() BookFilter {
	f := BookFilter{
		AuthorID:   q.AuthorID,
		CategoryID: q.CategoryID,
		Search:     q.Search,
		Limit:      DefaultListLimit,
	}
	if q.Limit != nil {
		f.Limit = *q.Limit
	}
	if q.Offset != nil {
		f.Offset = *q.Offset
	}
	return f
}

// validPrice khớp với cột NUMERIC(10, 2)
func validPrice(value interface{}) error {
	var price decimal.Decimal
	switch v := value.(type) {
	case decimal.Decimal:
		price = v
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		price = *v
	}
	if price.IsNegative() {
		return errors.New("price must be >= 0")
	}
	if !price.Equal(price.Round(2)) {
		return errors.New("price must have at most 2 decimal places")
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return errors.New("price must be below 100000000")
	}
	return nil
}

var maxPrice = decimal.New(1, 8)

// ============ RESPONSE DTOs ============

type BookResponse struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Price         json.Number    `json:"price"`
	AuthorID      int64          `json:"author_id"`
	AuthorName    string         `json:"author_name"`
	PublishedDate string         `json:"published_date"`
	Categories    []CategoryLite `json:"categories"`
}

func (b *Book) ToResponse() BookResponse {
	categories := b.Categories
	if categories == nil {
		categories = []CategoryLite{}
	}
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		Price:         json.Number(b.Price.String()),
		AuthorID:      b.AuthorID,
		AuthorName:    b.AuthorName,
		PublishedDate: b.PublishedDate.Format(DateLayout),
		Categories:    categories,
	}
}

func ToResponses(books []Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i := range books {
		out[i] = books[i].ToResponse()
	}
	return out
}
