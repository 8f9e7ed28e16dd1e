package category

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ============================================================
// REQUEST DTOs
// ============================================================

type CreateCategoryReq struct {
	Name string `json:"name"`
}

func (r CreateCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.By(func(value interface{}) error {
				if strings.TrimSpace(value.(string)) == "" {
					return ErrInvalidName
				}
				return nil
			}),
			validation.Length(1, 100),
		),
	)
}

// ============================================================
// RESPONSE DTOs
// ============================================================

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func ToResponse(c *Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func ToResponses(categories []Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToResponse(&categories[i])
	}
	return out
}
