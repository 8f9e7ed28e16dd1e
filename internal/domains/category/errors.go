package category

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidName      = errors.New("category name cannot be blank")
)
