package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrInvalidReference = errors.New("invalid reference")
)

// InvalidReferenceError - author_id hoặc category_ids trỏ tới bản ghi không tồn tại.
// Luôn được phát hiện trước khi ghi.
type InvalidReferenceError struct {
	Field string
	IDs   []int64
}

func (e *InvalidReferenceError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%s references unknown id(s): %s", e.Field, strings.Join(ids, ", "))
}

func (e *InvalidReferenceError) Is(target error) bool {
	return target == ErrInvalidReference
}
