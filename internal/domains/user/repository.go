package user

import "context"

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create trả về database.ErrConstraintViolation khi username/email bị trùng
	Create(ctx context.Context, username, email string) (*User, error)
	// FindByID trả về found=false nếu không tìm thấy
	FindByID(ctx context.Context, id int64) (*User, bool, error)
}
