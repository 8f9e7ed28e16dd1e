package user

import "context"

// Service định nghĩa business logic layer contract
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, bool, error)
}
