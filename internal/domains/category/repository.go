package category

import "context"

// CategoryRepository - data access cho bảng categories
type CategoryRepository interface {
	Create(ctx context.Context, name string) (*Category, error)
	// FindByID trả về found=false khi không có category
	FindByID(ctx context.Context, id int64) (*Category, bool, error)
	// FindAll sắp xếp theo name
	FindAll(ctx context.Context) ([]Category, error)
}
