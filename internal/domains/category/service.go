package category

import "context"

// ============================================================
// SERVICE LAYER
// ============================================================
// Categories là bảng phẳng, không có quan hệ cha/con.
// Service chỉ validate input rồi gọi repository;
// việc book tham chiếu category nào do book service kiểm tra.
type CategoryService interface {
	Create(ctx context.Context, req *CreateCategoryReq) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, bool, error)
	List(ctx context.Context) ([]Category, error)
}
