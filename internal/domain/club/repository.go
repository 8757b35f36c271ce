package club

import "context"

// Repository describes club persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Club) (Club, error)
	GetByID(ctx context.Context, id int64) (Club, bool, error)
	List(ctx context.Context, offset, limit int) ([]Club, error)
	ListExcluding(ctx context.Context, excludedIDs []int64) ([]Club, error)
	Update(ctx context.Context, item Club) (Club, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
}
