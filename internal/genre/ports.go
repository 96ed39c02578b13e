package genre

import "context"

type Repository interface {
	Create(ctx context.Context, name string) (Genre, error)
	GetByID(ctx context.Context, id int64) (Genre, error)
	List(ctx context.Context, skip, limit int) ([]Genre, error)
	Update(ctx context.Context, id int64, name string) (Genre, error)
	Delete(ctx context.Context, id int64) error
}
