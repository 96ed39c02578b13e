package book

import (
	"context"
)

// Repository defines the contract for book data storage. Books are returned
// with their author and genre refs resolved.
type Repository interface {
	Create(ctx context.Context, cmd CreateCommand) (Book, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	List(ctx context.Context, skip, limit int) ([]Book, error)
	Update(ctx context.Context, id int64, cmd UpdateCommand) (Book, error)
	Delete(ctx context.Context, id int64) error
}
