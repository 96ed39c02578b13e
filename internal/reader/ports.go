package reader

import (
	"context"
)

// Repository defines the contract for reader storage. Emails are stored
// normalized; Create and Update return ErrEmailTaken on duplicates.
type Repository interface {
	Create(ctx context.Context, r *Reader) error
	GetByID(ctx context.Context, id int64) (Reader, error)
	GetByEmail(ctx context.Context, email string) (Reader, error)
	List(ctx context.Context, skip, limit int) ([]Reader, error)
	Update(ctx context.Context, id int64, ch Changes) (Reader, error)
}
