package author

import "context"

// Repository defines the contract for author data storage. Authors are
// returned with the refs of the books they wrote.
type Repository interface {
	Create(ctx context.Context, cmd CreateCommand) (Author, error)
	GetByID(ctx context.Context, id int64) (Author, error)
	List(ctx context.Context, skip, limit int) ([]Author, error)
	Update(ctx context.Context, id int64, cmd UpdateCommand) (Author, error)
	// Delete removes the author and its book links.
	Delete(ctx context.Context, id int64) error
}
