package auth

import (
	"context"

	"libraryapi/internal/reader"
)

// ReaderLookup resolves token subjects to accounts.
type ReaderLookup interface {
	GetByEmail(ctx context.Context, email string) (reader.Reader, error)
}
