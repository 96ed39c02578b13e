package auth

import (
	"context"
	"errors"
	"fmt"

	"libraryapi/internal/apperr"
	"libraryapi/internal/platform/crypto"
	"libraryapi/internal/reader"
)

// Resolver turns a bearer token into the current reader.
type Resolver struct {
	tokens  *crypto.TokenService
	readers ReaderLookup
}

func NewResolver(tokens *crypto.TokenService, readers ReaderLookup) *Resolver {
	return &Resolver{tokens: tokens, readers: readers}
}

// Resolve verifies token and loads the reader named by its subject. An invalid
// token and a subject that no longer exists both yield apperr.ErrUnauthorized.
func (r *Resolver) Resolve(ctx context.Context, token string) (reader.Reader, error) {
	claims, err := r.tokens.Verify(token)
	if err != nil {
		return reader.Reader{}, apperr.ErrUnauthorized
	}

	rd, err := r.readers.GetByEmail(ctx, claims.Sub)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return reader.Reader{}, apperr.ErrUnauthorized
		}
		return reader.Reader{}, fmt.Errorf("resolve token subject: %w", err)
	}
	return rd, nil
}

// RequireRole fails with apperr.ErrForbidden unless r has role.
func RequireRole(r reader.Reader, role reader.Role) error {
	if r.Role != role {
		return fmt.Errorf("%w: %s role required", apperr.ErrForbidden, role)
	}
	return nil
}

// RequireSelfOrAdmin fails with apperr.ErrForbidden unless actor owns targetID or is an admin.
func RequireSelfOrAdmin(actor reader.Reader, targetID int64) error {
	if !actor.CanManage(targetID) {
		return fmt.Errorf("%w: not the owner", apperr.ErrForbidden)
	}
	return nil
}
