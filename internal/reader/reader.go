package reader

import (
	"context"
	"errors"
	"fmt"

	"libraryapi/internal/apperr"
)

var (
	ErrNotFound                  = fmt.Errorf("reader %w", apperr.ErrNotFound)
	ErrEmailTaken                = fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	ErrAdminRegistrationDisabled = fmt.Errorf("%w: admin registration is disabled", apperr.ErrForbidden)
	ErrInvalidRole               = errors.New("invalid role")
)

// Role is the closed set of authorization roles.
type Role string

const (
	RoleReader Role = "reader"
	RoleAdmin  Role = "admin"
)

// ParseRole accepts "reader" or "admin". An empty string defaults to RoleReader.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "", RoleReader:
		return RoleReader, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// Reader is a library member account.
type Reader struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

func (r Reader) IsAdmin() bool {
	return r.Role == RoleAdmin
}

// CanManage reports whether r may act on the reader-owned resource of targetID.
func (r Reader) CanManage(targetID int64) bool {
	return r.ID == targetID || r.IsAdmin()
}

// Ref is the depth-limited projection used when a reader is embedded elsewhere.
type Ref struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r Reader) Ref() Ref {
	return Ref{ID: r.ID, Name: r.Name, Email: r.Email}
}

type RegisterCommand struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// UpdateCommand carries the fields to replace; nil fields are left untouched.
type UpdateCommand struct {
	Name     *string
	Email    *string
	Password *string
}

// Changes is the storage-level form of UpdateCommand, with the password already hashed.
type Changes struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

func (c Changes) Empty() bool {
	return c.Name == nil && c.Email == nil && c.PasswordHash == nil
}

type contextKey struct{}

// NewContext returns a context carrying the authenticated reader.
func NewContext(ctx context.Context, r Reader) context.Context {
	return context.WithValue(ctx, contextKey{}, r)
}

// FromContext returns the authenticated reader, if any.
func FromContext(ctx context.Context) (Reader, bool) {
	r, ok := ctx.Value(contextKey{}).(Reader)
	return r, ok
}
