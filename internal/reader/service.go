package reader

import (
	"context"
	"log/slog"
	"strings"

	"libraryapi/internal/platform/crypto"
)

type Service struct {
	repo                   Repository
	allowAdminRegistration bool
	logger                 *slog.Logger
}

func NewService(repo Repository, allowAdminRegistration bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, allowAdminRegistration: allowAdminRegistration, logger: logger}
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (Reader, error) {
	role := cmd.Role
	if role == "" {
		role = RoleReader
	}
	if role == RoleAdmin && !s.allowAdminRegistration {
		return Reader{}, ErrAdminRegistrationDisabled
	}

	hash, err := crypto.HashPassword(cmd.Password)
	if err != nil {
		return Reader{}, err
	}

	r := &Reader{
		Name:         strings.TrimSpace(cmd.Name),
		Email:        NormalizeEmail(cmd.Email),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return Reader{}, err
	}

	s.logger.InfoContext(ctx, "reader registered", "reader_id", r.ID, "role", r.Role)
	return *r, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Reader, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (Reader, error) {
	return s.repo.GetByEmail(ctx, NormalizeEmail(email))
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Reader, error) {
	return s.repo.List(ctx, skip, limit)
}

// Update replaces the provided fields. A new password is re-hashed.
func (s *Service) Update(ctx context.Context, id int64, cmd UpdateCommand) (Reader, error) {
	var ch Changes
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		ch.Name = &name
	}
	if cmd.Email != nil {
		email := NormalizeEmail(*cmd.Email)
		ch.Email = &email
	}
	if cmd.Password != nil {
		hash, err := crypto.HashPassword(*cmd.Password)
		if err != nil {
			return Reader{}, err
		}
		ch.PasswordHash = &hash
	}

	if ch.Empty() {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, ch)
}
