package genre

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, name string) (Genre, error) {
	return s.repo.Create(ctx, strings.TrimSpace(name))
}

func (s *Service) Get(ctx context.Context, id int64) (Genre, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Genre, error) {
	return s.repo.List(ctx, skip, limit)
}

// Update renames the genre. A nil name leaves it unchanged.
func (s *Service) Update(ctx context.Context, id int64, name *string) (Genre, error) {
	if name == nil {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, strings.TrimSpace(*name))
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
