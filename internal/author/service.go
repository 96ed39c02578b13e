package author

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

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (Author, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	return s.repo.Create(ctx, cmd)
}

func (s *Service) Get(ctx context.Context, id int64) (Author, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Author, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) Update(ctx context.Context, id int64, cmd UpdateCommand) (Author, error) {
	if cmd.Empty() {
		return s.repo.GetByID(ctx, id)
	}
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		cmd.Name = &name
	}
	return s.repo.Update(ctx, id, cmd)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
