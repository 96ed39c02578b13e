package book

import (
	"context"
	"slices"
	"strings"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func dedupe(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (Book, error) {
	if cmd.AvailableCopies < 0 {
		return Book{}, ErrNegativeCopies
	}
	cmd.Title = strings.TrimSpace(cmd.Title)
	cmd.AuthorIDs = dedupe(cmd.AuthorIDs)
	cmd.GenreIDs = dedupe(cmd.GenreIDs)
	return s.repo.Create(ctx, cmd)
}

func (s *Service) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Book, error) {
	return s.repo.List(ctx, skip, limit)
}

func (s *Service) Update(ctx context.Context, id int64, cmd UpdateCommand) (Book, error) {
	if cmd.AvailableCopies != nil && *cmd.AvailableCopies < 0 {
		return Book{}, ErrNegativeCopies
	}
	if cmd.Title != nil {
		title := strings.TrimSpace(*cmd.Title)
		cmd.Title = &title
	}
	if cmd.AuthorIDs != nil {
		ids := dedupe(*cmd.AuthorIDs)
		cmd.AuthorIDs = &ids
	}
	if cmd.GenreIDs != nil {
		ids := dedupe(*cmd.GenreIDs)
		cmd.GenreIDs = &ids
	}
	return s.repo.Update(ctx, id, cmd)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
