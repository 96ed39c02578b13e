package genre

import (
	"fmt"

	"libraryapi/internal/apperr"
)

var (
	// ErrNotFound is returned when a genre is not found.
	ErrNotFound = fmt.Errorf("genre %w", apperr.ErrNotFound)
	// ErrNameTaken is returned when another genre already uses the name.
	ErrNameTaken = fmt.Errorf("%w: genre name already exists", apperr.ErrConflict)
)

type BookRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Genre struct {
	ID    int64     `json:"id"`
	Name  string    `json:"name"`
	Books []BookRef `json:"books"`
}
