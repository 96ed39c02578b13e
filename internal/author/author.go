package author

import (
	"fmt"

	"libraryapi/internal/apperr"
	"libraryapi/internal/platform/date"
)

// ErrNotFound is returned when an author is not found.
var ErrNotFound = fmt.Errorf("author %w", apperr.ErrNotFound)

// BookRef is the depth-limited book view embedded in an Author.
type BookRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Author struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Biography   string     `json:"biography"`
	DateOfBirth *date.Date `json:"date_of_birth"`
	Books       []BookRef  `json:"books"`
}

type CreateCommand struct {
	Name        string
	Biography   string
	DateOfBirth *date.Date
}

// UpdateCommand replaces only the non-nil fields.
type UpdateCommand struct {
	Name        *string
	Biography   *string
	DateOfBirth *date.Date
}

func (c UpdateCommand) Empty() bool {
	return c.Name == nil && c.Biography == nil && c.DateOfBirth == nil
}
