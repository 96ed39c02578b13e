package book

import (
	"fmt"

	"libraryapi/internal/apperr"
	"libraryapi/internal/platform/date"
)

var (
	// ErrNotFound is returned when a book is not found.
	ErrNotFound = fmt.Errorf("book %w", apperr.ErrNotFound)
	// ErrAuthorNotFound is returned when author_ids references a missing author.
	ErrAuthorNotFound = fmt.Errorf("referenced author %w", apperr.ErrNotFound)
	// ErrGenreNotFound is returned when genre_ids references a missing genre.
	ErrGenreNotFound = fmt.Errorf("referenced genre %w", apperr.ErrNotFound)
	// ErrHasLoans is returned when deleting a book that has loan records.
	ErrHasLoans = fmt.Errorf("%w: book has loan records", apperr.ErrConflict)
	// ErrNegativeCopies guards the available_copies >= 0 invariant.
	ErrNegativeCopies = fmt.Errorf("%w: available_copies must not be negative", apperr.ErrInvalidOperation)
)

// AuthorRef and GenreRef are the depth-limited views embedded in a Book.
type AuthorRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type GenreRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Book is the owning side of the author and genre relations.
type Book struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	PublicationDate *date.Date  `json:"publication_date"`
	AvailableCopies int         `json:"available_copies"`
	Authors         []AuthorRef `json:"authors"`
	Genres          []GenreRef  `json:"genres"`
}

type CreateCommand struct {
	Title           string
	Description     string
	PublicationDate *date.Date
	AvailableCopies int
	AuthorIDs       []int64
	GenreIDs        []int64
}

// UpdateCommand replaces only the non-nil fields. AuthorIDs and GenreIDs
// replace the whole relation set when present.
type UpdateCommand struct {
	Title           *string
	Description     *string
	PublicationDate *date.Date
	AvailableCopies *int
	AuthorIDs       *[]int64
	GenreIDs        *[]int64
}

// DefaultCopies is used when a book is created without available_copies.
const DefaultCopies = 1
