package loan

import (
	"fmt"
	"time"

	"libraryapi/internal/apperr"
	"libraryapi/internal/reader"
)

// MaxActiveLoans is the number of unreturned loans a reader may hold.
const MaxActiveLoans = 5

var (
	// ErrNotFound is returned when a loan is not found.
	ErrNotFound = fmt.Errorf("loan %w", apperr.ErrNotFound)
	// ErrBookNotFound is returned when issuing a book that does not exist.
	ErrBookNotFound = fmt.Errorf("book %w", apperr.ErrNotFound)
	// ErrNoCopiesAvailable is returned when the book has no copies left.
	ErrNoCopiesAvailable = fmt.Errorf("%w: no copies available", apperr.ErrInvalidOperation)
	// ErrLoanLimitExceeded is returned when the reader already holds MaxActiveLoans.
	ErrLoanLimitExceeded = fmt.Errorf("%w: loan limit exceeded", apperr.ErrInvalidOperation)
	// ErrAlreadyReturned is returned when returning a loan a second time.
	ErrAlreadyReturned = fmt.Errorf("%w: loan already returned", apperr.ErrInvalidOperation)
)

type BookRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type ReaderRef = reader.Ref

// Loan records one copy of a book lent to a reader. ReturnDate is nil while
// the loan is active.
type Loan struct {
	ID         int64      `json:"id"`
	ReaderID   int64      `json:"reader_id"`
	BookID     int64      `json:"book_id"`
	IssueDate  time.Time  `json:"issue_date"`
	ReturnDate *time.Time `json:"return_date"`
	Book       *BookRef   `json:"book,omitempty"`
	Reader     *ReaderRef `json:"reader,omitempty"`
}

func (l Loan) Active() bool {
	return l.ReturnDate == nil
}

// BookStock is the locked view of a book used by the issue flow.
type BookStock struct {
	ID              int64
	Title           string
	AvailableCopies int
}

// Query filters a loan listing. Nil filters match everything.
type Query struct {
	ReaderID *int64
	Active   *bool
	Skip     int
	Limit    int
}

// Matches reports whether l passes the filters.
func (q Query) Matches(l Loan) bool {
	if q.ReaderID != nil && l.ReaderID != *q.ReaderID {
		return false
	}
	if q.Active != nil && l.Active() != *q.Active {
		return false
	}
	return true
}
