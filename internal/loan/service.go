package loan

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"libraryapi/internal/apperr"
	"libraryapi/internal/auth"
	"libraryapi/internal/reader"
)

// Service enforces the lending rules: copies never go negative, a reader
// holds at most MaxActiveLoans, and only the borrower or an admin returns.
type Service struct {
	store  Store
	now    func() time.Time
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, now: time.Now, logger: logger}
}

// Issue lends one copy of bookID to actor.
func (s *Service) Issue(ctx context.Context, actor reader.Reader, bookID int64) (Loan, error) {
	var issued Loan
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		// The reader lock serializes concurrent issues for the same reader so
		// the active-loan count below cannot go stale.
		if err := tx.LockReader(ctx, actor.ID); err != nil {
			return err
		}
		stock, err := tx.LockBook(ctx, bookID)
		if err != nil {
			return err
		}
		if stock.AvailableCopies <= 0 {
			return ErrNoCopiesAvailable
		}
		active, err := tx.CountActiveLoans(ctx, actor.ID)
		if err != nil {
			return err
		}
		if active >= MaxActiveLoans {
			return ErrLoanLimitExceeded
		}
		if err := tx.AdjustCopies(ctx, bookID, -1); err != nil {
			return err
		}

		borrower := actor.Ref()
		issued = Loan{
			ReaderID:  actor.ID,
			BookID:    bookID,
			IssueDate: s.now().UTC(),
			Book:      &BookRef{ID: stock.ID, Title: stock.Title},
			Reader:    &borrower,
		}
		return tx.InsertLoan(ctx, &issued)
	})
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidOperation) {
			s.logger.WarnContext(ctx, "loan rejected", "reader_id", actor.ID, "book_id", bookID, "reason", err)
		}
		return Loan{}, err
	}

	s.logger.InfoContext(ctx, "loan issued", "loan_id", issued.ID, "reader_id", actor.ID, "book_id", bookID)
	return issued, nil
}

// Return closes loanID on behalf of actor and puts the copy back.
func (s *Service) Return(ctx context.Context, loanID int64, actor reader.Reader) (Loan, error) {
	var returned Loan
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		l, err := tx.LockLoan(ctx, loanID)
		if err != nil {
			return err
		}
		if err := auth.RequireSelfOrAdmin(actor, l.ReaderID); err != nil {
			return err
		}
		if !l.Active() {
			return ErrAlreadyReturned
		}

		at := s.now().UTC()
		if err := tx.MarkReturned(ctx, l.ID, at); err != nil {
			return err
		}
		if err := tx.AdjustCopies(ctx, l.BookID, 1); err != nil {
			return err
		}
		l.ReturnDate = &at
		returned = l
		return nil
	})
	if err != nil {
		return Loan{}, err
	}

	s.logger.InfoContext(ctx, "loan returned", "loan_id", returned.ID, "reader_id", returned.ReaderID, "book_id", returned.BookID)
	return returned, nil
}

// Get returns a loan visible to actor.
func (s *Service) Get(ctx context.Context, id int64, actor reader.Reader) (Loan, error) {
	l, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Loan{}, err
	}
	if err := auth.RequireSelfOrAdmin(actor, l.ReaderID); err != nil {
		return Loan{}, err
	}
	return l, nil
}

// List returns loans matching q. Non-admins only ever see their own loans.
func (s *Service) List(ctx context.Context, actor reader.Reader, q Query) ([]Loan, error) {
	if !actor.IsAdmin() {
		if q.ReaderID != nil && *q.ReaderID != actor.ID {
			return nil, apperr.ErrForbidden
		}
		id := actor.ID
		q.ReaderID = &id
	}
	return s.store.List(ctx, q)
}
