package loan

import (
	"context"
	"time"
)

// Store is the storage port of the loan engine. WithinTx runs fn in a single
// transaction; any error returned by fn rolls every write back. fn may be
// retried on transient conflicts so it must not keep state across calls.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	GetByID(ctx context.Context, id int64) (Loan, error)
	List(ctx context.Context, q Query) ([]Loan, error)
}

// Tx holds the row-level operations available inside WithinTx. Lock methods
// hold their row until the transaction ends.
type Tx interface {
	LockReader(ctx context.Context, readerID int64) error
	LockBook(ctx context.Context, bookID int64) (BookStock, error)
	CountActiveLoans(ctx context.Context, readerID int64) (int, error)
	AdjustCopies(ctx context.Context, bookID int64, delta int) error
	InsertLoan(ctx context.Context, l *Loan) error
	LockLoan(ctx context.Context, id int64) (Loan, error)
	MarkReturned(ctx context.Context, id int64, at time.Time) error
}
