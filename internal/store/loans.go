package store

import (
	"context"
	"time"

	"libraryapi/internal/loan"
	"libraryapi/internal/reader"

	"github.com/hashicorp/go-memdb"
)

type loanRow struct {
	ID         int64
	ReaderID   int64
	BookID     int64
	IssueDate  time.Time
	ReturnDate *time.Time
}

// Loans implements loan.Store. A write transaction holds go-memdb's single
// writer lock, so every row touched inside WithinTx is effectively locked.
type Loans struct {
	m *Memory
}

func (l *Loans) WithinTx(ctx context.Context, fn func(ctx context.Context, tx loan.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	txn := l.m.db.Txn(true)
	defer txn.Abort()

	if err := fn(ctx, &memTx{m: l.m, txn: txn}); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (l *Loans) GetByID(ctx context.Context, id int64) (loan.Loan, error) {
	txn := l.m.db.Txn(false)
	obj, err := txn.First(tableLoans, "id", id)
	if err != nil {
		return loan.Loan{}, err
	}
	if obj == nil {
		return loan.Loan{}, loan.ErrNotFound
	}
	return hydrateLoan(txn, *obj.(*loanRow))
}

func (l *Loans) List(ctx context.Context, q loan.Query) ([]loan.Loan, error) {
	txn := l.m.db.Txn(false)

	var it memdb.ResultIterator
	var err error
	if q.ReaderID != nil {
		it, err = txn.Get(tableLoans, "reader_id", *q.ReaderID)
	} else {
		it, err = all(txn, tableLoans)
	}
	if err != nil {
		return nil, err
	}

	var matched []loan.Loan
	for _, row := range collect(it, func(r loanRow) int64 { return r.ID }) {
		ln, err := hydrateLoan(txn, row)
		if err != nil {
			return nil, err
		}
		if q.Matches(ln) {
			matched = append(matched, ln)
		}
	}
	return page(matched, q.Skip, q.Limit), nil
}

func hydrateLoan(txn *memdb.Txn, row loanRow) (loan.Loan, error) {
	out := loan.Loan{
		ID:         row.ID,
		ReaderID:   row.ReaderID,
		BookID:     row.BookID,
		IssueDate:  row.IssueDate,
		ReturnDate: row.ReturnDate,
	}

	b, err := txn.First(tableBooks, "id", row.BookID)
	if err != nil {
		return loan.Loan{}, err
	}
	if b != nil {
		out.Book = &loan.BookRef{ID: row.BookID, Title: b.(*bookRow).Title}
	}
	rd, err := txn.First(tableReaders, "id", row.ReaderID)
	if err != nil {
		return loan.Loan{}, err
	}
	if rd != nil {
		ref := rd.(*reader.Reader).Ref()
		out.Reader = &ref
	}
	return out, nil
}

type memTx struct {
	m   *Memory
	txn *memdb.Txn
}

func (t *memTx) LockReader(ctx context.Context, readerID int64) error {
	obj, err := t.txn.First(tableReaders, "id", readerID)
	if err != nil {
		return err
	}
	if obj == nil {
		return reader.ErrNotFound
	}
	return nil
}

func (t *memTx) LockBook(ctx context.Context, bookID int64) (loan.BookStock, error) {
	obj, err := t.txn.First(tableBooks, "id", bookID)
	if err != nil {
		return loan.BookStock{}, err
	}
	if obj == nil {
		return loan.BookStock{}, loan.ErrBookNotFound
	}
	row := obj.(*bookRow)
	return loan.BookStock{ID: row.ID, Title: row.Title, AvailableCopies: row.AvailableCopies}, nil
}

func (t *memTx) CountActiveLoans(ctx context.Context, readerID int64) (int, error) {
	it, err := t.txn.Get(tableLoans, "reader_id", readerID)
	if err != nil {
		return 0, err
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		if obj.(*loanRow).ReturnDate == nil {
			n++
		}
	}
	return n, nil
}

func (t *memTx) AdjustCopies(ctx context.Context, bookID int64, delta int) error {
	obj, err := t.txn.First(tableBooks, "id", bookID)
	if err != nil {
		return err
	}
	if obj == nil {
		return loan.ErrBookNotFound
	}
	row := *obj.(*bookRow)
	row.AvailableCopies += delta
	if row.AvailableCopies < 0 {
		return loan.ErrNoCopiesAvailable
	}
	return t.txn.Insert(tableBooks, &row)
}

func (t *memTx) InsertLoan(ctx context.Context, l *loan.Loan) error {
	l.ID = t.m.nextID(tableLoans)
	return t.txn.Insert(tableLoans, &loanRow{
		ID:         l.ID,
		ReaderID:   l.ReaderID,
		BookID:     l.BookID,
		IssueDate:  l.IssueDate,
		ReturnDate: l.ReturnDate,
	})
}

func (t *memTx) LockLoan(ctx context.Context, id int64) (loan.Loan, error) {
	obj, err := t.txn.First(tableLoans, "id", id)
	if err != nil {
		return loan.Loan{}, err
	}
	if obj == nil {
		return loan.Loan{}, loan.ErrNotFound
	}
	return hydrateLoan(t.txn, *obj.(*loanRow))
}

func (t *memTx) MarkReturned(ctx context.Context, id int64, at time.Time) error {
	obj, err := t.txn.First(tableLoans, "id", id)
	if err != nil {
		return err
	}
	if obj == nil {
		return loan.ErrNotFound
	}
	row := *obj.(*loanRow)
	if row.ReturnDate != nil {
		return loan.ErrAlreadyReturned
	}
	row.ReturnDate = &at
	return t.txn.Insert(tableLoans, &row)
}
