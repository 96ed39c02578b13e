package loan

import (
	"context"
	"errors"
	"time"

	"libraryapi/internal/platform/postgres"
	"libraryapi/internal/reader"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var dialect = goqu.Dialect("postgres")

const selectLoan = `
	SELECT l.id, l.reader_id, l.book_id, l.issue_date, l.return_date, b.title, r.name, r.email
	FROM loans l
	JOIN books b ON b.id = l.book_id
	JOIN readers r ON r.id = l.reader_id
	`

type PostgresStore struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresStore(db *pgxpool.Pool, timeout time.Duration) *PostgresStore {
	return &PostgresStore{db: db, timeout: timeout}
}

func (s *PostgresStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	return postgres.InTx(timeoutCtx, s.db, func(tx pgx.Tx) error {
		return fn(timeoutCtx, pgTx{tx: tx})
	})
}

func scanLoan(row pgx.CollectableRow) (Loan, error) {
	var l Loan
	var book BookRef
	var rd ReaderRef
	err := row.Scan(&l.ID, &l.ReaderID, &l.BookID, &l.IssueDate, &l.ReturnDate, &book.Title, &rd.Name, &rd.Email)
	if err != nil {
		return Loan{}, err
	}
	book.ID = l.BookID
	rd.ID = l.ReaderID
	l.Book = &book
	l.Reader = &rd
	return l, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (Loan, error) {
	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(timeoutCtx, selectLoan+`WHERE l.id = $1`, id)
	if err != nil {
		return Loan{}, err
	}
	l, err := pgx.CollectExactlyOneRow(rows, scanLoan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Loan{}, ErrNotFound
		}
		return Loan{}, err
	}
	return l, nil
}

func (s *PostgresStore) List(ctx context.Context, q Query) ([]Loan, error) {
	var where []exp.Expression
	if q.ReaderID != nil {
		where = append(where, goqu.I("l.reader_id").Eq(*q.ReaderID))
	}
	if q.Active != nil {
		if *q.Active {
			where = append(where, goqu.I("l.return_date").IsNull())
		} else {
			where = append(where, goqu.I("l.return_date").IsNotNull())
		}
	}

	query, args, err := dialect.From(goqu.T("loans").As("l")).
		Prepared(true).
		Select("l.id", "l.reader_id", "l.book_id", "l.issue_date", "l.return_date", "b.title", "r.name", "r.email").
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Join(goqu.T("readers").As("r"), goqu.On(goqu.I("r.id").Eq(goqu.I("l.reader_id")))).
		Where(where...).
		Order(goqu.I("l.id").Asc()).
		Offset(uint(q.Skip)).
		Limit(uint(q.Limit)).
		ToSQL()
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	loans, err := pgx.CollectRows(rows, scanLoan)
	if err != nil {
		return nil, err
	}
	if loans == nil {
		loans = []Loan{}
	}
	return loans, nil
}

type pgTx struct {
	tx pgx.Tx
}

func (t pgTx) LockReader(ctx context.Context, readerID int64) error {
	var id int64
	err := t.tx.QueryRow(ctx, `SELECT id FROM readers WHERE id = $1 FOR UPDATE`, readerID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return reader.ErrNotFound
	}
	return err
}

func (t pgTx) LockBook(ctx context.Context, bookID int64) (BookStock, error) {
	var b BookStock
	err := t.tx.QueryRow(ctx, `SELECT id, title, available_copies FROM books WHERE id = $1 FOR UPDATE`, bookID).
		Scan(&b.ID, &b.Title, &b.AvailableCopies)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BookStock{}, ErrBookNotFound
		}
		return BookStock{}, err
	}
	return b, nil
}

func (t pgTx) CountActiveLoans(ctx context.Context, readerID int64) (int, error) {
	var n int
	err := t.tx.QueryRow(ctx, `SELECT count(*) FROM loans WHERE reader_id = $1 AND return_date IS NULL`, readerID).Scan(&n)
	return n, err
}

func (t pgTx) AdjustCopies(ctx context.Context, bookID int64, delta int) error {
	tag, err := t.tx.Exec(ctx, `UPDATE books SET available_copies = available_copies + $2 WHERE id = $1`, bookID, delta)
	if err != nil {
		if postgres.IsCheckViolation(err) {
			return ErrNoCopiesAvailable
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (t pgTx) InsertLoan(ctx context.Context, l *Loan) error {
	return t.tx.QueryRow(ctx, `
	INSERT INTO loans (reader_id, book_id, issue_date)
	VALUES ($1, $2, $3)
	RETURNING id
	`, l.ReaderID, l.BookID, l.IssueDate).Scan(&l.ID)
}

func (t pgTx) LockLoan(ctx context.Context, id int64) (Loan, error) {
	rows, err := t.tx.Query(ctx, selectLoan+`WHERE l.id = $1 FOR UPDATE OF l`, id)
	if err != nil {
		return Loan{}, err
	}
	l, err := pgx.CollectExactlyOneRow(rows, scanLoan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Loan{}, ErrNotFound
		}
		return Loan{}, err
	}
	return l, nil
}

func (t pgTx) MarkReturned(ctx context.Context, id int64, at time.Time) error {
	tag, err := t.tx.Exec(ctx, `UPDATE loans SET return_date = $2 WHERE id = $1 AND return_date IS NULL`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyReturned
	}
	return nil
}
