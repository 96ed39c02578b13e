package author

import (
	"context"
	"errors"
	"time"

	"libraryapi/internal/platform/date"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var dialect = goqu.Dialect("postgres")

var columns = []any{"id", "name", "biography", "date_of_birth"}

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func scanAuthor(row pgx.CollectableRow) (Author, error) {
	var a Author
	var born *time.Time
	if err := row.Scan(&a.ID, &a.Name, &a.Biography, &born); err != nil {
		return Author{}, err
	}
	a.DateOfBirth = date.Ptr(born)
	return a, nil
}

func (r *PostgresRepo) Create(ctx context.Context, cmd CreateCommand) (Author, error) {
	query, args, err := dialect.Insert("authors").
		Prepared(true).
		Rows(goqu.Record{
			"name":          cmd.Name,
			"biography":     cmd.Biography,
			"date_of_birth": cmd.DateOfBirth.TimePtr(),
		}).
		Returning(columns...).
		ToSQL()
	if err != nil {
		return Author{}, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return Author{}, err
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanAuthor)
	if err != nil {
		return Author{}, err
	}
	a.Books = []BookRef{}
	return a, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Author, error) {
	query, args, err := dialect.From("authors").
		Prepared(true).
		Select(columns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return Author{}, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return Author{}, err
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanAuthor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Author{}, ErrNotFound
		}
		return Author{}, err
	}

	authors := []Author{a}
	if err := r.loadBooks(timeoutCtx, authors); err != nil {
		return Author{}, err
	}
	return authors[0], nil
}

func (r *PostgresRepo) List(ctx context.Context, skip, limit int) ([]Author, error) {
	query, args, err := dialect.From("authors").
		Prepared(true).
		Select(columns...).
		Order(goqu.I("id").Asc()).
		Offset(uint(skip)).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	authors, err := pgx.CollectRows(rows, scanAuthor)
	if err != nil {
		return nil, err
	}
	if authors == nil {
		authors = []Author{}
	}
	if err := r.loadBooks(timeoutCtx, authors); err != nil {
		return nil, err
	}
	return authors, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, cmd UpdateCommand) (Author, error) {
	rec := goqu.Record{}
	if cmd.Name != nil {
		rec["name"] = *cmd.Name
	}
	if cmd.Biography != nil {
		rec["biography"] = *cmd.Biography
	}
	if cmd.DateOfBirth != nil {
		rec["date_of_birth"] = cmd.DateOfBirth.Time
	}

	query, args, err := dialect.Update("authors").
		Prepared(true).
		Set(rec).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return Author{}, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, args...)
	if err != nil {
		return Author{}, err
	}
	if tag.RowsAffected() == 0 {
		return Author{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete relies on ON DELETE CASCADE for book_authors.
func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) loadBooks(ctx context.Context, authors []Author) error {
	if len(authors) == 0 {
		return nil
	}
	ids := make([]int64, len(authors))
	index := make(map[int64]int, len(authors))
	for i := range authors {
		ids[i] = authors[i].ID
		index[authors[i].ID] = i
		authors[i].Books = []BookRef{}
	}

	rows, err := r.db.Query(ctx, `
	SELECT ba.author_id, b.id, b.title
	FROM book_authors ba
	JOIN books b ON b.id = ba.book_id
	WHERE ba.author_id = ANY($1)
	ORDER BY b.id
	`, ids)
	if err != nil {
		return err
	}
	var authorID int64
	var ref BookRef
	_, err = pgx.ForEachRow(rows, []any{&authorID, &ref.ID, &ref.Title}, func() error {
		i := index[authorID]
		authors[i].Books = append(authors[i].Books, ref)
		return nil
	})
	return err
}
