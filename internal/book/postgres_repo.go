package book

import (
	"context"
	"errors"
	"time"

	"libraryapi/internal/platform/date"
	"libraryapi/internal/platform/postgres"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var dialect = goqu.Dialect("postgres")

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

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

func (r *PostgresRepo) Create(ctx context.Context, cmd CreateCommand) (Book, error) {
	const query = `
	INSERT INTO books (title, description, publication_date, available_copies)
	VALUES ($1, $2, $3, $4)
	RETURNING id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var id int64
	err := postgres.InTx(timeoutCtx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(timeoutCtx, query,
			cmd.Title, cmd.Description, cmd.PublicationDate.TimePtr(), cmd.AvailableCopies,
		).Scan(&id)
		if err != nil {
			if postgres.IsCheckViolation(err) {
				return ErrNegativeCopies
			}
			return err
		}
		if err := replaceAuthors(timeoutCtx, tx, id, cmd.AuthorIDs); err != nil {
			return err
		}
		return replaceGenres(timeoutCtx, tx, id, cmd.GenreIDs)
	})
	if err != nil {
		return Book{}, err
	}
	return getBook(timeoutCtx, r.db, id)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return getBook(timeoutCtx, r.db, id)
}

func (r *PostgresRepo) List(ctx context.Context, skip, limit int) ([]Book, error) {
	query, args, err := dialect.From("books").
		Prepared(true).
		Select("id", "title", "description", "publication_date", "available_copies").
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
	books, err := pgx.CollectRows(rows, scanBook)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	if err := loadRefs(timeoutCtx, r.db, books); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, cmd UpdateCommand) (Book, error) {
	rec := goqu.Record{}
	if cmd.Title != nil {
		rec["title"] = *cmd.Title
	}
	if cmd.Description != nil {
		rec["description"] = *cmd.Description
	}
	if cmd.PublicationDate != nil {
		rec["publication_date"] = cmd.PublicationDate.Time
	}
	if cmd.AvailableCopies != nil {
		rec["available_copies"] = *cmd.AvailableCopies
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := postgres.InTx(timeoutCtx, r.db, func(tx pgx.Tx) error {
		var locked int64
		if err := tx.QueryRow(timeoutCtx, `SELECT id FROM books WHERE id = $1 FOR UPDATE`, id).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		if len(rec) > 0 {
			query, args, err := dialect.Update("books").
				Prepared(true).
				Set(rec).
				Where(goqu.C("id").Eq(id)).
				ToSQL()
			if err != nil {
				return err
			}
			if _, err := tx.Exec(timeoutCtx, query, args...); err != nil {
				if postgres.IsCheckViolation(err) {
					return ErrNegativeCopies
				}
				return err
			}
		}

		if cmd.AuthorIDs != nil {
			if err := replaceAuthors(timeoutCtx, tx, id, *cmd.AuthorIDs); err != nil {
				return err
			}
		}
		if cmd.GenreIDs != nil {
			if err := replaceGenres(timeoutCtx, tx, id, *cmd.GenreIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Book{}, err
	}
	return getBook(timeoutCtx, r.db, id)
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return ErrHasLoans
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBook(row pgx.CollectableRow) (Book, error) {
	var b Book
	var published *time.Time
	if err := row.Scan(&b.ID, &b.Title, &b.Description, &published, &b.AvailableCopies); err != nil {
		return Book{}, err
	}
	b.PublicationDate = date.Ptr(published)
	return b, nil
}

func getBook(ctx context.Context, q querier, id int64) (Book, error) {
	const query = `
	SELECT id, title, description, publication_date, available_copies
	FROM books
	WHERE id = $1
	`
	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return Book{}, err
	}
	b, err := pgx.CollectExactlyOneRow(rows, scanBook)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}

	books := []Book{b}
	if err := loadRefs(ctx, q, books); err != nil {
		return Book{}, err
	}
	return books[0], nil
}

// loadRefs fills Authors and Genres for books with two batched queries.
func loadRefs(ctx context.Context, q querier, books []Book) error {
	if len(books) == 0 {
		return nil
	}
	ids := make([]int64, len(books))
	index := make(map[int64]int, len(books))
	for i := range books {
		ids[i] = books[i].ID
		index[books[i].ID] = i
		books[i].Authors = []AuthorRef{}
		books[i].Genres = []GenreRef{}
	}

	rows, err := q.Query(ctx, `
	SELECT ba.book_id, a.id, a.name
	FROM book_authors ba
	JOIN authors a ON a.id = ba.author_id
	WHERE ba.book_id = ANY($1)
	ORDER BY a.id
	`, ids)
	if err != nil {
		return err
	}
	var bookID int64
	var ref AuthorRef
	_, err = pgx.ForEachRow(rows, []any{&bookID, &ref.ID, &ref.Name}, func() error {
		i := index[bookID]
		books[i].Authors = append(books[i].Authors, ref)
		return nil
	})
	if err != nil {
		return err
	}

	rows, err = q.Query(ctx, `
	SELECT bg.book_id, g.id, g.name
	FROM book_genres bg
	JOIN genres g ON g.id = bg.genre_id
	WHERE bg.book_id = ANY($1)
	ORDER BY g.id
	`, ids)
	if err != nil {
		return err
	}
	var genre GenreRef
	_, err = pgx.ForEachRow(rows, []any{&bookID, &genre.ID, &genre.Name}, func() error {
		i := index[bookID]
		books[i].Genres = append(books[i].Genres, genre)
		return nil
	})
	return err
}

func replaceAuthors(ctx context.Context, tx pgx.Tx, bookID int64, authorIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM book_authors WHERE book_id = $1`, bookID); err != nil {
		return err
	}
	if len(authorIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
	INSERT INTO book_authors (book_id, author_id)
	SELECT $1, unnest($2::bigint[])
	`, bookID, authorIDs)
	if postgres.IsForeignKeyViolation(err) {
		return ErrAuthorNotFound
	}
	return err
}

func replaceGenres(ctx context.Context, tx pgx.Tx, bookID int64, genreIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = $1`, bookID); err != nil {
		return err
	}
	if len(genreIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
	INSERT INTO book_genres (book_id, genre_id)
	SELECT $1, unnest($2::bigint[])
	`, bookID, genreIDs)
	if postgres.IsForeignKeyViolation(err) {
		return ErrGenreNotFound
	}
	return err
}
