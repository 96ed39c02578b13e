package genre

import (
	"context"
	"errors"
	"time"

	"libraryapi/internal/platform/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

func (r *PostgresRepo) Create(ctx context.Context, name string) (Genre, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	g := Genre{Name: name, Books: []BookRef{}}
	err := r.db.QueryRow(timeoutCtx, `INSERT INTO genres (name) VALUES ($1) RETURNING id`, name).Scan(&g.ID)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return Genre{}, ErrNameTaken
		}
		return Genre{}, err
	}
	return g, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Genre, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var g Genre
	err := r.db.QueryRow(timeoutCtx, `SELECT id, name FROM genres WHERE id = $1`, id).Scan(&g.ID, &g.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Genre{}, ErrNotFound
		}
		return Genre{}, err
	}
	genres := []Genre{g}
	if err := r.loadBooks(timeoutCtx, genres); err != nil {
		return Genre{}, err
	}
	return genres[0], nil
}

func (r *PostgresRepo) List(ctx context.Context, skip, limit int) ([]Genre, error) {
	const query = `
	SELECT id, name
	FROM genres
	ORDER BY id
	OFFSET $1 LIMIT $2
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	genres, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Genre, error) {
		var g Genre
		err := row.Scan(&g.ID, &g.Name)
		return g, err
	})
	if err != nil {
		return nil, err
	}
	if genres == nil {
		genres = []Genre{}
	}
	if err := r.loadBooks(timeoutCtx, genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, name string) (Genre, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, `UPDATE genres SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return Genre{}, ErrNameTaken
		}
		return Genre{}, err
	}
	if tag.RowsAffected() == 0 {
		return Genre{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) loadBooks(ctx context.Context, genres []Genre) error {
	if len(genres) == 0 {
		return nil
	}
	ids := make([]int64, len(genres))
	index := make(map[int64]int, len(genres))
	for i := range genres {
		ids[i] = genres[i].ID
		index[genres[i].ID] = i
		genres[i].Books = []BookRef{}
	}

	rows, err := r.db.Query(ctx, `
	SELECT bg.genre_id, b.id, b.title
	FROM book_genres bg
	JOIN books b ON b.id = bg.book_id
	WHERE bg.genre_id = ANY($1)
	ORDER BY b.id
	`, ids)
	if err != nil {
		return err
	}
	var genreID int64
	var ref BookRef
	_, err = pgx.ForEachRow(rows, []any{&genreID, &ref.ID, &ref.Title}, func() error {
		i := index[genreID]
		genres[i].Books = append(genres[i].Books, ref)
		return nil
	})
	return err
}
