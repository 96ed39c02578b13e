package reader

import (
	"context"
	"errors"
	"time"

	"libraryapi/internal/platform/postgres"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var dialect = goqu.Dialect("postgres")

var readerColumns = []any{"id", "name", "email", "password_hash", "role"}

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

func scanReader(row pgx.Row) (Reader, error) {
	var rd Reader
	var role string
	if err := row.Scan(&rd.ID, &rd.Name, &rd.Email, &rd.PasswordHash, &role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Reader{}, ErrNotFound
		}
		return Reader{}, err
	}
	rd.Role = Role(role)
	return rd, nil
}

func (r *PostgresRepo) Create(ctx context.Context, rd *Reader) error {
	const query = `
	INSERT INTO readers (name, email, password_hash, role)
	VALUES ($1, $2, $3, $4)
	RETURNING id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, rd.Name, rd.Email, rd.PasswordHash, string(rd.Role)).Scan(&rd.ID)
	if postgres.IsUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Reader, error) {
	const query = `SELECT id, name, email, password_hash, role FROM readers WHERE id = $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanReader(r.db.QueryRow(timeoutCtx, query, id))
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (Reader, error) {
	const query = `SELECT id, name, email, password_hash, role FROM readers WHERE email = $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanReader(r.db.QueryRow(timeoutCtx, query, email))
}

func (r *PostgresRepo) List(ctx context.Context, skip, limit int) ([]Reader, error) {
	query, args, err := dialect.From("readers").
		Prepared(true).
		Select(readerColumns...).
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
	defer rows.Close()

	out := []Reader{}
	for rows.Next() {
		rd, err := scanReader(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, ch Changes) (Reader, error) {
	rec := goqu.Record{}
	if ch.Name != nil {
		rec["name"] = *ch.Name
	}
	if ch.Email != nil {
		rec["email"] = *ch.Email
	}
	if ch.PasswordHash != nil {
		rec["password_hash"] = *ch.PasswordHash
	}
	if len(rec) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := dialect.Update("readers").
		Prepared(true).
		Set(rec).
		Where(goqu.C("id").Eq(id)).
		Returning(readerColumns...).
		ToSQL()
	if err != nil {
		return Reader{}, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rd, err := scanReader(r.db.QueryRow(timeoutCtx, query, args...))
	if postgres.IsUniqueViolation(err) {
		return Reader{}, ErrEmailTaken
	}
	return rd, err
}
