package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"libraryapi/internal/author"
	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/genre"
	"libraryapi/internal/loan"
	"libraryapi/internal/platform/postgres"
	"libraryapi/internal/reader"
	"libraryapi/internal/store"
)

// backend bundles the repositories of one storage implementation.
type backend struct {
	readers reader.Repository
	books   book.Repository
	authors author.Repository
	genres  genre.Repository
	loans   loan.Store
	ping    func(context.Context) error
	close   func()
}

func openBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (*backend, error) {
	if cfg.Storage == config.StorageMemory {
		mem, err := store.NewMemory()
		if err != nil {
			return nil, err
		}
		logger.Warn("using in-memory storage, data is lost on restart")
		return memoryBackend(mem), nil
	}

	pool, err := postgres.Open(ctx, cfg.DatabaseDSN, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	logger.Info("connected to database", "dsn", postgres.RedactDSN(cfg.DatabaseDSN))

	return &backend{
		readers: reader.NewPostgresRepo(pool, cfg.DBTimeout),
		books:   book.NewPostgresRepo(pool, cfg.DBTimeout),
		authors: author.NewPostgresRepo(pool, cfg.DBTimeout),
		genres:  genre.NewPostgresRepo(pool, cfg.DBTimeout),
		loans:   loan.NewPostgresStore(pool, cfg.DBTimeout),
		ping:    pool.Ping,
		close:   pool.Close,
	}, nil
}

func memoryBackend(mem *store.Memory) *backend {
	return &backend{
		readers: mem.Readers(),
		books:   mem.Books(),
		authors: mem.Authors(),
		genres:  mem.Genres(),
		loans:   mem.Loans(),
		ping:    mem.Ping,
		close:   func() {},
	}
}
