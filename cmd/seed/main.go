package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"libraryapi/internal/author"
	"libraryapi/internal/book"
	"libraryapi/internal/config"
	"libraryapi/internal/genre"
	"libraryapi/internal/platform/date"
	"libraryapi/internal/platform/postgres"
	"libraryapi/internal/reader"
)

func main() {
	config.LoadEnvFiles()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if err := run(context.Background(), logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return errors.New("DB_DSN is required")
	}
	count := 50
	if v := os.Getenv("SEED_BOOKS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("SEED_BOOKS: invalid count %q", v)
		}
		count = n
	}

	pool, err := postgres.Open(ctx, dsn, 2*time.Second)
	if err != nil {
		return err
	}
	defer pool.Close()

	const timeout = 5 * time.Second
	readers := reader.NewService(reader.NewPostgresRepo(pool, timeout), true, logger)
	authors := author.NewService(author.NewPostgresRepo(pool, timeout))
	genres := genre.NewService(genre.NewPostgresRepo(pool, timeout))
	books := book.NewService(book.NewPostgresRepo(pool, timeout))

	if err := seedAdmin(ctx, readers, logger); err != nil {
		return err
	}

	var genreIDs []int64
	for _, name := range genreNames {
		g, err := genres.Create(ctx, name)
		if errors.Is(err, genre.ErrNameTaken) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create genre %q: %w", name, err)
		}
		genreIDs = append(genreIDs, g.ID)
	}
	logger.Info("genres seeded", "created", len(genreIDs))

	var authorIDs []int64
	for _, name := range authorNames {
		born := date.Of(time.Date(1900+rand.Intn(90), time.Month(1+rand.Intn(12)), 1+rand.Intn(28), 0, 0, 0, 0, time.UTC))
		a, err := authors.Create(ctx, author.CreateCommand{
			Name:        name,
			Biography:   fmt.Sprintf("%s writes about %s.", name, randomWord()),
			DateOfBirth: &born,
		})
		if err != nil {
			return fmt.Errorf("create author %q: %w", name, err)
		}
		authorIDs = append(authorIDs, a.ID)
	}
	logger.Info("authors seeded", "created", len(authorIDs))

	for i := range count {
		published := date.Of(time.Date(1950+rand.Intn(75), 1, 1, 0, 0, 0, 0, time.UTC))
		cmd := book.CreateCommand{
			Title:           fmt.Sprintf("Book Title %d - %s", i+1, randomWord()),
			Description:     fmt.Sprintf("This is a book about %s.", randomWord()),
			PublicationDate: &published,
			AvailableCopies: 1 + rand.Intn(5),
			AuthorIDs:       pick(authorIDs, 2),
			GenreIDs:        pick(genreIDs, 2),
		}
		if _, err := books.Create(ctx, cmd); err != nil {
			return fmt.Errorf("create book %d: %w", i+1, err)
		}
		if (i+1)%10 == 0 {
			logger.Info("books seeded", "done", i+1, "total", count)
		}
	}

	logger.Info("seed complete", "books", count)
	return nil
}

// seedAdmin registers the SEED_ADMIN_EMAIL account when both variables are
// set. An existing account is left untouched.
func seedAdmin(ctx context.Context, readers *reader.Service, logger *slog.Logger) error {
	email, password := os.Getenv("SEED_ADMIN_EMAIL"), os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Info("SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD not set, skipping admin")
		return nil
	}
	_, err := readers.Register(ctx, reader.RegisterCommand{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Role:     reader.RoleAdmin,
	})
	switch {
	case errors.Is(err, reader.ErrEmailTaken):
		logger.Info("admin already exists", "email", email)
		return nil
	case err != nil:
		return fmt.Errorf("create admin: %w", err)
	}
	logger.Info("admin created", "email", email)
	return nil
}

// pick returns up to n distinct ids from ids.
func pick(ids []int64, n int) []int64 {
	if len(ids) == 0 {
		return nil
	}
	n = 1 + rand.Intn(min(n, len(ids)))
	out := make([]int64, 0, n)
	for _, i := range rand.Perm(len(ids))[:n] {
		out = append(out, ids[i])
	}
	return out
}

var genreNames = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}

var authorNames = []string{"Ada Quill", "Bruno Marsh", "Clara Fenn", "Dmitri Vale", "Elif Stone", "Farah Lune", "Gus Ember", "Hana Reed"}

func randomWord() string {
	words := []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	return words[rand.Intn(len(words))]
}
