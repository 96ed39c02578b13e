// Package store holds the in-memory storage backend. It implements the same
// repository ports as the Postgres repositories so the API can run without a
// database (STORAGE=memory) and tests can exercise real storage behavior.
package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"libraryapi/internal/author"
	"libraryapi/internal/book"
	"libraryapi/internal/genre"
	"libraryapi/internal/loan"
	"libraryapi/internal/reader"

	"github.com/hashicorp/go-memdb"
)

var (
	_ reader.Repository = (*Readers)(nil)
	_ book.Repository   = (*Books)(nil)
	_ author.Repository = (*Authors)(nil)
	_ genre.Repository  = (*Genres)(nil)
	_ loan.Store        = (*Loans)(nil)
)

const (
	tableReaders     = "readers"
	tableBooks       = "books"
	tableAuthors     = "authors"
	tableGenres      = "genres"
	tableBookAuthors = "book_authors"
	tableBookGenres  = "book_genres"
	tableLoans       = "loans"
)

func idIndex() *memdb.IndexSchema {
	return &memdb.IndexSchema{
		Name:    "id",
		Unique:  true,
		Indexer: &memdb.IntFieldIndex{Field: "ID"},
	}
}

func intIndex(name, field string) *memdb.IndexSchema {
	return &memdb.IndexSchema{
		Name:    name,
		Indexer: &memdb.IntFieldIndex{Field: field},
	}
}

func linkTable(name, ownerField, targetField, targetIndex string) *memdb.TableSchema {
	return &memdb.TableSchema{
		Name: name,
		Indexes: map[string]*memdb.IndexSchema{
			"id": {
				Name:   "id",
				Unique: true,
				Indexer: &memdb.CompoundIndex{
					Indexes: []memdb.Indexer{
						&memdb.IntFieldIndex{Field: ownerField},
						&memdb.IntFieldIndex{Field: targetField},
					},
				},
			},
			"book_id":   intIndex("book_id", ownerField),
			targetIndex: intIndex(targetIndex, targetField),
		},
	}
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableReaders: {
				Name: tableReaders,
				Indexes: map[string]*memdb.IndexSchema{
					"id": idIndex(),
					// go-memdb does not enforce uniqueness on secondary
					// indexes; Readers checks it before every write.
					"email": {
						Name:    "email",
						Indexer: &memdb.StringFieldIndex{Field: "Email", Lowercase: true},
					},
				},
			},
			tableBooks:   {Name: tableBooks, Indexes: map[string]*memdb.IndexSchema{"id": idIndex()}},
			tableAuthors: {Name: tableAuthors, Indexes: map[string]*memdb.IndexSchema{"id": idIndex()}},
			tableGenres: {
				Name: tableGenres,
				Indexes: map[string]*memdb.IndexSchema{
					"id": idIndex(),
					"name": {
						Name:    "name",
						Indexer: &memdb.StringFieldIndex{Field: "Name"},
					},
				},
			},
			tableBookAuthors: linkTable(tableBookAuthors, "BookID", "AuthorID", "author_id"),
			tableBookGenres:  linkTable(tableBookGenres, "BookID", "GenreID", "genre_id"),
			tableLoans: {
				Name: tableLoans,
				Indexes: map[string]*memdb.IndexSchema{
					"id":        idIndex(),
					"reader_id": intIndex("reader_id", "ReaderID"),
					"book_id":   intIndex("book_id", "BookID"),
				},
			},
		},
	}
}

// Memory is a go-memdb database holding every table of the service. Write
// transactions are serialized by go-memdb, which is what gives the loan
// engine its row-lock semantics here.
type Memory struct {
	db  *memdb.MemDB
	ids map[string]*atomic.Int64
}

func NewMemory() (*Memory, error) {
	s := schema()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid in-memory schema: %w", err)
	}
	db, err := memdb.NewMemDB(s)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize in-memory database: %w", err)
	}

	ids := make(map[string]*atomic.Int64, len(s.Tables))
	for name := range s.Tables {
		ids[name] = new(atomic.Int64)
	}
	return &Memory{db: db, ids: ids}, nil
}

func (m *Memory) nextID(table string) int64 {
	return m.ids[table].Add(1)
}

// Ping reports readiness; the in-memory backend is always reachable.
func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *Memory) Readers() *Readers { return &Readers{m: m} }
func (m *Memory) Books() *Books     { return &Books{m: m} }
func (m *Memory) Authors() *Authors { return &Authors{m: m} }
func (m *Memory) Genres() *Genres   { return &Genres{m: m} }
func (m *Memory) Loans() *Loans     { return &Loans{m: m} }

// collect drains an iterator into a slice sorted by id.
func collect[T any](it memdb.ResultIterator, id func(T) int64) []T {
	var out []T
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, *obj.(*T))
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return out
}

func page[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 {
		end = min(end, skip+limit)
	}
	return items[skip:end]
}

func all(txn *memdb.Txn, table string) (memdb.ResultIterator, error) {
	return txn.Get(table, "id")
}
