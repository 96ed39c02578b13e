package store

import (
	"cmp"
	"context"
	"slices"
	"time"

	"libraryapi/internal/book"
	"libraryapi/internal/platform/date"

	"github.com/hashicorp/go-memdb"
)

type bookRow struct {
	ID              int64
	Title           string
	Description     string
	PublicationDate *time.Time
	AvailableCopies int
}

type bookAuthor struct {
	BookID   int64
	AuthorID int64
}

type bookGenre struct {
	BookID  int64
	GenreID int64
}

// Books implements book.Repository.
type Books struct {
	m *Memory
}

func (b *Books) Create(ctx context.Context, cmd book.CreateCommand) (book.Book, error) {
	txn := b.m.db.Txn(true)
	defer txn.Abort()

	row := bookRow{
		ID:              b.m.nextID(tableBooks),
		Title:           cmd.Title,
		Description:     cmd.Description,
		PublicationDate: cmd.PublicationDate.TimePtr(),
		AvailableCopies: cmd.AvailableCopies,
	}
	if row.AvailableCopies < 0 {
		return book.Book{}, book.ErrNegativeCopies
	}
	if err := txn.Insert(tableBooks, &row); err != nil {
		return book.Book{}, err
	}
	if err := replaceLinks(txn, row.ID, cmd.AuthorIDs, cmd.GenreIDs, true, true); err != nil {
		return book.Book{}, err
	}

	out, err := hydrateBook(txn, row)
	if err != nil {
		return book.Book{}, err
	}
	txn.Commit()
	return out, nil
}

func (b *Books) GetByID(ctx context.Context, id int64) (book.Book, error) {
	txn := b.m.db.Txn(false)
	obj, err := txn.First(tableBooks, "id", id)
	if err != nil {
		return book.Book{}, err
	}
	if obj == nil {
		return book.Book{}, book.ErrNotFound
	}
	return hydrateBook(txn, *obj.(*bookRow))
}

func (b *Books) List(ctx context.Context, skip, limit int) ([]book.Book, error) {
	txn := b.m.db.Txn(false)
	it, err := all(txn, tableBooks)
	if err != nil {
		return nil, err
	}
	rows := page(collect(it, func(r bookRow) int64 { return r.ID }), skip, limit)

	out := make([]book.Book, 0, len(rows))
	for _, row := range rows {
		bk, err := hydrateBook(txn, row)
		if err != nil {
			return nil, err
		}
		out = append(out, bk)
	}
	return out, nil
}

func (b *Books) Update(ctx context.Context, id int64, cmd book.UpdateCommand) (book.Book, error) {
	txn := b.m.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(tableBooks, "id", id)
	if err != nil {
		return book.Book{}, err
	}
	if obj == nil {
		return book.Book{}, book.ErrNotFound
	}
	row := *obj.(*bookRow)

	if cmd.Title != nil {
		row.Title = *cmd.Title
	}
	if cmd.Description != nil {
		row.Description = *cmd.Description
	}
	if cmd.PublicationDate != nil {
		row.PublicationDate = cmd.PublicationDate.TimePtr()
	}
	if cmd.AvailableCopies != nil {
		if *cmd.AvailableCopies < 0 {
			return book.Book{}, book.ErrNegativeCopies
		}
		row.AvailableCopies = *cmd.AvailableCopies
	}
	if err := txn.Insert(tableBooks, &row); err != nil {
		return book.Book{}, err
	}

	var authorIDs, genreIDs []int64
	if cmd.AuthorIDs != nil {
		authorIDs = *cmd.AuthorIDs
	}
	if cmd.GenreIDs != nil {
		genreIDs = *cmd.GenreIDs
	}
	if err := replaceLinks(txn, id, authorIDs, genreIDs, cmd.AuthorIDs != nil, cmd.GenreIDs != nil); err != nil {
		return book.Book{}, err
	}

	out, err := hydrateBook(txn, row)
	if err != nil {
		return book.Book{}, err
	}
	txn.Commit()
	return out, nil
}

func (b *Books) Delete(ctx context.Context, id int64) error {
	txn := b.m.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(tableBooks, "id", id)
	if err != nil {
		return err
	}
	if obj == nil {
		return book.ErrNotFound
	}
	loan, err := txn.First(tableLoans, "book_id", id)
	if err != nil {
		return err
	}
	if loan != nil {
		return book.ErrHasLoans
	}

	if _, err := txn.DeleteAll(tableBookAuthors, "book_id", id); err != nil {
		return err
	}
	if _, err := txn.DeleteAll(tableBookGenres, "book_id", id); err != nil {
		return err
	}
	if err := txn.Delete(tableBooks, obj); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// replaceLinks rewrites the author and genre sets flagged for replacement,
// checking that every referenced row exists.
func replaceLinks(txn *memdb.Txn, bookID int64, authorIDs, genreIDs []int64, authors, genres bool) error {
	if authors {
		if _, err := txn.DeleteAll(tableBookAuthors, "book_id", bookID); err != nil {
			return err
		}
		for _, id := range authorIDs {
			if err := mustExist(txn, tableAuthors, id, book.ErrAuthorNotFound); err != nil {
				return err
			}
			if err := txn.Insert(tableBookAuthors, &bookAuthor{BookID: bookID, AuthorID: id}); err != nil {
				return err
			}
		}
	}
	if genres {
		if _, err := txn.DeleteAll(tableBookGenres, "book_id", bookID); err != nil {
			return err
		}
		for _, id := range genreIDs {
			if err := mustExist(txn, tableGenres, id, book.ErrGenreNotFound); err != nil {
				return err
			}
			if err := txn.Insert(tableBookGenres, &bookGenre{BookID: bookID, GenreID: id}); err != nil {
				return err
			}
		}
	}
	return nil
}

func mustExist(txn *memdb.Txn, table string, id int64, notFound error) error {
	obj, err := txn.First(table, "id", id)
	if err != nil {
		return err
	}
	if obj == nil {
		return notFound
	}
	return nil
}

func hydrateBook(txn *memdb.Txn, row bookRow) (book.Book, error) {
	out := book.Book{
		ID:              row.ID,
		Title:           row.Title,
		Description:     row.Description,
		PublicationDate: date.Ptr(row.PublicationDate),
		AvailableCopies: row.AvailableCopies,
		Authors:         []book.AuthorRef{},
		Genres:          []book.GenreRef{},
	}

	it, err := txn.Get(tableBookAuthors, "book_id", row.ID)
	if err != nil {
		return book.Book{}, err
	}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		a, err := txn.First(tableAuthors, "id", obj.(*bookAuthor).AuthorID)
		if err != nil {
			return book.Book{}, err
		}
		if a != nil {
			ar := a.(*authorRow)
			out.Authors = append(out.Authors, book.AuthorRef{ID: ar.ID, Name: ar.Name})
		}
	}

	it, err = txn.Get(tableBookGenres, "book_id", row.ID)
	if err != nil {
		return book.Book{}, err
	}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		g, err := txn.First(tableGenres, "id", obj.(*bookGenre).GenreID)
		if err != nil {
			return book.Book{}, err
		}
		if g != nil {
			gr := g.(*genreRow)
			out.Genres = append(out.Genres, book.GenreRef{ID: gr.ID, Name: gr.Name})
		}
	}

	slices.SortFunc(out.Authors, func(a, b book.AuthorRef) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(out.Genres, func(a, b book.GenreRef) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
