package store

import (
	"cmp"
	"context"
	"slices"
	"time"

	"libraryapi/internal/author"
	"libraryapi/internal/platform/date"

	"github.com/hashicorp/go-memdb"
)

type authorRow struct {
	ID          int64
	Name        string
	Biography   string
	DateOfBirth *time.Time
}

// Authors implements author.Repository.
type Authors struct {
	m *Memory
}

func (a *Authors) Create(ctx context.Context, cmd author.CreateCommand) (author.Author, error) {
	txn := a.m.db.Txn(true)
	defer txn.Abort()

	row := authorRow{
		ID:          a.m.nextID(tableAuthors),
		Name:        cmd.Name,
		Biography:   cmd.Biography,
		DateOfBirth: cmd.DateOfBirth.TimePtr(),
	}
	if err := txn.Insert(tableAuthors, &row); err != nil {
		return author.Author{}, err
	}
	txn.Commit()
	return hydrateAuthor(a.m.db.Txn(false), row)
}

func (a *Authors) GetByID(ctx context.Context, id int64) (author.Author, error) {
	txn := a.m.db.Txn(false)
	obj, err := txn.First(tableAuthors, "id", id)
	if err != nil {
		return author.Author{}, err
	}
	if obj == nil {
		return author.Author{}, author.ErrNotFound
	}
	return hydrateAuthor(txn, *obj.(*authorRow))
}

func (a *Authors) List(ctx context.Context, skip, limit int) ([]author.Author, error) {
	txn := a.m.db.Txn(false)
	it, err := all(txn, tableAuthors)
	if err != nil {
		return nil, err
	}
	rows := page(collect(it, func(r authorRow) int64 { return r.ID }), skip, limit)

	out := make([]author.Author, 0, len(rows))
	for _, row := range rows {
		au, err := hydrateAuthor(txn, row)
		if err != nil {
			return nil, err
		}
		out = append(out, au)
	}
	return out, nil
}

func (a *Authors) Update(ctx context.Context, id int64, cmd author.UpdateCommand) (author.Author, error) {
	txn := a.m.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(tableAuthors, "id", id)
	if err != nil {
		return author.Author{}, err
	}
	if obj == nil {
		return author.Author{}, author.ErrNotFound
	}
	row := *obj.(*authorRow)
	if cmd.Name != nil {
		row.Name = *cmd.Name
	}
	if cmd.Biography != nil {
		row.Biography = *cmd.Biography
	}
	if cmd.DateOfBirth != nil {
		row.DateOfBirth = cmd.DateOfBirth.TimePtr()
	}
	if err := txn.Insert(tableAuthors, &row); err != nil {
		return author.Author{}, err
	}

	out, err := hydrateAuthor(txn, row)
	if err != nil {
		return author.Author{}, err
	}
	txn.Commit()
	return out, nil
}

func (a *Authors) Delete(ctx context.Context, id int64) error {
	txn := a.m.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(tableAuthors, "id", id)
	if err != nil {
		return err
	}
	if obj == nil {
		return author.ErrNotFound
	}
	if _, err := txn.DeleteAll(tableBookAuthors, "author_id", id); err != nil {
		return err
	}
	if err := txn.Delete(tableAuthors, obj); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func hydrateAuthor(txn *memdb.Txn, row authorRow) (author.Author, error) {
	out := author.Author{
		ID:          row.ID,
		Name:        row.Name,
		Biography:   row.Biography,
		DateOfBirth: date.Ptr(row.DateOfBirth),
		Books:       []author.BookRef{},
	}

	it, err := txn.Get(tableBookAuthors, "author_id", row.ID)
	if err != nil {
		return author.Author{}, err
	}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		b, err := txn.First(tableBooks, "id", obj.(*bookAuthor).BookID)
		if err != nil {
			return author.Author{}, err
		}
		if b != nil {
			br := b.(*bookRow)
			out.Books = append(out.Books, author.BookRef{ID: br.ID, Title: br.Title})
		}
	}
	slices.SortFunc(out.Books, func(x, y author.BookRef) int { return cmp.Compare(x.ID, y.ID) })
	return out, nil
}
