package store

import (
	"cmp"
	"context"
	"slices"

	"libraryapi/internal/genre"

	"github.com/hashicorp/go-memdb"
)

type genreRow struct {
	ID   int64
	Name string
}

// Genres implements genre.Repository. Name uniqueness is checked on every
// write since go-memdb only enforces it on the id index.
type Genres struct {
	m *Memory
}

func nameTaken(txn *memdb.Txn, name string, self int64) (bool, error) {
	obj, err := txn.First(tableGenres, "name", name)
	if err != nil || obj == nil {
		return false, err
	}
	return obj.(*genreRow).ID != self, nil
}

func (g *Genres) Create(ctx context.Context, name string) (genre.Genre, error) {
	txn := g.m.db.Txn(true)
	defer txn.Abort()

	taken, err := nameTaken(txn, name, 0)
	if err != nil {
		return genre.Genre{}, err
	}
	if taken {
		return genre.Genre{}, genre.ErrNameTaken
	}

	row := genreRow{ID: g.m.nextID(tableGenres), Name: name}
	if err := txn.Insert(tableGenres, &row); err != nil {
		return genre.Genre{}, err
	}
	txn.Commit()
	return genre.Genre{ID: row.ID, Name: row.Name, Books: []genre.BookRef{}}, nil
}

func (g *Genres) GetByID(ctx context.Context, id int64) (genre.Genre, error) {
	txn := g.m.db.Txn(false)
	obj, err := txn.First(tableGenres, "id", id)
	if err != nil {
		return genre.Genre{}, err
	}
	if obj == nil {
		return genre.Genre{}, genre.ErrNotFound
	}
	return hydrateGenre(txn, *obj.(*genreRow))
}

func (g *Genres) List(ctx context.Context, skip, limit int) ([]genre.Genre, error) {
	txn := g.m.db.Txn(false)
	it, err := all(txn, tableGenres)
	if err != nil {
		return nil, err
	}
	rows := page(collect(it, func(r genreRow) int64 { return r.ID }), skip, limit)

	out := make([]genre.Genre, 0, len(rows))
	for _, row := range rows {
		gr, err := hydrateGenre(txn, row)
		if err != nil {
			return nil, err
		}
		out = append(out, gr)
	}
	return out, nil
}

func (g *Genres) Update(ctx context.Context, id int64, name string) (genre.Genre, error) {
	txn := g.m.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(tableGenres, "id", id)
	if err != nil {
		return genre.Genre{}, err
	}
	if obj == nil {
		return genre.Genre{}, genre.ErrNotFound
	}
	taken, err := nameTaken(txn, name, id)
	if err != nil {
		return genre.Genre{}, err
	}
	if taken {
		return genre.Genre{}, genre.ErrNameTaken
	}

	row := *obj.(*genreRow)
	row.Name = name
	if err := txn.Insert(tableGenres, &row); err != nil {
		return genre.Genre{}, err
	}
	out, err := hydrateGenre(txn, row)
	if err != nil {
		return genre.Genre{}, err
	}
	txn.Commit()
	return out, nil
}

func (g *Genres) Delete(ctx context.Context, id int64) error {
	txn := g.m.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(tableGenres, "id", id)
	if err != nil {
		return err
	}
	if obj == nil {
		return genre.ErrNotFound
	}
	if _, err := txn.DeleteAll(tableBookGenres, "genre_id", id); err != nil {
		return err
	}
	if err := txn.Delete(tableGenres, obj); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func hydrateGenre(txn *memdb.Txn, row genreRow) (genre.Genre, error) {
	out := genre.Genre{ID: row.ID, Name: row.Name, Books: []genre.BookRef{}}

	it, err := txn.Get(tableBookGenres, "genre_id", row.ID)
	if err != nil {
		return genre.Genre{}, err
	}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		b, err := txn.First(tableBooks, "id", obj.(*bookGenre).BookID)
		if err != nil {
			return genre.Genre{}, err
		}
		if b != nil {
			br := b.(*bookRow)
			out.Books = append(out.Books, genre.BookRef{ID: br.ID, Title: br.Title})
		}
	}
	slices.SortFunc(out.Books, func(x, y genre.BookRef) int { return cmp.Compare(x.ID, y.ID) })
	return out, nil
}
