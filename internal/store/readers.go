package store

import (
	"context"
	"strings"

	"libraryapi/internal/reader"

	"github.com/hashicorp/go-memdb"
)

// Readers implements reader.Repository. Rows are stored as *reader.Reader
// and replaced, never mutated, on update.
type Readers struct {
	m *Memory
}

func emailOwner(txn *memdb.Txn, email string) (int64, bool, error) {
	obj, err := txn.First(tableReaders, "email", strings.ToLower(email))
	if err != nil || obj == nil {
		return 0, false, err
	}
	return obj.(*reader.Reader).ID, true, nil
}

func (r *Readers) Create(ctx context.Context, rd *reader.Reader) error {
	txn := r.m.db.Txn(true)
	defer txn.Abort()

	_, taken, err := emailOwner(txn, rd.Email)
	if err != nil {
		return err
	}
	if taken {
		return reader.ErrEmailTaken
	}

	rd.ID = r.m.nextID(tableReaders)
	row := *rd
	if err := txn.Insert(tableReaders, &row); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (r *Readers) GetByID(ctx context.Context, id int64) (reader.Reader, error) {
	txn := r.m.db.Txn(false)
	obj, err := txn.First(tableReaders, "id", id)
	if err != nil {
		return reader.Reader{}, err
	}
	if obj == nil {
		return reader.Reader{}, reader.ErrNotFound
	}
	return *obj.(*reader.Reader), nil
}

func (r *Readers) GetByEmail(ctx context.Context, email string) (reader.Reader, error) {
	txn := r.m.db.Txn(false)
	obj, err := txn.First(tableReaders, "email", strings.ToLower(email))
	if err != nil {
		return reader.Reader{}, err
	}
	if obj == nil {
		return reader.Reader{}, reader.ErrNotFound
	}
	return *obj.(*reader.Reader), nil
}

func (r *Readers) List(ctx context.Context, skip, limit int) ([]reader.Reader, error) {
	txn := r.m.db.Txn(false)
	it, err := all(txn, tableReaders)
	if err != nil {
		return nil, err
	}
	rows := collect(it, func(rd reader.Reader) int64 { return rd.ID })
	return page(rows, skip, limit), nil
}

func (r *Readers) Update(ctx context.Context, id int64, ch reader.Changes) (reader.Reader, error) {
	txn := r.m.db.Txn(true)
	defer txn.Abort()

	obj, err := txn.First(tableReaders, "id", id)
	if err != nil {
		return reader.Reader{}, err
	}
	if obj == nil {
		return reader.Reader{}, reader.ErrNotFound
	}
	row := *obj.(*reader.Reader)

	if ch.Email != nil {
		owner, taken, err := emailOwner(txn, *ch.Email)
		if err != nil {
			return reader.Reader{}, err
		}
		if taken && owner != id {
			return reader.Reader{}, reader.ErrEmailTaken
		}
		row.Email = *ch.Email
	}
	if ch.Name != nil {
		row.Name = *ch.Name
	}
	if ch.PasswordHash != nil {
		row.PasswordHash = *ch.PasswordHash
	}

	if err := txn.Insert(tableReaders, &row); err != nil {
		return reader.Reader{}, err
	}
	txn.Commit()
	return row, nil
}
