package creators

import (
	"database/sql"
	"errors"

	"github.com/silktrader/foxfaps/pkg/failure"
	"github.com/silktrader/foxfaps/pkg/sanitise"
	"github.com/silktrader/foxfaps/pkg/storage/sqlite"
)

type Repository interface {
	Create(name, homepage string, rate int) (int64, error)
	ReadAll() ([]Creator, error)
	Update(id int64, name, homepage string, rate int) error
	Delete(id int64) (int64, error)
	Exists(id int64) (bool, error)
}

type creatorRepository struct {
	storage *sqlite.Storage
}

func NewRepository(storage *sqlite.Storage) Repository {
	return &creatorRepository{storage}
}

// Create validates every field before touching storage and returns the new creator's id.
func (cr *creatorRepository) Create(name, homepage string, rate int) (int64, error) {
	const op = "create creator"
	data, err := sanitiseCreator(name, homepage, rate)
	if err != nil {
		return 0, failure.Invalid(op, err)
	}

	connection, err := cr.storage.Connection()
	if err != nil {
		return 0, failure.Store(op, err)
	}

	result, err := connection.Exec(
		"INSERT INTO creators (name, homepage, rate) VALUES (?, ?, ?)",
		data.Name, data.Homepage, data.Rate)
	if err != nil {
		return 0, failure.Store(op, err)
	}

	id, err := result.LastInsertId()
	return id, failure.Store(op, err)
}

// ReadAll returns creators in the store's default order; an empty table yields an empty slice.
func (cr *creatorRepository) ReadAll() ([]Creator, error) {
	const op = "read creators"
	connection, err := cr.storage.Connection()
	if err != nil {
		return nil, failure.Store(op, err)
	}

	rows, err := connection.Query("SELECT id, name, homepage, rate FROM creators")
	if err != nil {
		return nil, failure.Store(op, err)
	}

	creators, err := sqlite.Collect(rows, (*Creator).fields)
	return creators, failure.Store(op, err)
}

// Update replaces the whole row and reports a missing creator as failure.NotFound.
func (cr *creatorRepository) Update(id int64, name, homepage string, rate int) error {
	const op = "update creator"
	if _, err := sanitise.Id("id", id); err != nil {
		return failure.Invalid(op, err)
	}
	data, err := sanitiseCreator(name, homepage, rate)
	if err != nil {
		return failure.Invalid(op, err)
	}

	connection, err := cr.storage.Connection()
	if err != nil {
		return failure.Store(op, err)
	}

	res, err := connection.Exec(
		"UPDATE creators SET name = ?, homepage = ?, rate = ? WHERE id = ?",
		data.Name, data.Homepage, data.Rate, id)
	if err != nil {
		return failure.Store(op, err)
	}
	if affected, e := res.RowsAffected(); e != nil {
		return failure.Store(op, e)
	} else if affected == 0 {
		return failure.Missing(op, "creator %d", id)
	}
	return nil
}

// Delete removes a creator and resets the creators counter, even when no row matched.
// Blacklist and price rows referencing the creator are left in place; once the counter is reset a new
// creator may receive the same id and silently inherit them.
func (cr *creatorRepository) Delete(id int64) (int64, error) {
	const op = "delete creator"
	if _, err := sanitise.Id("id", id); err != nil {
		return 0, failure.Invalid(op, err)
	}

	deleted, err := cr.storage.Delete(sqlite.Creators, id)
	if err != nil {
		return 0, failure.Store(op, err)
	}
	if deleted == 0 {
		return 0, failure.Missing(op, "creator %d", id)
	}
	return deleted, nil
}

func (cr *creatorRepository) Exists(id int64) (bool, error) {
	connection, err := cr.storage.Connection()
	if err != nil {
		return false, failure.Store("find creator", err)
	}
	return Exists(connection, id)
}

// Exists checks a creator id against the table, either directly or within a transaction. Repositories
// call it before inserting references because the connection doesn't enforce foreign keys.
func Exists(querier sqlite.Querier, id int64) (exists bool, err error) {
	err = querier.QueryRow("SELECT TRUE FROM creators WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return exists, failure.Store("find creator", err)
}
