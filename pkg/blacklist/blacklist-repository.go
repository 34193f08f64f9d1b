package blacklist

import (
	"database/sql"

	"github.com/silktrader/foxfaps/pkg/creators"
	"github.com/silktrader/foxfaps/pkg/failure"
	"github.com/silktrader/foxfaps/pkg/sanitise"
	"github.com/silktrader/foxfaps/pkg/storage/sqlite"
)

type Repository interface {
	Create(creatorId int64, reason, date string) (int64, error)
	ReadAll() ([]BlacklistedCreatorView, error)
	ReadOrphans() ([]BlacklistedCreator, error)
	Update(id, creatorId int64, reason, date string) error
	Delete(id int64) error
}

type blacklistRepository struct {
	storage *sqlite.Storage
}

func NewRepository(storage *sqlite.Storage) Repository {
	return &blacklistRepository{storage}
}

// Create blacklists an existing creator. The existence check and the insert share a transaction.
func (br *blacklistRepository) Create(creatorId int64, reason, date string) (id int64, err error) {
	const op = "create blacklisted creator"
	data, err := sanitiseEntry(creatorId, reason, date)
	if err != nil {
		return 0, failure.Invalid(op, err)
	}

	err = br.storage.Transaction(func(tx *sql.Tx) error {
		if err := requireCreator(tx, op, data.CreatorId); err != nil {
			return err
		}

		result, err := tx.Exec(
			"INSERT INTO blacklisted_creators (creator_id, reason, date) VALUES (?, ?, ?)",
			data.CreatorId, data.Reason, data.Date)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return 0, failure.Store(op, err)
	}
	return id, nil
}

// ReadAll joins each entry to its creator. Entries whose creator was deleted are dropped from the results,
// though they remain stored; see ReadOrphans.
func (br *blacklistRepository) ReadAll() ([]BlacklistedCreatorView, error) {
	const op = "read blacklisted creators"
	connection, err := br.storage.Connection()
	if err != nil {
		return nil, failure.Store(op, err)
	}

	rows, err := connection.Query(`
		SELECT blacklisted_creators.id AS id, creator_id, creators.name AS name,
		       coalesce(reason, '') AS reason, date
		FROM blacklisted_creators JOIN creators ON blacklisted_creators.creator_id = creators.id
		ORDER BY blacklisted_creators.id`)
	if err != nil {
		return nil, failure.Store(op, err)
	}

	entries, err := sqlite.Collect(rows, (*BlacklistedCreatorView).fields)
	return entries, failure.Store(op, err)
}

// ReadOrphans lists entries referencing creators that no longer exist.
func (br *blacklistRepository) ReadOrphans() ([]BlacklistedCreator, error) {
	const op = "read orphaned blacklisted creators"
	connection, err := br.storage.Connection()
	if err != nil {
		return nil, failure.Store(op, err)
	}

	rows, err := connection.Query(`
		SELECT id, creator_id, coalesce(reason, '') AS reason, date FROM blacklisted_creators
		WHERE creator_id NOT IN (SELECT id FROM creators)
		ORDER BY id`)
	if err != nil {
		return nil, failure.Store(op, err)
	}

	orphans, err := sqlite.Collect(rows, (*BlacklistedCreator).fields)
	return orphans, failure.Store(op, err)
}

// Update replaces the whole entry; like Create it refuses creators that don't exist.
func (br *blacklistRepository) Update(id, creatorId int64, reason, date string) error {
	const op = "update blacklisted creator"
	if _, err := sanitise.Id("id", id); err != nil {
		return failure.Invalid(op, err)
	}
	data, err := sanitiseEntry(creatorId, reason, date)
	if err != nil {
		return failure.Invalid(op, err)
	}

	err = br.storage.Transaction(func(tx *sql.Tx) error {
		if err := requireCreator(tx, op, data.CreatorId); err != nil {
			return err
		}

		res, err := tx.Exec(
			"UPDATE blacklisted_creators SET creator_id = ?, reason = ?, date = ? WHERE id = ?",
			data.CreatorId, data.Reason, data.Date, id)
		if err != nil {
			return err
		}
		if affected, e := res.RowsAffected(); e != nil {
			return e
		} else if affected == 0 {
			return failure.Missing(op, "blacklisted creator %d", id)
		}
		return nil
	})
	return failure.Store(op, err)
}

// Delete removes the entry and resets the table's counter, whether or not the entry existed.
func (br *blacklistRepository) Delete(id int64) error {
	const op = "delete blacklisted creator"
	if _, err := sanitise.Id("id", id); err != nil {
		return failure.Invalid(op, err)
	}

	deleted, err := br.storage.Delete(sqlite.BlacklistedCreators, id)
	if err != nil {
		return failure.Store(op, err)
	}
	if deleted == 0 {
		return failure.Missing(op, "blacklisted creator %d", id)
	}
	return nil
}

func requireCreator(tx *sql.Tx, op string, creatorId int64) error {
	exists, err := creators.Exists(tx, creatorId)
	if err != nil {
		return err
	}
	if !exists {
		return failure.Dangling(op, creatorId)
	}
	return nil
}
