package links

import (
	"database/sql"

	"github.com/silktrader/foxfaps/pkg/failure"
	"github.com/silktrader/foxfaps/pkg/ntime"
	"github.com/silktrader/foxfaps/pkg/sanitise"
	"github.com/silktrader/foxfaps/pkg/storage/sqlite"
)

type Repository interface {
	Create(url string, source *string, downloaded bool, date *string) (int64, error)
	ReadAll() ([]InterestingLink, error)
	Update(id int64, url string, source *string, downloaded bool, date *string) error
	Delete(id int64) error

	MarkDownloaded(id int64) error
	ReadHistory() ([]LinkHistoryEntry, error)
}

type linkRepository struct {
	storage *sqlite.Storage
}

func NewRepository(storage *sqlite.Storage) Repository {
	return &linkRepository{storage}
}

// Create queues a link; a nil or blank source and date are stored as NULL.
func (lr *linkRepository) Create(url string, source *string, downloaded bool, date *string) (int64, error) {
	const op = "create interesting link"
	data, err := sanitiseLink(url, source, downloaded, date)
	if err != nil {
		return 0, failure.Invalid(op, err)
	}

	connection, err := lr.storage.Connection()
	if err != nil {
		return 0, failure.Store(op, err)
	}

	result, err := connection.Exec(
		"INSERT INTO interesting_links (url, source, downloaded, date) VALUES (?, ?, ?, ?)",
		data.Url, data.Source, data.Downloaded, data.Date)
	if err != nil {
		return 0, failure.Store(op, err)
	}

	id, err := result.LastInsertId()
	return id, failure.Store(op, err)
}

func (lr *linkRepository) ReadAll() ([]InterestingLink, error) {
	const op = "read interesting links"
	connection, err := lr.storage.Connection()
	if err != nil {
		return nil, failure.Store(op, err)
	}

	rows, err := connection.Query("SELECT id, url, source, downloaded, date FROM interesting_links ORDER BY id")
	if err != nil {
		return nil, failure.Store(op, err)
	}

	interestingLinks, err := sqlite.Collect(rows, (*InterestingLink).fields)
	return interestingLinks, failure.Store(op, err)
}

// Update replaces every column, including downloaded, which may go back to false.
func (lr *linkRepository) Update(id int64, url string, source *string, downloaded bool, date *string) error {
	const op = "update interesting link"
	if _, err := sanitise.Id("id", id); err != nil {
		return failure.Invalid(op, err)
	}
	data, err := sanitiseLink(url, source, downloaded, date)
	if err != nil {
		return failure.Invalid(op, err)
	}

	connection, err := lr.storage.Connection()
	if err != nil {
		return failure.Store(op, err)
	}

	res, err := connection.Exec(
		"UPDATE interesting_links SET url = ?, source = ?, downloaded = ?, date = ? WHERE id = ?",
		data.Url, data.Source, data.Downloaded, data.Date, id)
	if err != nil {
		return failure.Store(op, err)
	}
	if affected, e := res.RowsAffected(); e != nil {
		return failure.Store(op, e)
	} else if affected == 0 {
		return failure.Missing(op, "interesting link %d", id)
	}
	return nil
}

// Delete removes the link and resets the table's counter, whether or not the link existed.
func (lr *linkRepository) Delete(id int64) error {
	const op = "delete interesting link"
	if _, err := sanitise.Id("id", id); err != nil {
		return failure.Invalid(op, err)
	}

	deleted, err := lr.storage.Delete(sqlite.InterestingLinks, id)
	if err != nil {
		return failure.Store(op, err)
	}
	if deleted == 0 {
		return failure.Missing(op, "interesting link %d", id)
	}
	return nil
}

// MarkDownloaded flags the link as downloaded and appends it to the link history, dated today.
// Marking a link twice records it twice.
func (lr *linkRepository) MarkDownloaded(id int64) error {
	const op = "mark interesting link downloaded"
	if _, err := sanitise.Id("id", id); err != nil {
		return failure.Invalid(op, err)
	}

	err := lr.storage.Transaction(func(tx *sql.Tx) error {
		res, err := tx.Exec("UPDATE interesting_links SET downloaded = TRUE WHERE id = ?", id)
		if err != nil {
			return err
		}
		if affected, e := res.RowsAffected(); e != nil {
			return e
		} else if affected == 0 {
			return failure.Missing(op, "interesting link %d", id)
		}

		_, err = tx.Exec(`
			INSERT INTO link_history (url, source, downloaded, date)
			SELECT url, source, TRUE, ? FROM interesting_links WHERE id = ?`,
			ntime.Today(), id)
		return err
	})
	return failure.Store(op, err)
}

func (lr *linkRepository) ReadHistory() ([]LinkHistoryEntry, error) {
	const op = "read link history"
	connection, err := lr.storage.Connection()
	if err != nil {
		return nil, failure.Store(op, err)
	}

	rows, err := connection.Query("SELECT id, url, source, downloaded, date FROM link_history ORDER BY id")
	if err != nil {
		return nil, failure.Store(op, err)
	}

	entries, err := sqlite.Collect(rows, (*LinkHistoryEntry).fields)
	return entries, failure.Store(op, err)
}
