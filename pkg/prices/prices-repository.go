package prices

import (
	"database/sql"

	"github.com/silktrader/foxfaps/pkg/creators"
	"github.com/silktrader/foxfaps/pkg/failure"
	"github.com/silktrader/foxfaps/pkg/sanitise"
	"github.com/silktrader/foxfaps/pkg/storage/sqlite"
)

type Repository interface {
	Record(creatorId int64, price float64, date string) (int64, error)
	ReadAll() ([]PricePoint, error)
	ReadByCreator(creatorId int64) ([]PricePoint, error)
}

type priceRepository struct {
	storage *sqlite.Storage
}

func NewRepository(storage *sqlite.Storage) Repository {
	return &priceRepository{storage}
}

// Record appends a price point for an existing creator.
func (pr *priceRepository) Record(creatorId int64, price float64, date string) (id int64, err error) {
	const op = "record price"
	point, err := sanitisePoint(creatorId, price, date)
	if err != nil {
		return 0, failure.Invalid(op, err)
	}

	err = pr.storage.Transaction(func(tx *sql.Tx) error {
		exists, err := creators.Exists(tx, point.CreatorId)
		if err != nil {
			return err
		}
		if !exists {
			return failure.Dangling(op, point.CreatorId)
		}

		result, err := tx.Exec(
			"INSERT INTO price_history (creator_id, price, date) VALUES (?, ?, ?)",
			point.CreatorId, point.Price, point.Date)
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

// ReadAll returns every recorded point, orphans included, oldest first.
func (pr *priceRepository) ReadAll() ([]PricePoint, error) {
	const op = "read prices"
	connection, err := pr.storage.Connection()
	if err != nil {
		return nil, failure.Store(op, err)
	}

	rows, err := connection.Query("SELECT id, creator_id, price, date FROM price_history ORDER BY date, id")
	if err != nil {
		return nil, failure.Store(op, err)
	}

	points, err := sqlite.Collect(rows, (*PricePoint).fields)
	return points, failure.Store(op, err)
}

// ReadByCreator doesn't require the creator to exist, so the history of a deleted creator stays readable.
func (pr *priceRepository) ReadByCreator(creatorId int64) ([]PricePoint, error) {
	const op = "read creator prices"
	if _, err := sanitise.Id("creator_id", creatorId); err != nil {
		return nil, failure.Invalid(op, err)
	}

	connection, err := pr.storage.Connection()
	if err != nil {
		return nil, failure.Store(op, err)
	}

	rows, err := connection.Query(
		"SELECT id, creator_id, price, date FROM price_history WHERE creator_id = ? ORDER BY date, id", creatorId)
	if err != nil {
		return nil, failure.Store(op, err)
	}

	points, err := sqlite.Collect(rows, (*PricePoint).fields)
	return points, failure.Store(op, err)
}
