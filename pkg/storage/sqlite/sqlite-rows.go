package sqlite

import (
	"database/sql"
	"fmt"
)

// Fields maps column names to scan destinations, so that SELECT lists can change order without silently
// shifting values between fields.
type Fields map[string]interface{}

// Collect scans every row into a new T, closing the rows. It returns an empty slice, never nil, without rows.
func Collect[T any](rows *sql.Rows, fields func(*T) Fields) ([]T, error) {
	defer closeRows(rows)

	var items = make([]T, 0)
	columns, err := rows.Columns()
	if err != nil {
		return items, err
	}

	for rows.Next() {
		var item T
		destinations, err := bind(columns, fields(&item))
		if err != nil {
			return items, err
		}
		// return partial results in case of errors
		if err = rows.Scan(destinations...); err != nil {
			return items, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func bind(columns []string, fields Fields) ([]interface{}, error) {
	var destinations = make([]interface{}, len(columns))
	for i, column := range columns {
		destination, found := fields[column]
		if !found {
			return nil, fmt.Errorf("no field for column %q", column)
		}
		destinations[i] = destination
	}
	return destinations, nil
}
