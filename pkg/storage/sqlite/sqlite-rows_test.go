package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type creatorRow struct {
	Id   int64
	Name string
	Rate int
}

func (r *creatorRow) fields() Fields {
	return Fields{"id": &r.Id, "name": &r.Name, "rate": &r.Rate}
}

func TestCollectMatchesColumnsByName(t *testing.T) {
	var storage = newTestStorage(t)
	insertCreator(t, storage, "First")
	insertCreator(t, storage, "Second")
	connection, err := storage.Connection()
	require.NoError(t, err)

	// columns deliberately out of struct order
	rows, err := connection.Query(`SELECT rate, name, id FROM creators ORDER BY id`)
	require.NoError(t, err)
	creators, err := Collect(rows, (*creatorRow).fields)
	require.NoError(t, err)

	assert.Equal(t, []creatorRow{{1, "First", 5}, {2, "Second", 5}}, creators)
}

func TestCollectEmpty(t *testing.T) {
	var storage = newTestStorage(t)
	connection, err := storage.Connection()
	require.NoError(t, err)

	rows, err := connection.Query(`SELECT id, name, rate FROM creators`)
	require.NoError(t, err)
	creators, err := Collect(rows, (*creatorRow).fields)
	require.NoError(t, err)
	assert.NotNil(t, creators)
	assert.Empty(t, creators)
}

func TestCollectRejectsUnmappedColumns(t *testing.T) {
	var storage = newTestStorage(t)
	insertCreator(t, storage, "First")
	connection, err := storage.Connection()
	require.NoError(t, err)

	rows, err := connection.Query(`SELECT id, name, homepage FROM creators`)
	require.NoError(t, err)
	_, err = Collect(rows, (*creatorRow).fields)
	assert.EqualError(t, err, `no field for column "homepage"`)
}
