package blacklist

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silktrader/foxfaps/pkg/creators"
	"github.com/silktrader/foxfaps/pkg/failure"
	"github.com/silktrader/foxfaps/pkg/storage/sqlite"
)

type fixture struct {
	blacklist Repository
	creators  creators.Repository
	storage   *sqlite.Storage
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	logger, _ := test.NewNullLogger()
	storage, err := sqlite.New(logger, sqlite.Config{Path: filepath.Join(t.TempDir(), "database.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })
	return fixture{NewRepository(storage), creators.NewRepository(storage), storage}
}

func (f fixture) creator(t *testing.T, name string) int64 {
	t.Helper()
	id, err := f.creators.Create(name, "https://example.com", 5)
	require.NoError(t, err)
	return id
}

func (f fixture) storedRows(t *testing.T) (count int) {
	t.Helper()
	connection, err := f.storage.Connection()
	require.NoError(t, err)
	require.NoError(t, connection.QueryRow("SELECT count(*) FROM blacklisted_creators").Scan(&count))
	return count
}

func TestCreateResolvesCreatorName(t *testing.T) {
	var f = newFixture(t)
	var creatorId = f.creator(t, "Fox Studio")

	id, err := f.blacklist.Create(creatorId, " reposts stolen work ", "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	entries, err := f.blacklist.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []BlacklistedCreatorView{{
		BlacklistedCreator: BlacklistedCreator{Id: 1, CreatorId: creatorId, Reason: "reposts stolen work", Date: "2024-05-01"},
		Name:               "Fox Studio",
	}}, entries)
}

func TestCreateRequiresExistingCreator(t *testing.T) {
	var f = newFixture(t)

	_, err := f.blacklist.Create(42, "unknown", "2024-05-01")
	assert.True(t, failure.Is(err, failure.InvalidReference), err)
	assert.ErrorIs(t, err, failure.ErrInvalidReference)
	assert.Equal(t, 0, f.storedRows(t))
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	var f = newFixture(t)
	var creatorId = f.creator(t, "Fox")

	tests := []struct {
		name      string
		creatorId int64
		reason    string
		date      string
	}{
		{"url in reason", creatorId, "see https://example.com", "2024-05-01"},
		{"punctuation in reason", creatorId, "spam!", "2024-05-01"},
		{"malformed date", creatorId, "spam", "01/05/2024"},
		{"missing date", creatorId, "spam", ""},
		{"zero creator", 0, "spam", "2024-05-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.blacklist.Create(tt.creatorId, tt.reason, tt.date)
			assert.True(t, failure.Is(err, failure.Validation), err)
		})
	}
	assert.Equal(t, 0, f.storedRows(t))
}

func TestDeletedCreatorLeavesOrphan(t *testing.T) {
	var f = newFixture(t)
	var kept = f.creator(t, "Kept")
	var removed = f.creator(t, "Removed")

	_, err := f.blacklist.Create(kept, "first", "2024-05-01")
	require.NoError(t, err)
	orphanId, err := f.blacklist.Create(removed, "second", "2024-05-02")
	require.NoError(t, err)

	_, err = f.creators.Delete(removed)
	require.NoError(t, err)

	// the row survives in storage but the join drops it
	assert.Equal(t, 2, f.storedRows(t))
	entries, err := f.blacklist.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Kept", entries[0].Name)

	orphans, err := f.blacklist.ReadOrphans()
	require.NoError(t, err)
	assert.Equal(t, []BlacklistedCreator{{Id: orphanId, CreatorId: removed, Reason: "second", Date: "2024-05-02"}}, orphans)
}

func TestRecycledCreatorIdAdoptsOrphan(t *testing.T) {
	var f = newFixture(t)
	var first = f.creator(t, "First")

	_, err := f.blacklist.Create(first, "old grudge", "2024-05-01")
	require.NoError(t, err)
	_, err = f.creators.Delete(first)
	require.NoError(t, err)

	// the counter reset hands out the same id to an unrelated creator
	var second = f.creator(t, "Second")
	assert.Equal(t, first, second)

	entries, err := f.blacklist.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Second", entries[0].Name)
}

func TestUpdate(t *testing.T) {
	var f = newFixture(t)
	var fox = f.creator(t, "Fox")
	var wolf = f.creator(t, "Wolf")
	id, err := f.blacklist.Create(fox, "spam", "2024-05-01")
	require.NoError(t, err)

	require.NoError(t, f.blacklist.Update(id, wolf, "moved", "2024-06-01"))
	entries, err := f.blacklist.ReadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Wolf", entries[0].Name)
	assert.Equal(t, "moved", entries[0].Reason)

	err = f.blacklist.Update(id, 99, "moved", "2024-06-01")
	assert.True(t, failure.Is(err, failure.InvalidReference))

	err = f.blacklist.Update(id+10, fox, "moved", "2024-06-01")
	assert.True(t, failure.Is(err, failure.NotFound))

	err = f.blacklist.Update(id, fox, "moved?", "2024-06-01")
	assert.True(t, failure.Is(err, failure.Validation))

	// nothing changed by the failed attempts
	entries, err = f.blacklist.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, wolf, entries[0].CreatorId)
	assert.Equal(t, "2024-06-01", entries[0].Date)
}

func TestDelete(t *testing.T) {
	var f = newFixture(t)
	var fox = f.creator(t, "Fox")
	a, err := f.blacklist.Create(fox, "a", "2024-05-01")
	require.NoError(t, err)
	b, err := f.blacklist.Create(fox, "b", "2024-05-01")
	require.NoError(t, err)

	require.NoError(t, f.blacklist.Delete(a))
	require.NoError(t, f.blacklist.Delete(b))
	assert.True(t, failure.Is(f.blacklist.Delete(b), failure.NotFound))
	assert.True(t, failure.Is(f.blacklist.Delete(0), failure.Validation))

	id, err := f.blacklist.Create(fox, "c", "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}
