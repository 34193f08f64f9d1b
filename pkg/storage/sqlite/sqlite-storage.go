package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

const (
	defaultBusyTimeout = 5 * time.Second

	// attempts for a transaction that keeps hitting a locked database after the busy timeout
	lockAttempts = 3
)

// Config locates the database; there's no package level state, so tests can point each storage elsewhere.
type Config struct {
	Path        string
	BusyTimeout time.Duration
}

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	QueryRow(query string, args ...interface{}) *sql.Row
}

// Storage hands out a schema initialised connection, reopening the database when its file goes missing.
type Storage struct {
	config     Config
	logger     logrus.FieldLogger
	mutex      sync.Mutex
	connection *sql.DB
}

// New initialises the database eagerly, so that schema errors halt startup.
func New(logger logrus.FieldLogger, config Config) (*Storage, error) {
	if config.Path == "" {
		return nil, errors.New("database path is required")
	}
	if config.BusyTimeout <= 0 {
		config.BusyTimeout = defaultBusyTimeout
	}

	var storage = &Storage{config: config, logger: logger}
	if _, err := storage.Connection(); err != nil {
		return nil, err
	}
	return storage, nil
}

func (s *Storage) Path() string {
	return s.config.Path
}

// Connection returns the current handle, first (re)creating the directory, file and schema when absent.
func (s *Storage) Connection() (*sql.DB, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.connection != nil && s.exists() {
		return s.connection, nil
	}

	if s.connection != nil {
		s.logger.WithField("path", s.config.Path).Warn("database file vanished, reinitialising")
		_ = s.connection.Close()
		s.connection = nil

		// a leftover write-ahead log would be replayed into the fresh file
		for _, suffix := range []string{"-wal", "-shm"} {
			_ = os.Remove(s.config.Path + suffix)
		}
	}

	connection, err := s.initialise()
	if err != nil {
		return nil, err
	}
	s.connection = connection
	return connection, nil
}

func (s *Storage) initialise() (*sql.DB, error) {
	s.logger.WithField("path", s.config.Path).Info("initialising SQLite DB")

	if !s.inMemory() {
		if err := os.MkdirAll(filepath.Dir(s.config.Path), 0750); err != nil {
			return nil, fmt.Errorf("couldn't create database directory: %w", err)
		}
	}

	connection, err := sql.Open("sqlite3", s.connectionString())
	if err != nil {
		s.logger.WithError(err).Error("error while opening database")
		return nil, err
	}

	// opening the DB will fail silently when the package is compiled without CGO_ENABLED
	if err = connection.Ping(); err != nil {
		_ = connection.Close()
		return nil, fmt.Errorf("couldn't reach database: %w", err)
	}

	if err = ensureSchema(connection); err != nil {
		s.logger.WithError(err).Error("error while building database schema")
		_ = connection.Close()
		return nil, err
	}
	return connection, nil
}

// EnsureSchema creates any missing table; running it repeatedly leaves existing rows untouched.
func (s *Storage) EnsureSchema() error {
	connection, err := s.Connection()
	if err != nil {
		return err
	}
	return ensureSchema(connection)
}

func ensureSchema(connection *sql.DB) error {
	if _, err := connection.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	columns, err := mapColumns(connection, Creators)
	if err != nil {
		return err
	}
	if !columns["rate"] {
		if _, err = connection.Exec(addRateColumn); err != nil {
			return fmt.Errorf("adding creators rate: %w", err)
		}
	}
	return nil
}

// mapColumns lists the column names of a table.
func mapColumns(connection *sql.DB, table string) (columns map[string]bool, err error) {
	rows, err := connection.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	columns = make(map[string]bool)
	var name string
	for rows.Next() {
		if err = rows.Scan(&name); err != nil {
			return columns, err
		}
		columns[name] = true
	}
	return columns, rows.Err()
}

// Transaction runs fn in a single transaction and commits when it returns no error.
// A transaction refused because another process holds the lock is retried a few times.
func (s *Storage) Transaction(fn func(tx *sql.Tx) error) (err error) {
	connection, err := s.Connection()
	if err != nil {
		return err
	}

	for attempt := 1; attempt <= lockAttempts; attempt++ {
		if err = runTransaction(connection, fn); !IsLocked(err) {
			return err
		}
		s.logger.WithError(err).WithField("attempt", attempt).Warn("database locked, retrying transaction")
		time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
	}
	return err
}

func runTransaction(connection *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := connection.Begin()
	if err != nil {
		return err
	}

	// rolling back after a transaction commit will result in a safe NOP
	defer tx.Rollback()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a row by id and then resets the table's AUTOINCREMENT counter, in the same transaction.
// The reset happens even when nothing was deleted. With the sequence entry gone SQLite numbers the next
// row max(id)+1, so an emptied table restarts at 1, but ids of deleted rows can be handed out again and
// collide with orphaned blacklist or price rows still pointing at them.
func (s *Storage) Delete(table string, id int64) (deleted int64, err error) {
	if !tables[table] {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	err = s.Transaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(`DELETE FROM `+table+` WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if deleted, err = result.RowsAffected(); err != nil {
			return err
		}
		return ResetSequence(tx, table)
	})
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{"table": table, "id": id, "deleted": deleted}).Debug("row deleted and sequence reset")
	return deleted, nil
}

func ResetSequence(tx *sql.Tx, table string) error {
	_, err := tx.Exec(`DELETE FROM sqlite_sequence WHERE name = ?`, table)
	return err
}

// IsLocked detects errors caused by a concurrent writer holding the database.
func IsLocked(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}

func (s *Storage) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.logger.Debug("database stopping")
	if s.connection == nil {
		return nil
	}
	var err = s.connection.Close()
	s.connection = nil
	return err
}

func (s *Storage) exists() bool {
	if s.inMemory() {
		return true
	}
	_, err := os.Stat(s.config.Path)
	return err == nil
}

func (s *Storage) inMemory() bool {
	return s.config.Path == ":memory:" || strings.HasPrefix(s.config.Path, "file::memory:")
}

// connectionString disables foreign key enforcement, sets the busy timeout, and takes write locks when
// transactions begin rather than on their first write
func (s *Storage) connectionString() string {
	return fmt.Sprintf("%s?_fk=off&_busy_timeout=%d&_journal_mode=WAL&_txlock=immediate",
		s.config.Path, s.config.BusyTimeout.Milliseconds())
}

func closeRows(rows *sql.Rows) {
	_ = rows.Close()
}
