package appdir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	// Name is the application directory under the user's home
	Name = ".foxfaps"

	DatabaseFile = "database.db"
)

// Directory locates the application data folder, which holds the database file.
type Directory struct {
	Logger logrus.FieldLogger
	Path   string
}

// New resolves <home>/.foxfaps and creates it when missing.
func New(logger logrus.FieldLogger) (dir Directory, err error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return dir, fmt.Errorf("couldn't locate the home directory: %w", err)
	}
	return At(logger, filepath.Join(home, Name))
}

// At uses an explicit location instead of the home directory, mostly for tests and overrides.
func At(logger logrus.FieldLogger, path string) (dir Directory, err error) {
	dir.Logger = logger
	logger.WithField("path", path).Debug("initialising application directory")

	if err = os.MkdirAll(path, 0750); err != nil {
		return dir, fmt.Errorf("couldn't create application directory %q: %w", path, err)
	}

	dir.Path = path
	return dir, nil
}

// Database returns the default database location inside the directory.
func (d Directory) Database() string {
	return filepath.Join(d.Path, DatabaseFile)
}
