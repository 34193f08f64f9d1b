/*
Webapi is the executable for the local persistence service of the desktop client.
It opens (creating it when needed) the SQLite store and serves the creators, blacklist, interesting links and
price history repositories as a JSON API bound to the loopback interface.

Usage:

	webapi [flags]

Flags and configurations are handled automatically by the code in `load-configuration.go`.

Return values (exit codes):

	0
		The program ended successfully (no errors, stopped by signal)

	> 0
		The program ended due to an error

Note that this program creates missing tables, and adds columns missing from older database files, on startup.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ardanlabs/conf"
	"github.com/sirupsen/logrus"

	"github.com/silktrader/foxfaps/pkg/blacklist"
	"github.com/silktrader/foxfaps/pkg/creators"
	"github.com/silktrader/foxfaps/pkg/links"
	"github.com/silktrader/foxfaps/pkg/prices"
	"github.com/silktrader/foxfaps/pkg/rest"
	"github.com/silktrader/foxfaps/pkg/storage/appdir"
	"github.com/silktrader/foxfaps/pkg/storage/sqlite"
)

// main is the program entry point. The only purpose of this function is to call run() and set the exit code if there is
// any error
func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error: ", err)
		os.Exit(1)
	}
}

// run executes the program. The body of this function should perform the following steps:
// * reads the configuration
// * creates and configure the logger
// * opens the database, creating the application directory and schema when missing
// * registers the repositories' handlers
// * starts the web server
// * waits for any termination event: SIGTERM signal (UNIX), non-recoverable server error, etc.
// * closes the web server
func run() error {
	// Load Configuration and defaults
	cfg, err := loadConfiguration(os.Args[1:])
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			return nil
		}
		return err
	}

	// Init logging
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	logger.Infof("application initializing")

	var path = cfg.DB.Filename
	if path == "" {
		directory, err := appdir.New(logger)
		if err != nil {
			logger.WithError(err).Error("error locating the application directory")
			return fmt.Errorf("locating the application directory: %w", err)
		}
		path = directory.Database()
	}

	// initialise database before registering handlers for an immediate exit in case of issues
	storage, err := sqlite.New(logger, sqlite.Config{Path: path, BusyTimeout: cfg.DB.BusyTimeout})
	if err != nil {
		logger.WithError(err).Error("error initialising storage")
		return fmt.Errorf("error while initialising storage: %w", err)
	}
	defer storage.Close()

	// Start (main) API server
	logger.Info("initializing API server")

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	handler, err := buildHandler(logger, storage)
	if err != nil {
		logger.WithError(err).Error("error creating the API server instance")
		return fmt.Errorf("creating the API server instance: %w", err)
	}

	// create the API server
	server := http.Server{
		Addr:              cfg.Web.APIHost,
		Handler:           handler,
		ReadTimeout:       cfg.Web.ReadTimeout,
		ReadHeaderTimeout: cfg.Web.ReadTimeout,
		WriteTimeout:      cfg.Web.WriteTimeout,
	}

	// Start the service listening for requests in a separate goroutine
	go func() {
		logger.Infof("API listening on %s", server.Addr)
		serverErrors <- server.ListenAndServe()
		logger.Infof("stopping API server")
	}()

	// Waiting for shutdown signal or POSIX signals
	select {
	case err := <-serverErrors:
		// Non-recoverable server error
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("signal %v received, start shutdown", sig)

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and load shed.
		err = server.Shutdown(ctx)
		if err != nil {
			logger.WithError(err).Warning("error during graceful shutdown of HTTP server")
			err = server.Close()
		}

		if err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// buildHandler wires every repository to the same storage and registers their routes.
func buildHandler(logger logrus.FieldLogger, storage *sqlite.Storage) (http.Handler, error) {
	e, err := rest.New(rest.Config{
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	creators.RegisterHandlers(e, creators.NewRepository(storage))
	blacklist.RegisterHandlers(e, blacklist.NewRepository(storage))
	links.RegisterHandlers(e, links.NewRepository(storage))
	prices.RegisterHandlers(e, prices.NewRepository(storage))

	// Apply CORS policy
	return applyCORSHandler(e.Handler()), nil
}
