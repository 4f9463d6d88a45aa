// Package notesuite wires the note service to its HTTP API and CLI.
package notesuite

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"notesuite/pkg/notes"
	"notesuite/pkg/store"
	"notesuite/pkg/store/sqlstore"
)

// Config holds application configuration. Values come from flags and
// environment variables; see Parse.
type Config struct {
	// DatabaseDriver selects the backing database, "postgres" or "sqlite".
	DatabaseDriver string
	// DatabaseDSN is the postgres connection string, or the file path when
	// running on sqlite.
	DatabaseDSN string

	ServerPort string

	// SessionTTL bounds how long a login token stays valid, in hours.
	SessionTTLHours int
}

// App holds the application state shared by all commands.
type App struct {
	store    store.Store
	notes    *notes.Service
	sessions *sessionStore
	config   *Config
	log      zerolog.Logger
}

// New creates the application: opens the store, builds the service, and sets
// up logging.
func New(config *Config) (*App, error) {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var st store.Store
	var err error
	switch config.DatabaseDriver {
	case "postgres":
		st, err = sqlstore.NewPostgres(config.DatabaseDSN)
	case "sqlite":
		st, err = sqlstore.NewSQLite(config.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown database driver: %s", config.DatabaseDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	log.Info().Str("driver", config.DatabaseDriver).Msg("connected to database")

	return &App{
		store:    st,
		notes:    notes.NewService(st, log),
		sessions: newSessionStore(),
		config:   config,
		log:      log,
	}, nil
}

// Close closes the application and its resources.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Store returns the underlying store (useful for testing).
func (a *App) Store() store.Store {
	return a.store
}

// getEnv retrieves an environment variable with a fallback default. Empty
// values count as unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
