package config

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const SqliteMemory = ":memory:"

// DefaultSqlitePath is where the database file lives when no path is configured.
func DefaultSqlitePath() (string, error) {
	return xdg.DataFile(filepath.Join("staffdesk", "employees.db"))
}

func SqliteConnection(ctx context.Context, path string, logger *zerolog.Logger) (*sql.DB, error) {
	if path == "" {
		var err error
		if path, err = DefaultSqlitePath(); err != nil {
			return nil, errors.WithMessage(err, "While resolving default SQLite path")
		}
	}

	dsn := SqliteMemory
	if path != SqliteMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.WithMessagef(err, "While creating directory for %q", path)
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.WithMessagef(err, "While opening SQLite database %q", path)
	}

	// A single connection serializes writers and keeps an in-memory database alive.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.WithMessagef(err, "While pinging SQLite database %q", path)
	}

	logger.Info().Str("path", path).Msg("opened SQLite database")

	return db, nil
}
