package staffdesk

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk/src/config"
	"github.com/staffdesk/staffdesk/src/domain/repository"
	"github.com/staffdesk/staffdesk/src/infrastructure/persistence"
	"github.com/staffdesk/staffdesk/src/infrastructure/persistence/sqlite"
)

type DBOpts struct {
	DatabaseUrl string `arg:"--database-url,env:DATABASE_URL" help:"PostgreSQL connection string, SQLite is used if empty"`
	SqlitePath  string `arg:"--sqlite-path,env:STAFFDESK_SQLITE_PATH" help:"SQLite database file (default: $XDG_DATA_HOME/staffdesk/employees.db)"`
	LogDb       bool   `arg:"--log-db" help:"log SQL statements"`
}

// Storage holds the repositories of whichever backend was configured.
type Storage struct {
	Employees  repository.EmployeeRepository
	Statistics repository.StatisticsRepository

	// nil for SQLite
	Sessions repository.SessionRepository

	close func()
}

func (self Storage) Close() {
	if self.close != nil {
		self.close()
	}
}

// Open connects to the configured backend and creates the schema if needed.
func (opts DBOpts) Open(ctx context.Context, logger *zerolog.Logger) (*Storage, error) {
	if opts.DatabaseUrl != "" {
		return opts.openPostgres(ctx, logger)
	}
	return opts.openSqlite(ctx, logger)
}

func (opts DBOpts) openPostgres(ctx context.Context, logger *zerolog.Logger) (*Storage, error) {
	pool, err := config.DBConnection(ctx, opts.DatabaseUrl, logger, opts.LogDb)
	if err != nil {
		return nil, err
	}

	if err := persistence.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Storage{
		Employees:  persistence.NewEmployeeRepository(pool),
		Statistics: persistence.NewStatisticsRepository(pool),
		Sessions:   persistence.NewSessionRepository(pool),
		close:      pool.Close,
	}, nil
}

func (opts DBOpts) openSqlite(ctx context.Context, logger *zerolog.Logger) (*Storage, error) {
	db, err := config.SqliteConnection(ctx, opts.SqlitePath, logger)
	if err != nil {
		return nil, err
	}

	if err := sqlite.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{
		Employees:  sqlite.NewEmployeeRepository(db),
		Statistics: sqlite.NewStatisticsRepository(db),
		close: func() {
			if err := db.Close(); err != nil {
				logger.Err(err).Msg("Failed to close SQLite database")
			}
		},
	}, nil
}
