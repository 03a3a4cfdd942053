package config

import (
	"context"

	zerologadapter "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type PgxIface interface {
	Begin(context.Context) (pgx.Tx, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
}

var (
	_ PgxIface = &pgxpool.Pool{}
	_ PgxIface = &pgx.Conn{}
	_ PgxIface = pgx.Tx(nil)
)

func DBConnection(ctx context.Context, url string, logger *zerolog.Logger, logDb bool) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, errors.New("Database URL not set or empty")
	}

	dbconfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, errors.WithMessage(err, "While parsing database URL")
	}
	if logDb {
		dbconfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   zerologadapter.NewLogger(logger.With().Str("lib", "pgx").Logger()),
			LogLevel: tracelog.LogLevelTrace,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbconfig)
	if err != nil {
		return nil, errors.WithMessage(err, "While connecting to database")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.WithMessage(err, "While pinging database")
	}

	logger.Info().
		Str("host", dbconfig.ConnConfig.Host).
		Str("database", dbconfig.ConnConfig.Database).
		Int32("maxConns", dbconfig.MaxConns).
		Msg("connected to PostgreSQL")

	return pool, nil
}
