package persistence

import (
	"context"

	"github.com/pkg/errors"

	"github.com/staffdesk/staffdesk/src/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id         BIGSERIAL        PRIMARY KEY,
	name       TEXT             NOT NULL,
	email      TEXT             NOT NULL UNIQUE,
	position   TEXT             NOT NULL,
	department TEXT             NOT NULL,
	salary     DOUBLE PRECISION NOT NULL,
	hire_date  TEXT             NOT NULL,
	created_at TIMESTAMPTZ      NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ      NOT NULL DEFAULT now()
)`

func EnsureSchema(ctx context.Context, db config.PgxIface) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return errors.WithMessage(err, "While creating employees table")
	}
	return nil
}
