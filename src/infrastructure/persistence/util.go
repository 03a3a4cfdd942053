package persistence

import (
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/staffdesk/staffdesk/src/domain"
)

// The only constraint besides NOT NULL is the unique email.
func mapError(err error) error {
	if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UniqueViolation {
		return domain.ErrDuplicateEmail
	}
	return err
}
