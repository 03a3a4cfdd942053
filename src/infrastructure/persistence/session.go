package persistence

import (
	"context"
	"time"

	"github.com/staffdesk/staffdesk/src/config"
	"github.com/staffdesk/staffdesk/src/domain/repository"
)

// sessionRepository works on the table maintained by pgstore.
type sessionRepository struct {
	Db config.PgxIface
}

func NewSessionRepository(db config.PgxIface) repository.SessionRepository {
	return &sessionRepository{db}
}

func (self *sessionRepository) DeleteExpiredBy(ctx context.Context, expiry time.Time) (int64, error) {
	tag, err := self.Db.Exec(ctx, `DELETE FROM http_sessions WHERE expires_on <= $1`, expiry)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
