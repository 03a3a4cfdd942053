package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk/src/domain/repository"
)

type SessionService interface {
	PruneExpired(context.Context) (int64, error)
}

type sessionService struct {
	logger            zerolog.Logger
	sessionRepository repository.SessionRepository
	now               func() time.Time
}

func NewSessionService(sessionRepository repository.SessionRepository, logger *zerolog.Logger) SessionService {
	return &sessionService{
		logger:            logger.With().Str("component", "SessionService").Logger(),
		sessionRepository: sessionRepository,
		now:               time.Now,
	}
}

func (self sessionService) PruneExpired(ctx context.Context) (int64, error) {
	expiry := self.now()
	logger := self.logger.With().Time("expiry", expiry).Logger()
	logger.Trace().Msg("Deleting expired sessions")
	deleted, err := self.sessionRepository.DeleteExpiredBy(ctx, expiry)
	if err != nil {
		return 0, errors.WithMessagef(err, "While deleting sessions expired by %s", expiry)
	}
	logger.Trace().Int64("count", deleted).Msg("Deleted expired sessions")
	return deleted, nil
}
