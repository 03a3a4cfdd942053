package component

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffdesk/staffdesk/src/application/service"
)

// SessionPruner periodically deletes expired flash sessions from PostgreSQL.
type SessionPruner struct {
	Logger         zerolog.Logger
	SessionService service.SessionService
	Interval       time.Duration
}

func (self *SessionPruner) Start(ctx context.Context) error {
	self.Logger.Info().Dur("interval", self.Interval).Msg("Starting")

	ticker := time.NewTicker(self.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// a failed run is retried on the next tick
			if deleted, err := self.SessionService.PruneExpired(ctx); err != nil {
				self.Logger.Err(err).Msg("Failed to prune expired sessions")
			} else if deleted > 0 {
				self.Logger.Debug().Int64("deleted", deleted).Msg("Pruned expired sessions")
			}
		}
	}
}
