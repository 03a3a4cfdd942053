package repository

import (
	"context"
	"time"
)

type SessionRepository interface {
	DeleteExpiredBy(context.Context, time.Time) (int64, error)
}
