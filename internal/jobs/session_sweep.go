package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AcademiaAllegro/telegram-academia-bot/internal/session"
)

// SessionSweep arma el job que borra sesiones inactivas más viejas que ttl.
func SessionSweep(store *session.Store, ttl time.Duration, log *zap.Logger) Job {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		n, err := store.DeleteIdleBefore(ctx, time.Now().Add(-ttl))
		if err != nil {
			return err
		}
		if n > 0 {
			log.Info("sesiones inactivas eliminadas", zap.Int64("cantidad", n))
		}
		return nil
	}
}
