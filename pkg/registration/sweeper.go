package registration

import (
	"context"
	"qsmart/qsmart-crowd-server/pkg/config"
	"qsmart/qsmart-crowd-server/pkg/infra"
	"qsmart/qsmart-crowd-server/pkg/metrics"
	"time"

	"go.uber.org/zap"
)

// Sweeper drops registrations older than the retention window. It is not
// scheduled, callers run it before they touch the log.
type Sweeper struct {
	store     Store
	retention time.Duration

	logger *zap.SugaredLogger
}

func ProvideSweeper(store Store, config *config.Config, loggerFactory *infra.LoggerFactory) *Sweeper {
	return NewSweeper(store, config.RetentionWindow(), loggerFactory)
}

func NewSweeper(store Store, retention time.Duration, loggerFactory *infra.LoggerFactory) *Sweeper {
	return &Sweeper{
		store:     store,
		retention: retention,
		logger:    loggerFactory.Create("Sweeper").Sugar(),
	}
}

// Sweep removes every entry registered before now - retention.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) error {
	cutoff := now.Add(-s.retention)

	removed, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		metrics.RecordStorageError("delete")
		s.logger.Errorf("sweep failed cutoff[%v] %v", cutoff, err)
		return err
	}

	metrics.RecordExpired(removed)
	if removed > 0 {
		s.logger.Infof("swept expired registrations removed[%v] cutoff[%v]", removed, cutoff)
	}
	return nil
}
