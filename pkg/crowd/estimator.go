package crowd

import (
	"context"
	"qsmart/qsmart-crowd-server/pkg/baseline"
	"qsmart/qsmart-crowd-server/pkg/registration"
	"time"
)

// Estimator adds the live registration count of a location to its
// historical baseline at the current weekday and hour.
type Estimator struct {
	table *baseline.Table
	store registration.Store
}

func NewEstimator(table *baseline.Table, store registration.Store) *Estimator {
	return &Estimator{
		table: table,
		store: store,
	}
}

// Baseline is the historical crowd of location at now. The hour used is
// the latest recorded hour not after now, or the earliest recorded hour
// of the day when now precedes them all. Among rows for the same hour
// the first one in the source wins.
func (e *Estimator) Baseline(location string, now time.Time) int {
	today := now.Weekday()

	chosen, ok := e.table.ResolveHour(location, today, now.Hour())
	if !ok {
		return 0
	}

	crowd, _ := e.table.Lookup(location, today, chosen)
	return crowd
}

// ExpectedCrowd never turns a storage failure into a zero count.
func (e *Estimator) ExpectedCrowd(ctx context.Context, location string, now time.Time) (int, error) {
	registered, err := e.store.CountByLocation(ctx, location)
	if err != nil {
		return 0, err
	}
	return e.Baseline(location, now) + registered, nil
}
