package crowd

import (
	"context"
	"errors"
	"qsmart/qsmart-crowd-server/pkg/baseline"
	"qsmart/qsmart-crowd-server/pkg/config"
	"qsmart/qsmart-crowd-server/pkg/infra"
	"qsmart/qsmart-crowd-server/pkg/metrics"
	"qsmart/qsmart-crowd-server/pkg/registration"
	"strings"

	"go.uber.org/zap"
)

var ErrEmptyLocation = errors.New("location is required")

// Status is what a location looks like right now. Always computed fresh.
type Status struct {
	Location      string `json:"location"`
	ExpectedCrowd int    `json:"expectedCrowd"`
	Level         string `json:"level"`
	Severity      string `json:"severity"`
	LevelEmoji    string `json:"levelEmoji"`
	WaitMinutes   int    `json:"waitMinutes"`
	BestTime      string `json:"bestTime"`
}

type Service struct {
	table     *baseline.Table
	store     registration.Store
	sweeper   *registration.Sweeper
	estimator *Estimator
	clock     Clock

	serviceCounters   int
	avgServiceMinutes int

	logger *zap.SugaredLogger
}

func ProvideService(table *baseline.Table, store registration.Store, sweeper *registration.Sweeper, clock Clock, config *config.Config, loggerFactory *infra.LoggerFactory) *Service {
	return &Service{
		table:     table,
		store:     store,
		sweeper:   sweeper,
		estimator: NewEstimator(table, store),
		clock:     clock,

		serviceCounters:   *config.ServiceCounters,
		avgServiceMinutes: *config.AvgServiceMinutes,

		logger: loggerFactory.Create("Service").Sugar(),
	}
}

// GetStatus sweeps expired registrations, then estimates the location.
// Unknown locations are not an error, they report a zero baseline and
// DataUnavailable as best time.
func (s *Service) GetStatus(ctx context.Context, location string) (*Status, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrEmptyLocation
	}

	now := s.clock.Now()
	if err := s.sweeper.Sweep(ctx, now); err != nil {
		return nil, err
	}

	expected, err := s.estimator.ExpectedCrowd(ctx, location, now)
	if err != nil {
		metrics.RecordStorageError("count")
		s.logger.Errorf("cannot estimate location[%v] %v", location, err)
		return nil, err
	}

	level := ClassifyLevel(expected)
	status := &Status{
		Location:      location,
		ExpectedCrowd: expected,
		Level:         level.Label(),
		Severity:      level.Severity(),
		LevelEmoji:    level.Emoji(),
		WaitMinutes:   WaitMinutes(expected, s.serviceCounters, s.avgServiceMinutes),
		BestTime:      s.table.BestTime(location),
	}

	metrics.RecordStatus(s.metricLocation(location), expected)
	s.logger.Debugf("status[%+v] now[%v]", status, now)
	return status, nil
}

// Register appends one registration for location at the current time.
func (s *Service) Register(ctx context.Context, location string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return ErrEmptyLocation
	}

	now := s.clock.Now()
	if err := s.sweeper.Sweep(ctx, now); err != nil {
		return err
	}

	if err := s.store.Insert(ctx, registration.Entry{Location: location, RegisteredAt: now}); err != nil {
		metrics.RecordStorageError("insert")
		s.logger.Errorf("cannot register location[%v] %v", location, err)
		return err
	}

	metrics.RecordRegistration(s.metricLocation(location))
	s.logger.Infof("registered location[%v] at[%v]", location, now)
	return nil
}

func (s *Service) metricLocation(location string) string {
	if s.table.Has(location) {
		return location
	}
	return metrics.UnknownLocation
}

// Locations known from the baseline, in source order.
func (s *Service) Locations() []string {
	return s.table.Locations()
}
