package crowd

import (
	"context"
	"flag"
	"fmt"
	"qsmart/qsmart-crowd-server/pkg/baseline"
	"qsmart/qsmart-crowd-server/pkg/config"
	"qsmart/qsmart-crowd-server/pkg/infra"
	"qsmart/qsmart-crowd-server/pkg/metrics"
	"qsmart/qsmart-crowd-server/pkg/registration"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(table *baseline.Table, store registration.Store, clock Clock) *Service {
	cfg := config.NewConfig(flag.NewFlagSet("test", flag.ContinueOnError))
	loggerFactory := infra.NewNopLoggerFactory()
	sweeper := registration.ProvideSweeper(store, cfg, loggerFactory)
	return ProvideService(table, store, sweeper, clock, cfg, loggerFactory)
}

func TestService_GetStatus(t *testing.T) {
	ctx := context.Background()
	store := registration.NewMemoryStore()
	clock := &FixedClock{At: at(14, 0)}
	service := newTestService(bankTable(), store, clock)

	status, err := service.GetStatus(ctx, "Bank")
	require.NoError(t, err)
	assert.Equal(t, &Status{
		Location:      "Bank",
		ExpectedCrowd: 80,
		Level:         "Moderate",
		Severity:      "yellow",
		LevelEmoji:    "🟡",
		WaitMinutes:   53,
		BestTime:      "6:00 – 7:00",
	}, status)

	for i := 0; i < 41; i++ {
		require.NoError(t, service.Register(ctx, "Bank"))
	}

	status, err = service.GetStatus(ctx, "Bank")
	require.NoError(t, err)
	assert.Equal(t, 121, status.ExpectedCrowd)
	assert.Equal(t, "High", status.Level)
	assert.Equal(t, "red", status.Severity)
	assert.Equal(t, 80, status.WaitMinutes)
}

func TestService_GetStatusUnknownLocation(t *testing.T) {
	service := newTestService(bankTable(), registration.NewMemoryStore(), &FixedClock{At: at(10, 0)})

	status, err := service.GetStatus(context.Background(), "UnknownLocation")
	require.NoError(t, err)
	assert.Equal(t, 0, status.ExpectedCrowd)
	assert.Equal(t, "Low", status.Level)
	assert.Equal(t, 0, status.WaitMinutes)
	assert.Equal(t, baseline.DataUnavailable, status.BestTime)
}

func TestService_RegistrationsExpire(t *testing.T) {
	ctx := context.Background()
	clock := &FixedClock{At: at(9, 0)}
	service := newTestService(bankTable(), registration.NewMemoryStore(), clock)

	require.NoError(t, service.Register(ctx, "Bank"))

	clock.At = at(12, 59)
	status, err := service.GetStatus(ctx, "Bank")
	require.NoError(t, err)
	assert.Equal(t, 40+1, status.ExpectedCrowd)

	clock.At = at(13, 1)
	status, err = service.GetStatus(ctx, "Bank")
	require.NoError(t, err)
	assert.Equal(t, 40, status.ExpectedCrowd)
}

func TestService_EmptyLocation(t *testing.T) {
	service := newTestService(bankTable(), registration.NewMemoryStore(), &FixedClock{At: at(9, 0)})

	assert.ErrorIs(t, service.Register(context.Background(), "  "), ErrEmptyLocation)

	_, err := service.GetStatus(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyLocation)
}

func TestService_StorageUnavailable(t *testing.T) {
	db, err := infra.OpenSQLite(":memory:", infra.NewNopLoggerFactory())
	require.NoError(t, err)
	store, err := registration.NewSqliteStore(db)
	require.NoError(t, err)
	service := newTestService(bankTable(), store, &FixedClock{At: at(9, 0)})
	store.Close()

	_, err = service.GetStatus(context.Background(), "Bank")
	assert.ErrorIs(t, err, registration.ErrStorageUnavailable)

	assert.ErrorIs(t, service.Register(context.Background(), "Bank"), registration.ErrStorageUnavailable)
}

func TestService_UnknownLocationsShareOneMetricSeries(t *testing.T) {
	ctx := context.Background()
	service := newTestService(bankTable(), registration.NewMemoryStore(), &FixedClock{At: at(10, 0)})

	_, err := service.GetStatus(ctx, "Bank")
	require.NoError(t, err)
	require.NoError(t, service.Register(ctx, "Bank"))
	_, err = service.GetStatus(ctx, "Nowhere")
	require.NoError(t, err)
	require.NoError(t, service.Register(ctx, "Nowhere"))

	statusSeries := testutil.CollectAndCount(metrics.StatusQueriesTotal)
	crowdSeries := testutil.CollectAndCount(metrics.ExpectedCrowd)
	registrationSeries := testutil.CollectAndCount(metrics.RegistrationsTotal)
	unknownQueries := testutil.ToFloat64(metrics.StatusQueriesTotal.WithLabelValues(metrics.UnknownLocation))

	for i := 0; i < 200; i++ {
		location := fmt.Sprintf("junk-%d", i)
		_, err := service.GetStatus(ctx, location)
		require.NoError(t, err)
		require.NoError(t, service.Register(ctx, location))
	}

	assert.Equal(t, statusSeries, testutil.CollectAndCount(metrics.StatusQueriesTotal))
	assert.Equal(t, crowdSeries, testutil.CollectAndCount(metrics.ExpectedCrowd))
	assert.Equal(t, registrationSeries, testutil.CollectAndCount(metrics.RegistrationsTotal))
	assert.Equal(t, unknownQueries+200, testutil.ToFloat64(metrics.StatusQueriesTotal.WithLabelValues(metrics.UnknownLocation)))
	assert.Equal(t, 40.0, testutil.ToFloat64(metrics.ExpectedCrowd.WithLabelValues("Bank")))
}

func TestService_Locations(t *testing.T) {
	service := newTestService(bankTable(), registration.NewMemoryStore(), &FixedClock{At: at(9, 0)})

	assert.Equal(t, []string{"Bank"}, service.Locations())
}

func TestProvideClock(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := config.NewConfig(fs)

	require.NoError(t, fs.Parse([]string{"-timezone", "Asia/Kolkata"}))
	clock, err := ProvideClock(cfg)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", clock.Now().Location().String())

	require.NoError(t, fs.Parse([]string{"-timezone", "Mars/Olympus"}))
	_, err = ProvideClock(cfg)
	assert.Error(t, err)
}
