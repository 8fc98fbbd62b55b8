package registration

import (
	"context"
	"errors"
	"flag"
	"qsmart/qsmart-crowd-server/pkg/config"
	"qsmart/qsmart-crowd-server/pkg/infra"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*MemoryStore
}

func (s *failingStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, unavailable("delete", errors.New("disk gone"))
}

func TestSweeper_RetentionWindow(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sweeper := NewSweeper(store, 4*time.Hour, infra.NewNopLoggerFactory())

	require.NoError(t, store.Insert(ctx, Entry{Location: "Bank", RegisteredAt: t0}))

	require.NoError(t, sweeper.Sweep(ctx, t0.Add(3*time.Hour+59*time.Minute)))
	count, err := store.CountByLocation(ctx, "Bank")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, sweeper.Sweep(ctx, t0.Add(4*time.Hour+1*time.Minute)))
	count, err = store.CountByLocation(ctx, "Bank")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSweeper_Unavailable(t *testing.T) {
	sweeper := NewSweeper(&failingStore{MemoryStore: NewMemoryStore()}, 4*time.Hour, infra.NewNopLoggerFactory())

	err := sweeper.Sweep(context.Background(), t0)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestProvideSweeper_UsesConfiguredRetention(t *testing.T) {
	cfg := config.NewConfig(flag.NewFlagSet("test", flag.ContinueOnError))
	sweeper := ProvideSweeper(NewMemoryStore(), cfg, infra.NewNopLoggerFactory())

	assert.Equal(t, 4*time.Hour, sweeper.retention)
}

func TestProvideStore(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := config.NewConfig(fs)
	loggerFactory := infra.NewNopLoggerFactory()

	require.NoError(t, fs.Parse([]string{"-registration-store", "memory"}))
	store, err := ProvideStore(cfg, loggerFactory)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	require.NoError(t, fs.Parse([]string{"-registration-store", "sqlite", "-sqlite-path", t.TempDir() + "/data.db"}))
	store, err = ProvideStore(cfg, loggerFactory)
	require.NoError(t, err)
	assert.IsType(t, &SqliteStore{}, store)
	store.Close()

	require.NoError(t, fs.Parse([]string{"-registration-store", "mongo"}))
	_, err = ProvideStore(cfg, loggerFactory)
	assert.Error(t, err)
}
