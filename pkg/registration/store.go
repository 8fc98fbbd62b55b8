package registration

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrStorageUnavailable wraps every failure of the underlying store.
// Callers must not read it as "no registrations".
var ErrStorageUnavailable = errors.New("registration storage unavailable")

// Entry is one person that joined a location's queue.
type Entry struct {
	Location     string
	RegisteredAt time.Time
}

// Store is the append-only registration log.
type Store interface {
	Insert(ctx context.Context, entry Entry) error

	// CountByLocation counts every entry still held for location,
	// regardless of when it was registered.
	CountByLocation(ctx context.Context, location string) (int, error)

	// DeleteOlderThan removes entries registered strictly before cutoff
	// and returns how many were removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	Close() error
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %v: %w", ErrStorageUnavailable, op, err)
}
