package registration

import (
	"context"
	"sync"
	"time"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// MemoryStore keeps registrations in process memory. They are lost on
// restart.
type MemoryStore struct {
	lock sync.Mutex

	// Key value: location -> arraylist of registration times in insert
	// order.
	entries *linkedhashmap.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: linkedhashmap.New(),
	}
}

func (s *MemoryStore) Insert(ctx context.Context, entry Entry) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	value, ok := s.entries.Get(entry.Location)
	if !ok {
		value = arraylist.New()
		s.entries.Put(entry.Location, value)
	}
	value.(*arraylist.List).Add(entry.RegisteredAt)
	return nil
}

func (s *MemoryStore) CountByLocation(ctx context.Context, location string) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	value, ok := s.entries.Get(location)
	if !ok {
		return 0, nil
	}
	return value.(*arraylist.List).Size(), nil
}

func (s *MemoryStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var removed int64
	for _, location := range s.entries.Keys() {
		value, _ := s.entries.Get(location)
		list := value.(*arraylist.List)

		kept := list.Select(func(_ int, value interface{}) bool {
			return !value.(time.Time).Before(cutoff)
		})
		removed += int64(list.Size() - kept.Size())

		if kept.Empty() {
			s.entries.Remove(location)
			continue
		}
		s.entries.Put(location, kept)
	}
	return removed, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
