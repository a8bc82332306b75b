package store

import (
	"context"
	"sync"
	"time"

	"github.com/ducka/go-marbles/utils"
)

type InMemoryStore[T any] struct {
	store map[string]inMemoryStateEntryWrapper[T]
	mu    *sync.RWMutex
	now   func() time.Time
	last  int64
}

func NewInMemoryStore[T any]() *InMemoryStore[T] {
	return &InMemoryStore[T]{
		store: make(map[string]inMemoryStateEntryWrapper[T]),
		mu:    new(sync.RWMutex),
		now:   time.Now,
	}
}

func (i *InMemoryStore[T]) Get(ctx context.Context, keys ...string) ([]StateEntry[T], error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	now := i.now()
	result := make([]StateEntry[T], 0, len(keys))
	for _, key := range keys {
		if entry, ok := i.store[key]; ok {

			// Don't return expired entries
			if entry.expired(now) {
				continue
			}

			result = append(result, entry.StateEntry)
		}
	}
	return result, nil
}

func (i *InMemoryStore[T]) Set(ctx context.Context, entries []StateEntry[T], options ...StoreOption) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	opts := applyOptions(storeOptions{}, options)
	now := i.now()

	conflicts := make([]string, 0)

	for _, entry := range entries {
		stored, ok := i.store[entry.Key]
		if ok && stored.expired(now) {
			delete(i.store, entry.Key)
			ok = false
		}

		if ok && (entry.Timestamp == nil || *stored.Timestamp != *entry.Timestamp) {
			conflicts = append(conflicts, entry.Key)
			continue
		}

		if entry.State == nil {
			delete(i.store, entry.Key)
			continue
		}

		// Write the entry to the store
		entry.Timestamp = utils.ToPtr(i.nextTimestamp(now))
		wrapper := inMemoryStateEntryWrapper[T]{
			StateEntry: entry,
		}

		if opts.Expiry != nil {
			wrapper.ExpireOn = utils.ToPtr(now.Add(*opts.Expiry))
		}

		i.store[entry.Key] = wrapper
	}

	if len(conflicts) > 0 {
		return &StateStoreConflict{conflicts: conflicts}
	}

	return nil
}

// nextTimestamp is the wall clock in nanoseconds, bumped when two writes land on the same reading.
func (i *InMemoryStore[T]) nextTimestamp(now time.Time) int64 {
	ts := now.UnixNano()
	if ts <= i.last {
		ts = i.last + 1
	}
	i.last = ts
	return ts
}

type inMemoryStateEntryWrapper[T any] struct {
	StateEntry[T]
	ExpireOn *time.Time
}

func (w inMemoryStateEntryWrapper[T]) expired(now time.Time) bool {
	return w.ExpireOn != nil && !w.ExpireOn.After(now)
}
