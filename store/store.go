// Package store persists state entries with optimistic concurrency. Every stored entry carries the
// timestamp of its last write; a write that does not present the current timestamp is rejected as
// a conflict.
package store

import (
	"context"
	"time"
)

type StateEntry[TState any] struct {
	Key   string
	State *TState
	// Timestamp is the version the entry was read at. Nil for entries that are not stored yet.
	Timestamp *int64
}

type StateStore[TState any] interface {
	// Get returns the stored entries for the keys. Missing or expired keys are left out.
	Get(ctx context.Context, keys ...string) ([]StateEntry[TState], error)
	// Set writes the entries. An entry with a nil State deletes the key.
	Set(ctx context.Context, entries []StateEntry[TState], options ...StoreOption) error
}

type StateStoreConflict struct {
	conflicts []string
}

func (s *StateStoreConflict) Error() string {
	return "State entry was modified concurrently"
}

func (s *StateStoreConflict) GetConflicts() []string {
	return s.conflicts
}

type storeOptions struct {
	Expiry *time.Duration
}

type StoreOption func(*storeOptions)

func WithExpiry(expiry time.Duration) StoreOption {
	return func(o *storeOptions) {
		o.Expiry = &expiry
	}
}

func applyOptions(defaults storeOptions, options []StoreOption) storeOptions {
	for _, opt := range options {
		opt(&defaults)
	}
	return defaults
}
