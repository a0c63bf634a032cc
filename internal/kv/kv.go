// Package kv provides the string key-value storage the to-do list persists
// into.
package kv

import "context"

// Store is a string key-value store. Implementations may block and may
// fail on any call.
type Store interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the underlying resources.
	Close() error
}
