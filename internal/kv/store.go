package kv

import "context"

// Store is a small persistent key-value surface used for cart
// serialization and the read-through cache. Missing keys are reported
// via ErrNotFound; callers treat corrupt values as absence.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the value stored under key. Deleting a missing
	// key is not an error.
	Delete(ctx context.Context, key string) error
}
