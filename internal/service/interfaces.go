// Package service defines the interfaces for all application services.
package service

import (
	"context"
)

// KeyValueStore is the string-keyed byte store that every persisted
// collection lives in. Each Set replaces the whole value for its key in a
// single atomic write.
type KeyValueStore interface {
	// Get returns the stored value, or an error wrapping storage.ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set overwrites the value for key. It fails with an error wrapping
	// storage.ErrQuotaExceeded when the store has no room for it.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)
	// Close releases the underlying resources.
	Close() error
}

// IDGenerator produces identifiers for new entities. Implementations must
// never hand out the same value twice within a process.
type IDGenerator interface {
	NewID() string
}
