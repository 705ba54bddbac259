// Package storage provides the key-value stores that back the persistence gateway.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Store errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrKeyNotFound   = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// checkQuota returns ErrQuotaExceeded when writing size bytes on top of
// used bytes would go past quota. A quota of zero or less means unlimited.
func checkQuota(key string, used, size, quota int64) error {
	if quota <= 0 {
		return nil
	}
	if used+size > quota {
		return fmt.Errorf("%w: writing %d bytes to %q with %d of %d bytes used",
			ErrQuotaExceeded, size, key, used, quota)
	}
	return nil
}
