// Package persistence reads and writes whole collections as JSON documents
// in a key-value store. Reads never fail: absent or corrupt data yields the
// caller's default. Writes never fail either: a write the store rejects is
// logged and dropped.
package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Veraticus/remis/internal/common"
	"github.com/Veraticus/remis/internal/service"
	"github.com/Veraticus/remis/internal/storage"
)

// Key names a persisted collection.
type Key string

// Storage keys. These strings are part of the on-disk and backup format.
const (
	KeyIncomeRecords     Key = "income_records"
	KeyTransactions      Key = "transaction_records"
	KeyWorkDays          Key = "work_days_config"
	KeyNonWorkingDays    Key = "non_working_days"
	KeyDrivers           Key = "drivers"
	KeyExpenseCategories Key = "expense_categories"
)

// AllKeys lists every collection the gateway manages.
func AllKeys() []Key {
	return []Key{
		KeyIncomeRecords,
		KeyTransactions,
		KeyWorkDays,
		KeyNonWorkingDays,
		KeyDrivers,
		KeyExpenseCategories,
	}
}

// Gateway is the only reader and writer of the underlying store.
type Gateway struct {
	store service.KeyValueStore
}

// NewGateway wraps store.
func NewGateway(store service.KeyValueStore) *Gateway {
	return &Gateway{store: store}
}

// Save overwrites the collection stored under key. When the store is full
// it clears every other collection and retries once.
func (g *Gateway) Save(ctx context.Context, key Key, collection any) {
	data, err := json.Marshal(collection)
	if err != nil {
		common.LogError(ctx, err, "failed to encode collection, write dropped", common.Fields{"key": key})
		return
	}

	err = g.store.Set(ctx, string(key), data)
	if err == nil {
		return
	}

	if errors.Is(err, storage.ErrQuotaExceeded) {
		common.LogWarn(ctx, "storage full, clearing other collections and retrying", common.Fields{
			"key":   key,
			"bytes": len(data),
		})
		g.clearExcept(ctx, key)
		if err = g.store.Set(ctx, string(key), data); err == nil {
			return
		}
	}

	common.LogError(ctx, err, "failed to save collection, write dropped", common.Fields{
		"key":   key,
		"bytes": len(data),
	})
}

func (g *Gateway) clearExcept(ctx context.Context, keep Key) {
	for _, key := range AllKeys() {
		if key == keep {
			continue
		}
		if err := g.store.Delete(ctx, string(key)); err != nil {
			common.LogError(ctx, err, "failed to clear collection", common.Fields{"key": key})
		}
	}
}

// Exists reports whether a value is stored under key. A read that fails
// for any reason other than a missing key counts as present, so callers
// never mistake an unreadable collection for an empty one.
func (g *Gateway) Exists(ctx context.Context, key Key) bool {
	_, err := g.store.Get(ctx, string(key))
	if err == nil {
		return true
	}
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false
	}
	common.LogWarn(ctx, "failed to read collection, assuming it exists", common.Fields{
		"key":   key,
		"error": err.Error(),
	})
	return true
}

// Lookup is Load without the fallback: it returns an error wrapping
// storage.ErrKeyNotFound when key is absent, and any read or decode error.
func Lookup[T any](ctx context.Context, g *Gateway, key Key) (T, error) {
	var value T
	data, err := g.store.Get(ctx, string(key))
	if err != nil {
		return value, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return value, nil
}

// Load returns the collection stored under key, or def when it is absent,
// unreadable, or not valid JSON for T.
func Load[T any](ctx context.Context, g *Gateway, key Key, def T) T {
	return loadValidated(ctx, g, key, def, nil)
}

func loadValidated[T any](ctx context.Context, g *Gateway, key Key, def T, validate func(T) error) T {
	data, err := g.store.Get(ctx, string(key))
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			common.LogWarn(ctx, "failed to read collection, using default", common.Fields{
				"key":   key,
				"error": err.Error(),
			})
		}
		return def
	}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return def
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		common.LogWarn(ctx, "corrupt collection, using default", common.Fields{
			"key":   key,
			"error": err.Error(),
		})
		return def
	}

	if validate != nil {
		if err := validate(value); err != nil {
			common.LogWarn(ctx, "invalid collection, using default", common.Fields{
				"key":   key,
				"error": err.Error(),
			})
			return def
		}
	}

	return value
}
