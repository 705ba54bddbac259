// Package testutil provides test fixtures for remis: fresh key-value stores,
// gateways on top of them, and deterministic identifier generators.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Veraticus/remis/internal/persistence"
	"github.com/Veraticus/remis/internal/service"
	"github.com/Veraticus/remis/internal/storage"
)

// Backend selects the store implementation behind a TestDB.
type Backend int

const (
	// BackendMemory keeps everything in process.
	BackendMemory Backend = iota
	// BackendSQLite uses a migrated SQLite file in a temp dir.
	BackendSQLite
)

// TestDB bundles a store with the gateway that wraps it.
type TestDB struct {
	Store   service.KeyValueStore
	Gateway *persistence.Gateway
	t       *testing.T
}

// TestDBOptions configures SetupTestDBWithOptions.
type TestDBOptions struct {
	// Seed holds raw JSON documents written before the gateway is used.
	Seed       map[persistence.Key]string
	Backend    Backend
	QuotaBytes int64
}

// SetupTestDB returns an empty in-memory store and its gateway.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	l := ledger.Open(ctx, db.Gateway, ledger.WithIDGenerator(testutil.NewSequentialIDs("t")))
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test store with custom options.
// Cleanup is registered on t.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	var storeOpts []storage.Option
	if opts.QuotaBytes > 0 {
		storeOpts = append(storeOpts, storage.WithQuota(opts.QuotaBytes))
	}

	var store service.KeyValueStore
	switch opts.Backend {
	case BackendSQLite:
		sqlite, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "remis.db"), storeOpts...)
		if err != nil {
			t.Fatalf("failed to create test database: %v", err)
		}
		if err := sqlite.Migrate(context.Background()); err != nil {
			_ = sqlite.Close()
			t.Fatalf("failed to run migrations: %v", err)
		}
		store = sqlite
	default:
		store = storage.NewMemoryStore(storeOpts...)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	db := &TestDB{
		Store:   store,
		Gateway: persistence.NewGateway(store),
		t:       t,
	}
	for key, raw := range opts.Seed {
		db.MustSetRaw(key, raw)
	}
	return db
}

// MustSetRaw writes raw bytes under key, bypassing the gateway.
func (db *TestDB) MustSetRaw(key persistence.Key, raw string) {
	db.t.Helper()
	if err := db.Store.Set(context.Background(), string(key), []byte(raw)); err != nil {
		db.t.Fatalf("failed to seed %s: %v", key, err)
	}
}

// MustSet JSON-encodes value under key, bypassing the gateway.
func (db *TestDB) MustSet(key persistence.Key, value any) {
	db.t.Helper()
	data, err := json.Marshal(value)
	if err != nil {
		db.t.Fatalf("failed to encode %s: %v", key, err)
	}
	db.MustSetRaw(key, string(data))
}

// Snapshot returns every stored key with its raw value.
func (db *TestDB) Snapshot() map[string]string {
	db.t.Helper()
	ctx := context.Background()
	keys, err := db.Store.Keys(ctx)
	if err != nil {
		db.t.Fatalf("failed to list keys: %v", err)
	}
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		value, err := db.Store.Get(ctx, key)
		if err != nil {
			db.t.Fatalf("failed to read %s: %v", key, err)
		}
		out[key] = string(value)
	}
	return out
}

// SequentialIDs hands out prefix-1, prefix-2, ...
type SequentialIDs struct {
	prefix string
	next   int
	mu     sync.Mutex
}

// NewSequentialIDs returns a generator whose ids start with prefix.
func NewSequentialIDs(prefix string) *SequentialIDs {
	return &SequentialIDs{prefix: prefix}
}

// NewID implements service.IDGenerator.
func (s *SequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s-%d", s.prefix, s.next)
}
