package storage

import (
	"context"
	"testing"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	var version int
	var dirty bool
	err := store.db.QueryRow(`SELECT version, dirty FROM schema_migrations`).Scan(&version, &dirty)
	if err != nil {
		t.Fatalf("Failed to read schema_migrations: %v", err)
	}
	if version != ExpectedSchemaVersion || dirty {
		t.Errorf("schema version = %d (dirty=%v), want %d clean", version, dirty, ExpectedSchemaVersion)
	}

	var indexCount int
	err = store.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name='idx_kv_store_updated_at'
	`).Scan(&indexCount)
	if err != nil {
		t.Fatalf("Failed to check index: %v", err)
	}
	if indexCount != 1 {
		t.Error("updated_at index was not created")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		if err := store.Migrate(context.Background()); err != nil {
			t.Fatalf("Migrate run %d failed: %v", i+2, err)
		}
	}
}
