package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/remis/internal/model"
	"github.com/Veraticus/remis/internal/persistence"
)

func TestSetupTestDBWithOptions_Backends(t *testing.T) {
	for _, backend := range []Backend{BackendMemory, BackendSQLite} {
		db := SetupTestDBWithOptions(t, TestDBOptions{
			Backend: backend,
			Seed:    map[persistence.Key]string{persistence.KeyNonWorkingDays: `[{"id":"x","date":"2024-01-15"}]`},
		})

		days := db.Gateway.LoadNonWorkingDays(context.Background())
		require.Len(t, days, 1)
		assert.True(t, days[0].Date.SameDay(model.NewDate(2024, 1, 15)))
		assert.Len(t, db.Snapshot(), 1)
	}
}

func TestSequentialIDs(t *testing.T) {
	ids := NewSequentialIDs("d")
	assert.Equal(t, "d-1", ids.NewID())
	assert.Equal(t, "d-2", ids.NewID())
}
