package persistence

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/remis/internal/model"
	"github.com/Veraticus/remis/internal/storage"
)

// brokenStore fails every call with err.
type brokenStore struct {
	err  error
	sets int
}

func (b *brokenStore) Get(context.Context, string) ([]byte, error) { return nil, b.err }
func (b *brokenStore) Set(context.Context, string, []byte) error {
	b.sets++
	return b.err
}
func (b *brokenStore) Delete(context.Context, string) error { return b.err }
func (b *brokenStore) Keys(context.Context) ([]string, error) { return nil, b.err }
func (b *brokenStore) Close() error                          { return nil }

func TestGateway_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(storage.NewMemoryStore())

	records := []model.TransactionRecord{
		{ID: "t1", DriverID: "d1", Date: model.NewDate(2024, 1, 15), Amount: 5000, Type: model.TypeIncome, Notes: "turno noche"},
		{ID: "t2", DriverID: "d1", Date: model.NewDate(2024, 1, 16), Amount: 1200.5, Type: model.TypeExpense, CategoryID: "fuel"},
	}
	g.SaveTransactions(ctx, records)

	assert.Equal(t, records, g.LoadTransactions(ctx))

	days := []model.NonWorkingDay{{ID: "n1", Date: model.NewDate(2024, 2, 29)}}
	g.SaveNonWorkingDays(ctx, days)
	loaded := g.LoadNonWorkingDays(ctx)
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].Date.SameDay(model.NewDate(2024, 2, 29)))
}

func TestGateway_DatesStoredAsStrings(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	g := NewGateway(store)

	g.SaveNonWorkingDays(ctx, []model.NonWorkingDay{{ID: "n1", Date: model.NewDate(2024, 1, 15)}})

	raw, err := store.Get(ctx, string(KeyNonWorkingDays))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"n1","date":"2024-01-15"}]`, string(raw))
}

func TestGateway_Defaults(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(storage.NewMemoryStore())

	assert.Equal(t, model.DefaultDrivers(), g.LoadDrivers(ctx))
	assert.Equal(t, model.DefaultExpenseCategories(), g.LoadExpenseCategories(ctx))
	assert.Equal(t, model.DefaultWorkDays(), g.LoadWorkDays(ctx))

	txns := g.LoadTransactions(ctx)
	assert.NotNil(t, txns)
	assert.Empty(t, txns)
	assert.Empty(t, g.LoadNonWorkingDays(ctx))
	assert.Empty(t, g.LoadIncomeRecords(ctx))
}

func TestGateway_CorruptDataFallsBackToDefault(t *testing.T) {
	tests := []struct {
		name  string
		key   Key
		value string
		check func(t *testing.T, g *Gateway)
	}{
		{
			name:  "invalid json",
			key:   KeyTransactions,
			value: `[{"id": "t1",`,
			check: func(t *testing.T, g *Gateway) {
				t.Helper()
				assert.Empty(t, g.LoadTransactions(context.Background()))
			},
		},
		{
			name:  "wrong shape",
			key:   KeyDrivers,
			value: `{"id": "1"}`,
			check: func(t *testing.T, g *Gateway) {
				t.Helper()
				assert.Equal(t, model.DefaultDrivers(), g.LoadDrivers(context.Background()))
			},
		},
		{
			name:  "empty drivers",
			key:   KeyDrivers,
			value: `[]`,
			check: func(t *testing.T, g *Gateway) {
				t.Helper()
				assert.Equal(t, model.DefaultDrivers(), g.LoadDrivers(context.Background()))
			},
		},
		{
			name:  "null",
			key:   KeyExpenseCategories,
			value: `null`,
			check: func(t *testing.T, g *Gateway) {
				t.Helper()
				assert.Equal(t, model.DefaultExpenseCategories(), g.LoadExpenseCategories(context.Background()))
			},
		},
		{
			name:  "work days missing a weekday",
			key:   KeyWorkDays,
			value: `[{"id":"day-1","dayOfWeek":1,"isWorkDay":true}]`,
			check: func(t *testing.T, g *Gateway) {
				t.Helper()
				assert.Equal(t, model.DefaultWorkDays(), g.LoadWorkDays(context.Background()))
			},
		},
		{
			name:  "unparseable date",
			key:   KeyNonWorkingDays,
			value: `[{"id":"n1","date":"yesterday"}]`,
			check: func(t *testing.T, g *Gateway) {
				t.Helper()
				assert.Empty(t, g.LoadNonWorkingDays(context.Background()))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			require.NoError(t, store.Set(context.Background(), string(tt.key), []byte(tt.value)))
			tt.check(t, NewGateway(store))
		})
	}
}

func TestGateway_ReadsBrowserTimestamps(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	raw := `[{"id":"1718000000000","driverId":"1","date":"2024-06-10T12:00:00.000Z","amount":15000}]`
	require.NoError(t, store.Set(ctx, string(KeyIncomeRecords), []byte(raw)))

	records := NewGateway(store).LoadIncomeRecords(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-06-10", records[0].Date.Key())
	assert.InDelta(t, 15000, records[0].Amount, 0)
}

func TestGateway_ReadFailureUsesDefault(t *testing.T) {
	g := NewGateway(&brokenStore{err: errors.New("disk on fire")})
	assert.Equal(t, model.DefaultWorkDays(), g.LoadWorkDays(context.Background()))
	assert.True(t, g.Exists(context.Background(), KeyWorkDays), "an unreadable collection is not absent")
}

func TestGateway_ExistsOnlyFalseWhenMissing(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(storage.NewMemoryStore())

	assert.False(t, g.Exists(ctx, KeyTransactions))
	g.SaveTransactions(ctx, []model.TransactionRecord{})
	assert.True(t, g.Exists(ctx, KeyTransactions))
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	g := NewGateway(store)

	_, err := Lookup[[]model.Driver](ctx, g, KeyDrivers)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, string(KeyDrivers), []byte(`{"broken"`)))
	_, err = Lookup[[]model.Driver](ctx, g, KeyDrivers)
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrKeyNotFound)

	g.SaveDrivers(ctx, model.DefaultDrivers())
	drivers, err := Lookup[[]model.Driver](ctx, g, KeyDrivers)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultDrivers(), drivers)

	_, err = Lookup[[]model.Driver](ctx, NewGateway(&brokenStore{err: errors.New("disk on fire")}), KeyDrivers)
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestGateway_WriteFailureIsDropped(t *testing.T) {
	store := &brokenStore{err: errors.New("read-only filesystem")}
	g := NewGateway(store)

	assert.NotPanics(t, func() {
		g.SaveDrivers(context.Background(), model.DefaultDrivers())
	})
	assert.Equal(t, 1, store.sets, "non-quota failures are not retried")
}

func TestGateway_QuotaClearsOtherCollectionsAndRetries(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(storage.WithQuota(200))
	g := NewGateway(store)

	g.SaveDrivers(ctx, model.DefaultDrivers())
	require.True(t, g.Exists(ctx, KeyDrivers))

	notes := strings.Repeat("x", 60)
	records := []model.TransactionRecord{
		{ID: "t1", DriverID: "1", Date: model.NewDate(2024, 1, 2), Amount: 10, Type: model.TypeIncome, Notes: notes},
	}
	g.SaveTransactions(ctx, records)

	assert.Equal(t, records, g.LoadTransactions(ctx))
	assert.False(t, g.Exists(ctx, KeyDrivers), "other collections are cleared to make room")
}

func TestGateway_QuotaRetryFailureIsDropped(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(storage.WithQuota(10))
	g := NewGateway(store)

	g.SaveWorkDays(ctx, model.DefaultWorkDays())

	assert.False(t, g.Exists(ctx, KeyWorkDays))
	assert.Equal(t, model.DefaultWorkDays(), g.LoadWorkDays(ctx))
}

func TestLoad_Generic(t *testing.T) {
	ctx := context.Background()
	g := NewGateway(storage.NewMemoryStore())

	assert.Equal(t, []string{"fallback"}, Load(ctx, g, KeyDrivers, []string{"fallback"}))
	g.Save(ctx, KeyDrivers, []string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, Load(ctx, g, KeyDrivers, []string{"fallback"}))
}
