// Package backup turns the whole persisted state into one JSON document and
// back. Older documents that lack the newer collections can still be
// restored; collections they do not carry are left as they are.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/remis/internal/common"
	"github.com/Veraticus/remis/internal/model"
	"github.com/Veraticus/remis/internal/persistence"
	"github.com/Veraticus/remis/internal/storage"
)

// ErrInvalidBackup is returned by Import for documents it will not restore.
var ErrInvalidBackup = errors.New("invalid backup")

// TimestampLayout matches JavaScript's Date.prototype.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Document is the backup file format.
type Document struct {
	Timestamp          string                    `json:"timestamp"`
	IncomeRecords      []model.IncomeRecord      `json:"income_records"`
	TransactionRecords []model.TransactionRecord `json:"transaction_records"`
	WorkDaysConfig     []model.WorkDayConfig     `json:"work_days_config"`
	NonWorkingDays     []model.NonWorkingDay     `json:"non_working_days"`
	Drivers            []model.Driver            `json:"drivers"`
	ExpenseCategories  []model.ExpenseCategory   `json:"expense_categories"`
}

// Codec exports and imports backups through a gateway.
type Codec struct {
	gateway *persistence.Gateway
	now     func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock sets the time source for export timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec returns a codec over gateway.
func NewCodec(gateway *persistence.Gateway, opts ...Option) *Codec {
	c := &Codec{
		gateway: gateway,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Export returns every collection as two-space indented JSON.
func (c *Codec) Export(ctx context.Context) (string, error) {
	doc := Document{
		IncomeRecords:      c.gateway.LoadIncomeRecords(ctx),
		TransactionRecords: c.gateway.LoadTransactions(ctx),
		WorkDaysConfig:     c.gateway.LoadWorkDays(ctx),
		NonWorkingDays:     c.gateway.LoadNonWorkingDays(ctx),
		Drivers:            c.gateway.LoadDrivers(ctx),
		ExpenseCategories:  c.gateway.LoadExpenseCategories(ctx),
		Timestamp:          c.now().UTC().Format(TimestampLayout),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}
	return string(data), nil
}

// ImportOption configures a single Import call.
type ImportOption func(*importOptions)

type importOptions struct {
	progress func(key persistence.Key)
}

// WithProgress calls fn after each collection is written.
func WithProgress(fn func(key persistence.Key)) ImportOption {
	return func(o *importOptions) {
		o.progress = fn
	}
}

// Import restores a document produced by Export. It requires
// work_days_config, non_working_days, and either income_records or
// transaction_records. Every present collection is decoded before anything
// is written, so a rejected document leaves the store untouched. A document
// without transaction_records has its income records merged into the
// stored transactions.
func (c *Codec) Import(ctx context.Context, text string, opts ...ImportOption) error {
	var o importOptions
	for _, opt := range opts {
		opt(&o)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	present := func(key persistence.Key) bool {
		raw, ok := fields[string(key)]
		return ok && string(raw) != "null"
	}

	for _, key := range []persistence.Key{persistence.KeyWorkDays, persistence.KeyNonWorkingDays} {
		if !present(key) {
			return fmt.Errorf("%w: missing %s", ErrInvalidBackup, key)
		}
	}
	if !present(persistence.KeyIncomeRecords) && !present(persistence.KeyTransactions) {
		return fmt.Errorf("%w: missing %s and %s", ErrInvalidBackup, persistence.KeyIncomeRecords, persistence.KeyTransactions)
	}

	var writes []pendingWrite
	for _, key := range persistence.AllKeys() {
		if !present(key) {
			continue
		}
		value, err := decodeCollection(key, fields[string(key)])
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidBackup, key, err)
		}
		writes = append(writes, pendingWrite{key: key, value: value})
	}

	report := func(key persistence.Key) {
		if o.progress != nil {
			o.progress(key)
		}
	}
	var legacy []model.IncomeRecord
	for _, w := range writes {
		c.gateway.Save(ctx, w.key, w.value)
		report(w.key)
		if w.key == persistence.KeyIncomeRecords {
			legacy, _ = w.value.([]model.IncomeRecord)
		}
	}

	if !present(persistence.KeyTransactions) && c.mergeLegacyIncome(ctx, legacy) {
		report(persistence.KeyTransactions)
	}

	common.LogInfo(ctx, "backup restored", common.Fields{
		"collections": len(writes),
		"timestamp":   string(fields["timestamp"]),
	})
	return nil
}

// mergeLegacyIncome adds the income records of an older backup to the
// stored transactions, skipping ids already present. Stored transactions
// that cannot be read are left alone. It reports whether it wrote.
func (c *Codec) mergeLegacyIncome(ctx context.Context, legacy []model.IncomeRecord) bool {
	existing, err := persistence.Lookup[[]model.TransactionRecord](ctx, c.gateway, persistence.KeyTransactions)
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		common.LogWarn(ctx, "stored transactions unreadable, legacy income not merged", common.Fields{
			"error":   err.Error(),
			"records": len(legacy),
		})
		return false
	}

	ids := make(map[string]bool, len(existing))
	for _, t := range existing {
		ids[t.ID] = true
	}

	merged := existing
	for _, r := range legacy {
		if ids[r.ID] {
			continue
		}
		ids[r.ID] = true
		merged = append(merged, r.AsTransaction())
	}
	if len(merged) == len(existing) {
		return false
	}

	c.gateway.SaveTransactions(ctx, merged)
	common.LogInfo(ctx, "merged legacy income into transactions", common.Fields{
		"added": len(merged) - len(existing),
	})
	return true
}

type pendingWrite struct {
	value any
	key   persistence.Key
}

func decodeCollection(key persistence.Key, raw json.RawMessage) (any, error) {
	switch key {
	case persistence.KeyIncomeRecords:
		return decodeInto[[]model.IncomeRecord](raw)
	case persistence.KeyTransactions:
		return decodeInto[[]model.TransactionRecord](raw)
	case persistence.KeyWorkDays:
		return decodeInto[[]model.WorkDayConfig](raw)
	case persistence.KeyNonWorkingDays:
		return decodeInto[[]model.NonWorkingDay](raw)
	case persistence.KeyDrivers:
		return decodeInto[[]model.Driver](raw)
	case persistence.KeyExpenseCategories:
		return decodeInto[[]model.ExpenseCategory](raw)
	default:
		return nil, fmt.Errorf("unknown collection %s", key)
	}
}

func decodeInto[T any](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}
