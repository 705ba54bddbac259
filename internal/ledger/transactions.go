package ledger

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Veraticus/remis/internal/common"
	"github.com/Veraticus/remis/internal/model"
)

// Transactions returns a copy of every transaction in insertion order.
func (l *Ledger) Transactions() []model.TransactionRecord {
	return slices.Clone(l.transactions)
}

// TransactionsForMonth returns the transactions of one calendar month,
// ordered by date. Records on the same day keep insertion order.
func (l *Ledger) TransactionsForMonth(year int, month time.Month) []model.TransactionRecord {
	var out []model.TransactionRecord
	for _, t := range l.transactions {
		if t.Date.InMonth(year, month) {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b model.TransactionRecord) int {
		return a.Date.Compare(b.Date.Time)
	})
	return out
}

// Transaction returns the record with the given id.
func (l *Ledger) Transaction(id string) (model.TransactionRecord, bool) {
	idx := l.transactionIndex(id)
	if idx < 0 {
		return model.TransactionRecord{}, false
	}
	return l.transactions[idx], true
}

// AddTransaction stores rec under a fresh id and returns it. The driver
// must exist and be active; an expense category must exist.
func (l *Ledger) AddTransaction(ctx context.Context, rec model.TransactionRecord) (model.TransactionRecord, error) {
	if err := l.checkTransaction(rec, true); err != nil {
		return model.TransactionRecord{}, err
	}

	rec.ID = l.ids.NewID()
	l.transactions = append(l.transactions, rec)
	l.gateway.SaveTransactions(ctx, l.transactions)

	common.LogDebug(ctx, "transaction added", common.Fields{
		"id":     rec.ID,
		"type":   rec.Type,
		"date":   rec.Date.Key(),
		"driver": rec.DriverID,
	})
	return rec, nil
}

// EditTransaction replaces the record whose id matches rec.ID.
func (l *Ledger) EditTransaction(ctx context.Context, rec model.TransactionRecord) error {
	idx := l.transactionIndex(rec.ID)
	if idx < 0 {
		return fmt.Errorf("transaction %q: %w", rec.ID, common.ErrNotFound)
	}
	if err := l.checkTransaction(rec, false); err != nil {
		return err
	}

	l.transactions[idx] = rec
	l.gateway.SaveTransactions(ctx, l.transactions)
	return nil
}

// DeleteTransaction removes the record with the given id. Deleting an id
// that does not exist does nothing.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) {
	idx := l.transactionIndex(id)
	if idx < 0 {
		return
	}
	l.transactions = slices.Delete(l.transactions, idx, idx+1)
	l.gateway.SaveTransactions(ctx, l.transactions)
}

// FindForDay returns the first record for driverID of type typ on date.
// Date, driver and type together are how a day's entry is looked up for
// editing, although nothing stops several records sharing them.
func (l *Ledger) FindForDay(date model.Date, driverID string, typ model.TransactionType) (model.TransactionRecord, bool) {
	for _, t := range l.transactions {
		if t.Date.SameDay(date) && t.DriverID == driverID && t.Type == typ {
			return t, true
		}
	}
	return model.TransactionRecord{}, false
}

// RecordForDay updates the day's entry for rec's driver and type, or adds
// one if there is none. The stored record is returned.
func (l *Ledger) RecordForDay(ctx context.Context, rec model.TransactionRecord) (model.TransactionRecord, error) {
	existing, ok := l.FindForDay(rec.Date, rec.DriverID, rec.Type)
	if !ok {
		return l.AddTransaction(ctx, rec)
	}
	rec.ID = existing.ID
	if err := l.EditTransaction(ctx, rec); err != nil {
		return model.TransactionRecord{}, err
	}
	return rec, nil
}

func (l *Ledger) checkTransaction(rec model.TransactionRecord, requireActive bool) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	driver, ok := l.Driver(rec.DriverID)
	if !ok {
		return fmt.Errorf("driver %q: %w", rec.DriverID, common.ErrNotFound)
	}
	if requireActive && !driver.Active {
		return fmt.Errorf("%s: %w", driver.Name, common.ErrInactiveDriver)
	}

	if rec.Type == model.TypeExpense {
		if _, ok := l.Category(rec.CategoryID); !ok {
			return fmt.Errorf("expense category %q: %w", rec.CategoryID, common.ErrNotFound)
		}
	}
	return nil
}

func (l *Ledger) transactionIndex(id string) int {
	return slices.IndexFunc(l.transactions, func(t model.TransactionRecord) bool {
		return t.ID == id
	})
}

// sortedCopy returns items ordered by key without touching the original.
func sortedCopy[T any, K cmp.Ordered](items []T, key func(T) K) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	})
	return out
}
