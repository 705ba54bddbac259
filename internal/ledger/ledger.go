// Package ledger owns the application state: transactions, drivers, expense
// categories and the work calendar. Every mutation writes the whole affected
// collection through the persistence gateway before it returns.
//
// A Ledger is not safe for concurrent use.
package ledger

import (
	"context"

	"github.com/Veraticus/remis/internal/common"
	"github.com/Veraticus/remis/internal/model"
	"github.com/Veraticus/remis/internal/persistence"
	"github.com/Veraticus/remis/internal/service"
)

// Ledger is the in-memory state container backed by a gateway.
type Ledger struct {
	gateway *persistence.Gateway
	ids     service.IDGenerator
	state
}

type state struct {
	transactions   []model.TransactionRecord
	drivers        []model.Driver
	categories     []model.ExpenseCategory
	workDays       []model.WorkDayConfig
	nonWorkingDays []model.NonWorkingDay
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(ids service.IDGenerator) Option {
	return func(l *Ledger) {
		l.ids = ids
	}
}

// Open loads every collection from the gateway.
func Open(ctx context.Context, gateway *persistence.Gateway, opts ...Option) *Ledger {
	l := &Ledger{
		gateway: gateway,
		ids:     NewUUIDGenerator(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.Reload(ctx)
	return l
}

// Reload discards in-memory state and reads it again, for example after a
// backup import replaced the stored collections.
func (l *Ledger) Reload(ctx context.Context) {
	l.state = state{
		transactions:   l.gateway.LoadTransactions(ctx),
		drivers:        l.gateway.LoadDrivers(ctx),
		categories:     l.gateway.LoadExpenseCategories(ctx),
		workDays:       l.gateway.LoadWorkDays(ctx),
		nonWorkingDays: l.gateway.LoadNonWorkingDays(ctx),
	}
	l.migrateIncomeRecords(ctx)
}

// migrateIncomeRecords converts legacy income records into income
// transactions the first time a store without transactions is opened.
func (l *Ledger) migrateIncomeRecords(ctx context.Context) {
	if l.gateway.Exists(ctx, persistence.KeyTransactions) {
		return
	}
	legacy := l.gateway.LoadIncomeRecords(ctx)
	if len(legacy) == 0 {
		return
	}

	l.transactions = make([]model.TransactionRecord, 0, len(legacy))
	for _, r := range legacy {
		l.transactions = append(l.transactions, r.AsTransaction())
	}
	l.gateway.SaveTransactions(ctx, l.transactions)

	common.LogInfo(ctx, "migrated legacy income records", common.Fields{
		"count": len(legacy),
	})
}
