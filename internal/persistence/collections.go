package persistence

import (
	"context"
	"errors"

	"github.com/Veraticus/remis/internal/model"
)

var errEmptyCollection = errors.New("collection must not be empty")

func notEmpty[T any](items []T) error {
	if len(items) == 0 {
		return errEmptyCollection
	}
	return nil
}

// LoadDrivers returns the stored drivers, or the default driver.
func (g *Gateway) LoadDrivers(ctx context.Context) []model.Driver {
	return loadValidated(ctx, g, KeyDrivers, model.DefaultDrivers(), notEmpty[model.Driver])
}

// SaveDrivers replaces the stored drivers.
func (g *Gateway) SaveDrivers(ctx context.Context, drivers []model.Driver) {
	g.Save(ctx, KeyDrivers, drivers)
}

// LoadExpenseCategories returns the stored categories, or the defaults.
func (g *Gateway) LoadExpenseCategories(ctx context.Context) []model.ExpenseCategory {
	return loadValidated(ctx, g, KeyExpenseCategories, model.DefaultExpenseCategories(), notEmpty[model.ExpenseCategory])
}

// SaveExpenseCategories replaces the stored categories.
func (g *Gateway) SaveExpenseCategories(ctx context.Context, categories []model.ExpenseCategory) {
	g.Save(ctx, KeyExpenseCategories, categories)
}

// LoadTransactions returns the stored transaction records.
func (g *Gateway) LoadTransactions(ctx context.Context) []model.TransactionRecord {
	return Load(ctx, g, KeyTransactions, []model.TransactionRecord{})
}

// SaveTransactions replaces the stored transaction records.
func (g *Gateway) SaveTransactions(ctx context.Context, records []model.TransactionRecord) {
	g.Save(ctx, KeyTransactions, records)
}

// LoadIncomeRecords returns the legacy income records.
func (g *Gateway) LoadIncomeRecords(ctx context.Context) []model.IncomeRecord {
	return Load(ctx, g, KeyIncomeRecords, []model.IncomeRecord{})
}

// SaveIncomeRecords replaces the legacy income records.
func (g *Gateway) SaveIncomeRecords(ctx context.Context, records []model.IncomeRecord) {
	g.Save(ctx, KeyIncomeRecords, records)
}

// LoadWorkDays returns the weekly work-day config, or the default when the
// stored one is not exactly one entry per weekday.
func (g *Gateway) LoadWorkDays(ctx context.Context) []model.WorkDayConfig {
	return loadValidated(ctx, g, KeyWorkDays, model.DefaultWorkDays(), model.ValidateWorkDays)
}

// SaveWorkDays replaces the weekly work-day config.
func (g *Gateway) SaveWorkDays(ctx context.Context, days []model.WorkDayConfig) {
	g.Save(ctx, KeyWorkDays, days)
}

// LoadNonWorkingDays returns the per-date non-working exceptions.
func (g *Gateway) LoadNonWorkingDays(ctx context.Context) []model.NonWorkingDay {
	return Load(ctx, g, KeyNonWorkingDays, []model.NonWorkingDay{})
}

// SaveNonWorkingDays replaces the per-date non-working exceptions.
func (g *Gateway) SaveNonWorkingDays(ctx context.Context, days []model.NonWorkingDay) {
	g.Save(ctx, KeyNonWorkingDays, days)
}
