// Package stats derives monthly summaries from the transaction log.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/remis/internal/calendar"
	"github.com/Veraticus/remis/internal/model"
)

// Compute summarizes the transactions that fall in the given calendar month.
// Averages are per working day and are zero for a month with no working days.
func Compute(
	year int,
	month time.Month,
	transactions []model.TransactionRecord,
	workDays []model.WorkDayConfig,
	exceptions []model.NonWorkingDay,
) model.MonthlyStats {
	stats := model.MonthlyStats{
		Year:               year,
		Month:              month,
		IncomeByDay:        make(map[string]decimal.Decimal),
		ExpensesByDay:      make(map[string]decimal.Decimal),
		IncomeByDriver:     make(map[string]decimal.Decimal),
		ExpensesByDriver:   make(map[string]decimal.Decimal),
		ExpensesByCategory: make(map[string]decimal.Decimal),
	}

	for _, txn := range transactions {
		if !txn.Date.InMonth(year, month) {
			continue
		}
		stats.TransactionCount++

		amount := decimal.NewFromFloat(txn.Amount)
		day := txn.Date.Key()

		switch txn.Type {
		case model.TypeIncome:
			stats.TotalIncome = stats.TotalIncome.Add(amount)
			addTo(stats.IncomeByDay, day, amount)
			addTo(stats.IncomeByDriver, txn.DriverID, amount)
		case model.TypeExpense:
			stats.TotalExpenses = stats.TotalExpenses.Add(amount)
			addTo(stats.ExpensesByDay, day, amount)
			addTo(stats.ExpensesByDriver, txn.DriverID, amount)
			addTo(stats.ExpensesByCategory, txn.CategoryID, amount)
		}
	}

	stats.TotalWorkDays = calendar.WorkingDaysIn(year, month, workDays, exceptions)
	stats.NetIncome = stats.TotalIncome.Sub(stats.TotalExpenses)

	if stats.TotalWorkDays > 0 {
		days := decimal.NewFromInt(int64(stats.TotalWorkDays))
		stats.AverageDailyIncome = stats.TotalIncome.Div(days)
		stats.AverageDailyExpenses = stats.TotalExpenses.Div(days)
	}

	return stats
}

func addTo(m map[string]decimal.Decimal, key string, amount decimal.Decimal) {
	m[key] = m[key].Add(amount)
}
