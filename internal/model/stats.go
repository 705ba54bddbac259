package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyStats is a derived, read-only summary of one calendar month.
// It is recomputed on every request and never stored.
type MonthlyStats struct {
	IncomeByDay          map[string]decimal.Decimal
	ExpensesByDay        map[string]decimal.Decimal
	IncomeByDriver       map[string]decimal.Decimal
	ExpensesByDriver     map[string]decimal.Decimal
	ExpensesByCategory   map[string]decimal.Decimal
	TotalIncome          decimal.Decimal
	TotalExpenses        decimal.Decimal
	NetIncome            decimal.Decimal
	AverageDailyIncome   decimal.Decimal
	AverageDailyExpenses decimal.Decimal
	Year                 int
	Month                time.Month
	TotalWorkDays        int
	TransactionCount     int
}
