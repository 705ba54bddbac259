package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/remis/internal/model"
)

func income(id, driver string, date model.Date, amount float64) model.TransactionRecord {
	return model.TransactionRecord{ID: id, DriverID: driver, Date: date, Amount: amount, Type: model.TypeIncome}
}

func expense(id, driver, category string, date model.Date, amount float64) model.TransactionRecord {
	return model.TransactionRecord{ID: id, DriverID: driver, Date: date, Amount: amount, Type: model.TypeExpense, CategoryID: category}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: got %s, want %s", msg, got, want)
}

func TestCompute_SingleIncome(t *testing.T) {
	txns := []model.TransactionRecord{income("t1", "d1", model.NewDate(2024, time.January, 15), 5000)}

	s := Compute(2024, time.January, txns, model.DefaultWorkDays(), nil)

	assertDecimal(t, "5000", s.TotalIncome, "total income")
	assertDecimal(t, "5000", s.IncomeByDay["2024-01-15"], "income by day")
	assertDecimal(t, "5000", s.IncomeByDriver["d1"], "income by driver")
	assertDecimal(t, "0", s.TotalExpenses, "total expenses")
	assertDecimal(t, "5000", s.NetIncome, "net")
	assert.Equal(t, 27, s.TotalWorkDays)
	assert.Equal(t, 1, s.TransactionCount)
	assertDecimal(t, "5000", s.AverageDailyIncome.Mul(decimal.NewFromInt(27)).Round(6), "average times days")
}

func TestCompute_FiltersByCalendarMonth(t *testing.T) {
	txns := []model.TransactionRecord{
		income("a", "d1", model.NewDate(2023, time.December, 31), 100),
		income("b", "d1", model.NewDate(2024, time.January, 1), 200),
		income("c", "d1", model.NewDate(2024, time.January, 31), 300),
		income("d", "d1", model.NewDate(2024, time.February, 1), 400),
		income("e", "d1", model.NewDate(2025, time.January, 10), 500),
	}

	s := Compute(2024, time.January, txns, model.DefaultWorkDays(), nil)

	assertDecimal(t, "500", s.TotalIncome, "only January 2024 counts")
	assert.Len(t, s.IncomeByDay, 2)
	assert.Equal(t, 2, s.TransactionCount)
}

func TestCompute_SplitsByTypeDriverAndCategory(t *testing.T) {
	day := model.NewDate(2024, time.March, 4)
	txns := []model.TransactionRecord{
		income("1", "ana", day, 12000),
		income("2", "ana", day, 3000),
		income("3", "beto", day, 8000),
		expense("4", "ana", "fuel", day, 4500.5),
		expense("5", "beto", "fuel", model.NewDate(2024, time.March, 5), 1000),
		expense("6", "beto", "tolls", model.NewDate(2024, time.March, 5), 250),
	}

	s := Compute(2024, time.March, txns, model.DefaultWorkDays(), nil)

	assertDecimal(t, "23000", s.TotalIncome, "total income")
	assertDecimal(t, "5750.5", s.TotalExpenses, "total expenses")
	assertDecimal(t, "17249.5", s.NetIncome, "net")
	assertDecimal(t, "15000", s.IncomeByDriver["ana"], "ana income")
	assertDecimal(t, "8000", s.IncomeByDriver["beto"], "beto income")
	assertDecimal(t, "4500.5", s.ExpensesByDriver["ana"], "ana expenses")
	assertDecimal(t, "1250", s.ExpensesByDriver["beto"], "beto expenses")
	assertDecimal(t, "23000", s.IncomeByDay["2024-03-04"], "income on the 4th")
	assertDecimal(t, "4500.5", s.ExpensesByDay["2024-03-04"], "expenses on the 4th")
	assertDecimal(t, "1250", s.ExpensesByDay["2024-03-05"], "expenses on the 5th")
	assertDecimal(t, "5500.5", s.ExpensesByCategory["fuel"], "fuel")
	assertDecimal(t, "250", s.ExpensesByCategory["tolls"], "tolls")
	_, hasIncomeOn5th := s.IncomeByDay["2024-03-05"]
	assert.False(t, hasIncomeOn5th)
}

func TestCompute_NoWorkDaysMeansZeroAverage(t *testing.T) {
	workDays := model.DefaultWorkDays()
	for i := range workDays {
		workDays[i].IsWorkDay = false
	}
	txns := []model.TransactionRecord{
		income("1", "d1", model.NewDate(2024, time.January, 15), 5000),
		expense("2", "d1", "fuel", model.NewDate(2024, time.January, 15), 700),
	}

	s := Compute(2024, time.January, txns, workDays, nil)

	assert.Zero(t, s.TotalWorkDays)
	assert.True(t, s.AverageDailyIncome.IsZero())
	assert.True(t, s.AverageDailyExpenses.IsZero())
	assertDecimal(t, "5000", s.TotalIncome, "totals still computed")
}

func TestCompute_ExceptionsReduceWorkDays(t *testing.T) {
	exceptions := []model.NonWorkingDay{
		{ID: "a", Date: model.NewDate(2024, time.January, 1)},
		{ID: "b", Date: model.NewDate(2024, time.January, 7)}, // already a Sunday
		{ID: "c", Date: model.NewDate(2024, time.February, 1)},
	}
	s := Compute(2024, time.January, nil, model.DefaultWorkDays(), exceptions)
	assert.Equal(t, 26, s.TotalWorkDays)
}

func TestCompute_PerDaySumsMatchTotals(t *testing.T) {
	var txns []model.TransactionRecord
	for day := 1; day <= 31; day++ {
		date := model.NewDate(2024, time.January, day)
		txns = append(txns,
			income("i", "d1", date, 0.1*float64(day)),
			income("j", "d2", date, 1234.56),
			expense("e", "d1", "other", date, 0.3),
		)
	}

	s := Compute(2024, time.January, txns, model.DefaultWorkDays(), nil)

	incomeSum := decimal.Zero
	for _, v := range s.IncomeByDay {
		incomeSum = incomeSum.Add(v)
	}
	expenseSum := decimal.Zero
	for _, v := range s.ExpensesByDay {
		expenseSum = expenseSum.Add(v)
	}
	require.True(t, incomeSum.Equal(s.TotalIncome), "income by day %s != total %s", incomeSum, s.TotalIncome)
	require.True(t, expenseSum.Equal(s.TotalExpenses), "expenses by day %s != total %s", expenseSum, s.TotalExpenses)
	assertDecimal(t, "9.3", s.TotalExpenses, "no float drift")
}

func TestCompute_EmptyMonth(t *testing.T) {
	s := Compute(2024, time.February, nil, model.DefaultWorkDays(), nil)

	assert.Equal(t, 2024, s.Year)
	assert.Equal(t, time.February, s.Month)
	assert.NotNil(t, s.IncomeByDay)
	assert.Empty(t, s.IncomeByDriver)
	assert.True(t, s.NetIncome.IsZero())
	assert.Equal(t, 25, s.TotalWorkDays)
}
