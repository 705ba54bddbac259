package model

import (
	"fmt"
	"math"

	"github.com/Veraticus/remis/internal/common"
)

// TransactionType tells income from expense.
type TransactionType string

const (
	// TypeIncome is money earned driving.
	TypeIncome TransactionType = "income"
	// TypeExpense is money spent (fuel, repairs, tolls).
	TypeExpense TransactionType = "expense"
)

// IsValid reports whether t is income or expense.
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// TransactionRecord is a single income or expense entry for a driver on a day.
type TransactionRecord struct {
	Date       Date            `json:"date"`
	ID         string          `json:"id"`
	DriverID   string          `json:"driverId"`
	Type       TransactionType `json:"type"`
	CategoryID string          `json:"categoryId,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	Amount     float64         `json:"amount"`
}

// Validate checks a record before it is stored.
func (t TransactionRecord) Validate() error {
	if t.DriverID == "" {
		return fmt.Errorf("%w: transaction needs a driver", common.ErrInvalidInput)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: transaction needs a date", common.ErrInvalidInput)
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount < 0 {
		return fmt.Errorf("%w: amount must be a non-negative number", common.ErrInvalidInput)
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: type %q must be income or expense", common.ErrInvalidInput, t.Type)
	}
	if t.Type == TypeExpense && t.CategoryID == "" {
		return fmt.Errorf("%w: expenses need a category", common.ErrInvalidInput)
	}
	return nil
}

// IncomeRecord is the pre-expense record shape still found in old stores
// and backups under the income_records key.
type IncomeRecord struct {
	Date     Date    `json:"date"`
	ID       string  `json:"id"`
	DriverID string  `json:"driverId"`
	Notes    string  `json:"notes,omitempty"`
	Amount   float64 `json:"amount"`
}

// AsTransaction converts a legacy income record into an income transaction.
func (r IncomeRecord) AsTransaction() TransactionRecord {
	return TransactionRecord{
		ID:       r.ID,
		DriverID: r.DriverID,
		Date:     r.Date,
		Amount:   r.Amount,
		Type:     TypeIncome,
		Notes:    r.Notes,
	}
}
