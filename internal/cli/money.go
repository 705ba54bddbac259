package cli

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders amount in currency's conventional format, rounded to
// the currency's minor unit. Unknown currencies fall back to a plain number.
func FormatMoney(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// FormatAmount is FormatMoney for a stored float amount.
func FormatAmount(amount float64, currency string) string {
	return FormatMoney(decimal.NewFromFloat(amount), currency)
}

// FormatSigned renders amount with a leading + when positive, in the
// income or expense color.
func FormatSigned(amount decimal.Decimal, currency string) string {
	text := FormatMoney(amount, currency)
	switch {
	case amount.IsPositive():
		return IncomeStyle.Render("+" + text)
	case amount.IsNegative():
		return ExpenseStyle.Render(text)
	default:
		return text
	}
}
