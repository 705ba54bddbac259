package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/remis/internal/cli"
	"github.com/Veraticus/remis/internal/ledger"
	"github.com/Veraticus/remis/internal/model"
)

func statsCmd() *cobra.Command {
	var (
		month string
		daily bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a month's totals",
		Long: `Show income, expenses, and net for a month, with averages per working day
and breakdowns by driver and expense category.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			year, mon, err := parseMonth(month)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			s := a.ledger.MonthlyStats(year, mon)
			out := cmd.OutOrStdout()
			cur := a.settings.Currency

			fmt.Fprintln(out, renderSummary(s, cur))

			if len(s.IncomeByDriver)+len(s.ExpensesByDriver) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, cli.BoldStyle.Render("By driver"))
				writeBreakdown(out, cur, func(id string) string { return driverName(a.ledger, id) },
					unionKeys(s.IncomeByDriver, s.ExpensesByDriver), s.IncomeByDriver, s.ExpensesByDriver)
			}

			if len(s.ExpensesByCategory) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, cli.BoldStyle.Render("Expenses by category"))
				writeCategoryBreakdown(out, a.ledger, cur, s.ExpensesByCategory)
			}

			if daily && s.TransactionCount > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, cli.BoldStyle.Render("By day"))
				writeBreakdown(out, cur, func(day string) string { return day },
					unionKeys(s.IncomeByDay, s.ExpensesByDay), s.IncomeByDay, s.ExpensesByDay)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (default current month)")
	cmd.Flags().BoolVar(&daily, "daily", false, "also list totals per day")

	return cmd
}

func renderSummary(s model.MonthlyStats, cur string) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Income\t%s\n", cli.IncomeStyle.Render(cli.FormatMoney(s.TotalIncome, cur)))
	fmt.Fprintf(w, "Expenses\t%s\n", cli.ExpenseStyle.Render(cli.FormatMoney(s.TotalExpenses, cur)))
	fmt.Fprintf(w, "Net\t%s\n", cli.FormatSigned(s.NetIncome, cur))
	fmt.Fprintf(w, "Working days\t%d\n", s.TotalWorkDays)
	fmt.Fprintf(w, "Avg income / day\t%s\n", cli.FormatMoney(s.AverageDailyIncome, cur))
	fmt.Fprintf(w, "Avg expenses / day\t%s\n", cli.FormatMoney(s.AverageDailyExpenses, cur))
	fmt.Fprintf(w, "Transactions\t%d", s.TransactionCount)
	_ = w.Flush()

	title := fmt.Sprintf("%s %s %d", cli.ChartIcon, cli.MonthName(s.Month), s.Year)
	return cli.RenderBox(title, b.String())
}

func writeBreakdown(out io.Writer, cur string, label func(string) string, keys []string, income, expenses map[string]decimal.Decimal) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	for _, k := range keys {
		fmt.Fprintf(w, "  %s\t%s\t%s\n",
			label(k),
			cli.IncomeStyle.Render(cli.FormatMoney(income[k], cur)),
			cli.ExpenseStyle.Render(cli.FormatMoney(expenses[k], cur)))
	}
}

func writeCategoryBreakdown(out io.Writer, l *ledger.Ledger, cur string, byCategory map[string]decimal.Decimal) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	ids := unionKeys(byCategory, nil)
	sort.SliceStable(ids, func(i, j int) bool {
		return byCategory[ids[i]].GreaterThan(byCategory[ids[j]])
	})
	for _, id := range ids {
		swatch := " "
		if c, ok := l.Category(id); ok {
			swatch = cli.Swatch(c.Color)
		}
		fmt.Fprintf(w, "  %s %s\t%s\n", swatch, categoryName(l, id), cli.FormatMoney(byCategory[id], cur))
	}
}

// unionKeys returns the keys of a and b, sorted.
func unionKeys(a, b map[string]decimal.Decimal) []string {
	seen := make(map[string]bool, len(a)+len(b))
	keys := make([]string, 0, len(a)+len(b))
	for _, m := range []map[string]decimal.Decimal{a, b} {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
