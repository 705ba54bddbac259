package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Veraticus/remis/internal/cli"
	"github.com/Veraticus/remis/internal/ledger"
	"github.com/Veraticus/remis/internal/model"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Record income and expenses",
		Long:    `List, add, edit, and delete income and expense transactions.`,
	}

	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(recordTxCmd())
	cmd.AddCommand(editTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

// txFlags are the fields shared by add, record, and edit.
type txFlags struct {
	date     string
	driver   string
	kind     string
	category string
	notes    string
	amount   float64
}

func (f *txFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.date, "date", "", "day as YYYY-MM-DD (default today)")
	flags.StringVar(&f.driver, "driver", "", "driver id (default the first active driver)")
	flags.StringVarP(&f.kind, "type", "t", string(model.TypeIncome), "income or expense")
	flags.StringVarP(&f.category, "category", "c", "", "expense category id")
	flags.StringVarP(&f.notes, "notes", "n", "", "free-text notes")
	flags.Float64VarP(&f.amount, "amount", "a", 0, "amount")
}

// record builds a new transaction from the flags.
func (f *txFlags) record(l *ledger.Ledger) (model.TransactionRecord, error) {
	date, err := parseDay(f.date)
	if err != nil {
		return model.TransactionRecord{}, err
	}

	driverID := f.driver
	if driverID == "" {
		active := l.ActiveDrivers()
		if len(active) == 0 {
			return model.TransactionRecord{}, fmt.Errorf("no active driver; pass --driver")
		}
		driverID = active[0].ID
	}

	rec := model.TransactionRecord{
		Date:     date,
		DriverID: driverID,
		Type:     model.TransactionType(strings.ToLower(f.kind)),
		Amount:   f.amount,
		Notes:    f.notes,
	}
	if rec.Type == model.TypeExpense {
		rec.CategoryID = f.category
	}
	return rec, nil
}

// apply overwrites the fields of rec whose flags were given.
func (f *txFlags) apply(flags *pflag.FlagSet, rec model.TransactionRecord) (model.TransactionRecord, error) {
	if flags.Changed("date") {
		date, err := parseDay(f.date)
		if err != nil {
			return rec, err
		}
		rec.Date = date
	}
	if flags.Changed("driver") {
		rec.DriverID = f.driver
	}
	if flags.Changed("type") {
		rec.Type = model.TransactionType(strings.ToLower(f.kind))
	}
	if flags.Changed("category") {
		rec.CategoryID = f.category
	}
	if flags.Changed("notes") {
		rec.Notes = f.notes
	}
	if flags.Changed("amount") {
		rec.Amount = f.amount
	}
	if rec.Type == model.TypeIncome {
		rec.CategoryID = ""
	}
	return rec, nil
}

func listTxCmd() *cobra.Command {
	var (
		month  string
		driver string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a month's transactions",
		Args:  cobra.NoArgs,
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

			var txns []model.TransactionRecord
			for _, t := range a.ledger.TransactionsForMonth(year, mon) {
				if driver == "" || t.DriverID == driver {
					txns = append(txns, t)
				}
			}

			out := cmd.OutOrStdout()
			if len(txns) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render(fmt.Sprintf("No transactions in %s %d. Use 'remis tx add' to record one.", cli.MonthName(mon), year)))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Date"),
				cli.BoldStyle.Render("Type"),
				cli.BoldStyle.Render("Driver"),
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Amount"),
				cli.BoldStyle.Render("Notes"),
				cli.BoldStyle.Render("ID"))

			for _, t := range txns {
				amount := cli.FormatAmount(t.Amount, a.settings.Currency)
				if t.Type == model.TypeExpense {
					amount = cli.ExpenseStyle.Render("-" + amount)
				} else {
					amount = cli.IncomeStyle.Render(amount)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					t.Date.Key(),
					t.Type,
					driverName(a.ledger, t.DriverID),
					categoryName(a.ledger, t.CategoryID),
					amount,
					t.Notes,
					cli.SubtleStyle.Render(t.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (default current month)")
	cmd.Flags().StringVar(&driver, "driver", "", "only this driver id")

	return cmd
}

func addTxCmd() *cobra.Command {
	var f txFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction",
		Example: `  remis tx add --amount 15000
  remis tx add --type expense --category fuel --amount 8000 --date 2024-01-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			rec, err := f.record(a.ledger)
			if err != nil {
				return err
			}
			rec, err = a.ledger.AddTransaction(ctx, rec)
			if err != nil {
				return userFacing(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s of %s on %s (ID: %s)",
				rec.Type, cli.FormatAmount(rec.Amount, a.settings.Currency), rec.Date.Key(), rec.ID)))
			return nil
		},
	}

	f.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func recordTxCmd() *cobra.Command {
	var f txFlags

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Set a driver's income or expense for a day",
		Long: `Set the income or expense a driver has on a day. If there already is a
transaction of that type for that driver and day it is updated; otherwise
a new one is added.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			rec, err := f.record(a.ledger)
			if err != nil {
				return err
			}
			_, existed := a.ledger.FindForDay(rec.Date, rec.DriverID, rec.Type)
			rec, err = a.ledger.RecordForDay(ctx, rec)
			if err != nil {
				return userFacing(err)
			}

			verb := "Recorded"
			if existed {
				verb = "Updated"
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s %s of %s on %s for %s",
				verb, rec.Type, cli.FormatAmount(rec.Amount, a.settings.Currency), rec.Date.Key(), driverName(a.ledger, rec.DriverID))))
			return nil
		},
	}

	f.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func editTxCmd() *cobra.Command {
	var f txFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction",
		Long:  `Change fields of an existing transaction. Only the flags given are changed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			rec, ok := a.ledger.Transaction(args[0])
			if !ok {
				return fmt.Errorf("transaction %q not found", args[0])
			}
			rec, err = f.apply(cmd.Flags(), rec)
			if err != nil {
				return err
			}
			if err := a.ledger.EditTransaction(ctx, rec); err != nil {
				return userFacing(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated transaction %s", rec.ID)))
			return nil
		},
	}

	f.register(cmd.Flags())

	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, ok := a.ledger.Transaction(args[0]); !ok {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("No transaction %s; nothing to delete", args[0])))
				return nil
			}
			a.ledger.DeleteTransaction(ctx, args[0])

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted transaction %s", args[0])))
			return nil
		},
	}
}
