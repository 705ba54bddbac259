package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/remis/internal/cli"
	"github.com/Veraticus/remis/internal/model"
	"github.com/Veraticus/remis/internal/tui"
)

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the month and mark days off",
	}

	var month string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show a month with working days and income",
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

			stats := a.ledger.MonthlyStats(year, mon)
			grid := cli.RenderMonth(year, mon, func(d model.Date) cli.DayMarks {
				_, income := stats.IncomeByDay[d.Key()]
				return cli.DayMarks{
					Working:   a.ledger.IsWorkingDay(d),
					HasIncome: income,
				}
			})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, grid)
			fmt.Fprintf(out, "\n%s %d\n", cli.SubtleStyle.Render("Working days:"), stats.TotalWorkDays)
			return nil
		},
	}
	show.Flags().StringVarP(&month, "month", "m", "", "month as YYYY-MM (default current month)")

	toggle := &cobra.Command{
		Use:   "toggle <YYYY-MM-DD>",
		Short: "Mark or unmark a date as a day off",
		Long: `Mark a date as not worked, or clear that mark. Days off by the weekly
configuration stay off either way.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDay(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if a.ledger.ToggleNonWorkingDay(ctx, date) {
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s %s marked as a day off", weekdayLabel(date.Weekday()), date.Key())))
				return nil
			}

			msg := fmt.Sprintf("%s %s is a working day again", weekdayLabel(date.Weekday()), date.Key())
			if !a.ledger.IsWorkingDay(date) {
				msg = fmt.Sprintf("%s %s is no longer marked, but %s is off every week", weekdayLabel(date.Weekday()), date.Key(), weekdayLabel(date.Weekday()))
			}
			fmt.Fprintln(out, cli.FormatSuccess(msg))
			return nil
		},
	}

	var browseMonth string
	browse := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive calendar",
		Long: `Open a full-screen calendar. Move with the arrow keys, change month with
[ and ], and press space to mark or unmark the selected day as a day off.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start := model.Today()
			if browseMonth != "" {
				year, mon, err := parseMonth(browseMonth)
				if err != nil {
					return err
				}
				start = model.NewDate(year, mon, 1)
			}

			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			return tui.Run(ctx, tui.Config{
				Calendar: a.ledger,
				Input:    cmd.InOrStdin(),
				Output:   cmd.OutOrStdout(),
				Start:    start,
				Currency: a.settings.Currency,
			})
		},
	}
	browse.Flags().StringVarP(&browseMonth, "month", "m", "", "month to open as YYYY-MM (default current month)")

	cmd.AddCommand(show)
	cmd.AddCommand(toggle)
	cmd.AddCommand(browse)

	return cmd
}
