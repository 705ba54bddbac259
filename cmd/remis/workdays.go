package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/remis/internal/cli"
)

var weekdayLabels = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

func workdaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workdays",
		Short: "Configure which weekdays are worked",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the weekly configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			for _, d := range a.ledger.WorkDays() {
				state := cli.SuccessStyle.Render("on")
				if !d.IsWorkDay {
					state = cli.SubtleStyle.Render("off")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", d.DayOfWeek, weekdayLabels[d.DayOfWeek], state)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <weekday> <on|off>",
		Short: "Turn a weekday on or off",
		Long: `Turn a weekday on or off. The weekday is 0-6 with 0 for Sunday, or a name
in English or Spanish (sun, monday, lunes, sábado, ...).`,
		Example: `  remis workdays set sunday on
  remis workdays set 6 off`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekday, err := parseWeekday(args[0])
			if err != nil {
				return err
			}
			on, err := parseOnOff(args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.ledger.SetWorkDay(ctx, weekday, on); err != nil {
				return userFacing(err)
			}

			state := "working"
			if !on {
				state = "not working"
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s is now %s", weekdayLabels[weekday], state)))
			return nil
		},
	})

	return cmd
}

// weekdayLabel names a weekday for display.
func weekdayLabel(wd time.Weekday) string {
	return weekdayLabels[wd]
}
