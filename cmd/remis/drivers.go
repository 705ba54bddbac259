package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/remis/internal/cli"
	"github.com/Veraticus/remis/internal/model"
)

func driversCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drivers",
		Short: "Manage drivers",
		Long:  `List, add, edit, and delete the drivers whose income and expenses are tracked.`,
	}

	cmd.AddCommand(listDriversCmd())
	cmd.AddCommand(addDriverCmd())
	cmd.AddCommand(editDriverCmd())
	cmd.AddCommand(deleteDriverCmd())

	return cmd
}

func listDriversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all drivers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Vehicle"),
				cli.BoldStyle.Render("Color"),
				cli.BoldStyle.Render("Status"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 20),
				strings.Repeat("-", 7),
				strings.Repeat("-", 9),
				strings.Repeat("-", 8))

			for _, d := range a.ledger.Drivers() {
				status := cli.SuccessStyle.Render("active")
				if !d.Active {
					status = cli.SubtleStyle.Render("inactive")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
					d.ID, d.Name, d.VehicleType, cli.Swatch(d.VehicleColor), d.VehicleColor, status)
			}
			return nil
		},
	}
}

func addDriverCmd() *cobra.Command {
	var (
		vehicle  string
		color    string
		inactive bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a driver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			d, err := a.ledger.AddDriver(ctx, model.Driver{
				Name:         strings.TrimSpace(args[0]),
				VehicleType:  model.VehicleType(strings.ToLower(vehicle)),
				VehicleColor: color,
				Active:       !inactive,
			})
			if err != nil {
				return userFacing(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added driver %q (ID: %s)", d.Name, d.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&vehicle, "vehicle", string(model.VehicleTaxi), "vehicle type (taxi or remise)")
	cmd.Flags().StringVar(&color, "color", model.DefaultVehicleColor, "vehicle color as #rrggbb")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "add the driver as inactive")

	return cmd
}

func editDriverCmd() *cobra.Command {
	var (
		name    string
		vehicle string
		color   string
		active  bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a driver",
		Long:  `Change a driver's name, vehicle, color, or active flag. Only the flags given are changed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("vehicle") && !flags.Changed("color") && !flags.Changed("active") {
				return fmt.Errorf("must specify --name, --vehicle, --color, or --active to update")
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			d, ok := a.ledger.Driver(args[0])
			if !ok {
				return fmt.Errorf("driver %q not found", args[0])
			}
			if flags.Changed("name") {
				d.Name = strings.TrimSpace(name)
			}
			if flags.Changed("vehicle") {
				d.VehicleType = model.VehicleType(strings.ToLower(vehicle))
			}
			if flags.Changed("color") {
				d.VehicleColor = color
			}
			if flags.Changed("active") {
				d.Active = active
			}

			if err := a.ledger.EditDriver(ctx, d); err != nil {
				return userFacing(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated driver %q", d.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&vehicle, "vehicle", "", "new vehicle type (taxi or remise)")
	cmd.Flags().StringVar(&color, "color", "", "new vehicle color as #rrggbb")
	cmd.Flags().BoolVar(&active, "active", true, "whether the driver takes new transactions")

	return cmd
}

func deleteDriverCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a driver",
		Long: `Delete a driver. Their transactions are kept. The last remaining driver
cannot be deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			d, ok := a.ledger.Driver(args[0])
			if !ok {
				return fmt.Errorf("driver %q not found", args[0])
			}

			if !force {
				ok, err := cli.Confirm(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete driver %q?", d.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Deletion canceled"))
					return nil
				}
			}

			if err := a.ledger.DeleteDriver(ctx, d.ID); err != nil {
				return userFacing(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted driver %q", d.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
