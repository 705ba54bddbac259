package main

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Veraticus/remis/internal/backup"
	"github.com/Veraticus/remis/internal/cli"
	"github.com/Veraticus/remis/internal/common"
	"github.com/Veraticus/remis/internal/model"
	"github.com/Veraticus/remis/internal/persistence"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore all data as JSON",
	}

	cmd.AddCommand(exportBackupCmd())
	cmd.AddCommand(importBackupCmd())

	return cmd
}

// defaultBackupName is the file name export uses when --out is not given.
func defaultBackupName(day model.Date) string {
	return fmt.Sprintf("remis-backup-%s.json", day.Key())
}

func exportBackupCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every collection to a JSON file",
		Long: `Write drivers, categories, transactions, and the work calendar to one JSON
document. Use --out - to print it instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			text, err := backup.NewCodec(a.gateway).Export(ctx)
			if err != nil {
				return err
			}

			if outPath == "-" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			if outPath == "" {
				outPath = defaultBackupName(model.Today())
			}
			if err := afero.WriteFile(appFs, outPath, []byte(text), 0o600); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s Backup written to %s", cli.DiskIcon, outPath)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default remis-backup-YYYY-MM-DD.json)")

	return cmd
}

func importBackupCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a JSON backup",
		Long: `Replace the stored collections with those in a backup file. Collections the
file does not contain, as in backups from older versions, are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := afero.ReadFile(appFs, args[0])
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if !force {
				ok, err := cli.Confirm(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), "Replace current data with "+args[0]+"?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Import canceled"))
					return nil
				}
			}

			bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(persistence.AllKeys()), "Restoring")
			err = backup.NewCodec(a.gateway).Import(ctx, string(data), backup.WithProgress(func(persistence.Key) {
				cli.Step(bar)
			}))
			if errors.Is(err, backup.ErrInvalidBackup) {
				return common.NewUserError("backup file rejected, nothing was changed", err)
			}
			if err != nil {
				return err
			}
			_ = bar.Finish()

			a.ledger.Reload(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Restored %s: %d drivers, %d transactions",
				args[0], len(a.ledger.Drivers()), len(a.ledger.Transactions()))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
