package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/remis/internal/cli"
	"github.com/Veraticus/remis/internal/model"
)

const defaultCategoryColor = "#607d8b"

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long:  `List, add, edit, and delete the categories expenses are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(editCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.BoldStyle.Render("ID"),
				cli.BoldStyle.Render("Name"),
				cli.BoldStyle.Render("Color"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 12),
				strings.Repeat("-", 24),
				strings.Repeat("-", 9))

			for _, c := range a.ledger.Categories() {
				fmt.Fprintf(w, "%s\t%s\t%s %s\n", c.ID, c.Name, cli.Swatch(c.Color), c.Color)
			}
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.ledger.AddCategory(ctx, model.ExpenseCategory{
				Name:  strings.TrimSpace(args[0]),
				Color: color,
			})
			if err != nil {
				return userFacing(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created category %q (ID: %s)", c.Name, c.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", defaultCategoryColor, "category color as #rrggbb")

	return cmd
}

func editCategoryCmd() *cobra.Command {
	var (
		name  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if name == "" && color == "" {
				return fmt.Errorf("must specify --name or --color to update")
			}

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			c, ok := a.ledger.Category(args[0])
			if !ok {
				return fmt.Errorf("category %q not found", args[0])
			}
			if name != "" {
				c.Name = strings.TrimSpace(name)
			}
			if color != "" {
				c.Color = color
			}

			if err := a.ledger.EditCategory(ctx, c); err != nil {
				return userFacing(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated category %q", c.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&color, "color", "", "new color as #rrggbb")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete an expense category. Expenses filed under it keep its id. The last
remaining category cannot be deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			c, ok := a.ledger.Category(args[0])
			if !ok {
				return fmt.Errorf("category %q not found", args[0])
			}

			if !force {
				ok, err := cli.Confirm(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete category %q?", c.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Deletion canceled"))
					return nil
				}
			}

			if err := a.ledger.DeleteCategory(ctx, c.ID); err != nil {
				return userFacing(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted category %q", c.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}
