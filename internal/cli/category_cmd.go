package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rotina/internal/cli/formatter"
	"github.com/alexanderramin/rotina/internal/domain"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage finance categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List finance categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := app.Catalog.Categories()
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Fprintf(app.Out, "%-13d %-20s %s\n",
					c.ID, formatter.TagStyle(c.Color).Render(c.Name), c.Kind)
			}
			return nil
		},
	})

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a finance category",
		Args:  cobra.ExactArgs(1),
	}
	var kind string
	addCmd.Flags().StringVar(&kind, "kind", string(domain.CategoryExpense), "income, expense or both")
	addCmd.RunE = func(cmd *cobra.Command, args []string) error {
		cat, err := app.Catalog.AddCategory(args[0], domain.CategoryKind(kind))
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Added category %d: %s (%s)\n", cat.ID, cat.Name, cat.Kind)
		return nil
	}
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a category, detaching its transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.Catalog.DeleteCategory(id)
		},
	})

	return cmd
}
