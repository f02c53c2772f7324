package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rotina/internal/cli/formatter"
)

func newPersonCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage the people finance records belong to",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List people",
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := app.Catalog.People()
			if err != nil {
				return err
			}
			for _, p := range people {
				fmt.Fprintf(app.Out, "%-13d %s\n", p.ID, formatter.TagStyle(p.Color).Render(p.Name))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Catalog.AddPerson(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Added person %d: %s\n", p.ID, p.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a person, handing their records to the first remaining person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.Catalog.DeletePerson(id)
		},
	})

	return cmd
}
