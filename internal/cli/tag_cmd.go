package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rotina/internal/cli/formatter"
)

func newTagCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage task tags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := app.Catalog.Tags()
			if err != nil {
				return err
			}
			for _, tag := range tags {
				fmt.Fprintf(app.Out, "%-13d %s\n", tag.ID, formatter.TagStyle(tag.Color).Render(tag.Name))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := app.Catalog.AddTag(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Added tag %d: %s\n", tag.ID, tag.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a tag from the catalog and from every task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.Catalog.DeleteTag(id)
		},
	})

	return cmd
}
