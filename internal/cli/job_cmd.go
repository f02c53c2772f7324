package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rotina/internal/cli/formatter"
)

func newJobCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Manage jobs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := app.Catalog.Jobs()
			if err != nil {
				return err
			}
			for _, j := range jobs {
				fmt.Fprintf(app.Out, "%-13d %s\n", j.ID, formatter.TagStyle(j.Color).Render(j.Name))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := app.Catalog.AddJob(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Added job %d: %s\n", job.ID, job.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a job",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.Catalog.RenameJob(id, args[1])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a job and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.Catalog.DeleteJob(id); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Removed job %d and its tasks\n", id)
			return nil
		},
	})

	return cmd
}
