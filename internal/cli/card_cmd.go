package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rotina/internal/cli/formatter"
	"github.com/alexanderramin/rotina/internal/domain"
)

func newCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage credit cards",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List credit cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := app.Catalog.Cards()
			if err != nil {
				return err
			}
			for _, c := range cards {
				fmt.Fprintf(app.Out, "%-13d %s  closes %d, due %d\n",
					c.ID, formatter.TagStyle(c.Color).Render(c.Name), c.ClosingDay, c.DueDay)
			}
			return nil
		},
	})

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a credit card",
		Args:  cobra.ExactArgs(1),
	}
	var ownerID int64
	var closingDay, dueDay int
	addCmd.Flags().Int64Var(&ownerID, "owner", 0, "Owning person ID (defaults to the first person)")
	addCmd.Flags().IntVar(&closingDay, "closing", 1, "Statement closing day (1-31)")
	addCmd.Flags().IntVar(&dueDay, "due", 10, "Payment due day (1-31)")
	addCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if ownerID == 0 {
			people, err := app.Catalog.People()
			if err != nil {
				return err
			}
			if len(people) == 0 {
				return fmt.Errorf("no people configured")
			}
			ownerID = people[0].ID
		}
		card, err := app.Catalog.AddCard(domain.CreditCard{
			Name: args[0], OwnerID: ownerID, ClosingDay: closingDay, DueDay: dueDay,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "Added card %d: %s\n", card.ID, card.Name)
		return nil
	}
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a card, moving its payments back to checking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.Catalog.DeleteCard(id)
		},
	})

	return cmd
}
