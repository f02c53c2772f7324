package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/rotina/internal/cli/formatter"
	"github.com/alexanderramin/rotina/internal/domain"
)

func newFinanceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Track income and expenses",
	}
	cmd.AddCommand(
		newFinanceAddCmd(app),
		newFinanceListCmd(app),
		newFinanceToggleCmd(app),
		newFinanceRemoveCmd(app),
		newFinanceSummaryCmd(app),
	)
	return cmd
}

// parseMonth reads "YYYY-MM"; empty means the current month.
func parseMonth(input string) (int, time.Month, error) {
	if input == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", input)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, want YYYY-MM", input)
	}
	return t.Year(), t.Month(), nil
}

func newFinanceAddCmd(app *App) *cobra.Command {
	var txType, amountStr, date, method string
	var categoryID, jobID, cardID, ownerID int64
	var installments int
	var recurring string

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q", amountStr)
			}
			d, err := parseDate(date)
			if err != nil {
				return err
			}

			tx := domain.Transaction{
				Type:        domain.TransactionType(txType),
				CategoryID:  categoryID,
				Amount:      amount.Mul(decimal.NewFromInt(100)).IntPart(),
				Description: args[0],
				Date:        d,
				JobID:       jobID,
				Method:      domain.PaymentMethod(method),
				CardID:      cardID,
				OwnerID:     ownerID,
			}
			if installments > 1 {
				tx.IsInstallment = true
				tx.InstallmentCount = installments
			}
			if recurring != "" {
				tx.IsRecurring = true
				tx.RecurringType = domain.RecurringType(recurring)
			}

			created, err := app.Finance.Add(tx)
			if err != nil {
				return err
			}
			if len(created) > 1 {
				fmt.Fprintf(app.Out, "Added %d installments of %s starting %s\n",
					len(created), formatter.Money(created[0].Amount), created[0].Date)
			} else {
				fmt.Fprintf(app.Out, "Added transaction %d: %s %s\n",
					created[0].ID, created[0].Description, formatter.Money(created[0].Amount))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&txType, "type", string(domain.Expense), "income or expense")
	cmd.Flags().StringVar(&amountStr, "amount", "", "Amount, e.g. 42.50")
	cmd.Flags().StringVar(&date, "date", "", "Date (defaults to today)")
	cmd.Flags().StringVar(&method, "method", "", "checking or credit")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "Category ID")
	cmd.Flags().Int64Var(&jobID, "job", 0, "Job the income came from")
	cmd.Flags().Int64Var(&cardID, "card", 0, "Credit card ID (required for credit)")
	cmd.Flags().Int64Var(&ownerID, "owner", 0, "Owning person ID (defaults to the first person)")
	cmd.Flags().IntVar(&installments, "installments", 0, "Split a credit purchase over N months")
	cmd.Flags().StringVar(&recurring, "recurring", "", "weekly, monthly or yearly")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func newFinanceListCmd(app *App) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a month's transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, m, err := parseMonth(month)
			if err != nil {
				return err
			}
			txs, err := app.Finance.ListMonth(year, m)
			if err != nil {
				return err
			}
			if len(txs) == 0 {
				fmt.Fprintln(app.Out, "No transactions.")
				return nil
			}
			sort.Slice(txs, func(i, j int) bool { return txs[i].Date < txs[j].Date })
			for _, tx := range txs {
				fmt.Fprintln(app.Out, formatter.TransactionLine(tx))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM (defaults to current)")
	return cmd
}

func newFinanceToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "settle <id>",
		Short: "Toggle a transaction's settled flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			tx, err := app.Finance.Toggle(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out, formatter.TransactionLine(tx))
			return nil
		},
	}
}

func newFinanceRemoveCmd(app *App) *cobra.Command {
	var wholeSet bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.Finance.Delete(id, wholeSet)
		},
	}
	cmd.Flags().BoolVar(&wholeSet, "all-installments", false, "Remove the whole installment set")
	return cmd
}

func newFinanceSummaryCmd(app *App) *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show a month's totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, m, err := parseMonth(month)
			if err != nil {
				return err
			}
			sum, err := app.Finance.Summary(year, m)
			if err != nil {
				return err
			}

			fmt.Fprintln(app.Out, formatter.StyleHeader.Render(fmt.Sprintf("%s %d", m, year)))
			fmt.Fprintf(app.Out, "Income    %s\n", formatter.StyleGreen.Render("$"+sum.Income.StringFixed(2)))
			fmt.Fprintf(app.Out, "Expenses  %s\n", formatter.StyleRed.Render("$"+sum.Expenses.StringFixed(2)))
			fmt.Fprintf(app.Out, "Balance   %s\n", formatter.StyleBold.Render("$"+sum.Balance.StringFixed(2)))
			if sum.Pending.IsPositive() {
				fmt.Fprintf(app.Out, "Pending   %s\n", formatter.StyleYellow.Render("$"+sum.Pending.StringFixed(2)))
			}

			if len(sum.ByPerson) > 0 {
				fmt.Fprintln(app.Out, formatter.StyleHeader.Render("\nBy person"))
				people, err := app.Catalog.People()
				if err != nil {
					return err
				}
				for _, p := range people {
					if amt, ok := sum.ByPerson[p.ID]; ok {
						fmt.Fprintf(app.Out, "%-20s $%s\n", p.Name, amt.StringFixed(2))
					}
				}
			}
			if len(sum.ByCard) > 0 {
				fmt.Fprintln(app.Out, formatter.StyleHeader.Render("\nBy card"))
				cards, err := app.Catalog.Cards()
				if err != nil {
					return err
				}
				for _, c := range cards {
					if amt, ok := sum.ByCard[c.ID]; ok {
						fmt.Fprintf(app.Out, "%-20s $%s\n", c.Name, amt.StringFixed(2))
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month as YYYY-MM (defaults to current)")
	return cmd
}
