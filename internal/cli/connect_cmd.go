package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/rotina/internal/cli/formatter"
	"github.com/alexanderramin/rotina/internal/notify"
	"github.com/alexanderramin/rotina/internal/remote"
	"github.com/alexanderramin/rotina/internal/store"
	"github.com/alexanderramin/rotina/internal/syncer"
)

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// credentials returns the email and password for connecting, prompting
// when the terminal allows it. Non-interactive runs require flags, config
// or ROTINA_PASSWORD.
func credentials(app *App, email, password string) (string, string, error) {
	if email == "" {
		email = app.Config.Remote.Email
	}
	if password == "" {
		password = os.Getenv("ROTINA_PASSWORD")
	}
	if email != "" && password != "" {
		return email, password, nil
	}
	if !interactive() {
		return "", "", fmt.Errorf("email and password required (use flags, config or ROTINA_PASSWORD)")
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", err
	}
	return email, password, nil
}

// promptResolution shows both sides of a conflict and asks which wins.
// Without a terminal the cloud copy wins, matching the coordinator's
// default.
func promptResolution(app *App) syncer.Resolver {
	return func(c syncer.Conflict) syncer.Resolution {
		if !interactive() {
			fmt.Fprintln(app.Out, "Both sides hold data; keeping the cloud copy.")
			return syncer.UseCloud
		}

		fmt.Fprintln(app.Out, formatter.StyleHeader.Render("Sync conflict"))
		fmt.Fprintln(app.Out, "This device and the cloud both hold data. Pick the copy to keep;")
		fmt.Fprintln(app.Out, "the other side is replaced entirely.")
		fmt.Fprintln(app.Out, formatter.SnapshotCard("This device", c.Local))
		fmt.Fprintln(app.Out, formatter.SnapshotCard("Cloud", c.Cloud))

		choice := syncer.UseCloud
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[syncer.Resolution]().
					Title("Which copy should win?").
					Options(
						huh.NewOption("Keep cloud data", syncer.UseCloud),
						huh.NewOption("Keep this device's data", syncer.UseLocal),
					).
					Value(&choice),
			),
		)
		if err := form.Run(); err != nil {
			return syncer.UseCloud
		}
		return choice
	}
}

func notifyPrinter(app *App) notify.Notifier {
	return notify.Func(func(n notify.Notification) {
		fmt.Fprintln(app.Out, formatter.Notification(n))
	})
}

func newConnectCmd(app *App) *cobra.Command {
	var email, password, endpoint string

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Log in and run the first sync",
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint == "" {
				endpoint = app.Config.Remote.Endpoint
			}
			if endpoint == "" {
				return fmt.Errorf("no cloud endpoint configured (set remote.endpoint)")
			}
			email, password, err := credentials(app, email, password)
			if err != nil {
				return err
			}

			client := remote.NewHTTPClient(endpoint)
			coord := syncer.New(app.Store, client,
				syncer.WithDebounce(app.Config.Sync.Debounce()),
				syncer.WithNotifier(notifyPrinter(app)),
				syncer.WithResolver(promptResolution(app)),
			)
			if err := coord.Connect(cmd.Context(), email, password); err != nil {
				return err
			}
			// This command only runs the initial reconciliation; the
			// long-lived session is "rotina sync run".
			coord.Close()
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prefer ROTINA_PASSWORD)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Cloud endpoint URL")
	return cmd
}

func newDisconnectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Forget the cloud session, keeping local data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.DeleteMeta(store.MetaUserID); err != nil {
				return err
			}
			if err := app.Store.DeleteMeta(store.MetaUserEmail); err != nil {
				return err
			}
			fmt.Fprintln(app.Out, "Disconnected. Local data kept.")
			return nil
		},
	}
}
