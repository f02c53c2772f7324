package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/alexanderramin/rotina/internal/cli/formatter"
	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/remote"
	"github.com/alexanderramin/rotina/internal/store"
	"github.com/alexanderramin/rotina/internal/syncer"
)

func newSyncCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Cloud sync session and status",
	}
	cmd.AddCommand(newSyncRunCmd(app), newSyncStatusCmd(app))
	return cmd
}

// newSyncRunCmd starts the long-lived sync session: it connects, then
// watches the store so writes from other rotina processes are pushed to
// the cloud, until interrupted.
func newSyncRunCmd(app *App) *cobra.Command {
	var email, password, endpoint string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sync session until interrupted",
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

			logger := slog.New(slog.NewTextHandler(&lumberjack.Logger{
				Filename:   app.Config.Sync.LogPath,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     30, // days
			}, nil))

			client := remote.NewHTTPClient(endpoint)
			coord := syncer.New(app.Store, client,
				syncer.WithDebounce(app.Config.Sync.Debounce()),
				syncer.WithNotifier(notifyPrinter(app)),
				syncer.WithResolver(promptResolution(app)),
				syncer.WithLogger(logger),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := coord.Connect(ctx, email, password); err != nil {
				return err
			}
			defer coord.Close()

			events, err := app.Store.Watch(ctx)
			if err != nil {
				return fmt.Errorf("watching store: %w", err)
			}

			fmt.Fprintln(app.Out, "Sync session running. Ctrl-C to stop.")
			for {
				select {
				case <-ctx.Done():
					fmt.Fprintln(app.Out, "Sync session stopped.")
					return nil
				case ev, ok := <-events:
					if !ok {
						return nil
					}
					coord.HandleStoreEvent(ev)
				}
			}
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prefer ROTINA_PASSWORD)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Cloud endpoint URL")
	return cmd
}

func newSyncStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the local store and sync state",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := app.Store.GetMeta(store.MetaUserEmail)
			if err != nil {
				return err
			}
			if email == "" {
				fmt.Fprintln(app.Out, "Not connected to the cloud.")
			} else {
				fmt.Fprintf(app.Out, "Connected as %s\n", formatter.StyleBold.Render(email))
			}

			if t, ok, err := store.LastSyncedAt(app.Store); err != nil {
				return err
			} else if ok {
				fmt.Fprintf(app.Out, "Last synced   %s\n", t.Local().Format("2006-01-02 15:04:05"))
			}
			if t, ok, err := store.LastModified(app.Store); err != nil {
				return err
			} else if ok {
				fmt.Fprintf(app.Out, "Last modified %s\n", t.Local().Format("2006-01-02 15:04:05"))
			}

			snap, err := store.Snapshot(app.Store)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.Out)
			for _, c := range domain.AllCollections {
				fmt.Fprintf(app.Out, "%-18s %d\n", string(c), snap.Count(c))
			}
			return nil
		},
	}
}
