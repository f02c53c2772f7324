package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rotina/internal/store"
)

// newThemeCmd toggles the dark-mode preference, which syncs along with
// the rest of the metadata.
func newThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [dark|light]",
		Short: "Show or set the color theme preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				v, err := app.Store.GetMeta(store.MetaDarkMode)
				if err != nil {
					return err
				}
				if v == "true" {
					fmt.Fprintln(app.Out, "dark")
				} else {
					fmt.Fprintln(app.Out, "light")
				}
				return nil
			}
			switch args[0] {
			case "dark":
				return app.Store.SetMeta(store.MetaDarkMode, "true")
			case "light":
				return app.Store.SetMeta(store.MetaDarkMode, "false")
			default:
				return fmt.Errorf("unknown theme %q", args[0])
			}
		},
	}
}
