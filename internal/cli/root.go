// Package cli wires the rotina commands: daily task tracking, the
// catalog, finance entry, and the cloud sync lifecycle.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rotina/internal/config"
	"github.com/alexanderramin/rotina/internal/service"
	"github.com/alexanderramin/rotina/internal/store"
)

// App holds everything CLI commands need.
type App struct {
	Config  config.Config
	Store   store.Store
	Tasks   service.TaskService
	Catalog service.CatalogService
	Finance service.FinanceService
	Out     io.Writer
}

// NewRootCmd creates the top-level "rotina" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Out == nil {
		app.Out = os.Stdout
	}

	root := &cobra.Command{
		Use:           "rotina",
		Short:         "Personal task and finance tracker with cloud sync",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTaskCmd(app),
		newJobCmd(app),
		newTagCmd(app),
		newPersonCmd(app),
		newCardCmd(app),
		newCategoryCmd(app),
		newFinanceCmd(app),
		newConnectCmd(app),
		newDisconnectCmd(app),
		newSyncCmd(app),
		newMigrateStoreCmd(app),
		newThemeCmd(app),
	)

	return root
}
