package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rotina/internal/domain"
	"github.com/alexanderramin/rotina/internal/store"
)

// newMigrateStoreCmd copies every collection and meta key from the
// current store into a store of the other backend.
func newMigrateStoreCmd(app *App) *cobra.Command {
	var toBackend, toPath string

	cmd := &cobra.Command{
		Use:   "migrate-store",
		Short: "Copy all data into a different store backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if toBackend == app.Config.Store.Backend {
				return fmt.Errorf("already using the %s backend", toBackend)
			}
			if toPath == "" {
				return fmt.Errorf("--path is required")
			}

			dst, err := store.Open(toBackend, toPath)
			if err != nil {
				return err
			}
			defer dst.Close()

			migrated := 0
			for _, c := range domain.AllCollections {
				data, err := app.Store.Get(c)
				if err != nil {
					return fmt.Errorf("reading %s: %w", c, err)
				}
				if data == nil {
					continue
				}
				if err := dst.Set(c, data); err != nil {
					return fmt.Errorf("writing %s: %w", c, err)
				}
				migrated += domain.CountRecords(data)
			}

			metaKeys := []string{
				store.MetaLastModified, store.MetaLastSyncedAt,
				store.MetaUserID, store.MetaUserEmail, store.MetaDarkMode,
			}
			for _, key := range metaKeys {
				v, err := app.Store.GetMeta(key)
				if err != nil {
					return err
				}
				if v == "" {
					continue
				}
				if err := dst.SetMeta(key, v); err != nil {
					return err
				}
			}

			fmt.Fprintf(app.Out, "Migrated %d records to the %s store at %s\n", migrated, toBackend, toPath)
			fmt.Fprintf(app.Out, "Update store.backend and store.path in your config to switch over.\n")
			return nil
		},
	}
	cmd.Flags().StringVar(&toBackend, "to", store.BackendSQLite, "Target backend: diskv or sqlite")
	cmd.Flags().StringVar(&toPath, "path", "", "Target store path")
	return cmd
}
