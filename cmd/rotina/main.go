package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/rotina/internal/cli"
	"github.com/alexanderramin/rotina/internal/config"
	"github.com/alexanderramin/rotina/internal/service"
	"github.com/alexanderramin/rotina/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	st, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	if err := service.EnsureDefaults(st, nil); err != nil {
		return fmt.Errorf("seeding defaults: %w", err)
	}

	app := &cli.App{
		Config:  cfg,
		Store:   st,
		Tasks:   service.NewTaskService(st, nil),
		Catalog: service.NewCatalogService(st, nil),
		Finance: service.NewFinanceService(st, nil),
		Out:     os.Stdout,
	}

	return cli.NewRootCmd(app).Execute()
}
