package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relayhq/relay/internal/config"
	"github.com/relayhq/relay/internal/db"
)

func main() {
	root := &cobra.Command{
		Use:   "relay",
		Short: "Chat message enrichment service",
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and enrichment pipeline",
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return db.Migrate(cfg.Postgres)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
