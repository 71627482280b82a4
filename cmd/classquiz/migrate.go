package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"classquiz/internal/migrate"
	"classquiz/internal/store"
	"classquiz/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema and content migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		applied, err := runMigrations(cmd.Context(), st)
		if err != nil {
			return err
		}

		if applied == 0 {
			fmt.Println("Database is up to date.")
		} else {
			fmt.Printf("Applied %d migration(s).\n", applied)
		}
		return nil
	},
}

func openStore() (*store.Store, error) {
	return store.Open(cfg.Database.Path)
}

func runMigrations(ctx context.Context, st *store.Store) (int, error) {
	units, err := migrations.Units(cfg.Content.Root, logger)
	if err != nil {
		return 0, err
	}
	return migrate.NewRunner(st.DB(), units, logger).Run(ctx)
}
