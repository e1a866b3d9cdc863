package main

import (
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/mishabitos-api/internal/adapters/repository"
	"github.com/comitanigiacomo/mishabitos-api/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := openDB(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		applied, err := repository.Migrate(cmd.Context(), db)
		if err != nil {
			return err
		}

		if len(applied) == 0 {
			logger.Info("database is up to date")
			return nil
		}
		for _, name := range applied {
			logger.Info("migration applied", "file", name)
		}
		return nil
	},
}
