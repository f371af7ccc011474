package cmd

import (
	"github.com/spf13/cobra"

	"history/internal/infrastructure/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		return newMigration().Up()
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert all migrations (drops the history table)",
	RunE: func(_ *cobra.Command, _ []string) error {
		return newMigration().Down()
	},
}

func newMigration() *migration.Migration {
	return migration.NewMigration(cfg.DB.Driver, cfg.DB.DatabaseURI, migration.DefaultEngine, log)
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}
