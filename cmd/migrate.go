package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleven-am/taskboard/internal/config"
	"github.com/eleven-am/taskboard/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long:  `Applies the embedded SQL migrations in order, recording each one in the schema_migrations table. Already-applied migrations are skipped.`,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("no database URL configured (set database.url or TASKBOARD_DATABASE_URL)")
	}

	ctx := cmd.Context()

	db, err := store.NewDBConfig(cfg.Database.URL).Connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	return store.Migrate(ctx, db)
}
