package cli

import (
	"log/slog"

	"github.com/mmatt-net/site/config"
	"github.com/mmatt-net/site/database"
	"github.com/mmatt-net/site/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm/logger"
)

// NewMigrateCommand migrates the schema of the configured database
func NewMigrateCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Open(cfg.DatabaseURL, logger.Warn)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			slog.Info("database schema migrated")
			return nil
		},
	}
}

// NewCopyDataCommand copies every row from one database to another
func NewCopyDataCommand() *cobra.Command {
	var sourceURL, targetURL string

	cmd := &cobra.Command{
		Use:   "copy-data",
		Short: "Copy users, projects, posts and comments between databases",
		// no session secret needed here
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			utils.InitLogger(config.GetEnv("LOG_LEVEL", "info"))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if sourceURL == "" {
				sourceURL = config.GetEnv("SOURCE_DATABASE_URL", "")
			}
			if targetURL == "" {
				targetURL = config.GetEnv("TARGET_DATABASE_URL", "")
			}
			if sourceURL == "" || targetURL == "" {
				return errors.New("both --source and --target are required")
			}

			source, err := database.Open(sourceURL, logger.Warn)
			if err != nil {
				return errors.Wrap(err, "source")
			}
			defer database.Close(source)

			target, err := database.Open(targetURL, logger.Warn)
			if err != nil {
				return errors.Wrap(err, "target")
			}
			defer database.Close(target)

			// Ensure target database schema is migrated
			if err := database.Migrate(target); err != nil {
				return err
			}
			return database.CopyData(source, target)
		},
	}

	cmd.Flags().StringVar(&sourceURL, "source", "", "source database URL (default $SOURCE_DATABASE_URL)")
	cmd.Flags().StringVar(&targetURL, "target", "", "target database URL (default $TARGET_DATABASE_URL)")
	return cmd
}
