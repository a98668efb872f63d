// Command prepctl runs maintenance tasks against the interview prep database.
package main

import (
	"fmt"
	"os"

	"interview-prep-be/internal/config"
	"interview-prep-be/internal/pkg/logger"
	"interview-prep-be/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfg    *config.Config
	db     *gorm.DB
	sysLog logger.ILogger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "prepctl",
		Short:         "Maintenance tooling for interview prep sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		migrateCmd(),
		reconcileCmd(),
		orphansCmd(),
		eventsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// connect opens the database described by the environment. Commands that
// need it call it from PreRunE.
func connect(cmd *cobra.Command, args []string) error {
	cfg = config.Load()
	sysLog = logger.NewZapLogger("", cfg.IsProduction())

	if cfg.Database.Connection == "" {
		return fmt.Errorf("DB_CONNECTION_STRING is not set")
	}

	var err error
	db, err = database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}
