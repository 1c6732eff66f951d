package cmd

import (
	"fmt"
	"os"

	"license-sync/core/config"
	"license-sync/core/database"
	"license-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "license-sync",
	Short: "License report synchronization service",
	Long: `License Sync pulls the license details report from the remote reporting API,
attaches customer URLs from the client directory and serves the stored rows.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with ISO8601 timestamps (development config) for CLI failures
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the application logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logg, nil
}

// withDatabase runs fn on a fresh connection and closes it before returning,
// whatever fn returned.
func withDatabase(cfg database.Config, fn func(db *gorm.DB) error) error {
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("database connection required: %w", err)
	}

	runErr := fn(db)
	if err := database.Close(db); err != nil && runErr == nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return runErr
}
