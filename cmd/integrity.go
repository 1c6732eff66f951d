package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"license-sync/core/storage"
	"license-sync/feature/integrity/checks"
	"license-sync/feature/license/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the license table and the report archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		if err := schemaCmd.RunE(cmd, args); err != nil {
			return err
		}
		return archiveCmd.RunE(cmd, args)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Compare the license details table with the expected columns",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		var report *checks.SchemaReport
		err = withDatabase(cfg.Database, func(db *gorm.DB) error {
			var checkErr error
			report, checkErr = checks.CheckSchema(db, models.LicenseDetail{})
			return checkErr
		})
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}

		if report.Matched {
			logg.Info("Schema check passed", zap.String("table", report.Table))
		} else {
			logg.Warn("Schema mismatch detected",
				zap.String("table", report.Table),
				zap.Strings("missing", report.MissingColumns),
				zap.Strings("type_mismatches", report.TypeMismatches),
				zap.Strings("errors", report.Errors),
			)
		}
		return printJSON(report)
	},
}

// archiveCmd represents the integrity archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Check the report archive bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if !cfg.Storage.ArchiveEnabled {
			logg.Info("Report archive disabled, skipping archive check")
			return nil
		}

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		report, err := checks.CheckArchive(cmd.Context(), store, cfg.Storage.Bucket, cfg.Storage.Prefix)
		if err != nil {
			return fmt.Errorf("archive check failed: %w", err)
		}
		if !report.Exists {
			logg.Warn("Archive bucket does not exist", zap.String("bucket", report.Bucket))
		}
		return printJSON(report)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(schemaCmd, archiveCmd)
}
