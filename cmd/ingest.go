package cmd

import (
	"fmt"
	"time"

	"license-sync/core/logger"
	"license-sync/core/remote"
	"license-sync/core/storage"
	"license-sync/feature/directory"
	"license-sync/feature/license"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch, enrich and store the license details report",
	Long: `Collects every page of the license details report for a date window, attaches
customer URLs from the client directory and replaces the stored rows of that window.
The enriched report is archived to object storage when storage.archive_enabled is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		window := remote.DateRange{From: from, To: to}
		if err := validateWindow(window); err != nil {
			return err
		}

		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		client := remote.NewClient(cfg.Remote)
		in := &license.Ingester{
			Licenses:  client,
			Directory: directory.NewFetcher(client, logger.Component(logg, "directory")),
			MaxPages:  cfg.Remote.MaxPages,
			Logger:    logger.Component(logg, "ingest"),
		}

		if cfg.Storage.ArchiveEnabled {
			store, err := storage.NewClient(cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
			in.Archive = license.NewArchiver(store, cfg.Storage.Bucket, cfg.Storage.Prefix)
		}

		var report *license.IngestReport
		err = withDatabase(cfg.Database, func(db *gorm.DB) error {
			repo := license.NewRepository(db)
			if cfg.Database.AutoMigrate {
				if err := repo.Migrate(); err != nil {
					return err
				}
			}
			in.Store = repo

			var runErr error
			report, runErr = in.Run(cmd.Context(), window)
			return runErr
		})
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}

		if jsonOutput {
			return printJSON(report)
		}

		executionTime := time.Since(startTime)
		fmt.Println("\n=== Ingest Complete ===")
		fmt.Printf("Run ID: %s\n", report.RunID)
		fmt.Printf("Window: %s to %s\n", window.From, window.To)
		fmt.Printf("Pages: %d\n", report.Pages)
		fmt.Printf("Records fetched: %d (skipped %d)\n", report.Fetched, report.Skipped)
		fmt.Printf("Matched: %d\n", report.Matched)
		fmt.Printf("Not matched: %d\n", report.NotMatched)
		fmt.Printf("Stored: %d (replaced %d)\n", report.Stored, report.Replaced)
		if report.ArchiveKey != "" {
			fmt.Printf("Archived to: %s\n", report.ArchiveKey)
		}
		fmt.Printf("Execution Time: %s\n", executionTime.String())

		logg.Info("Ingest finished", zap.String("run_id", report.RunID), zap.Duration("execution_time", executionTime))
		return nil
	},
}

func validateWindow(w remote.DateRange) error {
	from, err := time.Parse(dateLayout, w.From)
	if err != nil {
		return fmt.Errorf("invalid --from %q: expected YYYY-MM-DD", w.From)
	}
	to, err := time.Parse(dateLayout, w.To)
	if err != nil {
		return fmt.Errorf("invalid --to %q: expected YYYY-MM-DD", w.To)
	}
	if to.Before(from) {
		return fmt.Errorf("--to %s is before --from %s", w.To, w.From)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().String("from", "", "First day of the report window (YYYY-MM-DD)")
	ingestCmd.Flags().String("to", "", "Last day of the report window (YYYY-MM-DD)")
	ingestCmd.Flags().Bool("json", false, "Print the report as JSON")
	_ = ingestCmd.MarkFlagRequired("from")
	_ = ingestCmd.MarkFlagRequired("to")
}
