package cmd

import (
	"fmt"

	"license-sync/core/logger"
	"license-sync/core/remote"
	"license-sync/feature/directory"
	"license-sync/feature/integrity/checks"
	"license-sync/feature/license"
	"license-sync/feature/license/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// backfillCmd represents the backfill command
var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Write customer URLs into stored license rows",
	Long: `Fetches the client directory and sets customer_url, customer_url2 and customer_url3
on every stored row whose customer name resolves. Rows are updated by customer name, so
all rows sharing a name receive the same URLs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		client := remote.NewClient(cfg.Remote)
		fetcher := directory.NewFetcher(client, logger.Component(logg, "directory"))

		var report *license.BackfillReport
		err = withDatabase(cfg.Database, func(db *gorm.DB) error {
			if err := checks.RequireColumns(db, models.TableLicenseDetails,
				models.KeyCustomerURL, models.KeyCustomerURL2, models.KeyCustomerURL3); err != nil {
				return err
			}

			b := &license.Backfiller{
				Directory: fetcher,
				Store:     license.NewRepository(db),
				DryRun:    dryRun,
				Logger:    logger.Component(logg, "backfill"),
			}
			var runErr error
			report, runErr = b.Run(cmd.Context())
			return runErr
		})
		if err != nil {
			if report != nil {
				logg.Error("Backfill aborted",
					zap.Int("updated", report.Updated),
					zap.Int64("rows_affected", report.RowsAffected),
				)
			}
			return fmt.Errorf("backfill failed: %w", err)
		}

		if jsonOutput {
			return printJSON(report)
		}

		fmt.Println("\n=== Backfill Complete ===")
		fmt.Printf("Total records processed: %d\n", report.Processed)
		fmt.Printf("Records updated: %d\n", report.Updated)
		fmt.Printf("Rows affected: %d\n", report.RowsAffected)
		fmt.Printf("Records without matching client: %d\n", report.NotFound)
		if report.DryRun {
			fmt.Println("Dry run: no rows were written")
		}
		if len(report.NotFoundSample) > 0 {
			fmt.Println("\nCustomer names without matching client:")
			for _, name := range report.NotFoundSample {
				fmt.Printf("  - %q\n", name)
			}
			if report.NotFoundOverflow > 0 {
				fmt.Printf("  ... and %d more\n", report.NotFoundOverflow)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(backfillCmd)
	backfillCmd.Flags().Bool("dry-run", false, "Resolve every row without writing")
	backfillCmd.Flags().Bool("json", false, "Print the report as JSON")
}
