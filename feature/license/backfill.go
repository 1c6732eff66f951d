package license

import (
	"context"

	"license-sync/core/reconcile"
	"license-sync/feature/directory"
	"license-sync/feature/license/models"

	"go.uber.org/zap"
)

// ClientSource provides the full client directory.
type ClientSource interface {
	FetchAll(ctx context.Context) ([]directory.Client, error)
}

// BackfillRow is the part of a stored row the backfill needs.
type BackfillRow struct {
	CustomerName string
	CustomerRef  string
}

// BackfillStore reads stored rows and writes URLs back.
type BackfillStore interface {
	BackfillRows(ctx context.Context) ([]BackfillRow, error)
	// UpdateURLsByName sets the URL columns of every row named name and returns
	// the number of rows changed.
	UpdateURLsByName(ctx context.Context, name string, urls models.CustomerURLs) (int64, error)
}

// BackfillReport summarizes a backfill run.
type BackfillReport struct {
	Processed    int   `json:"processed"`
	Updated      int   `json:"updated"`
	NotFound     int   `json:"not_found"`
	RowsAffected int64 `json:"rows_affected"`
	// NotFoundSample holds the first distinct unmatched names in the order they were seen.
	NotFoundSample   []string `json:"not_found_sample"`
	NotFoundOverflow int      `json:"not_found_overflow"`
	DryRun           bool     `json:"dry_run"`
}

// Backfiller writes directory URLs into rows stored before URL enrichment existed.
type Backfiller struct {
	Directory ClientSource
	Store     BackfillStore
	// DryRun resolves every row without writing.
	DryRun bool
	Logger *zap.Logger
}

// Run performs one backfill. Updates are keyed by customer name, so one update
// changes every row sharing that name. A storage error stops the run; updates
// already issued stay committed and the returned report covers them.
func (b *Backfiller) Run(ctx context.Context) (*BackfillReport, error) {
	log := b.Logger
	if log == nil {
		log = zap.NewNop()
	}

	clients, err := b.Directory.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		log.Error("No clients fetched, check the API credentials and the client list endpoint")
		return nil, ErrEmptyDirectory
	}

	for _, c := range clients[:min(len(clients), 5)] {
		log.Debug("Directory sample",
			zap.String("name", c.Name),
			zap.Any("source", c.Source),
			zap.Any("alt_source", c.AltSource),
			zap.Any("alt_source2", c.AltSource2),
		)
	}

	ix := reconcile.BuildIndex(clients, directory.ClientName)
	log.Info("Built directory index", zap.Int("clients", len(clients)), zap.Int("keys", ix.Len()))

	rows, err := b.Store.BackfillRows(ctx)
	if err != nil {
		return nil, storageErr("read rows", err)
	}
	log.Info("Loaded stored rows", zap.Int("rows", len(rows)))

	report := &BackfillReport{Processed: len(rows), DryRun: b.DryRun}
	var missing reconcile.NameSet
	finish := func() {
		report.NotFoundSample, report.NotFoundOverflow = missing.Sample(reconcile.BackfillSampleSize)
	}

	for _, row := range rows {
		if row.CustomerName == "" {
			report.NotFound++
			continue
		}

		client, ok := ix.Resolve(row.CustomerName)
		if !ok {
			report.NotFound++
			missing.Add(row.CustomerName)
			continue
		}

		urls := client.URLs()
		if !b.DryRun {
			n, err := b.Store.UpdateURLsByName(ctx, row.CustomerName, urls)
			if err != nil {
				finish()
				return report, storageErr("update urls", err)
			}
			report.RowsAffected += n
			if report.Updated < 3 {
				log.Info("Updated customer URLs",
					zap.String("customer_name", row.CustomerName),
					zap.Stringp("customer_url", urls.URL),
					zap.Stringp("customer_url2", urls.URL2),
					zap.Stringp("customer_url3", urls.URL3),
					zap.Int64("rows_affected", n),
				)
			}
		}

		report.Updated++
		if report.Updated%100 == 0 {
			log.Info("Backfill progress", zap.Int("updated", report.Updated))
		}
	}

	finish()
	log.Info("Backfill complete",
		zap.Int("processed", report.Processed),
		zap.Int("updated", report.Updated),
		zap.Int("not_found", report.NotFound),
		zap.Int64("rows_affected", report.RowsAffected),
		zap.Bool("dry_run", report.DryRun),
	)
	if len(report.NotFoundSample) > 0 {
		log.Warn("Customer names without matching client",
			zap.Strings("sample", report.NotFoundSample),
			zap.Int("more", report.NotFoundOverflow),
		)
	}
	return report, nil
}
