package license

import (
	"context"
	"encoding/json"
	"fmt"

	"license-sync/core/remote"
	"license-sync/feature/license/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LicenseSource returns one page of the license details report.
type LicenseSource interface {
	FetchLicensePage(ctx context.Context, page int, window remote.DateRange) ([]json.RawMessage, error)
}

// IngestStore persists the rows of one fetch window.
type IngestStore interface {
	ReplaceWindow(ctx context.Context, window remote.DateRange, rows []models.LicenseDetail) (int64, error)
}

// ReportArchiver keeps a copy of every ingested report.
type ReportArchiver interface {
	Archive(ctx context.Context, runID string, window remote.DateRange, records []models.LicenseRecord) (string, error)
}

// IngestReport summarizes an ingest run.
type IngestReport struct {
	RunID           string           `json:"run_id"`
	Window          remote.DateRange `json:"window"`
	Pages           int              `json:"pages"`
	Fetched         int              `json:"fetched"`
	Skipped         int              `json:"skipped"`
	Matched         int              `json:"matched"`
	NotMatched      int              `json:"not_matched"`
	UnmatchedSample []string         `json:"unmatched_sample"`
	Replaced        int64            `json:"replaced"`
	Stored          int              `json:"stored"`
	ArchiveKey      string           `json:"archive_key,omitempty"`
}

// Ingester fetches the license report for a window, enriches it and stores it.
type Ingester struct {
	Licenses  LicenseSource
	Directory ClientSource
	Store     IngestStore
	// Archive is optional.
	Archive ReportArchiver
	// MaxPages bounds the license collection; zero is unbounded.
	MaxPages int
	Logger   *zap.Logger
}

type pageItem struct {
	page int
	raw  json.RawMessage
}

// Run performs one ingest of window.
func (in *Ingester) Run(ctx context.Context, window remote.DateRange) (*IngestReport, error) {
	log := in.Logger
	if log == nil {
		log = zap.NewNop()
	}

	report := &IngestReport{RunID: uuid.NewString(), Window: window}
	log = log.With(zap.String("run_id", report.RunID))

	collector := &remote.Collector[pageItem]{
		Fetch: func(ctx context.Context, page int) ([]pageItem, error) {
			raws, err := in.Licenses.FetchLicensePage(ctx, page, window)
			if err != nil {
				return nil, err
			}
			items := make([]pageItem, len(raws))
			for i, raw := range raws {
				items[i] = pageItem{page: page, raw: raw}
			}
			return items, nil
		},
		MaxPages: in.MaxPages,
		Logger:   log,
	}

	items, err := collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect license details: %w", err)
	}

	records := make([]models.LicenseRecord, 0, len(items))
	for _, item := range items {
		report.Pages = max(report.Pages, item.page)
		r, err := models.DecodeLicenseRecord(item.raw)
		if err != nil {
			report.Skipped++
			log.Warn("Skipping malformed license entry", zap.Int("page", item.page), zap.Error(err))
			continue
		}
		r.Provenance = &models.Provenance{
			SourcePage:    item.page,
			FetchDateFrom: window.From,
			FetchDateTo:   window.To,
		}
		records = append(records, r)
	}
	report.Fetched = len(records)
	log.Info("Collected license details", zap.Int("pages", report.Pages), zap.Int("records", report.Fetched))

	clients, err := in.Directory.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		log.Warn("Client directory is empty, no record will get URLs")
	}

	enriched, stats := Enrich(records, clients)
	report.Matched = stats.Matched
	report.NotMatched = stats.NotMatched
	report.UnmatchedSample = stats.Unmatched
	log.Info("Enrichment complete", zap.Int("matched", stats.Matched), zap.Int("not_matched", stats.NotMatched))
	if len(stats.Unmatched) > 0 {
		log.Info("Sample unmatched customer names", zap.Strings("sample", stats.Unmatched))
	}
	for _, r := range enriched {
		if r.URLs != nil {
			log.Debug("Sample match",
				zap.String("customer_name", r.CustomerName),
				zap.Stringp("customer_url", r.URLs.URL),
				zap.Stringp("customer_url2", r.URLs.URL2),
				zap.Stringp("customer_url3", r.URLs.URL3),
			)
			break
		}
	}

	rows, err := models.NewLicenseDetails(enriched)
	if err != nil {
		return nil, fmt.Errorf("encode license rows: %w", err)
	}
	replaced, err := in.Store.ReplaceWindow(ctx, window, rows)
	if err != nil {
		return nil, err
	}
	report.Replaced = replaced
	report.Stored = len(rows)

	if in.Archive != nil {
		key, err := in.Archive.Archive(ctx, report.RunID, window, enriched)
		if err != nil {
			return report, fmt.Errorf("archive report: %w", err)
		}
		report.ArchiveKey = key
	}

	log.Info("Ingest complete",
		zap.Int("stored", report.Stored),
		zap.Int64("replaced", report.Replaced),
		zap.String("archive_key", report.ArchiveKey),
	)
	return report, nil
}
