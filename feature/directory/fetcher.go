package directory

import (
	"context"
	"encoding/json"
	"fmt"

	"license-sync/core/record"
	"license-sync/core/remote"

	"go.uber.org/zap"
)

// ListSource returns the raw client list.
type ListSource interface {
	FetchClientList(ctx context.Context) ([]json.RawMessage, error)
}

// Fetcher reads the complete client directory.
type Fetcher struct {
	source ListSource
	logger *zap.Logger
}

// NewFetcher creates a fetcher reading from source.
func NewFetcher(source ListSource, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{source: source, logger: logger}
}

// FetchAll returns every client of the directory in upstream order.
// The list endpoint is not paged: page 1 carries the whole list and the collector
// stops on the empty page 2.
func (f *Fetcher) FetchAll(ctx context.Context) ([]Client, error) {
	collector := &remote.Collector[Client]{
		Fetch:  f.page,
		Logger: f.logger,
	}

	clients, err := collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch client directory: %w", err)
	}

	f.logger.Info("Fetched client directory", zap.Int("clients", len(clients)))
	return clients, nil
}

func (f *Fetcher) page(ctx context.Context, page int) ([]Client, error) {
	if page > 1 {
		return nil, nil
	}

	raws, err := f.source.FetchClientList(ctx)
	if err != nil {
		return nil, err
	}

	clients := make([]Client, 0, len(raws))
	for i, raw := range raws {
		fields, err := record.Decode(raw)
		if err != nil {
			f.logger.Warn("Skipping malformed client entry", zap.Int("position", i), zap.Error(err))
			continue
		}
		clients = append(clients, NewClient(fields))
	}
	return clients, nil
}
