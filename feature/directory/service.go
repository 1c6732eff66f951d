package directory

import (
	"context"
	"errors"
	"time"

	"license-sync/core/reconcile"
	"license-sync/feature/license/models"

	"go.uber.org/zap"
)

// ErrUnkeyable is returned for names that are empty after trimming.
var ErrUnkeyable = errors.New("name is empty after normalization")

// Source provides the full client directory.
type Source interface {
	FetchAll(ctx context.Context) ([]Client, error)
}

// Resolution is the outcome of resolving one customer name.
type Resolution struct {
	Name    string               `json:"name"`
	Key     string               `json:"key"`
	Matched bool                 `json:"matched"`
	Client  *Client              `json:"client"`
	URLs    *models.CustomerURLs `json:"urls,omitempty"`
}

// Service resolves names against a cached directory index.
type Service struct {
	cache  *reconcile.Cache[Client]
	logger *zap.Logger
}

// NewService creates a service whose index is rebuilt from source at most once per ttl.
func NewService(source Source, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	build := func(ctx context.Context) (*reconcile.Index[Client], error) {
		clients, err := source.FetchAll(ctx)
		if err != nil {
			return nil, err
		}
		ix := reconcile.BuildIndex(clients, ClientName)
		logger.Info("Built directory index", zap.Int("clients", len(clients)), zap.Int("keys", ix.Len()))
		return ix, nil
	}

	return &Service{
		cache:  reconcile.NewCache(ttl, build),
		logger: logger,
	}
}

// Resolve looks name up in the directory. Unkeyable names return ErrUnkeyable.
func (s *Service) Resolve(ctx context.Context, name string) (*Resolution, error) {
	key, ok := reconcile.Normalize(name)
	if !ok {
		return nil, ErrUnkeyable
	}

	ix, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	res := &Resolution{Name: name, Key: key}
	if client, found := ix.Resolve(name); found {
		urls := client.URLs()
		res.Matched = true
		res.Client = &client
		res.URLs = &urls
	}
	return res, nil
}

// Refresh drops the cached index.
func (s *Service) Refresh() {
	s.cache.Invalidate()
}
