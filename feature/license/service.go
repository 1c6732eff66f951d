package license

import (
	"context"

	"license-sync/feature/license/models"

	"go.uber.org/zap"
)

// Service serves stored license data.
type Service struct {
	repo   *Repository
	logger *zap.Logger
}

// NewService creates a new license service.
func NewService(repo *Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// ListCustomers returns the distinct stored customer names.
func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

// QueryDetails returns one page of stored rows matching q.
func (s *Service) QueryDetails(ctx context.Context, q DetailsQuery) ([]models.LicenseDetail, error) {
	return s.repo.QueryDetails(ctx, q)
}
