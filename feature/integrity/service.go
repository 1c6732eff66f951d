package integrity

import (
	"context"
	"fmt"

	"license-sync/core/storage"
	"license-sync/feature/integrity/checks"
	"license-sync/feature/license/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service. client may be nil when archiving is disabled.
func NewService(client storage.Client, bucket, prefix string, logger *zap.Logger, db *gorm.DB) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
		db:     db,
	}
}

// CheckSchema verifies the license details table against its model.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.LicenseDetail{})
}

// CheckArchive inspects the report archive bucket.
func (s *Service) CheckArchive(ctx context.Context) (*checks.ArchiveReport, error) {
	if s.client == nil {
		return nil, fmt.Errorf("report archive is not configured")
	}
	return checks.CheckArchive(ctx, s.client, s.bucket, s.prefix)
}
