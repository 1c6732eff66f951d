package license

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"license-sync/core/remote"
	"license-sync/core/storage"
	"license-sync/feature/license/models"

	"github.com/minio/minio-go/v7"
)

// Archiver uploads ingested reports to object storage.
type Archiver struct {
	client storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewArchiver creates an archiver writing under prefix in bucket.
func NewArchiver(client storage.Client, bucket, prefix string) *Archiver {
	return &Archiver{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

type archiveDocument struct {
	RunID       string                 `json:"run_id"`
	Window      remote.DateRange       `json:"window"`
	GeneratedAt string                 `json:"generated_at"`
	Count       int                    `json:"count"`
	Records     []models.LicenseRecord `json:"records"`
}

// Key returns the object key of a report.
func (a *Archiver) Key(runID string, window remote.DateRange) string {
	return path.Join(a.prefix, windowDir(window), runID+".json")
}

// Archive writes records and returns the object key. The bucket is created when missing.
func (a *Archiver) Archive(ctx context.Context, runID string, window remote.DateRange, records []models.LicenseRecord) (string, error) {
	if err := a.ensureBucket(ctx); err != nil {
		return "", err
	}

	if records == nil {
		records = []models.LicenseRecord{}
	}
	doc := archiveDocument{
		RunID:       runID,
		Window:      window,
		GeneratedAt: a.now().UTC().Format(time.RFC3339),
		Count:       len(records),
		Records:     records,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	key := a.Key(runID, window)
	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

func (a *Archiver) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", a.bucket, err)
	}
	return nil
}

func windowDir(w remote.DateRange) string {
	from, to := w.From, w.To
	if from == "" {
		from = "open"
	}
	if to == "" {
		to = "open"
	}
	return from + "_" + to
}
