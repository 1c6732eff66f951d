package checks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"license-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// ArchiveReport describes the report archive bucket.
type ArchiveReport struct {
	Bucket       string `json:"bucket"`
	Prefix       string `json:"prefix"`
	Exists       bool   `json:"exists"`
	Reports      int    `json:"reports"`
	LatestKey    string `json:"latest_key,omitempty"`
	LatestUpload string `json:"latest_upload,omitempty"`
}

// CheckArchive reports whether the archive bucket exists and how many reports it holds.
func CheckArchive(ctx context.Context, client storage.Client, bucket, prefix string) (*ArchiveReport, error) {
	report := &ArchiveReport{Bucket: bucket, Prefix: prefix}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.Exists = exists
	if !exists {
		return report, nil
	}

	listPrefix := strings.TrimSuffix(prefix, "/")
	if listPrefix != "" {
		listPrefix += "/"
	}

	var latest time.Time
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: listPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("error listing objects: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		report.Reports++
		if obj.LastModified.After(latest) {
			latest = obj.LastModified
			report.LatestKey = obj.Key
			report.LatestUpload = obj.LastModified.UTC().Format(time.RFC3339)
		}
	}

	return report, nil
}
