package checks

import (
	"context"
	"testing"
	"time"

	"license-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckArchive(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "license-reports").Return(true, nil)

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)
	client.On("ListObjects", mock.Anything, "license-reports", mock.MatchedBy(func(o minio.ListObjectsOptions) bool {
		return o.Prefix == "reports/license-details/" && o.Recursive
	})).Return(func(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
		ch := make(chan minio.ObjectInfo, 3)
		ch <- minio.ObjectInfo{Key: opts.Prefix + "a_b/1.json", LastModified: older}
		ch <- minio.ObjectInfo{Key: opts.Prefix + "a_b/2.json", LastModified: newer}
		ch <- minio.ObjectInfo{Key: opts.Prefix + "a_b/"}
		close(ch)
		return ch
	})

	report, err := CheckArchive(context.Background(), client, "license-reports", "reports/license-details")
	require.NoError(t, err)
	assert.True(t, report.Exists)
	assert.Equal(t, 2, report.Reports)
	assert.Equal(t, "reports/license-details/a_b/2.json", report.LatestKey)
	assert.Equal(t, "2024-01-02T00:00:00Z", report.LatestUpload)
}

func TestCheckArchive_MissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "license-reports").Return(false, nil)

	report, err := CheckArchive(context.Background(), client, "license-reports", "reports")
	require.NoError(t, err)
	assert.False(t, report.Exists)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckArchive_Errors(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "license-reports").Return(false, assert.AnError)

	_, err := CheckArchive(context.Background(), client, "license-reports", "reports")
	assert.ErrorIs(t, err, assert.AnError)

	client = new(mocks.Client)
	client.On("BucketExists", mock.Anything, "license-reports").Return(true, nil)
	client.On("ListObjects", mock.Anything, "license-reports", mock.Anything).
		Return(mocks.Listing(minio.ObjectInfo{Err: assert.AnError}))

	_, err = CheckArchive(context.Background(), client, "license-reports", "reports")
	assert.ErrorIs(t, err, assert.AnError)
}
