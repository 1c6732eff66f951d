package license

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"license-sync/core/remote"
	"license-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestArchiver(client *mocks.Client) *Archiver {
	a := NewArchiver(client, "license-reports", "reports/license-details")
	a.now = func() time.Time { return time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC) }
	return a
}

func TestArchiver_Archive(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "license-reports").Return(true, nil)

	var uploaded []byte
	client.On("PutObject", mock.Anything, "license-reports", "reports/license-details/2024-01-01_2024-01-31/run-1.json",
		mock.Anything, mock.Anything, mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == "application/json" })).
		Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	records := licenseRecords(t, `{"customer_name":"Acme"}`)
	key, err := newTestArchiver(client).Archive(context.Background(), "run-1", remote.DateRange{From: "2024-01-01", To: "2024-01-31"}, records)
	require.NoError(t, err)
	assert.Equal(t, "reports/license-details/2024-01-01_2024-01-31/run-1.json", key)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(uploaded, &doc))
	assert.JSONEq(t, `"run-1"`, string(doc["run_id"]))
	assert.JSONEq(t, `"2024-02-01T08:00:00Z"`, string(doc["generated_at"]))
	assert.JSONEq(t, `{"date_from":"2024-01-01","date_to":"2024-01-31"}`, string(doc["window"]))
	assert.JSONEq(t, `[{"customer_name":"Acme"}]`, string(doc["records"]))
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestArchiver_CreatesMissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "license-reports").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "license-reports", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "license-reports", "reports/license-details/open_open/run-2.json",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	key, err := newTestArchiver(client).Archive(context.Background(), "run-2", remote.DateRange{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "reports/license-details/open_open/run-2.json", key)
	client.AssertExpectations(t)
}

func TestArchiver_Errors(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "license-reports").Return(false, assert.AnError)

	_, err := newTestArchiver(client).Archive(context.Background(), "run-3", remote.DateRange{}, nil)
	assert.ErrorIs(t, err, assert.AnError)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	client = new(mocks.Client)
	client.On("BucketExists", mock.Anything, "license-reports").Return(true, nil)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)

	_, err = newTestArchiver(client).Archive(context.Background(), "run-4", remote.DateRange{}, nil)
	assert.ErrorIs(t, err, assert.AnError)
}
