package mocks

import (
	"context"
	"io"

	"license-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

var _ storage.Client = (*Client)(nil)

// Client is a testify mock of storage.Client.
type Client struct {
	mock.Mock
}

// Listing returns a closed, buffered channel holding objs, suitable as a
// ListObjects return value.
func Listing(objs ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objs))
	for _, o := range objs {
		ch <- o
	}
	close(ch)
	return ch
}

func (m *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *Client) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return m.Called(ctx, bucketName, opts).Error(0)
}

func (m *Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	info, _ := args.Get(0).(minio.UploadInfo)
	return info, args.Error(1)
}

// ListObjects accepts either a channel or a func with the ListObjects signature
// as its return value. Anything else yields an empty listing.
func (m *Client) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	switch ret := m.Called(ctx, bucketName, opts).Get(0).(type) {
	case <-chan minio.ObjectInfo:
		return ret
	case func(context.Context, string, minio.ListObjectsOptions) <-chan minio.ObjectInfo:
		return ret(ctx, bucketName, opts)
	default:
		return Listing()
	}
}
