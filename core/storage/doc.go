// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the small Client interface the report archive
// needs: bucket checks, uploads and listing. Both AWS S3 and self-hosted MinIO work.
//
// The Client interface keeps the archive testable with the mock in core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
