// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so content files kept in AWS S3 or a
// self-hosted MinIO instance can be probed the same way as files on disk.
//
// # Client Interface
//
// The Client interface only exposes what the existence probes need, which
// keeps it easy to mock in unit tests (see core/storage/mocks).
//
//   - BucketExists: verifies the content bucket before any object is probed.
//   - StatObject: reads object metadata without downloading it.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	info, err := client.StatObject(ctx, "content", "fileadmin/a.jpg", minio.StatObjectOptions{})
package storage
