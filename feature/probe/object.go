package probe

import (
	"context"
	"path"

	"refcheck/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ObjectProber checks objects below a key prefix of a bucket.
type ObjectProber struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewObjectProber creates a prober for objects under prefix in bucket.
func NewObjectProber(client storage.Client, bucket, prefix string, logger *zap.Logger) *ObjectProber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ObjectProber{
		client: client,
		bucket: bucket,
		prefix: cleanRelative(prefix),
		logger: logger,
	}
}

// Exists reports whether the object for path exists. Access and transport
// errors count as missing.
func (p *ObjectProber) Exists(ctx context.Context, target string) bool {
	rel := cleanRelative(target)
	if rel == "" {
		return false
	}
	key := path.Join(p.prefix, rel)

	_, err := p.client.StatObject(ctx, p.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if !storage.IsNotFound(err) {
			p.logger.Warn("Cannot stat object, treating it as missing",
				zap.String("bucket", p.bucket),
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return false
	}
	return true
}
