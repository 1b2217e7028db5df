package probe

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"refcheck/core/refindex"
	"refcheck/core/storage"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrContentRootUnavailable is returned when the configured content root cannot
// be reached. Probing an unreachable root would report every file as missing.
var ErrContentRootUnavailable = errors.New("content root unavailable")

// New returns the prober selected by cfg.Backend after checking that the
// content root (local) or bucket (s3) is reachable. The storage client is
// only needed for the s3 backend.
func New(ctx context.Context, cfg Config, client storage.Client, bucket string, logger *zap.Logger) (refindex.Prober, error) {
	return newProber(ctx, cfg, afero.NewOsFs(), client, bucket, logger)
}

func newProber(ctx context.Context, cfg Config, fsys afero.Fs, client storage.Client, bucket string, logger *zap.Logger) (refindex.Prober, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		info, err := fsys.Stat(cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrContentRootUnavailable, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", ErrContentRootUnavailable, cfg.Root)
		}
		return NewLocalProber(fsys, cfg.Root, logger), nil
	case BackendS3:
		if client == nil {
			return nil, fmt.Errorf("s3 content backend requires a storage client")
		}
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to check bucket %s: %v", ErrContentRootUnavailable, bucket, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: bucket %s does not exist", ErrContentRootUnavailable, bucket)
		}
		return NewObjectProber(client, bucket, cfg.Root, logger), nil
	default:
		return nil, fmt.Errorf("unknown content backend %q", cfg.Backend)
	}
}

// cleanRelative normalizes a target path so it can never leave the root.
func cleanRelative(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
