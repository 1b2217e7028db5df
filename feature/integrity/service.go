package integrity

import (
	"context"
	"sync"

	"refcheck/core/refindex"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Runner runs one reference reconciliation.
type Runner interface {
	Run(ctx context.Context, opts refindex.Options) (*refindex.Result, error)
}

// SchemaChecker reports columns missing from the reference index table.
type SchemaChecker interface {
	CheckSchema() ([]string, error)
}

// Service handles reference integrity checks for the HTTP API.
type Service struct {
	runner Runner
	schema SchemaChecker
	logger *zap.Logger

	// mu serializes runs so a repair never overlaps another scan.
	mu sync.Mutex
	sf singleflight.Group
}

// NewService creates a new integrity service.
func NewService(runner Runner, schema SchemaChecker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		runner: runner,
		schema: schema,
		logger: logger,
	}
}

// Report runs a dry-run reconciliation. Concurrent callers asking for the
// same kind of report share a single run.
func (s *Service) Report(ctx context.Context, refresh bool) (*refindex.Result, error) {
	key := "report"
	if refresh {
		key = "report+refresh"
	}
	return s.do(ctx, key, refindex.Options{DryRun: true, RefreshIndexFirst: refresh})
}

// Repair runs a destructive reconciliation.
func (s *Service) Repair(ctx context.Context, refresh bool) (*refindex.Result, error) {
	return s.do(ctx, "repair", refindex.Options{DryRun: false, RefreshIndexFirst: refresh})
}

func (s *Service) do(ctx context.Context, key string, opts refindex.Options) (*refindex.Result, error) {
	v, err, shared := s.sf.Do(key, func() (interface{}, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.runner.Run(ctx, opts)
	})
	if shared {
		s.logger.Debug("Joined in-flight reconciliation", zap.String("key", key))
	}
	if err != nil {
		return nil, err
	}
	return v.(*refindex.Result), nil
}

// CheckSchema returns the index columns missing from the database.
func (s *Service) CheckSchema() ([]string, error) {
	return s.schema.CheckSchema()
}
