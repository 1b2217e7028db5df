package refindex

import (
	"context"

	"go.uber.org/zap"
)

// Options controls a single reconciliation run.
type Options struct {
	// DryRun reports repairs without mutating the index.
	DryRun bool

	// RefreshIndexFirst asks the Refresher to rebuild the index before Scan.
	// When false the run works on the index as it is, possibly stale.
	RefreshIndexFirst bool
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithRefresher sets the collaborator used when Options.RefreshIndexFirst is set.
func WithRefresher(r Refresher) Option {
	return func(rc *Reconciler) {
		rc.refresher = r
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(rc *Reconciler) {
		if l != nil {
			rc.logger = l
		}
	}
}

// WithExcludes skips entries whose target path matches one of the patterns.
func WithExcludes(patterns []string) Option {
	return func(rc *Reconciler) {
		rc.excludes = patterns
	}
}

// Reconciler sequences Refresh, Scan, Classify, Act and Report.
type Reconciler struct {
	store     IndexStore
	prober    Prober
	refresher Refresher
	excludes  []string
	logger    *zap.Logger
}

// NewReconciler creates a Reconciler over an index store and a file prober.
func NewReconciler(store IndexStore, prober Prober, opts ...Option) *Reconciler {
	rc := &Reconciler{
		store:  store,
		prober: prober,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// Run performs one reconciliation. A failure to read the index aborts the run
// and returns a StoreUnavailableError with no result. Repair failures are
// reported in the result and never returned as an error.
func (rc *Reconciler) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{DryRun: opts.DryRun}

	// Init
	if opts.RefreshIndexFirst {
		rc.refresh(ctx, result)
	}

	// Scan
	reader := NewReader(rc.store)
	managed, err := reader.FindManagedFileReferences(ctx)
	if err != nil {
		return nil, err
	}
	soft, err := reader.FindSoftFileReferences(ctx)
	if err != nil {
		return nil, err
	}
	rc.logger.Debug("Scanned reference index",
		zap.Int("managed", len(managed)),
		zap.Int("soft", len(soft)),
	)

	// Classify
	classifier := NewClassifier(rc.prober, rc.excludes, rc.logger)
	result.MissingSoftReferences = classifier.ClassifySoft(ctx, soft)
	result.MissingManagedReferences = classifier.ClassifyManaged(ctx, managed)
	result.Excluded = classifier.Excluded()

	// Act
	executor := NewExecutor(rc.store, rc.logger)
	result.RepairOutcomes = executor.RepairAll(ctx, result.MissingManagedReferences, opts.DryRun)

	// Report
	s := result.Summary()
	rc.logger.Info("Reconciliation finished",
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("missing_files", s.MissingFiles),
		zap.Int("missing_managed", s.MissingManaged),
		zap.Int("missing_soft", s.MissingSoft),
		zap.Int("removed", s.Removed),
		zap.Int("failed", s.Failed),
	)
	return result, nil
}

func (rc *Reconciler) refresh(ctx context.Context, result *Result) {
	if rc.refresher == nil {
		result.RefreshError = "no index refresher configured"
		rc.logger.Warn("Index refresh requested but no refresher is configured, continuing with current index")
		return
	}
	rc.logger.Info("Refreshing reference index...")
	if err := rc.refresher.Refresh(ctx); err != nil {
		result.RefreshError = err.Error()
		rc.logger.Warn("Index refresh failed, continuing with current index", zap.Error(err))
		return
	}
	result.Refreshed = true
}
