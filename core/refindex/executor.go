package refindex

import (
	"context"

	"go.uber.org/zap"
)

// Executor applies (or, in dry-run, only reports) repairs for missing managed
// references. Every entry is an independent unit of work.
type Executor struct {
	store  IndexStore
	logger *zap.Logger
}

// NewExecutor creates an Executor over the given store.
func NewExecutor(store IndexStore, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{store: store, logger: logger}
}

// Repair handles every entry of a group. A failing mutation is recorded and
// the remaining entries are still processed.
func (x *Executor) Repair(ctx context.Context, group ManagedGroup, dryRun bool) []RepairOutcome {
	outcomes := make([]RepairOutcome, 0, len(group.Entries))
	for _, e := range group.Entries {
		o := RepairOutcome{
			Path:       group.Path,
			Hash:       e.Hash,
			Descriptor: e.Origin(),
		}

		if dryRun {
			o.Status = OutcomeWouldRemove
			outcomes = append(outcomes, o)
			continue
		}

		if err := x.store.ClearReferenceValue(ctx, e.Hash); err != nil {
			rerr := &RepairError{Hash: e.Hash, Err: err}
			x.logger.Error("Failed to clear reference",
				zap.String("path", group.Path),
				zap.String("hash", e.Hash),
				zap.Error(err),
			)
			o.Status = OutcomeFailed
			o.Err = rerr
			o.Message = rerr.Error()
		} else {
			x.logger.Info("Cleared reference",
				zap.String("path", group.Path),
				zap.String("hash", e.Hash),
				zap.String("origin", o.Descriptor),
			)
			o.Status = OutcomeRemoved
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// RepairAll runs Repair over every group in order.
func (x *Executor) RepairAll(ctx context.Context, groups []ManagedGroup, dryRun bool) []RepairOutcome {
	var outcomes []RepairOutcome
	for _, g := range groups {
		outcomes = append(outcomes, x.Repair(ctx, g, dryRun)...)
	}
	return outcomes
}
