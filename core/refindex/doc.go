// Package refindex reconciles the persisted reference index against the
// files it points to.
//
// A reference index row records one pointer from a content record to a file.
// Rows come in two kinds:
//
//   - Managed references: strongly typed pointers (e.g. a file field) that can
//     be cleared automatically.
//   - Soft references: pointers found by scanning content (e.g. inline markup).
//     They are reported but never changed, fixing them needs an editor.
//
// # Architecture
//
// The package is built from small collaborators:
//
// 1. Reader: queries the IndexStore for managed and soft file references.
//
// 2. Classifier: probes the content root through a Prober. Missing managed
// references are grouped by path (deduplicated by hash), missing soft
// references become report lines.
//
// 3. Executor: for each missing managed reference either reports
// "would remove" (dry-run) or calls IndexStore.ClearReferenceValue. A failing
// mutation is recorded in the result and the batch continues.
//
// 4. Reconciler: runs Refresh (optional), Scan, Classify, Act and Report in
// order on a single goroutine.
//
// # Errors
//
// Failing to read the index is fatal: Run returns an error matching
// ErrStoreUnavailable and no result. Repair failures surface as RepairError
// values inside Result.RepairOutcomes.
//
// # Usage
//
//	rc := refindex.NewReconciler(store, prober,
//	    refindex.WithRefresher(refresher),
//	    refindex.WithLogger(log),
//	)
//	result, err := rc.Run(ctx, refindex.Options{DryRun: true})
package refindex
