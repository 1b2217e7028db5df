package refindex

import "context"

// IndexStore is the persisted reference index.
type IndexStore interface {
	// QueryFileReferences returns every file reference whose soft reference
	// marker is present (softRefPresent=true) or absent (false).
	QueryFileReferences(ctx context.Context, softRefPresent bool) ([]ReferenceEntry, error)

	// ClearReferenceValue removes the reference identified by hash.
	ClearReferenceValue(ctx context.Context, hash string) error
}

// Prober tells whether a file exists below the content root.
// Implementations never fail: any error counts as "does not exist".
type Prober interface {
	Exists(ctx context.Context, path string) bool
}

// Refresher rebuilds the reference index before a run.
type Refresher interface {
	Refresh(ctx context.Context) error
}
