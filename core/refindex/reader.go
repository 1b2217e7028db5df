package refindex

import "context"

// Reader queries the index for file references, split by soft marker.
type Reader struct {
	store IndexStore
}

// NewReader creates a Reader over the given store.
func NewReader(store IndexStore) *Reader {
	return &Reader{store: store}
}

// FindManagedFileReferences returns file references without a soft reference key.
func (r *Reader) FindManagedFileReferences(ctx context.Context) ([]ReferenceEntry, error) {
	entries, err := r.store.QueryFileReferences(ctx, false)
	if err != nil {
		return nil, &StoreUnavailableError{Op: "query managed file references", Err: err}
	}
	return entries, nil
}

// FindSoftFileReferences returns file references carrying a soft reference key.
func (r *Reader) FindSoftFileReferences(ctx context.Context) ([]ReferenceEntry, error) {
	entries, err := r.store.QueryFileReferences(ctx, true)
	if err != nil {
		return nil, &StoreUnavailableError{Op: "query soft file references", Err: err}
	}
	return entries, nil
}
