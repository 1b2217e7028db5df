package refindex

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable is matched by every error raised when the index cannot be read.
var ErrStoreUnavailable = errors.New("reference index unavailable")

// StoreUnavailableError wraps a failed index query. It is fatal to a run.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreUnavailable, e.Op, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *StoreUnavailableError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.Err}
}

// RepairError records a failed mutation for one reference hash.
type RepairError struct {
	Hash string
	Err  error
}

func (e *RepairError) Error() string {
	return fmt.Sprintf("failed to clear reference %s: %v", e.Hash, e.Err)
}

func (e *RepairError) Unwrap() error {
	return e.Err
}
