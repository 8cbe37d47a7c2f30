// Package repository persists per-label attribution preferences: when a
// user assigns an item to a person, the item's canonical label is
// remembered so similarly-labeled items on future receipts default
// correctly. The store is a best-effort cache, never a correctness
// dependency.
package repository

import (
	"context"
	"fmt"

	"github.com/duosplit/receipt-split-service/internal/split"
)

// RepositoryError represents an error that occurred within a
// repository.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error.
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// PreferenceRepository stores attribution preferences keyed by
// canonical item label. Get reports absence via its second return
// value; absence defaults to Person1 at the call site.
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (split.Attribution, bool, error)
	Set(ctx context.Context, key string, attribution split.Attribution) error
	Close() error
}
