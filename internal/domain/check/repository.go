package check

import "context"

// Repository defines the interface for the append-only check history
type Repository interface {
	// Append stores a new check result
	Append(ctx context.Context, r *Result) error

	// MostRecent retrieves the latest result for a target, nil when none exists
	MostRecent(ctx context.Context, targetID string) (*Result, error)

	// ListByTarget retrieves results for a target, newest first
	ListByTarget(ctx context.Context, targetID string, limit, offset int) ([]*Result, int64, error)
}
