package incident

import "context"

// Service defines the incident lifecycle state machine. Apply consumes one
// status transition for a target and opens, updates or closes incident
// records accordingly.
type Service interface {
	// Apply handles a status transition. It is a no-op when previous and new
	// status are equal.
	Apply(ctx context.Context, targetID, previousStatus, newStatus string) error

	// CloseOrphaned resolves every incident still open for a target. Called
	// defensively on each up result.
	CloseOrphaned(ctx context.Context, targetID string) error

	// ListByTarget retrieves incidents for a target, newest first
	ListByTarget(ctx context.Context, targetID string, limit, offset int) ([]*Incident, int64, error)

	// List retrieves incidents across all targets, newest first
	List(ctx context.Context, limit, offset int) ([]*Incident, int64, error)
}
