package incident

import "context"

// Repository defines the interface for incident data access
type Repository interface {
	// Create stores a new incident
	Create(ctx context.Context, i *Incident) error

	// Update rewrites an existing incident record
	Update(ctx context.Context, i *Incident) error

	// OpenForTarget retrieves the most recent open incident for a target,
	// nil when none is open
	OpenForTarget(ctx context.Context, targetID string) (*Incident, error)

	// ListOpenForTarget retrieves every open incident for a target, used by
	// the orphan sweep
	ListOpenForTarget(ctx context.Context, targetID string) ([]*Incident, error)

	// ListByTarget retrieves incidents for a target, newest first
	ListByTarget(ctx context.Context, targetID string, limit, offset int) ([]*Incident, int64, error)

	// List retrieves incidents across all targets, newest first
	List(ctx context.Context, limit, offset int) ([]*Incident, int64, error)

	// CountOpen counts open incidents across all targets
	CountOpen(ctx context.Context) (int64, error)
}
