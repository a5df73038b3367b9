package target

import "context"

// Repository defines the interface for target data access
type Repository interface {
	// Create creates a new target
	Create(ctx context.Context, t *Target) error

	// GetByID retrieves a target by ID
	GetByID(ctx context.Context, id string) (*Target, error)

	// GetBySlug retrieves a public target by its slug
	GetBySlug(ctx context.Context, slug string) (*Target, error)

	// Update updates a target
	Update(ctx context.Context, t *Target) error

	// Delete deletes a target; checks, incidents, rules and logs cascade
	Delete(ctx context.Context, id string) error

	// List retrieves all targets
	List(ctx context.Context) ([]*Target, error)

	// ListEnabled retrieves targets with polling enabled
	ListEnabled(ctx context.Context) ([]*Target, error)

	// SetStatus updates only the status field
	SetStatus(ctx context.Context, id string, status string) error

	// SlugExists reports whether a slug is already taken
	SlugExists(ctx context.Context, slug string) (bool, error)
}
