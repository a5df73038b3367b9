package target

import "context"

// Service defines the interface for target business logic
type Service interface {
	// Create creates a new target, deriving a unique slug for public targets
	Create(ctx context.Context, t *Target) error

	// GetByID retrieves a target by ID
	GetByID(ctx context.Context, id string) (*Target, error)

	// Update applies field updates to a target
	Update(ctx context.Context, id string, updates map[string]interface{}) (*Target, error)

	// Delete deletes a target and its owned records
	Delete(ctx context.Context, id string) error

	// List retrieves all targets
	List(ctx context.Context) ([]*Target, error)

	// SetEnabled suspends or resumes polling for a target
	SetEnabled(ctx context.Context, id string, enabled bool) error
}
