// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"

	"github.com/example/sketch/internal/models"
)

// SpaceRepository defines the secondary port for design-space
// persistence. Update replaces the whole stored record, which is what
// makes every mutation a single atomic transition: services compute the
// full next state from a snapshot and hand it over in one call.
type SpaceRepository interface {
	// Create persists a new space.
	Create(ctx context.Context, space *models.DesignSpace) error

	// GetByID retrieves a space by its ID.
	GetByID(ctx context.Context, id string) (*models.DesignSpace, error)

	// Update replaces the stored space wholesale.
	Update(ctx context.Context, space *models.DesignSpace) error

	// Delete removes a space from persistence.
	Delete(ctx context.Context, id string) error

	// List retrieves all spaces ordered by creation time.
	List(ctx context.Context) ([]*models.DesignSpace, error)

	// ReplaceAll swaps the whole stored collection, used by import.
	ReplaceAll(ctx context.Context, spaces []*models.DesignSpace) error
}
