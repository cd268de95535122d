// Package primary defines the primary ports (driving interfaces) for
// the application: the operations the CLI layer invokes.
package primary

import (
	"context"
	"time"

	"github.com/example/sketch/internal/models"
)

// ExportVersion is the current export envelope version.
const ExportVersion = 1

// ExportDocument is the versioned envelope for export/import of the
// full space collection.
type ExportDocument struct {
	Version       int                   `json:"version"`
	ExportedAt    time.Time             `json:"exported_at"`
	ActiveSpaceID string                `json:"active_space_id,omitempty"`
	Spaces        []*models.DesignSpace `json:"spaces"`
}

// SpaceService defines the primary port for design-space lifecycle and
// bulk operations.
type SpaceService interface {
	// CreateSpace creates an empty design space.
	CreateSpace(ctx context.Context, name string) (*models.DesignSpace, error)

	// GetSpace retrieves a space by ID.
	GetSpace(ctx context.Context, spaceID string) (*models.DesignSpace, error)

	// ListSpaces lists all spaces, oldest first.
	ListSpaces(ctx context.Context) ([]*models.DesignSpace, error)

	// DeleteSpace removes a space permanently.
	DeleteSpace(ctx context.Context, spaceID string) error

	// SetProblemStatement replaces the space's problem statement.
	SetProblemStatement(ctx context.Context, spaceID, statement string) error

	// Export snapshots every space into a versioned envelope.
	Export(ctx context.Context, activeSpaceID string) (*ExportDocument, error)

	// Import replaces the stored collection with the envelope's spaces,
	// repairing individual records rather than rejecting them. Only a
	// missing or empty spaces array is a hard failure. Returns the
	// number of spaces imported.
	Import(ctx context.Context, doc *ExportDocument) (int, error)
}
