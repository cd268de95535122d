package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/sketch/internal/core/canvas"
	"github.com/example/sketch/internal/models"
	"github.com/example/sketch/internal/ports/primary"
	"github.com/example/sketch/internal/ports/secondary"
)

// SpaceServiceImpl implements the SpaceService interface.
type SpaceServiceImpl struct {
	repo secondary.SpaceRepository
	log  secondary.ActivityLog
}

var _ primary.SpaceService = (*SpaceServiceImpl)(nil)

// NewSpaceService creates a new SpaceService with injected dependencies.
func NewSpaceService(repo secondary.SpaceRepository, log secondary.ActivityLog) *SpaceServiceImpl {
	return &SpaceServiceImpl{repo: repo, log: log}
}

// CreateSpace creates an empty design space.
func (s *SpaceServiceImpl) CreateSpace(ctx context.Context, name string) (*models.DesignSpace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("space name is required")
	}
	space := models.NewDesignSpace(name)
	if err := s.repo.Create(ctx, space); err != nil {
		return nil, fmt.Errorf("failed to create space: %w", err)
	}
	audit(ctx, s.log, space.ID, "space", space.ID, secondary.ActionCreate, name)
	return space, nil
}

// GetSpace retrieves a space by ID.
func (s *SpaceServiceImpl) GetSpace(ctx context.Context, spaceID string) (*models.DesignSpace, error) {
	space, err := s.repo.GetByID(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load space: %w", err)
	}
	return space, nil
}

// ListSpaces lists all spaces, oldest first.
func (s *SpaceServiceImpl) ListSpaces(ctx context.Context) ([]*models.DesignSpace, error) {
	spaces, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	return spaces, nil
}

// DeleteSpace removes a space permanently.
func (s *SpaceServiceImpl) DeleteSpace(ctx context.Context, spaceID string) error {
	if err := s.repo.Delete(ctx, spaceID); err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
	}
	audit(ctx, s.log, spaceID, "space", spaceID, secondary.ActionDelete, "")
	return nil
}

// SetProblemStatement replaces the space's problem statement.
func (s *SpaceServiceImpl) SetProblemStatement(ctx context.Context, spaceID, statement string) error {
	statement = strings.TrimSpace(statement)
	if statement == "" {
		return fmt.Errorf("problem statement is required")
	}
	_, err := transition(ctx, s.repo, spaceID, func(space *models.DesignSpace) error {
		space.ProblemStatement = statement
		return nil
	})
	if err != nil {
		return err
	}
	audit(ctx, s.log, spaceID, "space", spaceID, secondary.ActionUpdate, "problem statement")
	return nil
}

// Export snapshots every space into a versioned envelope.
func (s *SpaceServiceImpl) Export(ctx context.Context, activeSpaceID string) (*primary.ExportDocument, error) {
	spaces, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	return &primary.ExportDocument{
		Version:       primary.ExportVersion,
		ExportedAt:    time.Now().UTC(),
		ActiveSpaceID: activeSpaceID,
		Spaces:        spaces,
	}, nil
}

// Import replaces the stored collection with the envelope's spaces.
// Individual records are repaired rather than rejected; only a missing
// or empty spaces array is a hard failure.
func (s *SpaceServiceImpl) Import(ctx context.Context, doc *primary.ExportDocument) (int, error) {
	if doc == nil || len(doc.Spaces) == 0 {
		return 0, fmt.Errorf("import document has no spaces")
	}
	now := time.Now().UTC()
	spaces := make([]*models.DesignSpace, 0, len(doc.Spaces))
	for _, space := range doc.Spaces {
		if space == nil {
			continue
		}
		canvas.Repair(space)
		if space.ID == "" {
			space.ID = models.NewID("space")
		}
		if space.CreatedAt.IsZero() {
			space.CreatedAt = now
		}
		if space.UpdatedAt.IsZero() {
			space.UpdatedAt = now
		}
		spaces = append(spaces, space)
	}
	if len(spaces) == 0 {
		return 0, fmt.Errorf("import document has no spaces")
	}
	if err := s.repo.ReplaceAll(ctx, spaces); err != nil {
		return 0, fmt.Errorf("failed to import spaces: %w", err)
	}
	audit(ctx, s.log, "", "space", "", secondary.ActionCreate, fmt.Sprintf("imported %d spaces", len(spaces)))
	return len(spaces), nil
}
