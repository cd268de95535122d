// Package app implements the primary port services. Services hold no
// state of their own: every mutation loads the space, clones it, runs
// the pure canvas engine on the clone, and commits the whole result in
// one repository call.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/sketch/internal/models"
	"github.com/example/sketch/internal/ports/secondary"
)

// transition runs one atomic state transition: load, clone, mutate,
// commit. If fn returns an error nothing is written and the stored
// space is untouched.
func transition(ctx context.Context, repo secondary.SpaceRepository, spaceID string, fn func(*models.DesignSpace) error) (*models.DesignSpace, error) {
	space, err := repo.GetByID(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load space: %w", err)
	}
	next := space.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now().UTC()
	if err := repo.Update(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save space: %w", err)
	}
	return next, nil
}

// audit records an activity entry, best-effort. An audit failure never
// fails the operation it describes.
func audit(ctx context.Context, log secondary.ActivityLog, spaceID, entityType, entityID, action, detail string) {
	if log == nil {
		return
	}
	_ = log.Record(ctx, secondary.ActivityEntry{
		SpaceID:    spaceID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Detail:     detail,
	})
}
