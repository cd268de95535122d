package secondary

import "context"

// Activity log actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionMerge  = "merge"
)

// ActivityEntry is one audit row describing an entity mutation.
type ActivityEntry struct {
	ID         int64
	SpaceID    string
	EntityType string
	EntityID   string
	Action     string
	Detail     string
	CreatedAt  string
}

// ActivityLog defines the secondary port for the mutation audit trail.
// Recording is best-effort from the caller's perspective: an audit
// failure never fails the operation it describes.
type ActivityLog interface {
	// Record appends an audit entry.
	Record(ctx context.Context, entry ActivityEntry) error

	// Recent returns the newest entries for a space (all spaces when
	// spaceID is empty), newest first, capped at limit.
	Recent(ctx context.Context, spaceID string, limit int) ([]ActivityEntry, error)
}
