package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/sketch/internal/ports/secondary"
)

// ActivityLogRepository implements secondary.ActivityLog with SQLite.
type ActivityLogRepository struct {
	db *sql.DB
}

var _ secondary.ActivityLog = (*ActivityLogRepository)(nil)

// NewActivityLogRepository creates a new SQLite activity log.
func NewActivityLogRepository(db *sql.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Record appends an audit entry.
func (r *ActivityLogRepository) Record(ctx context.Context, entry secondary.ActivityEntry) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO activity_log (space_id, entity_type, entity_id, action, detail) VALUES (?, ?, ?, ?, ?)",
		entry.SpaceID, entry.EntityType, entry.EntityID, entry.Action, entry.Detail,
	)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// Recent returns the newest entries, newest first, capped at limit. An
// empty spaceID returns entries for all spaces.
func (r *ActivityLogRepository) Recent(ctx context.Context, spaceID string, limit int) ([]secondary.ActivityEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := "SELECT id, space_id, entity_type, entity_id, action, detail, created_at FROM activity_log"
	args := []interface{}{}
	if spaceID != "" {
		query += " WHERE space_id = ?"
		args = append(args, spaceID)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var entries []secondary.ActivityEntry
	for rows.Next() {
		var e secondary.ActivityEntry
		var entityID, detail sql.NullString
		if err := rows.Scan(&e.ID, &e.SpaceID, &e.EntityType, &entityID, &e.Action, &detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		e.EntityID = entityID.String
		e.Detail = detail.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity entries: %w", err)
	}
	return entries, nil
}
