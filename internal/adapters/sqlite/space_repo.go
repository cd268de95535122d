// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/sketch/internal/models"
	"github.com/example/sketch/internal/ports/secondary"
)

// SpaceRepository implements secondary.SpaceRepository with SQLite.
// Each space is one JSON document row; Update replaces the row whole,
// which is what gives services their single-write atomicity.
type SpaceRepository struct {
	db *sql.DB
}

var _ secondary.SpaceRepository = (*SpaceRepository)(nil)

// NewSpaceRepository creates a new SQLite space repository.
func NewSpaceRepository(db *sql.DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

// Create persists a new space.
func (r *SpaceRepository) Create(ctx context.Context, space *models.DesignSpace) error {
	doc, err := json.Marshal(space)
	if err != nil {
		return fmt.Errorf("failed to encode space: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO spaces (id, name, document, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		space.ID, space.Name, string(doc), space.CreatedAt, space.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create space: %w", err)
	}
	return nil
}

// GetByID retrieves a space by its ID.
func (r *SpaceRepository) GetByID(ctx context.Context, id string) (*models.DesignSpace, error) {
	var doc string
	err := r.db.QueryRowContext(ctx,
		"SELECT document FROM spaces WHERE id = ?", id,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("space %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get space: %w", err)
	}
	return decodeSpace(doc)
}

// Update replaces the stored space wholesale.
func (r *SpaceRepository) Update(ctx context.Context, space *models.DesignSpace) error {
	doc, err := json.Marshal(space)
	if err != nil {
		return fmt.Errorf("failed to encode space: %w", err)
	}
	result, err := r.db.ExecContext(ctx,
		"UPDATE spaces SET name = ?, document = ?, updated_at = ? WHERE id = ?",
		space.Name, string(doc), space.UpdatedAt, space.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update space: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("space %s not found", space.ID)
	}
	return nil
}

// Delete removes a space from persistence.
func (r *SpaceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM spaces WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("space %s not found", id)
	}
	return nil
}

// List retrieves all spaces ordered by creation time.
func (r *SpaceRepository) List(ctx context.Context) ([]*models.DesignSpace, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT document FROM spaces ORDER BY created_at ASC, id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	defer rows.Close()

	var spaces []*models.DesignSpace
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan space: %w", err)
		}
		space, err := decodeSpace(doc)
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, space)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spaces: %w", err)
	}
	return spaces, nil
}

// ReplaceAll swaps the whole stored collection inside one transaction.
func (r *SpaceRepository) ReplaceAll(ctx context.Context, spaces []*models.DesignSpace) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM spaces"); err != nil {
		return fmt.Errorf("failed to clear spaces: %w", err)
	}
	for _, space := range spaces {
		doc, err := json.Marshal(space)
		if err != nil {
			return fmt.Errorf("failed to encode space: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO spaces (id, name, document, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			space.ID, space.Name, string(doc), space.CreatedAt, space.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert space %s: %w", space.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}

func decodeSpace(doc string) (*models.DesignSpace, error) {
	var space models.DesignSpace
	if err := json.Unmarshal([]byte(doc), &space); err != nil {
		return nil, fmt.Errorf("failed to decode space document: %w", err)
	}
	return &space, nil
}
