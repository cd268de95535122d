package models

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates an opaque entity ID with a short type prefix,
// e.g. "opt-3f9c2a1b". IDs are unique within a canvas and stable for
// the lifetime of the entity.
func NewID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + raw[:8]
}
