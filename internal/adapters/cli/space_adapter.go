// Package cli provides thin CLI adapters that translate between CLI
// concerns and application services. Adapters handle output formatting
// but delegate all business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/sketch/internal/ports/primary"
)

// SpaceAdapter translates CLI operations to SpaceService calls.
type SpaceAdapter struct {
	service primary.SpaceService
	out     io.Writer
}

// NewSpaceAdapter creates a new SpaceAdapter with the given service.
func NewSpaceAdapter(service primary.SpaceService, out io.Writer) *SpaceAdapter {
	return &SpaceAdapter{service: service, out: out}
}

// Create creates a new design space.
func (a *SpaceAdapter) Create(ctx context.Context, name string) (string, error) {
	space, err := a.service.CreateSpace(ctx, name)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(a.out, "✓ Created space %s: %s\n", space.ID, space.Name)
	return space.ID, nil
}

// List lists all spaces.
func (a *SpaceAdapter) List(ctx context.Context, activeSpaceID string) error {
	spaces, err := a.service.ListSpaces(ctx)
	if err != nil {
		return fmt.Errorf("failed to list spaces: %w", err)
	}

	if len(spaces) == 0 {
		fmt.Fprintln(a.out, "No spaces found. Create one with: sketch space create <name>")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tOPTIONS\tMESSAGES\tNAME")
	fmt.Fprintln(w, "--\t-------\t--------\t----")
	for _, s := range spaces {
		marker := ""
		if s.ID == activeSpaceID {
			marker = " *"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s%s\n", s.ID, len(s.Canvas.Options), len(s.Conversation), s.Name, marker)
	}
	return w.Flush()
}

// Delete removes a space.
func (a *SpaceAdapter) Delete(ctx context.Context, spaceID string) error {
	if err := a.service.DeleteSpace(ctx, spaceID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted space %s\n", spaceID)
	return nil
}

// SetProblem replaces a space's problem statement.
func (a *SpaceAdapter) SetProblem(ctx context.Context, spaceID, statement string) error {
	if err := a.service.SetProblemStatement(ctx, spaceID, statement); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "✓ Problem statement updated")
	return nil
}
