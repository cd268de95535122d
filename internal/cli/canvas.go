package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/sketch/internal/wire"
)

// CanvasCmd returns the canvas command
func CanvasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canvas",
		Short: "Show the active space's canvas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			space, err := wire.SpaceService().GetSpace(context.Background(), id)
			if err != nil {
				return err
			}
			wire.CanvasAdapter().Show(space)
			return nil
		},
	}
	addSpaceFlag(cmd)
	return cmd
}
