// Package cli defines the cobra command tree. Commands are thin: they
// parse flags, resolve the target space, and delegate to the wire-built
// adapters and services.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/sketch/internal/wire"
)

// addSpaceFlag registers the --space flag on a command.
func addSpaceFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("space", "s", "", "target space ID (defaults to the active space)")
}

// resolveSpace returns the space to operate on: the --space flag when
// given, otherwise the active space from config.
func resolveSpace(cmd *cobra.Command) (string, error) {
	if id, _ := cmd.Flags().GetString("space"); id != "" {
		return id, nil
	}
	if id := wire.Config().ActiveSpaceID; id != "" {
		return id, nil
	}
	return "", fmt.Errorf("no active space; run 'sketch space use <id>' or pass --space")
}
