package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/sketch/internal/adapters/filesystem"
	"github.com/example/sketch/internal/wire"
)

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export all spaces to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := wire.SpaceService().Export(context.Background(), wire.Config().ActiveSpaceID)
			if err != nil {
				return err
			}
			if err := filesystem.WriteExport(args[0], doc); err != nil {
				return err
			}
			fmt.Printf("✓ Exported %d space(s) to %s\n", len(doc.Spaces), args[0])
			return nil
		},
	}
}

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import spaces from a JSON file, replacing the current collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := filesystem.ReadExport(args[0])
			if err != nil {
				return err
			}
			n, err := wire.SpaceService().Import(context.Background(), doc)
			if err != nil {
				return err
			}
			if err := setActiveSpace(doc.ActiveSpaceID); err != nil {
				return err
			}
			fmt.Printf("✓ Imported %d space(s)\n", n)
			return nil
		},
	}
}
