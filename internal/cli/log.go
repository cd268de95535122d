package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/sketch/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent canvas activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, _ := cmd.Flags().GetString("space")
			if spaceID == "" {
				spaceID = wire.Config().ActiveSpaceID
			}
			limit, _ := cmd.Flags().GetInt("limit")

			entries, err := wire.ActivityLog().Recent(context.Background(), spaceID, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No activity recorded")
				return nil
			}
			for _, e := range entries {
				detail := ""
				if e.Detail != "" {
					detail = "  " + e.Detail
				}
				fmt.Printf("%s  %-7s %-10s %s%s\n", e.CreatedAt, e.Action, e.EntityType, e.EntityID, detail)
			}

			// Surface extraction failures alongside the audit trail
			if spaceID != "" {
				space, err := wire.SpaceService().GetSpace(context.Background(), spaceID)
				if err == nil && len(space.ExtractionFailures) > 0 {
					fmt.Printf("\nExtraction failures (%d):\n", len(space.ExtractionFailures))
					for _, f := range space.ExtractionFailures {
						fmt.Printf("  %s  %s\n", f.At.Format("2006-01-02 15:04:05"), f.Reason)
					}
				}
			}
			return nil
		},
	}
	addSpaceFlag(cmd)
	cmd.Flags().IntP("limit", "n", 20, "number of entries")
	return cmd
}
