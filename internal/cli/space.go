package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/sketch/internal/config"
	"github.com/example/sketch/internal/wire"
)

// SpaceCmd returns the space command
func SpaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "space",
		Short: "Manage design spaces",
		Long:  "Create, list, switch, and delete design spaces",
	}
	cmd.AddCommand(spaceCreateCmd())
	cmd.AddCommand(spaceListCmd())
	cmd.AddCommand(spaceShowCmd())
	cmd.AddCommand(spaceUseCmd())
	cmd.AddCommand(spaceDeleteCmd())
	cmd.AddCommand(spaceProblemCmd())
	return cmd
}

func spaceCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new design space",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			id, err := wire.SpaceAdapter().Create(context.Background(), name)
			if err != nil {
				return err
			}
			return setActiveSpace(id)
		},
	}
}

func spaceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List design spaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SpaceAdapter().List(context.Background(), wire.Config().ActiveSpaceID)
		},
	}
}

func spaceShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [space-id]",
		Short: "Show a space's canvas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) > 0 {
				id = args[0]
			} else {
				var err error
				id, err = resolveSpace(cmd)
				if err != nil {
					return err
				}
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

func spaceUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use [space-id]",
		Short: "Make a space the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Validate before persisting
			if _, err := wire.SpaceService().GetSpace(context.Background(), args[0]); err != nil {
				return err
			}
			if err := setActiveSpace(args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Active space is now %s\n", args[0])
			return nil
		},
	}
}

func spaceDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [space-id]",
		Short: "Delete a space permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.SpaceAdapter().Delete(context.Background(), args[0]); err != nil {
				return err
			}
			if wire.Config().ActiveSpaceID == args[0] {
				return setActiveSpace("")
			}
			return nil
		},
	}
}

func spaceProblemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "problem [statement]",
		Short: "Set the problem statement",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			return wire.SpaceAdapter().SetProblem(context.Background(), id, strings.Join(args, " "))
		},
	}
	addSpaceFlag(cmd)
	return cmd
}

func setActiveSpace(id string) error {
	cfg := wire.Config()
	cfg.ActiveSpaceID = id
	return config.Save(cfg)
}
