package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/sketch/internal/wire"
)

// OptionCmd returns the option command
func OptionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "option",
		Short: "Manage canvas options (design branches)",
	}
	cmd.AddCommand(optionAddCmd())
	cmd.AddCommand(optionUpdateCmd())
	cmd.AddCommand(optionStatusCmd())
	cmd.AddCommand(optionTodoCmd())
	cmd.AddCommand(optionFocusCmd())
	cmd.AddCommand(optionDeleteCmd())
	cmd.AddCommand(optionReorderCmd())
	return cmd
}

func optionAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			description, _ := cmd.Flags().GetString("description")
			id, err := wire.CanvasService().AddOption(context.Background(), spaceID, args[0], description)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Added option %s: %s\n", id, args[0])
			return nil
		},
	}
	addSpaceFlag(cmd)
	cmd.Flags().StringP("description", "d", "", "option description")
	return cmd
}

func optionUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [option-id]",
		Short: "Update an option's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")
			if title == "" && description == "" {
				return fmt.Errorf("must specify at least --title or --description")
			}
			if err := wire.CanvasService().UpdateOption(context.Background(), spaceID, args[0], title, description); err != nil {
				return err
			}
			fmt.Printf("✓ Option %s updated\n", args[0])
			return nil
		},
	}
	addSpaceFlag(cmd)
	cmd.Flags().StringP("title", "t", "", "new title")
	cmd.Flags().StringP("description", "d", "", "new description")
	return cmd
}

func optionStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [option-id] [status]",
		Short: "Change an option's status (considering, selected, rejected, finished)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			reason, _ := cmd.Flags().GetString("reason")
			if err := wire.CanvasService().SetOptionStatus(context.Background(), spaceID, args[0], args[1], reason); err != nil {
				return err
			}
			fmt.Printf("✓ Option %s is now %s\n", args[0], args[1])
			return nil
		},
	}
	addSpaceFlag(cmd)
	cmd.Flags().StringP("reason", "r", "", "why (recorded for rejected/finished)")
	return cmd
}

func optionTodoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo [option-id] [todo]",
		Short: "Replace an option's todo checklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			if err := wire.CanvasService().SetOptionTodo(context.Background(), spaceID, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("✓ Todo updated for %s\n", args[0])
			return nil
		},
	}
	addSpaceFlag(cmd)
	return cmd
}

func optionFocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus [option-id]",
		Short: "Make an option the active branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			if err := wire.CanvasService().SetActiveOption(context.Background(), spaceID, args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Focused on %s\n", args[0])
			return nil
		},
	}
	addSpaceFlag(cmd)
	return cmd
}

func optionDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [option-id]",
		Short: "Delete an option (its decisions survive, unlinked)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			if err := wire.CanvasService().DeleteOption(context.Background(), spaceID, args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Deleted option %s\n", args[0])
			return nil
		},
	}
	addSpaceFlag(cmd)
	return cmd
}

func optionReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder [option-id...]",
		Short: "Reorder options (list every ID in the new order)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			if err := wire.CanvasService().ReorderOptions(context.Background(), spaceID, args); err != nil {
				return err
			}
			fmt.Println("✓ Options reordered")
			return nil
		},
	}
	addSpaceFlag(cmd)
	return cmd
}
