package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/sketch/internal/ports/primary"
	"github.com/example/sketch/internal/wire"
)

// DecisionCmd returns the decision command
func DecisionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decision",
		Short: "Manage canvas decisions",
	}
	cmd.AddCommand(decisionAddCmd())
	cmd.AddCommand(decisionUpdateCmd())
	cmd.AddCommand(decisionLinkCmd())
	cmd.AddCommand(decisionUnlinkCmd())
	cmd.AddCommand(decisionDeleteCmd())
	cmd.AddCommand(decisionReorderCmd())
	return cmd
}

func decisionAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Record a decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			reasoning, _ := cmd.Flags().GetString("reasoning")
			tradeOffs, _ := cmd.Flags().GetString("trade-offs")
			optionID, _ := cmd.Flags().GetString("option")
			id, err := wire.CanvasService().AddDecision(context.Background(), spaceID, primary.AddDecisionRequest{
				Title:     args[0],
				Reasoning: reasoning,
				TradeOffs: tradeOffs,
				OptionID:  optionID,
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ Recorded decision %s: %s\n", id, args[0])
			return nil
		},
	}
	addSpaceFlag(cmd)
	cmd.Flags().StringP("reasoning", "r", "", "why this was decided")
	cmd.Flags().String("trade-offs", "", "what it costs")
	cmd.Flags().StringP("option", "o", "", "option this decision belongs to")
	return cmd
}

func decisionUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [decision-id]",
		Short: "Update a decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			title, _ := cmd.Flags().GetString("title")
			reasoning, _ := cmd.Flags().GetString("reasoning")
			tradeOffs, _ := cmd.Flags().GetString("trade-offs")
			if title == "" && reasoning == "" && tradeOffs == "" {
				return fmt.Errorf("must specify at least one of --title, --reasoning, --trade-offs")
			}
			if err := wire.CanvasService().UpdateDecision(context.Background(), spaceID, args[0], title, reasoning, tradeOffs); err != nil {
				return err
			}
			fmt.Printf("✓ Decision %s updated\n", args[0])
			return nil
		},
	}
	addSpaceFlag(cmd)
	cmd.Flags().StringP("title", "t", "", "new title")
	cmd.Flags().StringP("reasoning", "r", "", "additional reasoning")
	cmd.Flags().String("trade-offs", "", "additional trade-offs")
	return cmd
}

func decisionLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link [decision-id] [option-id]",
		Short: "Attach a decision to an option",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			if err := wire.CanvasService().LinkDecision(context.Background(), spaceID, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("✓ Linked %s to %s\n", args[0], args[1])
			return nil
		},
	}
	addSpaceFlag(cmd)
	return cmd
}

func decisionUnlinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlink [decision-id]",
		Short: "Detach a decision from its option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			if err := wire.CanvasService().UnlinkDecision(context.Background(), spaceID, args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Unlinked %s\n", args[0])
			return nil
		},
	}
	addSpaceFlag(cmd)
	return cmd
}

func decisionDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [decision-id]",
		Short: "Delete a decision (attachments survive, unlinked)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			if err := wire.CanvasService().DeleteDecision(context.Background(), spaceID, args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Deleted decision %s\n", args[0])
			return nil
		},
	}
	addSpaceFlag(cmd)
	return cmd
}

func decisionReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder [decision-id...]",
		Short: "Reorder decisions (list every ID in the new order)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			if err := wire.CanvasService().ReorderDecisions(context.Background(), spaceID, args); err != nil {
				return err
			}
			fmt.Println("✓ Decisions reordered")
			return nil
		},
	}
	addSpaceFlag(cmd)
	return cmd
}
