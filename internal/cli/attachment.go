package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/sketch/internal/models"
	"github.com/example/sketch/internal/ports/primary"
	"github.com/example/sketch/internal/wire"
)

// ConstraintCmd returns the constraint command
func ConstraintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "constraint",
		Short: "Manage canvas constraints",
	}

	add := &cobra.Command{
		Use:   "add [description]",
		Short: "Record a constraint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			source, _ := cmd.Flags().GetString("source")
			id, err := wire.CanvasService().AddConstraint(context.Background(), spaceID, args[0], source)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Added constraint %s\n", id)
			return nil
		},
	}
	addSpaceFlag(add)
	add.Flags().String("source", "conversation", "where it came from: conversation, code, external")
	cmd.AddCommand(add)

	cmd.AddCommand(attachmentDeleteCmd("constraint", func(ctx context.Context, spaceID, id string) error {
		return wire.CanvasService().DeleteConstraint(ctx, spaceID, id)
	}))
	cmd.AddCommand(attachmentLinkCmd(models.ElementConstraint))
	cmd.AddCommand(attachmentUnlinkCmd(models.ElementConstraint))
	return cmd
}

// QuestionCmd returns the question command
func QuestionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "question",
		Short: "Manage open questions",
	}

	add := &cobra.Command{
		Use:   "add [question]",
		Short: "Record an open question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			qContext, _ := cmd.Flags().GetString("context")
			id, err := wire.CanvasService().AddQuestion(context.Background(), spaceID, args[0], qContext)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Added question %s\n", id)
			return nil
		},
	}
	addSpaceFlag(add)
	add.Flags().StringP("context", "c", "", "why this matters")
	cmd.AddCommand(add)

	resolve := &cobra.Command{
		Use:   "resolve [question-id]",
		Short: "Mark a question resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			if err := wire.CanvasService().ResolveQuestion(context.Background(), spaceID, args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Resolved %s\n", args[0])
			return nil
		},
	}
	addSpaceFlag(resolve)
	cmd.AddCommand(resolve)

	reopen := &cobra.Command{
		Use:   "reopen [question-id]",
		Short: "Reopen a resolved question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			if err := wire.CanvasService().ReopenQuestion(context.Background(), spaceID, args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Reopened %s\n", args[0])
			return nil
		},
	}
	addSpaceFlag(reopen)
	cmd.AddCommand(reopen)

	cmd.AddCommand(attachmentDeleteCmd("question", func(ctx context.Context, spaceID, id string) error {
		return wire.CanvasService().DeleteQuestion(ctx, spaceID, id)
	}))
	cmd.AddCommand(attachmentLinkCmd(models.ElementOpenQuestion))
	cmd.AddCommand(attachmentUnlinkCmd(models.ElementOpenQuestion))
	return cmd
}

// RefCmd returns the ref command
func RefCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ref",
		Short: "Manage references (code, links, pastes)",
	}

	add := &cobra.Command{
		Use:   "add [content]",
		Short: "Attach reference material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			refType, _ := cmd.Flags().GetString("type")
			label, _ := cmd.Flags().GetString("label")
			id, err := wire.CanvasService().AddReference(context.Background(), spaceID, primary.AddReferenceRequest{
				Type:    refType,
				Label:   label,
				Content: args[0],
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ Added reference %s\n", id)
			return nil
		},
	}
	addSpaceFlag(add)
	add.Flags().StringP("type", "t", "paste", "reference type: code_snippet, url, paste")
	add.Flags().StringP("label", "l", "", "short label")
	cmd.AddCommand(add)

	cmd.AddCommand(attachmentDeleteCmd("reference", func(ctx context.Context, spaceID, id string) error {
		return wire.CanvasService().DeleteReference(ctx, spaceID, id)
	}))
	cmd.AddCommand(attachmentLinkCmd(models.ElementReference))
	cmd.AddCommand(attachmentUnlinkCmd(models.ElementReference))
	return cmd
}

func attachmentDeleteCmd(noun string, del func(ctx context.Context, spaceID, id string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: fmt.Sprintf("Delete a %s", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			if err := del(context.Background(), spaceID, args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Deleted %s %s\n", noun, args[0])
			return nil
		},
	}
	addSpaceFlag(cmd)
	return cmd
}

func attachmentLinkCmd(kind string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link [id] [decision-id]",
		Short: "Attach to a decision",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			if err := wire.CanvasService().LinkAttachment(context.Background(), spaceID, kind, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("✓ Linked %s to %s\n", args[0], args[1])
			return nil
		},
	}
	addSpaceFlag(cmd)
	return cmd
}

func attachmentUnlinkCmd(kind string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlink [id]",
		Short: "Detach from its decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spaceID, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			if err := wire.CanvasService().UnlinkAttachment(context.Background(), spaceID, kind, args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ Unlinked %s\n", args[0])
			return nil
		},
	}
	addSpaceFlag(cmd)
	return cmd
}
