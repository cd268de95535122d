package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/sketch/internal/wire"
)

// ChatCmd returns the chat command
func ChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a message to the model",
		Long:  "Send one conversation turn; the reply streams in and its canvas updates are merged automatically",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			return wire.ChatAdapter().Send(context.Background(), id, strings.Join(args, " "))
		},
	}
	addSpaceFlag(cmd)
	return cmd
}

// RetryCmd returns the retry command
func RetryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retry",
		Short: "Retry the last failed model request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			return wire.ChatAdapter().Retry(context.Background(), id)
		},
	}
	addSpaceFlag(cmd)
	return cmd
}

// CrystallizeCmd returns the crystallize command
func CrystallizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crystallize",
		Short: "Turn the canvas into an artifact",
		Long:  "Ask the model to render the canvas as a design document or task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveSpace(cmd)
			if err != nil {
				return err
			}
			kind, _ := cmd.Flags().GetString("kind")
			return wire.ChatAdapter().Crystallize(context.Background(), id, kind)
		},
	}
	addSpaceFlag(cmd)
	cmd.Flags().StringP("kind", "k", "design_doc", "artifact kind: design_doc or task_list")
	return cmd
}
