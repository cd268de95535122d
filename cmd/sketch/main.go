package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/sketch/internal/cli"
	"github.com/example/sketch/internal/db"
	"github.com/example/sketch/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "sketch",
		Short:   "sketch - a design canvas for architecture conversations",
		Version: version.String(),
		Long: `sketch turns a free-form architecture conversation with a model into a
structured canvas: the options considered, the decisions made, the
constraints discovered, and the questions still open.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.SpaceCmd())
	rootCmd.AddCommand(cli.ChatCmd())
	rootCmd.AddCommand(cli.RetryCmd())
	rootCmd.AddCommand(cli.CanvasCmd())
	rootCmd.AddCommand(cli.OptionCmd())
	rootCmd.AddCommand(cli.DecisionCmd())
	rootCmd.AddCommand(cli.ConstraintCmd())
	rootCmd.AddCommand(cli.QuestionCmd())
	rootCmd.AddCommand(cli.RefCmd())
	rootCmd.AddCommand(cli.CrystallizeCmd())
	rootCmd.AddCommand(cli.ExportCmd())
	rootCmd.AddCommand(cli.ImportCmd())
	rootCmd.AddCommand(cli.LogCmd())

	err := rootCmd.Execute()
	db.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
