package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nao1215/rookeen/internal/pipeline"
)

// NewAnalyzeFileCmd creates the analyze-file command.
func NewAnalyzeFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze-file <path>",
		Short: "Analyze a local text file",
		Long: `Analyze-file reads a UTF-8 text file and runs the selected analyzers on it.

Examples:
  # Analyze a file and write results/<name>_<timestamp>.json
  rookeen analyze-file article.txt

  # Write a table report next to the input
  rookeen analyze-file --format table -o article article.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeFileCmd,
	}

	addAnalysisFlags(cmd)

	return cmd
}

// runAnalyzeFileCmd executes the analyze-file command.
func runAnalyzeFileCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(context.Background())
	defer cancel()

	return a.analyze(ctx, cmd, pipeline.FromFile(args[0]))
}
