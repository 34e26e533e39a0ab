package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nao1215/rookeen/internal/apperr"
	"github.com/nao1215/rookeen/internal/pipeline"
	"github.com/nao1215/rookeen/internal/source"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [url]",
		Short: "Analyze a web page or standard input",
		Long: `Analyze fetches a web page, extracts its main text and runs the selected
analyzers on it. With --stdin the text is read from standard input instead.

Fetching honours robots.txt (see --robots), the rate limit and retries
transient failures with backoff.

Examples:
  # Analyze a page and write results/<host>_<timestamp>.json
  rookeen analyze https://example.com/article

  # Force the language and print a Markdown report
  rookeen analyze --lang en --format md --stdout https://example.com/

  # Analyze text from a pipe
  echo "The quick brown fox jumps over the lazy dog." | rookeen analyze --stdin --stdout

  # Run only some analyzers and export CoNLL-U
  rookeen analyze --enable pos --enable dependency --export-conllu https://example.com/`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyzeCmd,
	}

	addAnalysisFlags(cmd)
	cmd.Flags().Bool("stdin", false, "Read the text from standard input")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	useStdin, err := cmd.Flags().GetBool("stdin")
	if err != nil {
		return err
	}
	switch {
	case useStdin && len(args) > 0:
		return apperr.New(apperr.Usage, "cannot combine a URL with --stdin")
	case !useStdin && len(args) == 0:
		return apperr.New(apperr.Usage, "missing input: pass a URL or use --stdin")
	}
	if !useStdin {
		if _, err := source.ValidateURL(args[0]); err != nil {
			return err
		}
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(context.Background())
	defer cancel()

	req := pipeline.FromStream(cmd.InOrStdin(), source.StdinName)
	if !useStdin {
		req = pipeline.FromURL(a.fetcher, args[0])
	}
	return a.analyze(ctx, cmd, req)
}
