package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nao1215/rookeen/internal/apperr"
)

// Global flag names.
const (
	flagErrorsJSON = "errors-json"
	flagConfig     = "config"
	flagVerbose    = "verbose"
	flagTraceID    = "trace-id"
)

// NewRootCmd creates the root command for rookeen.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rookeen",
		Short: "Linguistic analysis of web pages and text files",
		Long: `rookeen acquires a text from a URL, a file or standard input, detects its
language, runs a selectable set of analyzers (lexical statistics, keywords,
readability, part of speech, dependencies, named entities, sentiment,
embeddings) and writes a report in JSON, CSV, table or Markdown format.

Optional exports write Parquet, CoNLL-U, token JSON and binary document
snapshots next to the report.

Settings are read from flags, ROOKEEN_* environment variables and a
rookeen.toml file, in that order of precedence. Run 'rookeen init' to
create a commented configuration file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().Bool(flagErrorsJSON, false, "Print errors as a JSON envelope on stderr")
	cmd.PersistentFlags().String(flagConfig, "", "Configuration file path (default: rookeen.toml, .rookeen.toml or the XDG config directory)")
	cmd.PersistentFlags().BoolP(flagVerbose, "v", false, "Enable debug logging")
	cmd.PersistentFlags().String(flagTraceID, "", "Trace id attached to every log line (default: the run id)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperr.Wrap(apperr.Usage, err, "")
	})

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewAnalyzeFileCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// run executes rookeen with args and renders a failure on stderr.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	// Errors raised before a command starts running are bad invocations:
	// unknown commands, wrong argument counts, invalid flags.
	started := false
	cmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		started = true
	}

	err := cmd.Execute()
	if err == nil {
		return apperr.ExitOK
	}
	var appErr *apperr.Error
	if !started && !errors.As(err, &appErr) {
		err = apperr.Wrap(apperr.Usage, err, "")
	}
	return renderError(stderr, err, errorsJSON(cmd, args))
}

// errorsJSON reports whether machine-readable errors were requested.
// Arguments are checked as well because flag parsing may have failed.
func errorsJSON(cmd *cobra.Command, args []string) bool {
	if v, err := cmd.PersistentFlags().GetBool(flagErrorsJSON); err == nil && v {
		return true
	}
	return slices.Contains(args, "--"+flagErrorsJSON)
}

// renderError writes err to w and returns the exit code. Human-readable
// messages are colored when w is a terminal.
func renderError(w io.Writer, err error, jsonMode bool) int {
	if jsonMode {
		return apperr.Render(w, err, true)
	}
	var buf bytes.Buffer
	code := apperr.Render(&buf, err, false)

	red := color.New(color.FgRed)
	if isTerminal(w) {
		red.EnableColor()
	} else {
		red.DisableColor()
	}
	_, _ = red.Fprint(w, buf.String())
	return code
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool(flagVerbose)
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool(flagVerbose)
		if err != nil {
			return false
		}
	}
	return verbose
}

// getGlobalString retrieves a string persistent flag.
func getGlobalString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		v, _ = cmd.Root().PersistentFlags().GetString(name) //nolint:errcheck // missing flag reads as ""
	}
	return v
}
