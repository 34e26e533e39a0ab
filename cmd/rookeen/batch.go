package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/nao1215/rookeen/internal/apperr"
	"github.com/nao1215/rookeen/internal/export"
	"github.com/nao1215/rookeen/internal/pipeline"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <url-file>",
		Short: "Analyze every URL listed in a file",
		Long: `Batch reads one URL per line from a file and analyzes them concurrently.
Blank lines and lines starting with '#' are skipped.

All requests share one rate limiter. A failing URL is logged and counted
but does not stop the others; the command exits with status 1 when any
URL failed. Each successful URL gets its own report under --output-dir.

Examples:
  # Analyze a list of URLs, two at a time
  rookeen batch urls.txt

  # Four workers, one request per second, CSV reports
  rookeen batch --concurrency 4 --rate-limit 1 --format csv urls.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runBatchCmd,
	}

	addAnalysisFlags(cmd)
	cmd.Flags().Int("concurrency", 0, "Number of URLs analyzed at once (default 2)")

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, args []string) error {
	if readOutputFlags(cmd.Flags()).stdout {
		return apperr.New(apperr.Usage, "--stdout cannot be used with batch")
	}

	f, err := os.Open(args[0]) //nolint:gosec // the URL list path is user input by design
	if err != nil {
		return apperr.Wrap(apperr.IO, err, "failed to open URL list "+args[0])
	}
	urls, err := pipeline.ReadURLs(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if a.out.output != "" {
		a.logger.Warn("--output is ignored in batch mode; use --output-dir", "output", a.out.output)
	}

	if err := a.checkSelection(); err != nil {
		return err
	}

	ctx, cancel := signalContext(context.Background())
	defer cancel()

	if err := a.preload(ctx); err != nil {
		return err
	}

	bp := pipeline.NewBatchProcessor(a.orchestrator, a.fetcher,
		pipeline.WithBatchLogger(a.logger),
		pipeline.WithBatchConcurrency(a.cfg.Concurrency),
		pipeline.WithTemplate(a.template()),
	)

	writer := newBatchWriter(a, cmd)
	var bar *progressbar.ProgressBar
	if isTerminal(cmd.ErrOrStderr()) {
		bar = newProgressBar(len(urls), cmd.ErrOrStderr().(*os.File)) //nolint:forcetypeassert // isTerminal checked the type
	}

	start := time.Now()
	results, err := bp.Process(ctx, urls, func(r pipeline.BatchResult) {
		writer.write(ctx, r)
		if bar != nil {
			_ = bar.Add(1) //nolint:errcheck // progress output is best effort
		}
	})
	if bar != nil {
		_ = bar.Finish() //nolint:errcheck // progress output is best effort
	}
	if err != nil {
		if ctx.Err() == nil {
			return err
		}
		return apperr.Wrap(apperr.Timeout, err, "batch interrupted")
	}

	failed := pipeline.CountFailures(results) + writer.failures()
	fmt.Fprintf(cmd.OutOrStdout(), "Analyzed %s URL(s) in %s: %s succeeded, %s failed\n",
		humanize.Comma(int64(len(urls))),
		time.Since(start).Round(time.Millisecond),
		humanize.Comma(int64(len(urls)-failed)),
		humanize.Comma(int64(failed)),
	)
	if failed > 0 {
		return apperr.New(apperr.Generic, "%d of %d URL(s) failed", failed, len(urls))
	}
	return nil
}

// newProgressBar creates the batch progress bar on an interactive stderr.
func newProgressBar(total int, w *os.File) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("analyzing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

// batchWriter writes the outputs of finished batch results. It is
// called concurrently from the batch workers.
type batchWriter struct {
	app *app
	cmd *cobra.Command

	mu     sync.Mutex
	used   map[string]int
	failed int
}

func newBatchWriter(a *app, cmd *cobra.Command) *batchWriter {
	return &batchWriter{app: a, cmd: cmd, used: make(map[string]int)}
}

// write stores the report and exports of a successful result. Write
// failures count as failed URLs.
func (w *batchWriter) write(ctx context.Context, r pipeline.BatchResult) {
	if r.Err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	base := w.uniqueBase(export.BasePath("", w.app.cfg.OutputDir, r.Report.Source, time.Now()))
	out := &pipeline.Outcome{Report: r.Report, Document: r.Document, Parsed: r.Parsed}
	paths, err := w.app.exporter.WriteAll(ctx, base, out)
	for _, p := range paths {
		fmt.Fprintln(w.cmd.OutOrStdout(), p)
	}
	if err != nil {
		w.failed++
		w.app.logger.Error("failed to write outputs", "url", r.URL, "error", err)
	}
}

// uniqueBase appends a counter when two URLs of the same host finish
// within the same second. The caller holds mu.
func (w *batchWriter) uniqueBase(base string) string {
	n := w.used[base]
	w.used[base] = n + 1
	if n == 0 {
		return base
	}
	return base + "_" + strconv.Itoa(n+1)
}

func (w *batchWriter) failures() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failed
}
