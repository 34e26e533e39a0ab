package pipeline

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/rookeen/internal/apperr"
	"github.com/nao1215/rookeen/internal/model"
	"github.com/nao1215/rookeen/internal/nlp"
	"github.com/nao1215/rookeen/internal/source"
)

// BatchResult is the outcome for one URL of a batch.
type BatchResult struct {
	// Index is the position of the URL in the input.
	Index int
	URL   string

	// Report and Parsed are nil when Err is set.
	Report   *model.AnalysisReport
	Document source.Document
	Parsed   *nlp.Doc
	Err      error
}

// BatchProcessor analyzes many URLs concurrently. All requests share
// one Fetcher and therefore one rate limiter.
type BatchProcessor struct {
	orchestrator *Orchestrator
	fetcher      *source.Fetcher
	template     Request
	concurrency  int
	logger       *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets the logger for batch-level messages.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithBatchConcurrency sets how many URLs are analyzed at once.
func WithBatchConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithTemplate sets the language and analyzer selection applied to
// every URL.
func WithTemplate(req Request) BatchOption {
	return func(b *BatchProcessor) {
		b.template = req
	}
}

// NewBatchProcessor creates a BatchProcessor.
func NewBatchProcessor(orchestrator *Orchestrator, fetcher *source.Fetcher, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		orchestrator: orchestrator,
		fetcher:      fetcher,
		concurrency:  DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// Process analyzes urls and returns one result per URL in input order.
// A failing URL never stops the others. callback, when not nil, is
// called as each URL finishes, from the goroutine that processed it,
// so it must be safe for concurrent use. The error is set when the
// template's analyzer selection is invalid, in which case nothing is
// fetched, or when ctx ends the batch early.
func (bp *BatchProcessor) Process(ctx context.Context, urls []string, callback func(BatchResult)) ([]BatchResult, error) {
	if err := bp.orchestrator.CheckSelection(bp.template.Selection); err != nil {
		return nil, err
	}

	bp.logger.Info("starting batch",
		"urls", len(urls),
		"concurrency", bp.concurrency,
		"rate_limit", bp.fetcher.Limiter().Rate(),
	)
	start := time.Now()

	results := make([]BatchResult, len(urls))
	for i, u := range urls {
		results[i] = BatchResult{Index: i, URL: u}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, rawURL := range urls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = apperr.Wrap(apperr.Timeout, err, "batch cancelled")
				return err
			}

			req := FromURL(bp.fetcher, rawURL)
			req.Language = bp.template.Language
			req.Selection = bp.template.Selection

			out, err := bp.orchestrator.Analyze(gctx, req)
			if err == nil {
				results[i].Report = out.Report
				results[i].Document = out.Document
				results[i].Parsed = out.Parsed
			}
			results[i].Err = err
			if err != nil {
				bp.logger.Warn("url failed",
					"url", rawURL,
					"kind", apperr.KindOf(err).String(),
					"error", err,
				)
			}
			if callback != nil {
				callback(results[i])
			}
			return nil
		})
	}
	err := g.Wait()

	bp.logger.Info("batch complete",
		"urls", len(urls),
		"failed", CountFailures(results),
		"elapsed", time.Since(start),
	)
	return results, err
}

// CountFailures returns the number of failed results.
func CountFailures(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// ReadURLs reads one URL per line. Blank lines and lines starting with
// '#' are skipped. An input without URLs is a usage error.
func ReadURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.Wrap(apperr.IO, err, "failed to read URL list")
	}
	if len(urls) == 0 {
		return nil, apperr.New(apperr.Usage, "no URLs found in input")
	}
	return urls, nil
}
