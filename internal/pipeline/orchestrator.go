package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/rookeen/internal/analyzer"
	"github.com/nao1215/rookeen/internal/model"
	"github.com/nao1215/rookeen/internal/nlp"
	"github.com/nao1215/rookeen/internal/source"
)

// DefaultConcurrency is the number of analyzers run at once.
const DefaultConcurrency = 2

// Orchestrator runs requests through the analysis pipeline. It is safe
// for concurrent use; every request gets its own Run.
type Orchestrator struct {
	registry    *analyzer.Registry
	models      ModelLoader
	concurrency int
	timeout     time.Duration
	version     string
	runID       string
	logger      *slog.Logger
	observer    Observer
	now         func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithObserver registers a transition observer.
func WithObserver(observer Observer) Option {
	return func(o *Orchestrator) {
		o.observer = observer
	}
}

// WithConcurrency bounds how many analyzers run at once.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithTimeout sets the budget of a whole request. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.timeout = d
	}
}

// WithVersion sets the tool version written to reports.
func WithVersion(version string) Option {
	return func(o *Orchestrator) {
		o.version = version
	}
}

// WithRunID sets the run id written to reports.
func WithRunID(id string) Option {
	return func(o *Orchestrator) {
		o.runID = id
	}
}

// New returns an orchestrator that selects analyzers from registry and
// loads models from models.
func New(registry *analyzer.Registry, models ModelLoader, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		registry:    registry,
		models:      models,
		concurrency: DefaultConcurrency,
		version:     "dev",
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Outcome is a finished request: the report plus the document it was
// built from, for exports that need tokens.
type Outcome struct {
	Report   *model.AnalysisReport
	Document source.Document
	Parsed   *nlp.Doc
}

// Run analyzes one request. On failure the error carries the apperr
// kind of the failing state; an exceeded timeout is a Timeout.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*model.AnalysisReport, error) {
	out, err := o.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	return out.Report, nil
}

// Analyze is Run that also returns the parsed document.
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (*Outcome, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	p := o.pipeline()
	run := &Run{Request: req, State: Pending, Started: o.now()}

	// The selection is a configuration decision: a bad name must fail
	// the request before any input is fetched or any model is loaded.
	selected, err := o.registry.ResolveSelection(req.Selection)
	if err != nil {
		return nil, p.fail(ctx, run, err)
	}
	run.Selected = selected

	if err := p.Execute(ctx, run); err != nil {
		return nil, err
	}

	o.logger.Info("analysis complete",
		"source", req.Source,
		"language", run.Report.Language.Code,
		"analyzers", len(run.Report.Analyzers),
		"failed", len(run.Report.FailedAnalyzers()),
		"seconds", run.Report.Timing.TotalSeconds,
	)
	return &Outcome{Report: run.Report, Document: run.Document, Parsed: run.Parsed}, nil
}

// CheckSelection resolves sel without running anything, so callers can
// reject an invalid analyzer selection before starting work.
func (o *Orchestrator) CheckSelection(sel analyzer.Selection) error {
	_, err := o.registry.ResolveSelection(sel)
	return err
}

// pipeline builds the step sequence of one request.
func (o *Orchestrator) pipeline() *Pipeline {
	p := NewPipeline(o.logger, o.observer)
	p.now = o.now
	p.AddSteps(
		acquireStep{},
		detectStep{logger: o.logger},
		loadModelStep{models: o.models},
		analyzeStep{concurrency: o.concurrency, logger: o.logger},
		aggregateStep{version: o.version, runID: o.runID, now: o.now},
	)
	return p
}
