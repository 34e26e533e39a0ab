package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/rookeen/internal/analyzer"
	"github.com/nao1215/rookeen/internal/apperr"
	"github.com/nao1215/rookeen/internal/model"
	"github.com/nao1215/rookeen/internal/nlp"
)

var (
	// ErrNoInput is returned for a request without an acquirer.
	ErrNoInput = errors.New("no input to analyze")
	// ErrAnalyzerPanic is recorded when an analyzer panics.
	ErrAnalyzerPanic = errors.New("analyzer panicked")
)

// acquireStep reads the input document.
type acquireStep struct{}

func (acquireStep) State() State { return Acquiring }

func (acquireStep) Do(ctx context.Context, run *Run) error {
	if run.Request.Acquire == nil {
		return apperr.Wrap(apperr.Usage, ErrNoInput, "")
	}
	doc, err := run.Request.Acquire(ctx)
	if err != nil {
		return err
	}
	run.Document = doc
	return nil
}

// detectStep decides the document language.
type detectStep struct {
	logger *slog.Logger
}

func (detectStep) State() State { return DetectingLanguage }

func (s detectStep) Do(_ context.Context, run *Run) error {
	if forced := strings.TrimSpace(run.Request.Language); forced != "" {
		code, ok := nlp.ParseLanguage(forced)
		if !ok {
			return apperr.Wrap(apperr.Usage,
				fmt.Errorf("%w: %q", nlp.ErrUnsupportedLanguage, forced),
				fmt.Sprintf("unsupported language %q (supported: %s)", forced, strings.Join(nlp.SupportedLanguages(), ", ")))
		}
		run.Document = run.Document.WithLanguage(code)
		run.Confidence = 1.0
		return nil
	}

	code, confidence := nlp.Detect(run.Document.Text)
	if confidence < nlp.LowConfidence {
		msg := fmt.Sprintf("low language detection confidence (%.2f) for %q; results may be unreliable, consider --lang", confidence, code)
		run.Warnings = append(run.Warnings, msg)
		s.logger.Warn("low language detection confidence",
			"language", code,
			"confidence", confidence,
			"source", run.Request.Source,
		)
	}
	run.Document = run.Document.WithLanguage(code)
	run.Confidence = confidence
	return nil
}

// ModelLoader provides language models. *nlp.Store implements it.
type ModelLoader interface {
	Load(ctx context.Context, lang string) (*nlp.Model, error)
}

// loadModelStep loads the model and parses the document.
type loadModelStep struct {
	models ModelLoader
}

func (loadModelStep) State() State { return LoadingModel }

func (s loadModelStep) Do(ctx context.Context, run *Run) error {
	m, err := s.models.Load(ctx, run.Document.Language)
	if err != nil {
		return err
	}
	run.Model = m
	run.Parsed = m.Parse(run.Document.Text)
	return nil
}

// analyzeStep runs the selected analyzers concurrently.
type analyzeStep struct {
	concurrency int
	logger      *slog.Logger
}

func (analyzeStep) State() State { return RunningAnalyzers }

func (s analyzeStep) Do(ctx context.Context, run *Run) error {
	selected := run.Selected
	in := &analyzer.Input{Doc: run.Parsed, Model: run.Model, Lang: run.Document.Language}
	results := make([]model.AnalyzerResult, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, d := range selected {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.runOne(gctx, d, in)
			results[i] = res
			if err != nil && d.Mandatory {
				return fmt.Errorf("mandatory analyzer %s failed: %w", d.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	run.Results = results
	return nil
}

// runOne runs a single analyzer. A failure is returned and also
// recorded in the result.
func (s analyzeStep) runOne(ctx context.Context, d analyzer.Descriptor, in *analyzer.Input) (res model.AnalyzerResult, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAnalyzerPanic, r)
			res = model.Failed(d.Name, d.Type, time.Since(start).Seconds(), err)
			s.logger.Error("analyzer panicked", "analyzer", d.Name, "panic", r)
		}
	}()

	a, err := d.New()
	if err == nil {
		var out analyzer.Output
		out, err = a.Analyze(ctx, in)
		if err == nil {
			if out.Results == nil {
				out.Results = map[string]any{}
			}
			return model.AnalyzerResult{
				Name:           d.Name,
				AnalysisType:   d.Type,
				Results:        out.Results,
				ProcessingTime: time.Since(start).Seconds(),
				Confidence:     min(max(out.Confidence, 0), 1),
			}, nil
		}
	}

	s.logger.Warn("analyzer failed",
		"analyzer", d.Name,
		"mandatory", d.Mandatory,
		"error", err,
	)
	return model.Failed(d.Name, d.Type, time.Since(start).Seconds(), err), err
}

// aggregateStep assembles the report.
type aggregateStep struct {
	version string
	runID   string
	now     func() time.Time
}

func (aggregateStep) State() State { return Aggregating }

func (s aggregateStep) Do(_ context.Context, run *Run) error {
	lang := run.Document.Language
	modelName := run.Model.Name()

	results := make([]model.AnalyzerResult, len(run.Results))
	for i, r := range run.Results {
		r.Metadata.Language = lang
		r.Metadata.Model = modelName
		results[i] = r
	}

	text := run.Document.Text
	report := &model.AnalysisReport{
		Tool:    model.ToolName,
		Version: s.version,
		RunID:   s.runID,
		Source:  run.Document.Origin.Info(),
		Language: model.LanguageInfo{
			Code:       lang,
			Confidence: run.Confidence,
			Model:      modelName,
		},
		Content: model.ContentStats{
			Title:     run.Document.Title,
			CharCount: utf8.RuneCountInString(text),
			WordCount: len(strings.Fields(text)),
		},
		Analyzers: results,
		Timing:    model.NewTiming(run.Started, s.now()),
		Warnings:  run.Warnings,
	}
	if err := report.Validate(); err != nil {
		return apperr.Wrap(apperr.Generic, err, "")
	}
	run.Report = report
	return nil
}
