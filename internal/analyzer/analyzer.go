package analyzer

import (
	"context"

	"github.com/nao1215/rookeen/internal/model"
	"github.com/nao1215/rookeen/internal/nlp"
)

// Kind tells whether an analyzer runs by default.
type Kind int

const (
	// Core analyzers run unless disabled.
	Core Kind = iota
	// Optional analyzers run only when enabled explicitly.
	Optional
)

// String returns "core" or "optional".
func (k Kind) String() string {
	if k == Optional {
		return "optional"
	}
	return "core"
}

// Input is the data an analyzer works on.
type Input struct {
	// Doc is the parsed document.
	Doc *nlp.Doc

	// Model is the language model that parsed Doc.
	Model *nlp.Model

	// Lang is the report language code.
	Lang string
}

// Text returns the document text.
func (in *Input) Text() string {
	if in.Doc == nil {
		return ""
	}
	return in.Doc.Text
}

// Output is what an analyzer produces. The orchestrator adds name,
// timing and metadata.
type Output struct {
	Results    map[string]any
	Confidence float64
}

// Analyzer computes one kind of analysis over a document.
type Analyzer interface {
	// Name returns the registry name of the analyzer.
	Name() string

	// Analyze runs the analysis. An error marks the result as failed;
	// it does not stop other analyzers unless the analyzer is mandatory.
	Analyze(ctx context.Context, in *Input) (Output, error)
}

// Descriptor describes a registered analyzer.
type Descriptor struct {
	// Name is the unique registry name, e.g. "lexical_stats".
	Name string

	// Type is reported as analysis_type.
	Type model.AnalysisType

	Kind Kind

	// Requires names the capability or extra the analyzer depends on.
	// It is shown when the analyzer is unavailable.
	Requires string

	// Mandatory analyzers abort the request when they fail.
	Mandatory bool

	// Available probes the runtime dependency. Nil means always available.
	Available func() error

	// New creates the analyzer.
	New func() (Analyzer, error)
}

// probe runs the availability probe.
func (d Descriptor) probe() error {
	if d.Available == nil {
		return nil
	}
	return d.Available()
}

// Func adapts a function to the Analyzer interface.
type Func struct {
	ID string
	Fn func(ctx context.Context, in *Input) (Output, error)
}

// Name implements Analyzer.
func (f Func) Name() string { return f.ID }

// Analyze implements Analyzer.
func (f Func) Analyze(ctx context.Context, in *Input) (Output, error) {
	return f.Fn(ctx, in)
}
