package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/nao1215/rookeen/internal/analyzer"
	"github.com/nao1215/rookeen/internal/model"
	"github.com/nao1215/rookeen/internal/nlp"
	"github.com/nao1215/rookeen/internal/source"
)

// Acquirer produces the document of a request.
type Acquirer func(ctx context.Context) (source.Document, error)

// Request describes one analysis.
type Request struct {
	// Source names the input in logs: a URL, a path or "stdin".
	Source string

	// Acquire produces the document.
	Acquire Acquirer

	// Language forces the analysis language. Empty means detect.
	Language string

	// Selection picks the analyzers.
	Selection analyzer.Selection
}

// FromURL returns a request that fetches rawURL.
func FromURL(f *source.Fetcher, rawURL string) Request {
	return Request{
		Source: rawURL,
		Acquire: func(ctx context.Context) (source.Document, error) {
			return f.Fetch(ctx, rawURL)
		},
	}
}

// FromFile returns a request that reads a local file.
func FromFile(path string) Request {
	return Request{
		Source: path,
		Acquire: func(context.Context) (source.Document, error) {
			return source.ReadLocal(path)
		},
	}
}

// FromStream returns a request that reads r to the end.
func FromStream(r io.Reader, name string) Request {
	if name == "" {
		name = source.StdinName
	}
	return Request{
		Source: name,
		Acquire: func(context.Context) (source.Document, error) {
			return source.ReadStream(r, name)
		},
	}
}

// Run is the mutable state of one request as it moves through the
// pipeline.
type Run struct {
	Request Request
	State   State
	Started time.Time

	// Document is set by Acquiring and tagged with the language by
	// DetectingLanguage.
	Document source.Document

	// Confidence of the language decision; 1 for forced languages.
	Confidence float64

	// Model is set by LoadingModel.
	Model *nlp.Model

	// Parsed is the document as parsed by Model.
	Parsed *nlp.Doc

	// Selected are the analyzers to run, resolved before Acquiring.
	Selected []analyzer.Descriptor

	// Results are ordered like the analyzer selection.
	Results []model.AnalyzerResult

	Warnings []string

	// Report is set by Aggregating.
	Report *model.AnalysisReport

	// Err is set when the run failed.
	Err error
}
