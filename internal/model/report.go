package model

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ToolName is the value of AnalysisReport.Tool.
const ToolName = "rookeen"

// Source types.
const (
	SourceURL   = "url"
	SourceFile  = "file"
	SourceStdin = "stdin"
)

var (
	// ErrDuplicateResult is returned when two results share a name.
	ErrDuplicateResult = errors.New("duplicate analyzer result")
	// ErrLanguageMismatch is returned when a result carries another
	// language than the report.
	ErrLanguageMismatch = errors.New("analyzer language does not match report language")
	// ErrInvalidTiming is returned when total_seconds disagrees with the
	// start and end times.
	ErrInvalidTiming = errors.New("invalid report timing")
)

// AnalysisReport is the aggregate result of analyzing one document.
type AnalysisReport struct {
	Tool    string `json:"tool"`
	Version string `json:"version"`

	// RunID identifies the invocation that produced the report.
	RunID string `json:"run_id,omitempty"`

	Source    SourceInfo       `json:"source"`
	Language  LanguageInfo     `json:"language"`
	Content   ContentStats     `json:"content"`
	Analyzers []AnalyzerResult `json:"analyzers"`
	Timing    Timing           `json:"timing"`

	// Warnings are non-fatal problems such as low detection confidence.
	Warnings []string `json:"warnings,omitempty"`
}

// SourceInfo describes where the text came from.
type SourceInfo struct {
	// Type is one of SourceURL, SourceFile or SourceStdin.
	Type  string `json:"type"`
	Value string `json:"value"`

	// FetchedAt is a Unix timestamp in seconds.
	FetchedAt float64 `json:"fetched_at"`

	// Domain is the host of URL sources and empty otherwise.
	Domain string `json:"domain"`
}

// LanguageInfo is the language the document was analyzed as.
type LanguageInfo struct {
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
	Model      string  `json:"model"`
}

// ContentStats summarizes the analyzed text.
type ContentStats struct {
	Title     string `json:"title"`
	CharCount int    `json:"char_count"`
	WordCount int    `json:"word_count"`
}

// Timing records when analysis started and ended as Unix seconds.
type Timing struct {
	StartedAt    float64 `json:"started_at"`
	EndedAt      float64 `json:"ended_at"`
	TotalSeconds float64 `json:"total_seconds"`
}

// NewTiming builds a Timing whose TotalSeconds is computed from the same
// two float values that are stored.
func NewTiming(started, ended time.Time) Timing {
	s := UnixSeconds(started)
	e := UnixSeconds(ended)
	return Timing{StartedAt: s, EndedAt: e, TotalSeconds: e - s}
}

// UnixSeconds converts t to fractional Unix seconds.
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// NewSourceInfo builds the source block. The domain is derived from URL
// sources.
func NewSourceInfo(typ, value string, fetchedAt time.Time) SourceInfo {
	info := SourceInfo{Type: typ, Value: value, FetchedAt: UnixSeconds(fetchedAt)}
	if typ == SourceURL {
		if u, err := url.Parse(value); err == nil {
			info.Domain = u.Host
		}
	}
	return info
}

// Analyzer returns the result with the given name.
func (r *AnalysisReport) Analyzer(name string) (AnalyzerResult, bool) {
	for _, a := range r.Analyzers {
		if a.Name == name {
			return a, true
		}
	}
	return AnalyzerResult{}, false
}

// AnalyzerNames returns the result names in report order.
func (r *AnalysisReport) AnalyzerNames() []string {
	names := make([]string, len(r.Analyzers))
	for i, a := range r.Analyzers {
		names[i] = a.Name
	}
	return names
}

// FailedAnalyzers returns the names of results that carry an error.
func (r *AnalysisReport) FailedAnalyzers() []string {
	var names []string
	for _, a := range r.Analyzers {
		if a.Metadata.Error != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

// AddWarning appends a warning.
func (r *AnalysisReport) AddWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks the report invariants: unique analyzer names, result
// languages matching the report language and consistent timing.
func (r *AnalysisReport) Validate() error {
	seen := make(map[string]struct{}, len(r.Analyzers))
	for _, a := range r.Analyzers {
		if _, dup := seen[a.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateResult, a.Name)
		}
		seen[a.Name] = struct{}{}
		if a.Metadata.Language != r.Language.Code {
			return fmt.Errorf("%w: %s has %q, report has %q", ErrLanguageMismatch, a.Name, a.Metadata.Language, r.Language.Code)
		}
	}
	if r.Timing.TotalSeconds != r.Timing.EndedAt-r.Timing.StartedAt {
		return fmt.Errorf("%w: total %v != %v - %v", ErrInvalidTiming, r.Timing.TotalSeconds, r.Timing.EndedAt, r.Timing.StartedAt)
	}
	if r.Timing.TotalSeconds < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidTiming)
	}
	return nil
}
