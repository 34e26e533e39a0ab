package model

// AnalysisType classifies the output of an analyzer.
type AnalysisType string

// Analysis types of the built-in analyzers.
const (
	AnalysisLexicalStats AnalysisType = "lexical_stats"
	AnalysisPOS          AnalysisType = "pos"
	AnalysisNER          AnalysisType = "ner"
	AnalysisReadability  AnalysisType = "readability"
	AnalysisKeywords     AnalysisType = "keywords"
	AnalysisEmbeddings   AnalysisType = "embeddings"
	AnalysisSentiment    AnalysisType = "sentiment"
)

// String returns the type name.
func (t AnalysisType) String() string {
	return string(t)
}

// AnalyzerResult is the output of one analyzer for one document.
type AnalyzerResult struct {
	// Name is the registered analyzer name.
	Name string `json:"name"`

	// AnalysisType classifies the results. Several analyzers may share
	// a type; dependency parsing reports as "pos".
	AnalysisType AnalysisType `json:"analysis_type"`

	// Results holds analyzer-specific keys. Values are JSON-compatible.
	Results map[string]any `json:"results"`

	// ProcessingTime is the analyzer run time in seconds.
	ProcessingTime float64 `json:"processing_time"`

	// Confidence is in [0, 1]. Failed analyzers report 0.
	Confidence float64 `json:"confidence"`

	Metadata ResultMetadata `json:"metadata"`
}

// ResultMetadata is attached to every result by the pipeline.
type ResultMetadata struct {
	// Language is the language code of the document.
	Language string `json:"language"`

	// Model is the language model that parsed the document.
	Model string `json:"model"`

	// Error describes why the analyzer failed, if it did.
	Error string `json:"error,omitempty"`
}

// Supported reports the "supported" result key. Results without the
// key count as supported.
func (r AnalyzerResult) Supported() bool {
	v, ok := r.Results["supported"]
	if !ok {
		return true
	}
	b, isBool := v.(bool)
	return !isBool || b
}

// Failed returns the result recorded for an analyzer that returned an
// error: confidence 0, supported false and the error message.
func Failed(name string, typ AnalysisType, elapsed float64, err error) AnalyzerResult {
	return AnalyzerResult{
		Name:           name,
		AnalysisType:   typ,
		Results:        map[string]any{"supported": false, "note": err.Error()},
		ProcessingTime: elapsed,
		Confidence:     0,
		Metadata:       ResultMetadata{Error: err.Error()},
	}
}
