package analyzer

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/nao1215/rookeen/internal/model"
	"github.com/nao1215/rookeen/internal/nlp"
)

// Names of the built-in analyzers.
const (
	NameLexicalStats = "lexical_stats"
	NamePOS          = "pos"
	NameNER          = "ner"
	NameReadability  = "readability"
	NameKeywords     = "keywords"
	NameDependency   = "dependency"
	NameEmbeddings   = "embeddings"
	NameSentiment    = "sentiment"
)

// ErrNoEmbeddingsBackend is reported when the embeddings analyzer has
// no backend provider.
var ErrNoEmbeddingsBackend = errors.New("no embeddings backend configured")

// Deps are the shared resources of the built-in analyzers.
type Deps struct {
	// Embeddings supplies embedding backends. Without it the embeddings
	// analyzer is unavailable.
	Embeddings BackendProvider

	// EmbeddingsBackend and EmbeddingsModel select the backend.
	EmbeddingsBackend string
	EmbeddingsModel   string

	// Secrets are masked in result notes.
	Secrets []string

	// Capabilities of the language engine. Nil means
	// nlp.EngineCapabilities().
	Capabilities []string

	Logger *slog.Logger
}

// requireCapability returns a probe that checks the engine capabilities.
func requireCapability(caps []string, c string) func() error {
	return func() error {
		if !slices.Contains(caps, c) {
			return fmt.Errorf("language engine has no %s", c)
		}
		return nil
	}
}

func stateless(a Analyzer) func() (Analyzer, error) {
	return func() (Analyzer, error) { return a, nil }
}

// RegisterBuiltins registers the built-in analyzers in their canonical
// order.
func RegisterBuiltins(reg *Registry, deps Deps) error {
	caps := deps.Capabilities
	if caps == nil {
		caps = nlp.EngineCapabilities()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	descriptors := []Descriptor{
		{Name: NameLexicalStats, Type: model.AnalysisLexicalStats, Kind: Core, New: stateless(LexicalStats{})},
		{Name: NamePOS, Type: model.AnalysisPOS, Kind: Core, New: stateless(POS{})},
		{Name: NameNER, Type: model.AnalysisNER, Kind: Core, New: stateless(NER{})},
		{Name: NameReadability, Type: model.AnalysisReadability, Kind: Core, New: stateless(Readability{})},
		{Name: NameKeywords, Type: model.AnalysisKeywords, Kind: Core, New: stateless(Keywords{})},
		{
			Name:      NameDependency,
			Type:      model.AnalysisPOS,
			Kind:      Core,
			Requires:  nlp.CapParser,
			Available: requireCapability(caps, nlp.CapParser),
			New:       stateless(Dependency{}),
		},
		{
			Name:     NameEmbeddings,
			Type:     model.AnalysisEmbeddings,
			Kind:     Optional,
			Requires: "an embeddings backend",
			Available: func() error {
				if deps.Embeddings == nil {
					return ErrNoEmbeddingsBackend
				}
				return nil
			},
			New: func() (Analyzer, error) {
				if deps.Embeddings == nil {
					return nil, ErrNoEmbeddingsBackend
				}
				return NewEmbeddings(deps.Embeddings, deps.EmbeddingsBackend, deps.EmbeddingsModel, deps.Secrets...), nil
			},
		},
		{
			Name:      NameSentiment,
			Type:      model.AnalysisSentiment,
			Kind:      Optional,
			Requires:  "a sentiment lexicon",
			Available: requireCapability(caps, nlp.CapSentiment),
			New:       stateless(Sentiment{}),
		},
	}

	for _, d := range descriptors {
		if err := reg.Register(d); err != nil {
			return err
		}
	}
	logger.Debug("built-in analyzers registered", "count", len(descriptors))
	return nil
}
