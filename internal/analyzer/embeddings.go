package analyzer

import (
	"context"
	"strings"

	"github.com/nao1215/rookeen/internal/embedding"
	"github.com/nao1215/rookeen/internal/log"
	"github.com/nao1215/rookeen/internal/model"
)

// BackendProvider returns a loaded embedding backend.
// *embedding.Pool implements it.
type BackendProvider interface {
	Get(ctx context.Context, name, model string) (embedding.Backend, error)
}

// Embeddings embeds the whole document text.
type Embeddings struct {
	provider BackendProvider
	backend  string
	model    string
	secrets  []string
}

// NewEmbeddings creates the embeddings analyzer. Secrets are masked in
// failure notes.
func NewEmbeddings(provider BackendProvider, backend, model string, secrets ...string) *Embeddings {
	return &Embeddings{provider: provider, backend: backend, model: model, secrets: secrets}
}

// Name implements Analyzer.
func (e *Embeddings) Name() string { return string(model.AnalysisEmbeddings) }

// Analyze implements Analyzer. Backend failures are reported in the
// result with supported=false instead of failing the analyzer.
func (e *Embeddings) Analyze(ctx context.Context, in *Input) (Output, error) {
	b, err := e.provider.Get(ctx, e.backend, e.model)
	if err != nil {
		return e.unsupported("embeddings backend unavailable: ", err), nil
	}

	vec, err := b.Embed(ctx, in.Text())
	if err != nil {
		return e.unsupported("embedding failed: ", err), nil
	}

	prov := b.Provenance()
	return Output{
		Results: map[string]any{
			"supported":  true,
			"backend":    prov.Backend,
			"model":      prov.Model,
			"dim":        prov.Dim,
			"normalized": prov.Normalized,
			"vector":     vec,
		},
		Confidence: 1.0,
	}, nil
}

func (e *Embeddings) unsupported(prefix string, err error) Output {
	return Output{
		Results:    map[string]any{"supported": false, "note": prefix + e.redact(err.Error())},
		Confidence: 0,
	}
}

func (e *Embeddings) redact(msg string) string {
	for _, s := range e.secrets {
		if s = strings.TrimSpace(s); s != "" {
			msg = strings.ReplaceAll(msg, s, log.MaskValue)
		}
	}
	return log.RedactSecrets(msg)
}
