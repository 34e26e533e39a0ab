package embedding

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"
)

var (
	// ErrUnknownBackend is returned for names not in the registry.
	ErrUnknownBackend = errors.New("unknown embeddings backend")
	// ErrMissingAPIKey is returned when a remote backend has no credentials.
	ErrMissingAPIKey = errors.New("embeddings API key is not set")
	// ErrDuplicateBackend is returned when a name or alias is already registered.
	ErrDuplicateBackend = errors.New("embeddings backend already registered")
	// ErrEmptyResponse is returned when a remote backend returns no vector.
	ErrEmptyResponse = errors.New("no embedding returned")
	// ErrDimensionMismatch is returned when a vector has an unexpected length.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrZeroVector is returned when a backend produces a vector that
	// cannot be normalized.
	ErrZeroVector = errors.New("embedding is a zero vector")
)

// Canonical backend names.
const (
	SmallLocal = "small-local"
	LargeLocal = "large-local"
	RemoteAPI  = "remote-api"
)

// Backend produces embeddings for text.
type Backend interface {
	// Load initializes the backend. It is idempotent; a failed load is
	// remembered and returned by later calls.
	Load(ctx context.Context) error

	// Embed returns the L2-normalized embedding of text. It loads the
	// backend if needed.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Provenance describes the backend and model.
	Provenance() Provenance
}

// Provenance identifies where an embedding came from.
type Provenance struct {
	Backend    string `json:"backend"`
	Model      string `json:"model"`
	Dim        int    `json:"dim"`
	Normalized bool   `json:"normalized"`
}

// Options configure backend construction.
type Options struct {
	// Model overrides the backend's default model.
	Model string

	// APIKey authenticates remote backends.
	APIKey string

	// BaseURL is the root of an OpenAI-compatible API.
	BaseURL string

	// HTTPClient is used by remote backends. A client with Timeout is
	// created when nil.
	HTTPClient *http.Client

	// Timeout bounds a single remote request.
	Timeout time.Duration

	// MaxRetries is the number of retries after a failed remote request.
	MaxRetries int

	Logger *slog.Logger
}

// Descriptor describes a backend.
type Descriptor struct {
	// Name is the canonical backend name.
	Name string

	// Aliases are alternative names accepted by Lookup.
	Aliases []string

	// DefaultModel is used when Options.Model is empty.
	DefaultModel string

	// Dim returns the vector dimension for a model.
	Dim func(model string) int

	// RequiresNetwork is set for backends that call remote services.
	RequiresNetwork bool

	// Factory creates an unloaded backend.
	Factory func(opts Options) (Backend, error)
}

// Normalize scales v to unit L2 norm in place and returns it. A zero
// vector is returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of two vectors of equal length.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	na, nb := Norm(a), Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (na * nb)
}
