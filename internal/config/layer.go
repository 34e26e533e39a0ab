package config

import (
	"github.com/nao1215/rookeen/internal/apperr"
)

// Layer is a partial configuration. A nil field means the layer does
// not supply that key and the next layer is consulted.
type Layer struct {
	// Name identifies the layer in logs ("cli", "env", "file", "default").
	Name string

	ModelsAutoDownload *bool
	LanguagesPreload   *[]string
	Language           *string
	DefaultLanguage    *string
	Format             *string
	OutputDir          *string
	Concurrency        *int
	TimeoutSeconds     *float64
	RateLimit          *float64
	Robots             *string
	MaxRetries         *int
	LogLevel           *string
	Enable             *[]string
	Disable            *[]string
	EnableEmbeddings   *bool
	EnableSentiment    *bool
	EmbeddingsBackend  *string
	EmbeddingsModel    *string
	EmbeddingsPreload  *bool
	EmbeddingsBaseURL  *string
	OpenAIAPIKey       *string
	ConllUEngine       *string
	ModelDir           *string
	Proxy              *string
	UserAgent          *string
	Sites              map[string]SiteConfig
}

// Ptr returns a pointer to v. It keeps layer literals short.
func Ptr[T any](v T) *T {
	return &v
}

// DefaultLayer returns the compiled-in defaults. Every key is set.
func DefaultLayer() Layer {
	return Layer{
		Name:               "default",
		ModelsAutoDownload: Ptr(true),
		LanguagesPreload:   Ptr([]string{}),
		Language:           Ptr(""),
		DefaultLanguage:    Ptr(""),
		Format:             Ptr(DefaultFormat),
		OutputDir:          Ptr(DefaultOutputDir),
		Concurrency:        Ptr(DefaultConcurrency),
		TimeoutSeconds:     Ptr(DefaultTimeoutSeconds),
		RateLimit:          Ptr(DefaultRateLimit),
		Robots:             Ptr(RobotsRespect),
		MaxRetries:         Ptr(DefaultMaxRetries),
		LogLevel:           Ptr(DefaultLogLevel),
		Enable:             Ptr([]string{}),
		Disable:            Ptr([]string{}),
		EnableEmbeddings:   Ptr(false),
		EnableSentiment:    Ptr(false),
		EmbeddingsBackend:  Ptr(DefaultEmbeddingsBackend),
		EmbeddingsModel:    Ptr(""),
		EmbeddingsPreload:  Ptr(false),
		EmbeddingsBaseURL:  Ptr(DefaultEmbeddingsBaseURL),
		OpenAIAPIKey:       Ptr(""),
		ConllUEngine:       Ptr(ConllUAuto),
		ModelDir:           Ptr(DefaultModelDir()),
		Proxy:              Ptr(""),
		UserAgent:          Ptr(DefaultUserAgent),
		Sites:              map[string]SiteConfig{},
	}
}

// first returns the value of the first layer that supplies the key,
// or the zero value when none does.
func first[T any](layers []Layer, get func(*Layer) *T) T {
	for i := range layers {
		if v := get(&layers[i]); v != nil {
			return *v
		}
	}
	var zero T
	return zero
}

// Resolve merges layers in precedence order (highest first) and
// validates the result. Callers normally pass CLI, env, file and
// DefaultLayer in that order. Validation failures are ConfigErrors.
func Resolve(layers ...Layer) (Config, error) {
	cfg := Config{
		ModelsAutoDownload: first(layers, func(l *Layer) *bool { return l.ModelsAutoDownload }),
		LanguagesPreload:   first(layers, func(l *Layer) *[]string { return l.LanguagesPreload }),
		Language:           first(layers, func(l *Layer) *string { return l.Language }),
		DefaultLanguage:    first(layers, func(l *Layer) *string { return l.DefaultLanguage }),
		Format:             first(layers, func(l *Layer) *string { return l.Format }),
		OutputDir:          first(layers, func(l *Layer) *string { return l.OutputDir }),
		Concurrency:        first(layers, func(l *Layer) *int { return l.Concurrency }),
		TimeoutSeconds:     first(layers, func(l *Layer) *float64 { return l.TimeoutSeconds }),
		RateLimit:          first(layers, func(l *Layer) *float64 { return l.RateLimit }),
		Robots:             first(layers, func(l *Layer) *string { return l.Robots }),
		MaxRetries:         first(layers, func(l *Layer) *int { return l.MaxRetries }),
		LogLevel:           first(layers, func(l *Layer) *string { return l.LogLevel }),
		Enable:             first(layers, func(l *Layer) *[]string { return l.Enable }),
		Disable:            first(layers, func(l *Layer) *[]string { return l.Disable }),
		EnableEmbeddings:   first(layers, func(l *Layer) *bool { return l.EnableEmbeddings }),
		EnableSentiment:    first(layers, func(l *Layer) *bool { return l.EnableSentiment }),
		EmbeddingsBackend:  first(layers, func(l *Layer) *string { return l.EmbeddingsBackend }),
		EmbeddingsModel:    first(layers, func(l *Layer) *string { return l.EmbeddingsModel }),
		EmbeddingsPreload:  first(layers, func(l *Layer) *bool { return l.EmbeddingsPreload }),
		EmbeddingsBaseURL:  first(layers, func(l *Layer) *string { return l.EmbeddingsBaseURL }),
		OpenAIAPIKey:       first(layers, func(l *Layer) *string { return l.OpenAIAPIKey }),
		ConllUEngine:       first(layers, func(l *Layer) *string { return l.ConllUEngine }),
		ModelDir:           first(layers, func(l *Layer) *string { return l.ModelDir }),
		Proxy:              first(layers, func(l *Layer) *string { return l.Proxy }),
		UserAgent:          first(layers, func(l *Layer) *string { return l.UserAgent }),
	}

	// Sites are a table, not a scalar: the highest layer that has any
	// site entries supplies the whole table.
	//
	// Design decision: tables are not merged key by key across layers
	// because:
	//  1. A cookie from the file must not leak into a host the caller
	//     reconfigured through a higher layer
	//  2. Header maps have no way to delete an inherited entry
	//  3. Per-host merging already happens once, against "*", in Site
	for i := range layers {
		if len(layers[i].Sites) > 0 {
			cfg.Sites = layers[i].Sites
			break
		}
	}

	cfg = cfg.clone()
	if err := cfg.Validate(); err != nil {
		return Config{}, apperr.Wrap(apperr.Config, err, "invalid configuration: "+err.Error())
	}
	return cfg, nil
}
