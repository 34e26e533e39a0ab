package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nao1215/rookeen/internal/nlp"
)

// Embedding backend names and their aliases.
const (
	BackendSmallLocal = "small-local"
	BackendLargeLocal = "large-local"
	BackendRemoteAPI  = "remote-api"
)

// backendAliases maps legacy backend names to their canonical name.
var backendAliases = map[string]string{
	"minilm":     BackendSmallLocal,
	"bge-m3":     BackendLargeLocal,
	"openai-te3": BackendRemoteAPI,
}

// CanonicalBackend returns the canonical backend name for name or alias.
// The second result is false for unknown names.
func CanonicalBackend(name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case BackendSmallLocal, BackendLargeLocal, BackendRemoteAPI:
		return n, true
	}
	canonical, ok := backendAliases[n]
	return canonical, ok
}

// Validate checks the configuration and normalizes language codes in place.
// It returns the first problem found.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatCSV, FormatTable, FormatMarkdown:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Format)
	}

	switch c.Robots {
	case RobotsRespect, RobotsIgnore:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRobotsPolicy, c.Robots)
	}

	switch c.ConllUEngine {
	case ConllUAuto, ConllUHighQuality, ConllUBasic:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownConllUEngine, c.ConllUEngine)
	}

	backend, ok := CanonicalBackend(c.EmbeddingsBackend)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEmbeddingsBackend, c.EmbeddingsBackend)
	}
	c.EmbeddingsBackend = backend

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.TimeoutSeconds <= 0 {
		return ErrInvalidTimeout
	}
	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}
	if c.MaxRetries < 0 {
		return ErrInvalidMaxRetries
	}

	level := strings.ToUpper(c.LogLevel)
	if !slices.Contains([]string{"DEBUG", "INFO", "WARNING", "WARN", "ERROR"}, level) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	c.LogLevel = level

	for _, lang := range []*string{&c.Language, &c.DefaultLanguage} {
		if *lang == "" {
			continue
		}
		code, supported := nlp.ParseLanguage(*lang)
		if !supported {
			return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedLanguage, *lang, strings.Join(nlp.SupportedLanguages(), ", "))
		}
		*lang = code
	}

	preload := make([]string, 0, len(c.LanguagesPreload))
	for _, lang := range c.LanguagesPreload {
		code, supported := nlp.ParseLanguage(lang)
		if !supported {
			return fmt.Errorf("%w: %q in languages preload", ErrUnsupportedLanguage, lang)
		}
		if !slices.Contains(preload, code) {
			preload = append(preload, code)
		}
	}
	c.LanguagesPreload = preload

	return nil
}
