package nlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/nao1215/rookeen/internal/apperr"
)

var (
	// ErrModelNotInstalled is returned when a model is missing and
	// automatic installation is disabled.
	ErrModelNotInstalled = errors.New("language model not installed")
	// ErrUnsupportedLanguage is returned for languages without a model.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

const (
	// LexiconFile is the file name of an installed model.
	LexiconFile = "lexicon.json"

	// DefaultCacheSize is the number of loaded models kept in memory.
	DefaultCacheSize = 8
)

// Store installs and loads language models from a directory.
// Loaded models are shared by all callers.
type Store struct {
	dir          string
	autoDownload bool
	cacheSize    int
	cache        *lru.Cache[string, *Model]
	group        singleflight.Group
	logger       *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithAutoDownload installs missing models from the bundled lexicons.
func WithAutoDownload(enabled bool) StoreOption {
	return func(s *Store) {
		s.autoDownload = enabled
	}
}

// WithCacheSize sets how many models stay loaded.
func WithCacheSize(n int) StoreOption {
	return func(s *Store) {
		if n > 0 {
			s.cacheSize = n
		}
	}
}

// WithStoreLogger sets the logger.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a store rooted at dir.
func NewStore(dir string, opts ...StoreOption) (*Store, error) {
	s := &Store{
		dir:       dir,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	cache, err := lru.New[string, *Model](s.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create model cache: %w", err)
	}
	s.cache = cache
	return s, nil
}

// Dir returns the model directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the lexicon path of the model for a language code.
func (s *Store) Path(lang string) (string, error) {
	name, ok := ModelName(lang)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return filepath.Join(s.dir, name, LexiconFile), nil
}

// Installed reports whether the model for lang is on disk.
func (s *Store) Installed(lang string) bool {
	path, err := s.Path(lang)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load returns the model for lang, reading it from disk on first use.
// A missing model is installed from the bundled lexicon when
// auto-download is enabled; otherwise an apperr.Model error wrapping
// ErrModelNotInstalled is returned.
func (s *Store) Load(ctx context.Context, lang string) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	code, ok := ParseLanguage(lang)
	if !ok {
		return nil, apperr.Wrap(apperr.Model,
			fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang),
			fmt.Sprintf("no language model for %q", lang))
	}
	if m, ok := s.cache.Get(code); ok {
		return m, nil
	}

	v, err, _ := s.group.Do(code, func() (any, error) {
		if m, ok := s.cache.Get(code); ok {
			return m, nil
		}
		m, err := s.load(code)
		if err != nil {
			return nil, err
		}
		s.cache.Add(code, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Model), nil
}

func (s *Store) load(code string) (*Model, error) {
	path, err := s.Path(code)
	if err != nil {
		return nil, apperr.Wrap(apperr.Model, err, "")
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is built from the model directory and a known model name
	if errors.Is(err, fs.ErrNotExist) {
		name, _ := ModelName(code)
		if !s.autoDownload {
			return nil, apperr.Wrap(apperr.Model,
				fmt.Errorf("%w: %s", ErrModelNotInstalled, name),
				fmt.Sprintf("language model %s is not installed; enable models_auto_download or run with --models-auto-download", name))
		}
		s.logger.Info("installing language model", "model", name, "dir", s.dir)
		if _, err := s.Install(code); err != nil {
			return nil, err
		}
		data, err = os.ReadFile(path) //nolint:gosec // same path as above
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Model, err, fmt.Sprintf("failed to read language model %s", path))
	}

	var lex Lexicon
	if err := json.Unmarshal(data, &lex); err != nil {
		return nil, apperr.Wrap(apperr.Model,
			fmt.Errorf("%w: %s: %w", ErrInvalidModel, path, err),
			fmt.Sprintf("language model %s is corrupt", path))
	}
	m, err := NewModel(&lex)
	if err != nil {
		return nil, apperr.Wrap(apperr.Model, err, "")
	}
	s.logger.Debug("language model loaded", "model", m.Name(), "version", m.Version())
	return m, nil
}

// Install writes the bundled lexicon for lang to the model directory
// and returns its path. An existing model is overwritten. Every failure,
// including a failed write, is an apperr.Model error: a model that
// cannot be installed is a model problem for the caller.
func (s *Store) Install(lang string) (string, error) {
	code, ok := ParseLanguage(lang)
	lex, bundledOK := BundledLexicon(code)
	if !ok || !bundledOK {
		return "", apperr.Wrap(apperr.Model,
			fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang),
			fmt.Sprintf("no bundled language model for %q", lang))
	}
	path, err := s.Path(code)
	if err != nil {
		return "", apperr.Wrap(apperr.Model, err, "")
	}

	data, err := json.MarshalIndent(lex, "", "  ")
	if err != nil {
		return "", apperr.Wrap(apperr.Model, err, "failed to encode language model")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", apperr.Wrap(apperr.Model, err, fmt.Sprintf("failed to create model directory %s", filepath.Dir(path)))
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", apperr.Wrap(apperr.Model, err, fmt.Sprintf("failed to write language model %s", path))
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", apperr.Wrap(apperr.Model, err, fmt.Sprintf("failed to install language model %s", path))
	}
	s.cache.Remove(code)
	return path, nil
}

// Preload loads the models for langs. Unsupported codes are skipped
// with a warning; the first load error is returned.
func (s *Store) Preload(ctx context.Context, langs []string) error {
	for _, lang := range langs {
		if _, ok := ParseLanguage(lang); !ok {
			s.logger.Warn("skipping preload of unsupported language", "language", lang)
			continue
		}
		if _, err := s.Load(ctx, lang); err != nil {
			return err
		}
	}
	return nil
}
