package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/nao1215/rookeen/internal/apperr"
)

// Pool shares loaded backends. Each (backend, model) pair is created
// and loaded at most once; concurrent callers wait for the same load.
type Pool struct {
	registry *Registry
	base     Options
	logger   *slog.Logger

	mu       sync.Mutex
	backends map[string]Backend
	group    singleflight.Group
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithPoolLogger sets the logger.
func WithPoolLogger(logger *slog.Logger) PoolOption {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPool creates a Pool. base supplies credentials, base URL, timeouts
// and HTTP client for every backend the pool creates.
func NewPool(registry *Registry, base Options, opts ...PoolOption) *Pool {
	p := &Pool{
		registry: registry,
		base:     base,
		logger:   slog.Default(),
		backends: make(map[string]Backend),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.base.Logger == nil {
		p.base.Logger = p.logger
	}
	return p
}

// Get returns the loaded backend for name (or alias) and model. An
// empty model selects the backend's default. Load failures are not
// cached, so a later call may succeed.
func (p *Pool) Get(ctx context.Context, name, model string) (Backend, error) {
	desc, err := p.registry.Lookup(name)
	if err != nil {
		return nil, apperr.Wrap(apperr.BackendUnavailable, err, "")
	}
	model = modelOr(model, desc.DefaultModel)
	key := desc.Name + "\x00" + model

	p.mu.Lock()
	if b, ok := p.backends[key]; ok {
		p.mu.Unlock()
		return b, nil
	}
	p.mu.Unlock()

	v, err, _ := p.group.Do(key, func() (any, error) {
		p.mu.Lock()
		if b, ok := p.backends[key]; ok {
			p.mu.Unlock()
			return b, nil
		}
		p.mu.Unlock()

		opts := p.base
		opts.Model = model
		b, err := desc.Factory(opts)
		if err != nil {
			return nil, apperr.Wrap(apperr.BackendUnavailable, err, fmt.Sprintf("failed to create %s backend", desc.Name))
		}
		if err := b.Load(ctx); err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.backends[key] = b
		p.mu.Unlock()
		p.logger.Debug("embeddings backend loaded", "backend", desc.Name, "model", model)
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Backend), nil //nolint:forcetypeassert // the group only returns Backends
}

// Preload loads a backend ahead of the first request. Failures are
// logged and returned; callers treat them as non-fatal.
func (p *Pool) Preload(ctx context.Context, name, model string) error {
	b, err := p.Get(ctx, name, model)
	if err != nil {
		p.logger.Warn("embeddings preload failed", "backend", name, "error", err)
		return err
	}
	prov := b.Provenance()
	p.logger.Info("embeddings backend preloaded", "backend", prov.Backend, "model", prov.Model, "dim", prov.Dim)
	return nil
}

// Loaded returns the number of shared backends.
func (p *Pool) Loaded() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.backends)
}
