package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/rookeen/internal/apperr"
)

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	reg := NewDefaultRegistry()
	assert.Equal(t, []string{SmallLocal, LargeLocal, RemoteAPI}, reg.Names())

	tests := []struct {
		name string
		want string
	}{
		{"small-local", SmallLocal},
		{"miniLM", SmallLocal},
		{"MINILM", SmallLocal},
		{"bge-m3", LargeLocal},
		{"openai-te3", RemoteAPI},
		{" remote-api ", RemoteAPI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, err := reg.Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name)
		})
	}

	_, err := reg.Lookup("word2vec")
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	reg := NewDefaultRegistry()
	dup := smallLocalDescriptor()
	dup.Name = "other"
	// alias "miniLM" collides.
	err := reg.Register(dup)
	require.ErrorIs(t, err, ErrDuplicateBackend)
	assert.Equal(t, []string{SmallLocal, LargeLocal, RemoteAPI}, reg.Names())

	_, err = reg.Lookup("other")
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestLocalBackends(t *testing.T) {
	t.Parallel()

	reg := NewDefaultRegistry()
	for _, name := range []string{SmallLocal, LargeLocal} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			d, err := reg.Lookup(name)
			require.NoError(t, err)
			b, err := d.Factory(Options{})
			require.NoError(t, err)
			require.NoError(t, b.Load(context.Background()))

			prov := b.Provenance()
			assert.Equal(t, name, prov.Backend)
			assert.Equal(t, d.DefaultModel, prov.Model)
			assert.True(t, prov.Normalized)

			vec, err := b.Embed(context.Background(), "The quick brown fox jumps over the lazy dog.")
			require.NoError(t, err)
			assert.Len(t, vec, d.Dim(prov.Model))
			assert.InDelta(t, 1.0, Norm(vec), 1e-5)

			again, err := b.Embed(context.Background(), "The quick brown fox jumps over the lazy dog.")
			require.NoError(t, err)
			assert.Equal(t, vec, again)
		})
	}
}

func TestLocalBackendSimilarity(t *testing.T) {
	t.Parallel()

	b := newHashedBackend(SmallLocal, SmallLocalModel, SmallLocalDim, wordFeatures)
	ctx := context.Background()

	a, err := b.Embed(ctx, "cats like warm milk")
	require.NoError(t, err)
	near, err := b.Embed(ctx, "Cats like warm milk!")
	require.NoError(t, err)
	far, err := b.Embed(ctx, "quarterly revenue forecast")
	require.NoError(t, err)

	assert.InDelta(t, 1.0, Cosine(a, near), 1e-5)
	assert.Less(t, Cosine(a, far), Cosine(a, near))
}

func TestLocalBackendFeaturelessText(t *testing.T) {
	t.Parallel()

	backends := []*hashedBackend{
		newHashedBackend(SmallLocal, SmallLocalModel, SmallLocalDim, wordFeatures),
		newHashedBackend(LargeLocal, LargeLocalModel, LargeLocalDim, charFeatures),
	}
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			punct, err := b.Embed(ctx, "!!! ??? ...")
			require.NoError(t, err)
			assert.Len(t, punct, b.dim)
			assert.InDelta(t, 1.0, Norm(punct), 1e-6)

			empty, err := b.Embed(ctx, "")
			require.NoError(t, err)
			assert.Equal(t, punct, empty)
			assert.True(t, b.Provenance().Normalized)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	v := Normalize([]float32{3, 4})
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)
	assert.Equal(t, []float32{0, 0}, Normalize([]float32{0, 0}))
}

func TestRemoteDim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1536, RemoteDim("text-embedding-3-small"))
	assert.Equal(t, 3072, RemoteDim("text-embedding-3-large"))
}

// embeddingServer answers /embeddings with a vector of dim values.
func embeddingServer(t *testing.T, dim int, failFirst int, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if r.URL.Path != "/embeddings" || r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if int(n) <= failFirst {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(status)
			return
		}
		var req embeddingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		vec := make([]float64, dim)
		for i := range vec {
			vec[i] = float64(i%7) + 1
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": vec}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func noSleep(b *RemoteBackend, delays *[]time.Duration) {
	var mu sync.Mutex
	b.sleep = func(_ context.Context, d time.Duration) error {
		mu.Lock()
		defer mu.Unlock()
		*delays = append(*delays, d)
		return nil
	}
}

func TestRemoteBackendEmbed(t *testing.T) {
	t.Parallel()

	srv, calls := embeddingServer(t, 1536, 0, 0)
	b := NewRemoteBackend(Options{APIKey: "sk-test", BaseURL: srv.URL + "/"})

	vec, err := b.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, vec, 1536)
	assert.InDelta(t, 1.0, Norm(vec), 1e-5)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, Provenance{Backend: RemoteAPI, Model: RemoteModel, Dim: 1536, Normalized: true}, b.Provenance())
}

func TestRemoteBackendRetries(t *testing.T) {
	t.Parallel()

	srv, calls := embeddingServer(t, 1536, 2, http.StatusTooManyRequests)
	b := NewRemoteBackend(Options{APIKey: "sk-test", BaseURL: srv.URL, MaxRetries: 3})
	var delays []time.Duration
	noSleep(b, &delays)

	_, err := b.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []time.Duration{time.Second, time.Second}, delays)
}

func TestRemoteBackendRetriesExhausted(t *testing.T) {
	t.Parallel()

	srv, calls := embeddingServer(t, 1536, 100, http.StatusServiceUnavailable)
	b := NewRemoteBackend(Options{APIKey: "sk-test", BaseURL: srv.URL, MaxRetries: 2})
	var delays []time.Duration
	noSleep(b, &delays)

	_, err := b.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, apperr.BackendUnavailable, apperr.KindOf(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestRemoteBackendMissingKey(t *testing.T) {
	t.Parallel()

	b := NewRemoteBackend(Options{})
	err := b.Load(context.Background())
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Equal(t, apperr.BackendUnavailable, apperr.KindOf(err))

	_, err = b.Embed(context.Background(), "hello")
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestRemoteBackendDimensionMismatch(t *testing.T) {
	t.Parallel()

	srv, _ := embeddingServer(t, 8, 0, 0)
	b := NewRemoteBackend(Options{APIKey: "sk-test", BaseURL: srv.URL})
	_, err := b.Embed(context.Background(), "hello")
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestRemoteBackendZeroVector(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": make([]float64, 1536)}},
		})
	}))
	t.Cleanup(srv.Close)

	b := NewRemoteBackend(Options{APIKey: "sk-test", BaseURL: srv.URL})
	vec, err := b.Embed(context.Background(), "hello")
	require.ErrorIs(t, err, ErrZeroVector)
	assert.Nil(t, vec)
	assert.Equal(t, apperr.BackendUnavailable, apperr.KindOf(err))
}

func TestRemoteBackendTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	b := NewRemoteBackend(Options{APIKey: "sk-test", BaseURL: srv.URL})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := b.Embed(ctx, "hello")
	require.Error(t, err)
	assert.Equal(t, apperr.BackendTimeout, apperr.KindOf(err))
}

// countingBackend counts loads.
type countingBackend struct {
	loads *atomic.Int32
	model string
}

func (c *countingBackend) Load(context.Context) error {
	c.loads.Add(1)
	time.Sleep(10 * time.Millisecond)
	return nil
}

func (c *countingBackend) Embed(context.Context, string) ([]float32, error) {
	return Normalize([]float32{1, 1}), nil
}

func (c *countingBackend) Provenance() Provenance {
	return Provenance{Backend: "counting", Model: c.model, Dim: 2, Normalized: true}
}

func TestPoolLoadsOnce(t *testing.T) {
	t.Parallel()

	var loads atomic.Int32
	reg := NewRegistry()
	require.NoError(t, reg.Register(Descriptor{
		Name:         "counting",
		DefaultModel: "m1",
		Dim:          func(string) int { return 2 },
		Factory: func(opts Options) (Backend, error) {
			return &countingBackend{loads: &loads, model: opts.Model}, nil
		},
	}))
	pool := NewPool(reg, Options{})

	var wg sync.WaitGroup
	got := make([]Backend, 16)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := pool.Get(context.Background(), "counting", "")
			assert.NoError(t, err)
			got[i] = b
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
	for _, b := range got {
		assert.Same(t, got[0], b)
	}

	other, err := pool.Get(context.Background(), "counting", "m2")
	require.NoError(t, err)
	assert.NotSame(t, got[0], other)
	assert.Equal(t, int32(2), loads.Load())
	assert.Equal(t, 2, pool.Loaded())
}

func TestPoolErrors(t *testing.T) {
	t.Parallel()

	pool := NewPool(NewDefaultRegistry(), Options{})

	_, err := pool.Get(context.Background(), "nope", "")
	require.ErrorIs(t, err, ErrUnknownBackend)
	assert.Equal(t, apperr.BackendUnavailable, apperr.KindOf(err))

	err = pool.Preload(context.Background(), RemoteAPI, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
	assert.Zero(t, pool.Loaded())

	require.NoError(t, pool.Preload(context.Background(), "miniLM", ""))
	assert.Equal(t, 1, pool.Loaded())
}

func TestCosine(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, 1.0, Cosine([]float32{2, 0}, []float32{1, 0}), 1e-9)
	assert.Zero(t, Cosine([]float32{1}, []float32{1, 2}))
	assert.False(t, math.IsNaN(Cosine([]float32{0, 0}, []float32{0, 0})))
}
