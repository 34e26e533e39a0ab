package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nao1215/rookeen/internal/apperr"
)

// Remote backend defaults.
const (
	RemoteModel          = "text-embedding-3-small"
	DefaultBaseURL       = "https://api.openai.com/v1"
	DefaultRemoteTimeout = 30 * time.Second
	DefaultRemoteRetries = 3
)

// RemoteDim returns the dimension of an OpenAI text-embedding-3 model.
func RemoteDim(model string) int {
	if strings.HasSuffix(strings.ToLower(model), "small") {
		return 1536
	}
	return 3072
}

func remoteDescriptor() Descriptor {
	return Descriptor{
		Name:            RemoteAPI,
		Aliases:         []string{"openai-te3"},
		DefaultModel:    RemoteModel,
		Dim:             RemoteDim,
		RequiresNetwork: true,
		Factory: func(opts Options) (Backend, error) {
			return NewRemoteBackend(opts), nil
		},
	}
}

// RemoteBackend calls an OpenAI-compatible /embeddings endpoint.
type RemoteBackend struct {
	baseURL    string
	apiKey     string
	model      string
	dim        int
	client     *http.Client
	maxRetries int
	logger     *slog.Logger

	// sleep waits between retries. Tests replace it.
	sleep func(ctx context.Context, d time.Duration) error

	once    sync.Once
	loadErr error
}

// NewRemoteBackend creates an unloaded remote backend.
func NewRemoteBackend(opts Options) *RemoteBackend {
	model := modelOr(opts.Model, RemoteModel)
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	retries := opts.MaxRetries
	if retries < 0 {
		retries = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &RemoteBackend{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(opts.APIKey),
		model:      model,
		dim:        RemoteDim(model),
		client:     client,
		maxRetries: retries,
		logger:     logger,
		sleep:      sleepContext,
	}
}

// Load checks that credentials are present. No request is made.
func (b *RemoteBackend) Load(_ context.Context) error {
	b.once.Do(func() {
		if b.apiKey == "" {
			b.loadErr = apperr.Wrap(apperr.BackendUnavailable, ErrMissingAPIKey,
				"remote-api embeddings backend requires an API key (set OPENAI_API_KEY or --openai-api-key)")
		}
	})
	return b.loadErr
}

// Provenance implements Backend.
func (b *RemoteBackend) Provenance() Provenance {
	return Provenance{Backend: RemoteAPI, Model: b.model, Dim: b.dim, Normalized: true}
}

type embeddingsRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	// Embedding is the Ollama-native shape.
	Embedding []float64 `json:"embedding"`
}

// retryableStatus is returned for 429 and 5xx responses.
type retryableStatus struct {
	status     string
	retryAfter time.Duration
}

func (e *retryableStatus) Error() string {
	return "embeddings request failed: " + e.status
}

// Embed implements Backend. 429 and 5xx responses are retried with
// exponential backoff, honouring Retry-After.
func (b *RemoteBackend) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := b.Load(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(embeddingsRequest{Model: b.model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode embeddings request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= b.maxRetries; attempt++ {
		vec, err := b.do(ctx, body)
		if err == nil {
			return vec, nil
		}
		if isTimeout(ctx, err) {
			return nil, apperr.Wrap(apperr.BackendTimeout, err, "embeddings request timed out")
		}

		var rs *retryableStatus
		if !errors.As(err, &rs) {
			return nil, apperr.Wrap(apperr.BackendUnavailable, err, "")
		}
		lastErr = err
		if attempt == b.maxRetries {
			break
		}

		delay := retryDelay(attempt)
		if rs.retryAfter > 0 {
			delay = rs.retryAfter
		}
		b.logger.Debug("retrying embeddings request",
			"attempt", attempt+1,
			"delay", delay,
			"error", err,
		)
		if err := b.sleep(ctx, delay); err != nil {
			return nil, apperr.Wrap(apperr.BackendTimeout, err, "embeddings request timed out")
		}
	}
	return nil, apperr.Wrap(apperr.BackendUnavailable, lastErr, "")
}

// do performs one request.
func (b *RemoteBackend) do(ctx context.Context, body []byte) ([]float32, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &retryableStatus{status: resp.Status, retryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("embeddings request failed: %s", resp.Status)
	}

	var out embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode embeddings response: %w", err)
	}

	raw := out.Embedding
	if len(out.Data) > 0 {
		raw = out.Data[0].Embedding
	}
	if len(raw) == 0 {
		return nil, ErrEmptyResponse
	}
	if len(raw) != b.dim {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(raw), b.dim)
	}

	vec := make([]float32, len(raw))
	for i, x := range raw {
		vec[i] = float32(x)
	}
	if Norm(vec) == 0 {
		return nil, ErrZeroVector
	}
	return Normalize(vec), nil
}

// isTimeout reports whether err came from a deadline or client timeout.
func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// retryDelay is 200ms doubled per attempt, capped at 5s.
func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 5 {
		return 5 * time.Second
	}
	d := 200 * time.Millisecond << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
