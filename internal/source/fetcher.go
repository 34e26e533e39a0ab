package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/nao1215/rookeen/internal/apperr"
	"github.com/nao1215/rookeen/internal/model"
)

// Fetch defaults.
const (
	DefaultUserAgent   = "rookeen/0.1 (+https://github.com/nao1215/rookeen)"
	DefaultMaxRetries  = 3
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB
	defaultTimeout     = 30 * time.Second
	maxBackoff         = 10 * time.Second
)

// Fetcher downloads web pages and converts them into Documents.
// A Fetcher is safe for concurrent use; a batch shares one so that its
// limiter bounds the whole run.
type Fetcher struct {
	client      *http.Client
	limiter     *Limiter
	robots      string
	checker     *robotsChecker
	maxRetries  int
	userAgent   string
	proxy       string
	timeout     time.Duration
	maxBodySize int64
	site        func(host string) SiteSettings
	logger      *slog.Logger

	// sleep waits between retries; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the HTTP client. The proxy option is ignored
// when a client is supplied.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithLimiter shares a rate limiter between fetchers.
func WithLimiter(l *Limiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithRobots sets the robots.txt policy, RobotsRespect or RobotsIgnore.
func WithRobots(policy string) Option {
	return func(f *Fetcher) {
		f.robots = policy
	}
}

// WithMaxRetries sets how often a transient failure is retried.
func WithMaxRetries(n int) Option {
	return func(f *Fetcher) {
		f.maxRetries = max(n, 0)
	}
}

// WithUserAgent sets the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithProxy routes requests through an http(s) or socks5 proxy.
func WithProxy(proxyURL string) Option {
	return func(f *Fetcher) {
		f.proxy = proxyURL
	}
}

// WithTimeout bounds a single HTTP attempt.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxBodySize limits how much of a response body is read.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodySize = n
		}
	}
}

// WithSiteSettings sets the per-host cookie, user agent and headers.
func WithSiteSettings(site func(host string) SiteSettings) Option {
	return func(f *Fetcher) {
		f.site = site
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher returns a Fetcher that respects robots.txt, does not rate
// limit and retries DefaultMaxRetries times.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		robots:      RobotsRespect,
		maxRetries:  DefaultMaxRetries,
		userAgent:   DefaultUserAgent,
		timeout:     defaultTimeout,
		maxBodySize: DefaultMaxBodySize,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = slog.Default()
	}
	if f.limiter == nil {
		f.limiter = NewLimiter(0)
	}
	if f.robots != RobotsRespect && f.robots != RobotsIgnore {
		return nil, apperr.New(apperr.Config, "invalid robots policy %q", f.robots)
	}
	if f.client == nil {
		client, err := newHTTPClient(f.proxy, f.timeout)
		if err != nil {
			return nil, apperr.Wrap(apperr.Config, err, "")
		}
		f.client = client
	}
	if f.site != nil {
		base := f.client.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		client := *f.client
		client.Transport = &siteTransport{base: base, site: f.site}
		f.client = &client
	}
	f.checker = newRobotsChecker(f.client, f.userAgent, f.logger)
	return f, nil
}

// Limiter returns the limiter used by f.
func (f *Fetcher) Limiter() *Limiter {
	return f.limiter
}

// ValidateURL parses rawURL and requires an absolute http(s) URL.
func ValidateURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, apperr.Wrap(apperr.Usage, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL), "")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apperr.Wrap(apperr.Usage, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL), "")
	}
	return u, nil
}

// Fetch downloads rawURL and returns its readable text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Document, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return Document{}, err
	}

	agent := f.agentFor(u.Hostname())

	// Design decision: robots.txt is checked before, and outside of, the
	// rate limiter. It is fetched at most once per host per run, so it
	// does not add meaningful load, and charging it to the limiter would
	// delay the first page of every new host in a batch by one interval.
	if f.robots == RobotsRespect && !f.checker.Allowed(ctx, u, agent) {
		return Document{}, apperr.Wrap(apperr.Fetch,
			fmt.Errorf("%w: %s", ErrDisallowed, u.String()), "")
	}

	resp, body, err := f.fetchWithRetry(ctx, u)
	if err != nil {
		return Document{}, err
	}

	page, err := decode(resp.Header.Get("Content-Type"), body)
	if err != nil {
		return Document{}, apperr.Wrap(apperr.Fetch, err, "failed to decode "+u.String())
	}

	origin := Origin{
		Kind:      model.SourceURL,
		Value:     u.String(),
		FetchedAt: time.Now().UTC(),
		Domain:    u.Host,
	}
	doc := NewDocument(origin, page.Title, page.Text)
	if doc.Blank() {
		return Document{}, apperr.Wrap(apperr.IO, fmt.Errorf("%w: %s", ErrEmptyInput, u.String()), "")
	}

	f.logger.Debug("fetched page",
		"url", u.String(),
		"status", resp.StatusCode,
		"bytes", len(body),
		"chars", len([]rune(doc.Text)),
	)
	return doc, nil
}

// fetchWithRetry performs the GET, retrying transient failures.
func (f *Fetcher) fetchWithRetry(ctx context.Context, u *url.URL) (*http.Response, []byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, nil, classifyContext(ctx, err)
		}

		resp, body, err := f.do(ctx, u)
		if err == nil {
			return resp, body, nil
		}
		if ctx.Err() != nil {
			return nil, nil, classifyContext(ctx, ctx.Err())
		}

		var retry *retryableError
		if !errors.As(err, &retry) {
			return nil, nil, err
		}
		lastErr = retry.err

		if attempt == f.maxRetries {
			break
		}
		delay := backoff(attempt)
		if retry.after > 0 {
			delay = retry.after
		}
		f.logger.Debug("retrying fetch",
			"url", u.String(),
			"attempt", attempt+1,
			"delay", delay,
			"error", retry.err,
		)
		if err := f.sleep(ctx, delay); err != nil {
			return nil, nil, classifyContext(ctx, err)
		}
	}
	return nil, nil, apperr.Wrap(apperr.Fetch, lastErr,
		fmt.Sprintf("failed to fetch %s after %d attempts: %v", u.String(), f.maxRetries+1, lastErr))
}

// retryableError marks a failure worth another attempt.
type retryableError struct {
	err   error
	after time.Duration
}

func (e *retryableError) Error() string { return e.err.Error() }

func (e *retryableError) Unwrap() error { return e.err }

// do performs one GET. Transient failures come back as *retryableError,
// permanent ones as apperr.Fetch.
func (f *Fetcher) do(ctx context.Context, u *url.URL) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Usage, err, "")
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if isTransient(err) {
			return nil, nil, &retryableError{err: err}
		}
		return nil, nil, apperr.Wrap(apperr.Fetch, err, fmt.Sprintf("failed to fetch %s: %v", u.String(), err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024)) //nolint:errcheck // draining for reuse
		return nil, nil, &retryableError{
			err:   fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status),
			after: retryAfter(resp.Header.Get("Retry-After")),
		}
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, nil, apperr.Wrap(apperr.Fetch,
			fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status),
			fmt.Sprintf("failed to fetch %s: %s", u.String(), resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, nil, &retryableError{err: err}
	}
	return resp, body, nil
}

// agentFor returns the User-Agent sent to host.
func (f *Fetcher) agentFor(host string) string {
	if f.site != nil {
		if ua := f.site(host).UserAgent; ua != "" {
			return ua
		}
	}
	return f.userAgent
}

// decode converts a response body to text, honouring its charset.
func decode(contentType string, body []byte) (Page, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		r = bytes.NewReader(body)
	}
	if looksLikeHTML(contentType, body) {
		return ExtractHTML(r)
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return Page{}, err
	}
	return Page{Text: string(text)}, nil
}

// isTransient reports whether a transport error may succeed on retry.
// DNS failures and refused connections are permanent.
func isTransient(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTimeout || dnsErr.IsTemporary
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

// classifyContext converts a context failure into a Timeout error.
func classifyContext(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Wrap(apperr.Timeout, err, "operation timed out")
	}
	return apperr.Wrap(apperr.Generic, err, "")
}

// backoff returns 500ms * 2^attempt capped at maxBackoff.
func backoff(attempt int) time.Duration {
	d := 500 * time.Millisecond << attempt
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

// retryAfter parses a Retry-After header given in seconds or as a date.
func retryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return min(time.Duration(secs)*time.Second, maxBackoff)
	}
	if t, err := http.ParseTime(v); err == nil {
		return min(max(time.Until(t), 0), maxBackoff)
	}
	return 0
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
