package source

import (
	"context"
	"fmt"
	"maps"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// maxRedirects stops redirect loops.
const maxRedirects = 10

// SiteSettings are per-host request settings.
type SiteSettings struct {
	Cookie    string
	UserAgent string
	Headers   map[string]string
}

// newHTTPClient builds the client used for fetching. proxyURL may be
// empty, an http(s) proxy or a socks5 proxy.
func newHTTPClient(proxyURL string, timeout time.Duration) (*http.Client, error) {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}

	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("%w: proxy %q", ErrInvalidURL, proxyURL)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			transport.Proxy = http.ProxyURL(u)
		case "socks5", "socks5h":
			dialer, err := proxy.FromURL(u, proxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("socks proxy: %w", err)
			}
			transport.Proxy = nil
			transport.DialContext = contextDialer(dialer)
		default:
			return nil, fmt.Errorf("%w: unsupported proxy scheme %q", ErrInvalidURL, u.Scheme)
		}
	}

	jar, _ := cookiejar.New(nil) //nolint:errcheck // cookiejar.New only fails with invalid options

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
		Jar:       jar,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}, nil
}

// contextDialer adapts a proxy.Dialer to http.Transport.DialContext.
func contextDialer(d proxy.Dialer) func(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := d.(proxy.ContextDialer); ok {
		return cd.DialContext
	}
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		type dialResult struct {
			conn net.Conn
			err  error
		}
		ch := make(chan dialResult, 1)
		go func() {
			conn, err := d.Dial(network, addr)
			ch <- dialResult{conn, err}
		}()
		select {
		case r := <-ch:
			return r.conn, r.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// siteTransport injects per-host cookies and headers into every
// request, redirects included.
type siteTransport struct {
	base http.RoundTripper
	site func(host string) SiteSettings
}

// RoundTrip implements http.RoundTripper.
func (t *siteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	settings := t.site(req.URL.Hostname())
	if settings.Cookie == "" && settings.UserAgent == "" && len(settings.Headers) == 0 {
		return t.base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	if settings.Cookie != "" {
		if existing := clone.Header.Get("Cookie"); existing != "" {
			clone.Header.Set("Cookie", existing+"; "+settings.Cookie)
		} else {
			clone.Header.Set("Cookie", settings.Cookie)
		}
	}
	if settings.UserAgent != "" {
		clone.Header.Set("User-Agent", settings.UserAgent)
	}
	for key, value := range settings.Headers {
		clone.Header.Set(key, value)
	}
	return t.base.RoundTrip(clone)
}

// StaticSites returns a site lookup backed by a map. The "*" entry
// applies to hosts without their own settings.
func StaticSites(sites map[string]SiteSettings) func(host string) SiteSettings {
	sites = maps.Clone(sites)
	return func(host string) SiteSettings {
		if s, ok := sites[strings.ToLower(host)]; ok {
			return s
		}
		return sites["*"]
	}
}
