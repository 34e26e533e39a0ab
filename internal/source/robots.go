package source

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/temoto/robotstxt"
)

// Robots policies.
const (
	RobotsRespect = "respect"
	RobotsIgnore  = "ignore"
)

// robotsCacheSize bounds the number of hosts whose rules are kept.
const robotsCacheSize = 256

// maxRobotsSize bounds the robots.txt body.
const maxRobotsSize = 512 * 1024

// robotsChecker fetches and caches robots.txt per scheme and host.
type robotsChecker struct {
	client    *http.Client
	userAgent string
	cache     *lru.Cache[string, *robotstxt.RobotsData]
	logger    *slog.Logger
}

func newRobotsChecker(client *http.Client, userAgent string, logger *slog.Logger) *robotsChecker {
	cache, err := lru.New[string, *robotstxt.RobotsData](robotsCacheSize)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return &robotsChecker{client: client, userAgent: userAgent, cache: cache, logger: logger}
}

// Allowed reports whether the agent may fetch u. Unreachable or broken
// robots.txt files allow everything.
//
// The decision for a host is cached for the rest of the run, except when
// the fetch ended because ctx was cancelled or timed out: that allow-all
// fallback says nothing about the site, and caching it would let one slow
// request switch robots.txt off for every later URL on the host.
func (r *robotsChecker) Allowed(ctx context.Context, u *url.URL, agent string) bool {
	key := u.Scheme + "://" + u.Host
	data, ok := r.cache.Get(key)
	if !ok {
		data = r.fetch(ctx, key)
		if ctx.Err() == nil {
			r.cache.Add(key, data)
		}
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, robotsAgent(agent))
}

func (r *robotsChecker) fetch(ctx context.Context, base string) *robotstxt.RobotsData {
	allowAll, _ := robotstxt.FromStatusAndBytes(http.StatusNotFound, nil) //nolint:errcheck // 404 never fails

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/robots.txt", nil)
	if err != nil {
		return allowAll
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Debug("robots.txt unreachable", "site", base, "error", err)
		return allowAll
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		return allowAll
	}

	// robotstxt treats 5xx as disallow-all; an unavailable file allows.
	status := resp.StatusCode
	if status >= http.StatusInternalServerError {
		status = http.StatusNotFound
	}
	data, err := robotstxt.FromStatusAndBytes(status, body)
	if err != nil {
		r.logger.Debug("robots.txt unparsable", "site", base, "error", err)
		return allowAll
	}
	return data
}

// robotsAgent reduces a User-Agent header to its product token.
func robotsAgent(ua string) string {
	ua = strings.TrimSpace(ua)
	if i := strings.IndexAny(ua, "/ "); i > 0 {
		ua = ua[:i]
	}
	if ua == "" {
		return "*"
	}
	return ua
}
