package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/rookeen/internal/apperr"
	"github.com/nao1215/rookeen/internal/log"
	"github.com/nao1215/rookeen/internal/model"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>  Sample   Page </title>
  <style>body { color: red; }</style>
  <script>var tracking = "ignore me";</script>
</head>
<body>
  <h1>Heading</h1>
  <p>First paragraph with <b>bold</b> text.</p>
  <noscript>Enable JavaScript</noscript>
  <template><p>hidden template</p></template>
  <ul><li>one</li><li>two</li></ul>
</body>
</html>`

func TestExtractHTML(t *testing.T) {
	t.Parallel()

	page, err := ExtractHTML(strings.NewReader(samplePage))
	require.NoError(t, err)

	assert.Equal(t, "Sample Page", page.Title)
	assert.Contains(t, page.Text, "Heading")
	assert.Contains(t, page.Text, "First paragraph with bold text.")
	assert.NotContains(t, page.Text, "tracking")
	assert.NotContains(t, page.Text, "color: red")
	assert.NotContains(t, page.Text, "Enable JavaScript")
	assert.NotContains(t, page.Text, "hidden template")

	lines := strings.Split(page.Text, "\n")
	assert.Contains(t, lines, "one")
	assert.Contains(t, lines, "two")
	assert.NotContains(t, page.Text, "\n\n\n")
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	t.Run("default title", func(t *testing.T) {
		t.Parallel()
		doc := NewDocument(Origin{Kind: model.SourceStdin}, "  ", "text")
		assert.Equal(t, DefaultTitle, doc.Title)
	})

	t.Run("nfc normalization", func(t *testing.T) {
		t.Parallel()
		doc := NewDocument(Origin{}, "t", "Cafe\u0301\r\nnext")
		assert.Equal(t, "Caf\u00e9\nnext", doc.Text)
		assert.Len(t, doc.Digest, 64)
		assert.Equal(t, Digest("Caf\u00e9\nnext"), doc.Digest)
	})

	t.Run("with language returns a copy", func(t *testing.T) {
		t.Parallel()
		doc := NewDocument(Origin{}, "t", "text")
		tagged := doc.WithLanguage("de")
		assert.Empty(t, doc.Language)
		assert.Equal(t, "de", tagged.Language)
	})

	t.Run("origin info", func(t *testing.T) {
		t.Parallel()
		at := time.Unix(1700000000, 0)
		info := Origin{Kind: model.SourceURL, Value: "https://example.com/a", FetchedAt: at, Domain: "example.com"}.Info()
		assert.Equal(t, "example.com", info.Domain)
		assert.Equal(t, model.SourceURL, info.Type)
	})
}

// newTestFetcher returns a fetcher that records retry delays instead of
// sleeping.
func newTestFetcher(t *testing.T, opts ...Option) (*Fetcher, *[]time.Duration) {
	t.Helper()

	opts = append([]Option{WithLogger(log.Discard())}, opts...)
	f, err := NewFetcher(opts...)
	require.NoError(t, err)

	var mu sync.Mutex
	delays := []time.Duration{}
	f.sleep = func(_ context.Context, d time.Duration) error {
		mu.Lock()
		defer mu.Unlock()
		delays = append(delays, d)
		return nil
	}
	return f, &delays
}

func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("html page", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/robots.txt" {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, samplePage)
		}))
		defer srv.Close()

		f, _ := newTestFetcher(t)
		doc, err := f.Fetch(context.Background(), srv.URL+"/page")
		require.NoError(t, err)

		assert.Equal(t, "Sample Page", doc.Title)
		assert.Equal(t, model.SourceURL, doc.Origin.Kind)
		assert.Equal(t, strings.TrimPrefix(srv.URL, "http://"), doc.Origin.Domain)
		assert.Contains(t, doc.Text, "First paragraph")
		assert.False(t, doc.Origin.FetchedAt.IsZero())
	})

	t.Run("plain text", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			fmt.Fprint(w, "<b>not markup</b> just text")
		}))
		defer srv.Close()

		f, _ := newTestFetcher(t, WithRobots(RobotsIgnore))
		doc, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "<b>not markup</b> just text", doc.Text)
		assert.Equal(t, DefaultTitle, doc.Title)
	})

	t.Run("invalid url is a usage error", func(t *testing.T) {
		t.Parallel()
		f, _ := newTestFetcher(t)
		for _, raw := range []string{"", "example.com", "ftp://example.com/file", "http://"} {
			_, err := f.Fetch(context.Background(), raw)
			require.Error(t, err, raw)
			assert.Equal(t, apperr.Usage, apperr.KindOf(err), raw)
			assert.ErrorIs(t, err, ErrInvalidURL, raw)
		}
	})

	t.Run("not found is not retried", func(t *testing.T) {
		t.Parallel()
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			http.NotFound(w, r)
		}))
		defer srv.Close()

		f, delays := newTestFetcher(t, WithRobots(RobotsIgnore))
		_, err := f.Fetch(context.Background(), srv.URL+"/missing")
		require.Error(t, err)
		assert.Equal(t, apperr.Fetch, apperr.KindOf(err))
		assert.ErrorIs(t, err, ErrHTTPStatus)
		assert.Equal(t, int32(1), hits.Load())
		assert.Empty(t, *delays)
	})

	t.Run("server errors are retried", func(t *testing.T) {
		t.Parallel()
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			switch hits.Add(1) {
			case 1:
				w.WriteHeader(http.StatusServiceUnavailable)
			case 2:
				w.Header().Set("Retry-After", "2")
				w.WriteHeader(http.StatusTooManyRequests)
			default:
				fmt.Fprint(w, "finally some text")
			}
		}))
		defer srv.Close()

		f, delays := newTestFetcher(t, WithRobots(RobotsIgnore), WithMaxRetries(3))
		doc, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "finally some text", doc.Text)
		assert.Equal(t, int32(3), hits.Load())
		assert.Equal(t, []time.Duration{500 * time.Millisecond, 2 * time.Second}, *delays)
	})

	t.Run("retries exhausted", func(t *testing.T) {
		t.Parallel()
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		f, delays := newTestFetcher(t, WithRobots(RobotsIgnore), WithMaxRetries(2))
		_, err := f.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, apperr.Fetch, apperr.KindOf(err))
		assert.Equal(t, apperr.ExitFetch, apperr.ExitCode(err))
		assert.Equal(t, int32(3), hits.Load())
		assert.Len(t, *delays, 2)
	})

	t.Run("unreachable host", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()

		f, _ := newTestFetcher(t, WithRobots(RobotsIgnore), WithMaxRetries(0))
		_, err := f.Fetch(context.Background(), addr)
		require.Error(t, err)
		assert.Equal(t, apperr.Fetch, apperr.KindOf(err))
	})

	t.Run("deadline is a timeout", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		f, _ := newTestFetcher(t, WithRobots(RobotsIgnore))
		_, err := f.Fetch(ctx, srv.URL)
		require.Error(t, err)
		assert.Equal(t, apperr.Timeout, apperr.KindOf(err))
	})

	t.Run("blank page", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, "<html><body><script>x()</script></body></html>")
		}))
		defer srv.Close()

		f, _ := newTestFetcher(t, WithRobots(RobotsIgnore))
		_, err := f.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Equal(t, apperr.IO, apperr.KindOf(err))
	})
}

func TestFetchRobots(t *testing.T) {
	t.Parallel()

	newServer := func(robots func(w http.ResponseWriter)) (*httptest.Server, *atomic.Int32) {
		var robotsHits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/robots.txt" {
				robotsHits.Add(1)
				robots(w)
				return
			}
			fmt.Fprint(w, "page body")
		}))
		return srv, &robotsHits
	}

	t.Run("disallowed path", func(t *testing.T) {
		t.Parallel()
		srv, robotsHits := newServer(func(w http.ResponseWriter) {
			fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
		})
		defer srv.Close()

		f, _ := newTestFetcher(t)
		_, err := f.Fetch(context.Background(), srv.URL+"/private/page")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDisallowed)
		assert.Equal(t, apperr.Fetch, apperr.KindOf(err))

		doc, err := f.Fetch(context.Background(), srv.URL+"/public")
		require.NoError(t, err)
		assert.Equal(t, "page body", doc.Text)
		assert.Equal(t, int32(1), robotsHits.Load(), "robots.txt is cached per host")
	})

	t.Run("ignore policy", func(t *testing.T) {
		t.Parallel()
		srv, robotsHits := newServer(func(w http.ResponseWriter) {
			fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
		})
		defer srv.Close()

		f, _ := newTestFetcher(t, WithRobots(RobotsIgnore))
		_, err := f.Fetch(context.Background(), srv.URL+"/anything")
		require.NoError(t, err)
		assert.Zero(t, robotsHits.Load())
	})

	t.Run("cancelled lookup is not cached", func(t *testing.T) {
		t.Parallel()
		srv, robotsHits := newServer(func(w http.ResponseWriter) {
			fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
		})
		defer srv.Close()

		checker := newRobotsChecker(srv.Client(), DefaultUserAgent, log.Discard())
		u, err := url.Parse(srv.URL + "/private/page")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.True(t, checker.Allowed(ctx, u, DefaultUserAgent), "an unfinished lookup allows")
		assert.Zero(t, checker.cache.Len())

		assert.False(t, checker.Allowed(context.Background(), u, DefaultUserAgent))
		assert.Equal(t, 1, checker.cache.Len())
		assert.GreaterOrEqual(t, robotsHits.Load(), int32(1))
	})

	t.Run("server error allows", func(t *testing.T) {
		t.Parallel()
		srv, _ := newServer(func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		defer srv.Close()

		f, _ := newTestFetcher(t)
		_, err := f.Fetch(context.Background(), srv.URL+"/page")
		require.NoError(t, err)
	})

	t.Run("agent specific rules", func(t *testing.T) {
		t.Parallel()
		srv, _ := newServer(func(w http.ResponseWriter) {
			fmt.Fprint(w, "User-agent: rookeen\nDisallow: /\n\nUser-agent: *\nAllow: /\n")
		})
		defer srv.Close()

		f, _ := newTestFetcher(t)
		_, err := f.Fetch(context.Background(), srv.URL+"/page")
		require.ErrorIs(t, err, ErrDisallowed)

		other, _ := newTestFetcher(t, WithUserAgent("otherbot/2.0"))
		_, err = other.Fetch(context.Background(), srv.URL+"/page")
		require.NoError(t, err)
	})

	t.Run("invalid policy", func(t *testing.T) {
		t.Parallel()
		_, err := NewFetcher(WithRobots("sometimes"))
		require.Error(t, err)
		assert.Equal(t, apperr.Config, apperr.KindOf(err))
	})
}

func TestFetchSiteSettings(t *testing.T) {
	t.Parallel()

	type seen struct {
		cookie, agent, lang string
	}
	got := make(chan seen, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- seen{
			cookie: r.Header.Get("Cookie"),
			agent:  r.Header.Get("User-Agent"),
			lang:   r.Header.Get("Accept-Language"),
		}
		fmt.Fprint(w, "hello")
	}))
	defer srv.Close()

	sites := StaticSites(map[string]SiteSettings{
		"127.0.0.1": {
			Cookie:    "session=abc",
			UserAgent: "custom-agent/1.0",
			Headers:   map[string]string{"Accept-Language": "de"},
		},
	})
	f, _ := newTestFetcher(t, WithRobots(RobotsIgnore), WithSiteSettings(sites))
	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	s := <-got
	assert.Equal(t, "session=abc", s.cookie)
	assert.Equal(t, "custom-agent/1.0", s.agent)
	assert.Equal(t, "de", s.lang)
}

func TestStaticSites(t *testing.T) {
	t.Parallel()

	sites := StaticSites(map[string]SiteSettings{
		"*":           {UserAgent: "fallback"},
		"example.com": {Cookie: "a=b"},
	})
	assert.Equal(t, "a=b", sites("EXAMPLE.com").Cookie)
	assert.Equal(t, "fallback", sites("other.org").UserAgent)
}

func TestNewFetcherProxy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		proxy   string
		wantErr bool
	}{
		{name: "none", proxy: ""},
		{name: "http", proxy: "http://127.0.0.1:3128"},
		{name: "socks5", proxy: "socks5://127.0.0.1:9050"},
		{name: "unsupported scheme", proxy: "gopher://127.0.0.1:70", wantErr: true},
		{name: "missing host", proxy: "socks5://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewFetcher(WithProxy(tt.proxy), WithLogger(log.Discard()))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperr.Config, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestReadLocal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("text file", func(t *testing.T) {
		t.Parallel()
		path := write("notes.txt", "Some plain notes.\n")
		doc, err := ReadLocal(path)
		require.NoError(t, err)
		assert.Equal(t, "notes", doc.Title)
		assert.Equal(t, model.SourceFile, doc.Origin.Kind)
		assert.Equal(t, path, doc.Origin.Value)
		assert.Empty(t, doc.Origin.Domain)
	})

	t.Run("html file", func(t *testing.T) {
		t.Parallel()
		doc, err := ReadLocal(write("page.HTML", samplePage))
		require.NoError(t, err)
		assert.Equal(t, "Sample Page", doc.Title)
		assert.NotContains(t, doc.Text, "tracking")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := ReadLocal(filepath.Join(dir, "absent.txt"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, apperr.IO, apperr.KindOf(err))
		assert.Equal(t, apperr.ExitUsage, apperr.ExitCode(err))
	})

	t.Run("blank file", func(t *testing.T) {
		t.Parallel()
		_, err := ReadLocal(write("blank.txt", " \n\t\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Equal(t, apperr.IO, apperr.KindOf(err))
	})
}

func TestReadStream(t *testing.T) {
	t.Parallel()

	doc, err := ReadStream(strings.NewReader("from a pipe"), "")
	require.NoError(t, err)
	assert.Equal(t, StdinName, doc.Origin.Value)
	assert.Equal(t, model.SourceStdin, doc.Origin.Kind)
	assert.Equal(t, "from a pipe", doc.Text)

	_, err = ReadStream(strings.NewReader("   "), StdinName)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestLimiter(t *testing.T) {
	t.Parallel()

	assert.Zero(t, NewLimiter(0).Rate())
	assert.Zero(t, NewLimiter(-1).Rate())
	assert.InDelta(t, 2.5, NewLimiter(2.5).Rate(), 1e-9)

	var nilLimiter *Limiter
	require.NoError(t, nilLimiter.Wait(context.Background()))

	unlimited := NewLimiter(0)
	for range 100 {
		require.NoError(t, unlimited.Wait(context.Background()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	slow := NewLimiter(0.001)
	require.NoError(t, slow.Wait(context.Background()))
	require.Error(t, slow.Wait(ctx))
}

func TestRetryAfter(t *testing.T) {
	t.Parallel()

	assert.Zero(t, retryAfter(""))
	assert.Zero(t, retryAfter("soon"))
	assert.Equal(t, 3*time.Second, retryAfter("3"))
	assert.Equal(t, maxBackoff, retryAfter("3600"))
	assert.Equal(t, 500*time.Millisecond, backoff(0))
	assert.Equal(t, 2*time.Second, backoff(2))
	assert.Equal(t, maxBackoff, backoff(10))
}

func TestRobotsAgent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "rookeen", robotsAgent(DefaultUserAgent))
	assert.Equal(t, "Mozilla", robotsAgent("Mozilla/5.0 (X11)"))
	assert.Equal(t, "*", robotsAgent(""))
}
