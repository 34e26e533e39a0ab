package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nao1215/rookeen/internal/apperr"
)

// newArticleServer serves a small English article on every path.
func newArticleServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<html><head><title>Library news</title></head><body><article><p>%s</p></article></body></html>", sampleText)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// writeURLList writes urls to a file in dir.
func writeURLList(t *testing.T, dir string, urls ...string) string {
	t.Helper()

	path := filepath.Join(dir, "urls.txt")
	content := "# test list\n\n" + strings.Join(urls, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write URL list: %v", err)
	}
	return path
}

// TestNewBatchCmd tests the batch command creation.
func TestNewBatchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewBatchCmd()
	if cmd.Use != "batch <url-file>" {
		t.Errorf("expected use 'batch <url-file>', got %q", cmd.Use)
	}
	for _, name := range []string{"concurrency", "output-dir", "rate-limit", "robots"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag %q", name)
		}
	}
}

func TestBatch(t *testing.T) {
	t.Parallel()

	t.Run("failed urls are counted", func(t *testing.T) {
		t.Parallel()

		srv := newArticleServer(t)
		env := newTestEnv(t, "")
		list := writeURLList(t, env.dir, srv.URL+"/a", "not-a-url", "ftp://example.com/x")

		res := env.runCLI(t, "", "batch", list, "--lang", "en")
		if res.code != apperr.ExitGeneric {
			t.Fatalf("expected exit code %d, got %d (stderr: %s)", apperr.ExitGeneric, res.code, res.stderr)
		}
		if !strings.Contains(res.stdout, "1 succeeded, 2 failed") {
			t.Errorf("expected summary with two failures, got %q", res.stdout)
		}
		if !strings.Contains(res.stderr, "2 of 3 URL(s) failed") {
			t.Errorf("expected failure message, got %q", res.stderr)
		}

		matches, err := filepath.Glob(filepath.Join(env.dir, "results", "*.json"))
		if err != nil {
			t.Fatal(err)
		}
		if len(matches) != 1 {
			t.Errorf("expected one report, got %v", matches)
		}
	})

	t.Run("reports of the same host do not collide", func(t *testing.T) {
		t.Parallel()

		srv := newArticleServer(t)
		env := newTestEnv(t, "")
		list := writeURLList(t, env.dir, srv.URL+"/a", srv.URL+"/b", srv.URL+"/c")

		res := env.runCLI(t, "", "batch", list, "--lang", "en", "--concurrency", "3")
		if res.code != apperr.ExitOK {
			t.Fatalf("expected exit code 0, got %d (stderr: %s)", res.code, res.stderr)
		}
		matches, err := filepath.Glob(filepath.Join(env.dir, "results", "*.json"))
		if err != nil {
			t.Fatal(err)
		}
		if len(matches) != 3 {
			t.Errorf("expected three reports, got %v", matches)
		}
	})

	t.Run("empty list is a usage error", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		list := writeURLList(t, env.dir)
		res := env.runCLI(t, "", "batch", list)
		if res.code != apperr.ExitUsage {
			t.Fatalf("expected exit code %d, got %d (stderr: %s)", apperr.ExitUsage, res.code, res.stderr)
		}
	})

	t.Run("stdout is rejected", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, "")
		list := writeURLList(t, env.dir, "https://example.com/")
		res := env.runCLI(t, "", "batch", list, "--stdout")
		if res.code != apperr.ExitUsage {
			t.Fatalf("expected exit code %d, got %d", apperr.ExitUsage, res.code)
		}
	})
}

func TestBatchWriterUniqueBase(t *testing.T) {
	t.Parallel()

	w := newBatchWriter(nil, nil)
	got := []string{
		w.uniqueBase("results/example_com_1700000000"),
		w.uniqueBase("results/example_com_1700000000"),
		w.uniqueBase("results/other_1700000000"),
		w.uniqueBase("results/example_com_1700000000"),
	}
	want := []string{
		"results/example_com_1700000000",
		"results/example_com_1700000000_2",
		"results/other_1700000000",
		"results/example_com_1700000000_3",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("uniqueBase call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestUnknownAnalyzerFetchesNothing(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, sampleText)
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		name string
		args func(env *testEnv) []string
	}{
		{
			name: "analyze",
			args: func(*testEnv) []string {
				return []string{"analyze", "--errors-json", "--enable", "bogus", srv.URL + "/a"}
			},
		},
		{
			name: "batch",
			args: func(env *testEnv) []string {
				list := writeURLList(t, env.dir, srv.URL+"/a", srv.URL+"/b")
				return []string{"batch", "--errors-json", "--enable", "bogus", list}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			before := hits.Load()
			res := env.runCLI(t, "", tt.args(&env)...)

			if res.code != apperr.ExitUsage {
				t.Fatalf("expected exit code %d, got %d (stderr: %s)", apperr.ExitUsage, res.code, res.stderr)
			}
			if !strings.Contains(res.stderr, `"name":"UNKNOWN_ANALYZER"`) {
				t.Errorf("expected UNKNOWN_ANALYZER envelope, got %q", res.stderr)
			}
			if n := hits.Load() - before; n != 0 {
				t.Errorf("server received %d requests", n)
			}
		})
	}
}
