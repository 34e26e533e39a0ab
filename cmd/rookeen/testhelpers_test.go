package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv is an isolated rookeen invocation environment.
type testEnv struct {
	dir        string
	configPath string
}

// newTestEnv writes a config file that keeps models and results inside
// a temporary directory.
func newTestEnv(t *testing.T, extra string) testEnv {
	t.Helper()

	dir := t.TempDir()
	content := "[rookeen]\n" +
		"model_dir = " + quote(filepath.Join(dir, "models")) + "\n" +
		"output_dir = " + quote(filepath.Join(dir, "results")) + "\n" +
		"rate_limit_rps = 50\n" +
		"max_retries = 0\n" +
		"log_level = \"ERROR\"\n" +
		extra
	path := filepath.Join(dir, "rookeen.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return testEnv{dir: dir, configPath: path}
}

// quote renders s as a TOML basic string.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
}

// runResult is the outcome of one CLI run.
type runResult struct {
	code   int
	stdout string
	stderr string
}

// runCLI runs rookeen with the environment's config file.
func (e testEnv) runCLI(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	full := append([]string{}, args...)
	full = append(full, "--config", e.configPath)
	code := run(full, strings.NewReader(stdin), &stdout, &stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}
