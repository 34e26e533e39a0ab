// Package log provides secure structured logging built on log/slog.
//
// The SecureHandler wraps any slog.Handler and masks sensitive values
// before they are written:
//   - HTTP headers (Authorization, Cookie, Set-Cookie, X-Api-Key)
//   - credentials by key name (api_key, openai_api_key, password, token)
//   - values that look like secrets (bearer tokens, JWTs, sk- API keys)
//
// New builds the process logger: JSON or text output, a level taken
// from the log_level setting (or Debug with --verbose), and the run_id
// and trace_id attributes that tie every line to one invocation.
//
//	logger := log.New(os.Stderr, log.Options{Level: slog.LevelInfo, RunID: log.NewRunID()})
//	logger.Info("fetching", "url", u, "cookie", c) // cookie is masked
//
// RedactSecrets masks secrets embedded in free text such as error
// messages that end up in reports.
package log
