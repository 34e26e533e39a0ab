package config

import "errors"

// Configuration errors. Resolve and LoadFileLayer wrap them in a
// CONFIG_ERROR so they surface with exit code 2.
var (
	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConfigFile is returned when the config file cannot be parsed.
	ErrInvalidConfigFile = errors.New("invalid configuration file")

	// ErrInvalidValue is returned when a key holds a value of the wrong type.
	ErrInvalidValue = errors.New("invalid configuration value")

	// ErrUnknownFormat is returned for a report format other than json, csv, table or md.
	ErrUnknownFormat = errors.New("unknown format: must be one of json, csv, table, md")

	// ErrUnknownRobotsPolicy is returned for a robots policy other than respect or ignore.
	ErrUnknownRobotsPolicy = errors.New("unknown robots policy: must be respect or ignore")

	// ErrUnknownConllUEngine is returned for an unknown CoNLL-U engine.
	ErrUnknownConllUEngine = errors.New("unknown conllu engine: must be auto, high-quality or basic")

	// ErrUnknownEmbeddingsBackend is returned for an embeddings backend that is not registered.
	ErrUnknownEmbeddingsBackend = errors.New("unknown embeddings backend")

	// ErrInvalidConcurrency is returned when concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRateLimit is returned when the rate limit is negative.
	ErrInvalidRateLimit = errors.New("invalid rate limit: must be non-negative")

	// ErrInvalidMaxRetries is returned when the retry count is negative.
	ErrInvalidMaxRetries = errors.New("invalid max retries: must be non-negative")

	// ErrInvalidLogLevel is returned for an unknown log level.
	ErrInvalidLogLevel = errors.New("invalid log level: must be DEBUG, INFO, WARNING or ERROR")

	// ErrUnsupportedLanguage is returned when a forced language is not supported.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
