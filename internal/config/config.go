package config

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "rookeen"

	// EnvPrefix namespaces environment variables. A config key maps to
	// EnvPrefix + upper-cased key, e.g. rate_limit_rps -> ROOKEEN_RATE_LIMIT_RPS.
	EnvPrefix = "ROOKEEN_"

	// DefaultFormat is the main report format.
	DefaultFormat = FormatJSON

	// DefaultOutputDir is where reports and exports are written.
	DefaultOutputDir = "results"

	// DefaultConcurrency bounds concurrent batch requests and analyzers.
	DefaultConcurrency = 2

	// DefaultTimeoutSeconds is the budget of one analysis request.
	DefaultTimeoutSeconds = 30.0

	// DefaultRateLimit is the fetch ceiling in requests per second.
	DefaultRateLimit = 0.5

	// DefaultMaxRetries bounds retries of transient fetch failures.
	DefaultMaxRetries = 3

	// DefaultLogLevel is used unless --verbose is given.
	DefaultLogLevel = "INFO"

	// DefaultEmbeddingsBackend is the local small embedding model.
	DefaultEmbeddingsBackend = "small-local"

	// DefaultEmbeddingsBaseURL is the OpenAI-compatible API root used by
	// the remote-api backend.
	DefaultEmbeddingsBaseURL = "https://api.openai.com/v1"

	// DefaultUserAgent identifies rookeen in HTTP requests.
	DefaultUserAgent = "rookeen/1.0 (+https://github.com/nao1215/rookeen)"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatTable    = "table"
	FormatMarkdown = "md"
)

// Robots policies.
const (
	RobotsRespect = "respect"
	RobotsIgnore  = "ignore"
)

// CoNLL-U engines.
const (
	ConllUAuto        = "auto"
	ConllUHighQuality = "high-quality"
	ConllUBasic       = "basic"
)

// Config holds every tunable of one invocation.
// Build it with Resolve; treat the result as read-only.
type Config struct {
	// ModelsAutoDownload installs missing language models on first use.
	ModelsAutoDownload bool

	// LanguagesPreload lists languages whose models are loaded at startup.
	LanguagesPreload []string

	// Language forces the document language (the --lang flag).
	// It takes precedence over DefaultLanguage and auto-detection.
	Language string

	// DefaultLanguage is used instead of auto-detection when Language is empty.
	DefaultLanguage string

	// Format is one of FormatJSON, FormatCSV, FormatTable, FormatMarkdown.
	Format string

	// OutputDir is the directory for reports and exports.
	OutputDir string

	// Concurrency bounds concurrent requests in batch mode and
	// concurrent analyzers within one request.
	Concurrency int

	// TimeoutSeconds is the budget of one request, fetch included.
	TimeoutSeconds float64

	// RateLimit is the fetch ceiling in requests per second.
	// Zero disables rate limiting.
	RateLimit float64

	// Robots is RobotsRespect or RobotsIgnore.
	Robots string

	// MaxRetries bounds retries of timeouts and 5xx responses.
	MaxRetries int

	// LogLevel is DEBUG, INFO, WARNING or ERROR.
	LogLevel string

	// Enable lists analyzers to run instead of the core set.
	Enable []string

	// Disable lists analyzers to drop. Disable wins over Enable.
	Disable []string

	// EnableEmbeddings adds the optional embeddings analyzer.
	EnableEmbeddings bool

	// EnableSentiment adds the optional sentiment analyzer.
	EnableSentiment bool

	// EmbeddingsBackend names the embedding backend (or one of its aliases).
	EmbeddingsBackend string

	// EmbeddingsModel overrides the backend's default model.
	EmbeddingsModel string

	// EmbeddingsPreload loads the embedding backend at startup.
	EmbeddingsPreload bool

	// EmbeddingsBaseURL is the API root of the remote-api backend.
	EmbeddingsBaseURL string

	// OpenAIAPIKey is the credential of the remote-api backend.
	OpenAIAPIKey string

	// ConllUEngine selects the CoNLL-U serializer.
	ConllUEngine string

	// ModelDir is where language models are installed.
	ModelDir string

	// Proxy is an optional SOCKS5 proxy address (host:port) for fetches.
	Proxy string

	// UserAgent is sent with every HTTP request.
	UserAgent string

	// Sites holds per-host fetch settings from the config file.
	Sites map[string]SiteConfig
}

// XDGDataDir returns the XDG data directory for rookeen.
// On Linux: ~/.local/share/rookeen
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for rookeen.
// On Linux: ~/.config/rookeen
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for rookeen.
// On Linux: ~/.cache/rookeen
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// DefaultModelDir returns the directory where language models are installed.
func DefaultModelDir() string {
	return filepath.Join(XDGDataDir(), "models")
}

// Timeout returns the request budget.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// Site returns the fetch settings for host, merged over the "*" entry.
func (c Config) Site(host string) SiteConfig {
	return mergeSite(c.Sites["*"], c.Sites[strings.ToLower(host)])
}

// clone returns a deep copy so callers cannot alias layer data.
func (c Config) clone() Config {
	out := c
	out.LanguagesPreload = slices.Clone(c.LanguagesPreload)
	out.Enable = slices.Clone(c.Enable)
	out.Disable = slices.Clone(c.Disable)
	if c.Sites != nil {
		out.Sites = make(map[string]SiteConfig, len(c.Sites))
		for host, site := range c.Sites {
			site.Headers = maps.Clone(site.Headers)
			out.Sites[host] = site
		}
	}
	return out
}
