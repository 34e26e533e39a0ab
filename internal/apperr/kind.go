package apperr

// Kind classifies a failure. The zero value is Generic.
type Kind int

const (
	// Generic is an unclassified failure.
	Generic Kind = iota
	// Usage is a bad combination of arguments or flags.
	Usage
	// Config is an unparsable config file or an invalid config value.
	Config
	// Fetch is a network, DNS or HTTP failure, including exhausted retries.
	Fetch
	// IO is a local file that is missing, unreadable or blank.
	IO
	// Model is a missing language model that could not be installed.
	Model
	// UnknownAnalyzer is a selection naming an unregistered analyzer.
	UnknownAnalyzer
	// UnavailableAnalyzer is a selection naming an analyzer whose
	// runtime dependency is missing.
	UnavailableAnalyzer
	// BackendUnavailable is an embedding backend without credentials
	// or dependencies.
	BackendUnavailable
	// BackendTimeout is an embedding backend call that exceeded its budget.
	BackendTimeout
	// Timeout is a request cancelled by its deadline or by the caller.
	Timeout
)

// Exit codes shared by all commands.
const (
	ExitOK      = 0
	ExitGeneric = 1
	ExitUsage   = 2
	ExitFetch   = 3
	ExitModel   = 4
)

// String returns the envelope name of the kind.
func (k Kind) String() string {
	switch k {
	case Usage:
		return "USAGE_ERROR"
	case Config:
		return "CONFIG_ERROR"
	case Fetch:
		return "FETCH_ERROR"
	case IO:
		return "IO_ERROR"
	case Model:
		return "MODEL_ERROR"
	case UnknownAnalyzer:
		return "UNKNOWN_ANALYZER"
	case UnavailableAnalyzer:
		return "UNAVAILABLE_ANALYZER"
	case BackendUnavailable:
		return "BACKEND_UNAVAILABLE"
	case BackendTimeout:
		return "BACKEND_TIMEOUT"
	case Timeout:
		return "TIMEOUT_ERROR"
	default:
		return "GENERIC_ERROR"
	}
}

// ExitCode returns the process exit code for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case Usage, Config, IO, UnknownAnalyzer:
		return ExitUsage
	case Fetch, BackendTimeout:
		return ExitFetch
	case Model, UnavailableAnalyzer, BackendUnavailable:
		return ExitModel
	default:
		return ExitGeneric
	}
}
