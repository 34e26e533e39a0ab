package analyzer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRegistrySealed is returned by Register after the first selection.
var ErrRegistrySealed = errors.New("analyzer registry is sealed")

// DuplicateAnalyzerError is returned when a name is registered twice.
type DuplicateAnalyzerError struct {
	Name string
}

func (e *DuplicateAnalyzerError) Error() string {
	return fmt.Sprintf("analyzer %q is already registered", e.Name)
}

// UnknownAnalyzerError is returned when a selection names analyzers
// that are not registered.
type UnknownAnalyzerError struct {
	Names []string
	Known []string
}

func (e *UnknownAnalyzerError) Error() string {
	return fmt.Sprintf("unknown analyzer(s): %s (available: %s)",
		strings.Join(e.Names, ", "), strings.Join(e.Known, ", "))
}

// UnavailableAnalyzerError is returned when a selected analyzer's
// runtime dependency is missing.
type UnavailableAnalyzerError struct {
	Name     string
	Requires string
	Err      error
}

func (e *UnavailableAnalyzerError) Error() string {
	msg := fmt.Sprintf("analyzer %q is unavailable", e.Name)
	if e.Requires != "" {
		msg += fmt.Sprintf(" (requires %s)", e.Requires)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnavailableAnalyzerError) Unwrap() error {
	return e.Err
}
