package pipeline

import (
	"time"

	"github.com/nao1215/rookeen/internal/apperr"
)

// State is a stage of a request.
type State int

// States in execution order. Failed is terminal and may follow any
// other state.
const (
	Pending State = iota
	Acquiring
	DetectingLanguage
	LoadingModel
	RunningAnalyzers
	Aggregating
	Done
	Failed
)

var stateNames = [...]string{
	Pending:           "pending",
	Acquiring:         "acquiring",
	DetectingLanguage: "detecting_language",
	LoadingModel:      "loading_model",
	RunningAnalyzers:  "running_analyzers",
	Aggregating:       "aggregating",
	Done:              "done",
	Failed:            "failed",
}

// String returns the snake_case state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no transition can follow s.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

// Transition is one state change of a request.
type Transition struct {
	From State
	To   State
	At   time.Time

	// Err is set when To is Failed.
	Err error

	// Kind classifies Err.
	Kind apperr.Kind
}

// Observer receives transitions. It is called synchronously from the
// goroutine running the request and must not block.
type Observer func(Transition)
