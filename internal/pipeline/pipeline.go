package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nao1215/rookeen/internal/apperr"
)

// Step is one state of a request. Steps run in sequence; each one reads
// and extends the Run left by the previous steps.
type Step interface {
	// State is the state the request is in while the step runs.
	State() State

	// Do executes the step. Any error ends the request in Failed.
	Do(ctx context.Context, run *Run) error
}

// Pipeline executes steps in order and reports transitions.
//
// Design decision: each state is a Step value rather than a branch in
// one large function because:
//  1. The state a failure happened in falls out of the loop, so every
//     Failed transition carries it without extra bookkeeping
//  2. Observers see the same transitions in tests and in production
//  3. Steps can be tested alone with a hand-built Run
type Pipeline struct {
	steps    []Step
	logger   *slog.Logger
	observer Observer
	now      func() time.Time
}

// NewPipeline returns an empty pipeline. A nil logger means
// slog.Default(); a nil observer is ignored.
func NewPipeline(logger *slog.Logger, observer Observer) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		steps:    make([]Step, 0),
		logger:   logger,
		observer: observer,
		now:      time.Now,
	}
}

// AddStep appends a step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends several steps.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepCount returns the number of steps.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the state names of the steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.State().String()
	}
	return names
}

// Execute runs every step and leaves run in Done or Failed. The
// context is checked before each step; a deadline turns any failure
// into a Timeout.
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return p.fail(ctx, run, err)
		}

		p.transition(run, step.State(), nil)
		if err := step.Do(ctx, run); err != nil {
			return p.fail(ctx, run, err)
		}
	}
	p.transition(run, Done, nil)
	return nil
}

// fail classifies err, records it on run and moves to Failed.
func (p *Pipeline) fail(ctx context.Context, run *Run, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && apperr.KindOf(err) != apperr.Timeout {
		err = apperr.Wrap(apperr.Timeout, err, "analysis timed out during "+run.State.String())
	}
	run.Err = err
	p.logger.Debug("request failed",
		"state", run.State.String(),
		"source", run.Request.Source,
		"kind", apperr.KindOf(err).String(),
		"error", err,
	)
	p.transition(run, Failed, err)
	return err
}

// transition moves run to the next state and notifies the observer.
func (p *Pipeline) transition(run *Run, to State, err error) {
	t := Transition{From: run.State, To: to, At: p.now(), Err: err}
	if err != nil {
		t.Kind = apperr.KindOf(err)
	}
	run.State = to
	p.logger.Debug("state transition",
		"from", t.From.String(),
		"to", t.To.String(),
		"source", run.Request.Source,
	)
	if p.observer != nil {
		p.observer(t)
	}
}
