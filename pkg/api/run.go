package api

import (
	"context"
	"errors"
	"time"
)

// Status represents the lifecycle state of a run.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusExited    Status = "EXITED"
	StatusFailed    Status = "FAILED"
)

// ErrAlreadyStarted is returned when Start is called a second time on
// the same process instance. Each instance owns exactly one run; the
// Steps shortcut provides a restartable form.
var ErrAlreadyStarted = errors.New("trilho: process already started")

// Run records one execution of a process.
type Run struct {
	ID     string
	Name   string
	Status Status

	// Input is the Context seed the run started from.
	Input Context

	// Output is the final merged Context. Nil while the run is in
	// flight and after a failure.
	Output Context

	Err error

	StartedAt  time.Time
	FinishedAt time.Time

	// Steps is the number of flat steps that finished. On an early
	// exit it counts through the exiting step.
	Steps int
}

// Exited reports whether the run terminated early through Exit.
func (r *Run) Exited() bool {
	return r.Status == StatusExited
}

// Apply merges a step result into c and reports whether the result
// requests termination of the run.
func Apply(c Context, r Result) (exited bool) {
	fields, exited := resultFields(r)
	for k, v := range fields {
		c[k] = v
	}
	return exited
}

// RunSequence executes defs in order against a working copy of base:
// each step sees base plus the contributions of the steps before it,
// and the accumulated contribution is returned as one delta. The bool
// result reports whether a step requested termination; in that case the
// delta includes the exit payload and the remaining steps never run.
// Step errors propagate unmodified.
//
// RunSequence backs Switch branches and is exported for custom
// combinators; whole-process runs go through Process.Start, which adds
// observer events and run records on top of the same semantics.
func RunSequence(ctx context.Context, defs []StepDefinition, base Context) (Fields, bool, error) {
	scratch := make(Context, len(base))
	for k, v := range base {
		scratch[k] = v
	}

	delta := Fields{}
	for _, def := range defs {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		default:
		}

		res, err := def.Fn(ctx, scratch)
		if err != nil {
			return nil, false, err
		}

		fields, exited := resultFields(res)
		for k, v := range fields {
			scratch[k] = v
			delta[k] = v
		}
		if exited {
			return delta, true, nil
		}
	}

	return delta, false, nil
}
