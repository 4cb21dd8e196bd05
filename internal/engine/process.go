package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/petrijr/trilho/internal/history"
	"github.com/petrijr/trilho/pkg/api"
)

// Config describes how to construct a Process. External callers use the
// constructors in the trilho package.
type Config struct {
	// Name identifies the process in observer events and run records.
	// Defaults to "process".
	Name string

	// Defs is the flattened step sequence, frozen at construction.
	Defs []api.StepDefinition

	// Observer receives run and step lifecycle events. Defaults to
	// api.NoopObserver.
	Observer api.Observer

	// History, if non-nil, receives the run record when the run reaches
	// a terminal status.
	History history.Store
}

// Process drives one flattened step sequence through a single run.
// It is itself an api.Step, so an already-constructed process can be
// spliced into a larger one; flattening it contributes its steps, not
// the process as an opaque unit, so exits and result merging integrate
// with the parent run.
type Process struct {
	name     string
	defs     []api.StepDefinition
	observer api.Observer
	history  history.Store

	started atomic.Bool

	mu  sync.Mutex
	run *api.Run
}

// Ensure a nested process can be used as a construction-time step.
var _ api.Step = (*Process)(nil)

// NewProcess builds a Process from cfg. Unnamed steps are named by
// position; the definition slice is copied so later mutation of cfg
// cannot affect the process.
func NewProcess(cfg Config) *Process {
	name := cfg.Name
	if name == "" {
		name = "process"
	}

	obs := cfg.Observer
	if obs == nil {
		obs = api.NoopObserver{}
	}

	defs := make([]api.StepDefinition, len(cfg.Defs))
	copy(defs, cfg.Defs)
	for i := range defs {
		if defs[i].Name == "" {
			defs[i].Name = fmt.Sprintf("step-%d", i+1)
		}
	}

	return &Process{
		name:     name,
		defs:     defs,
		observer: obs,
		history:  cfg.History,
	}
}

// Name returns the process name.
func (p *Process) Name() string {
	return p.name
}

// Flatten contributes the process's already-flattened steps to a parent
// sequence.
func (p *Process) Flatten() []api.StepDefinition {
	defs := make([]api.StepDefinition, len(p.defs))
	copy(defs, p.defs)
	return defs
}

// Start runs the flattened sequence to completion. A fresh Context is
// seeded with input's fields (nil input means empty); each step receives
// the live Context and its result is merged in, with later keys
// overwriting earlier ones. A step result of Exit (or ExitWith) stops
// iteration immediately after merging its payload; the merged Context
// accumulated so far is returned. Step errors are not caught, wrapped,
// or retried: Start fails with the original error and no result.
//
// A Process owns exactly one run. A second Start returns
// api.ErrAlreadyStarted.
func (p *Process) Start(ctx context.Context, input api.Context) (api.Context, error) {
	if !p.started.CompareAndSwap(false, true) {
		return nil, api.ErrAlreadyStarted
	}

	c := make(api.Context, len(input))
	for k, v := range input {
		c[k] = v
	}

	run := &api.Run{
		ID:        uuid.NewString(),
		Name:      p.name,
		Status:    api.StatusRunning,
		Input:     cloneContext(input),
		StartedAt: time.Now(),
	}
	p.setRun(run)

	p.observer.OnProcessStart(ctx, run)

	exited := false
	for i, def := range p.defs {
		select {
		case <-ctx.Done():
			return nil, p.fail(ctx, run, ctx.Err())
		default:
		}

		p.observer.OnStepStart(ctx, run, def.Name, i)

		startTime := time.Now()
		res, err := def.Fn(ctx, c)
		duration := time.Since(startTime)

		p.observer.OnStepCompleted(ctx, run, def.Name, i, err, duration)

		if err != nil {
			return nil, p.fail(ctx, run, err)
		}

		run.Steps = i + 1
		if api.Apply(c, res) {
			exited = true
			break
		}
	}

	run.Output = cloneContext(c)
	run.FinishedAt = time.Now()
	if exited {
		run.Status = api.StatusExited
	} else {
		run.Status = api.StatusCompleted
	}

	if p.history != nil {
		if err := p.history.SaveRun(run); err != nil {
			run.Status = api.StatusFailed
			run.Err = err
			p.observer.OnProcessFailed(ctx, run, err)
			return nil, err
		}
	}

	if exited {
		p.observer.OnProcessExited(ctx, run)
	} else {
		p.observer.OnProcessCompleted(ctx, run)
	}

	return c, nil
}

// Exited reports whether the run terminated early through Exit. It is
// false before Start and after a completed or failed run.
func (p *Process) Exited() bool {
	run := p.Record()
	return run != nil && run.Exited()
}

// Record returns the run record for this process, or nil if Start has
// not been called.
func (p *Process) Record() *api.Run {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.run
}

func (p *Process) setRun(run *api.Run) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.run = run
}

// fail marks the run failed and returns err unchanged so the caller
// sees the original failure. A history write error on this path is
// dropped: the step error takes precedence.
func (p *Process) fail(ctx context.Context, run *api.Run, err error) error {
	run.Status = api.StatusFailed
	run.Err = err
	run.FinishedAt = time.Now()

	if p.history != nil {
		_ = p.history.SaveRun(run)
	}

	p.observer.OnProcessFailed(ctx, run, err)
	return err
}

func cloneContext(c api.Context) api.Context {
	if c == nil {
		return nil
	}
	out := make(api.Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
