package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks around a run and its individual steps,
// for logging and metrics. The engine never depends on a concrete
// implementation; instrumentation is layered on from the outside by
// passing an Observer at construction time.
//
// Implementations should be fast and non-blocking; heavy work should be
// done asynchronously so as not to delay the run.
type Observer interface {
	// OnProcessStart is called once per Start, before the first step.
	OnProcessStart(ctx context.Context, run *Run)

	// OnProcessCompleted is called when the run finishes its full
	// sequence without an exit.
	OnProcessCompleted(ctx context.Context, run *Run)

	// OnProcessExited is called when a step terminates the run early
	// through Exit.
	OnProcessExited(ctx context.Context, run *Run)

	// OnProcessFailed is called when a step returns an error.
	OnProcessFailed(ctx context.Context, run *Run, err error)

	// OnStepStart is called before invoking a step function.
	// stepIndex is the 0-based index into the flattened sequence.
	OnStepStart(ctx context.Context, run *Run, stepName string, stepIndex int)

	// OnStepCompleted is called after a step function returns, for both
	// successes and failures (err != nil).
	OnStepCompleted(ctx context.Context, run *Run, stepName string, stepIndex int, err error, duration time.Duration)
}

// NoopObserver is an Observer that does nothing. It is the default when
// no observer is configured, and can be embedded to implement only a
// subset of the callbacks.
type NoopObserver struct{}

func (NoopObserver) OnProcessStart(ctx context.Context, run *Run)             {}
func (NoopObserver) OnProcessCompleted(ctx context.Context, run *Run)         {}
func (NoopObserver) OnProcessExited(ctx context.Context, run *Run)            {}
func (NoopObserver) OnProcessFailed(ctx context.Context, run *Run, err error) {}
func (NoopObserver) OnStepStart(ctx context.Context, run *Run, name string, idx int) {
}
func (NoopObserver) OnStepCompleted(ctx context.Context, run *Run, name string, idx int, err error, d time.Duration) {
}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnProcessStart(ctx context.Context, run *Run) {
	for _, o := range c.observers {
		o.OnProcessStart(ctx, run)
	}
}

func (c *CompositeObserver) OnProcessCompleted(ctx context.Context, run *Run) {
	for _, o := range c.observers {
		o.OnProcessCompleted(ctx, run)
	}
}

func (c *CompositeObserver) OnProcessExited(ctx context.Context, run *Run) {
	for _, o := range c.observers {
		o.OnProcessExited(ctx, run)
	}
}

func (c *CompositeObserver) OnProcessFailed(ctx context.Context, run *Run, err error) {
	for _, o := range c.observers {
		o.OnProcessFailed(ctx, run, err)
	}
}

func (c *CompositeObserver) OnStepStart(ctx context.Context, run *Run, name string, idx int) {
	for _, o := range c.observers {
		o.OnStepStart(ctx, run, name, idx)
	}
}

func (c *CompositeObserver) OnStepCompleted(ctx context.Context, run *Run, name string, idx int, err error, d time.Duration) {
	for _, o := range c.observers {
		o.OnStepCompleted(ctx, run, name, idx, err, d)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs run and step
// lifecycle events using the provided slog.Logger. If logger is nil,
// slog.Default() is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnProcessStart(ctx context.Context, run *Run) {
	o.Logger.InfoContext(ctx, "process_start",
		slog.String("process", run.Name),
		slog.String("run_id", run.ID),
	)
}

func (o *LoggingObserver) OnProcessCompleted(ctx context.Context, run *Run) {
	o.Logger.InfoContext(ctx, "process_completed",
		slog.String("process", run.Name),
		slog.String("run_id", run.ID),
		slog.Int("steps", run.Steps),
	)
}

func (o *LoggingObserver) OnProcessExited(ctx context.Context, run *Run) {
	o.Logger.InfoContext(ctx, "process_exited",
		slog.String("process", run.Name),
		slog.String("run_id", run.ID),
		slog.Int("steps", run.Steps),
	)
}

func (o *LoggingObserver) OnProcessFailed(ctx context.Context, run *Run, err error) {
	o.Logger.ErrorContext(ctx, "process_failed",
		slog.String("process", run.Name),
		slog.String("run_id", run.ID),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver) OnStepStart(ctx context.Context, run *Run, name string, idx int) {
	o.Logger.DebugContext(ctx, "step_start",
		slog.String("process", run.Name),
		slog.String("run_id", run.ID),
		slog.String("step", name),
		slog.Int("step_index", idx),
	)
}

func (o *LoggingObserver) OnStepCompleted(ctx context.Context, run *Run, name string, idx int, err error, d time.Duration) {
	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelError
	}
	o.Logger.Log(ctx, level, "step_completed",
		slog.String("process", run.Name),
		slog.String("run_id", run.ID),
		slog.String("step", name),
		slog.Int("step_index", idx),
		slog.Duration("duration", d),
		slog.Any("error", err),
	)
}

// BasicMetrics collects simple counters and aggregate step durations.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	runsStarted       atomic.Int64
	runsCompleted     atomic.Int64
	runsExited        atomic.Int64
	runsFailed        atomic.Int64
	stepsCompleted    atomic.Int64
	totalStepDuration atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	RunsStarted   int64
	RunsCompleted int64
	RunsExited    int64
	RunsFailed    int64
	RunsInFlight  int64

	StepsCompleted  int64
	AvgStepDuration time.Duration
}

func (m *BasicMetrics) OnProcessStart(ctx context.Context, run *Run) {
	m.runsStarted.Add(1)
}

func (m *BasicMetrics) OnProcessCompleted(ctx context.Context, run *Run) {
	m.runsCompleted.Add(1)
}

func (m *BasicMetrics) OnProcessExited(ctx context.Context, run *Run) {
	m.runsExited.Add(1)
}

func (m *BasicMetrics) OnProcessFailed(ctx context.Context, run *Run, err error) {
	m.runsFailed.Add(1)
}

func (m *BasicMetrics) OnStepCompleted(ctx context.Context, run *Run, name string, idx int, err error, d time.Duration) {
	// Only successful steps count toward the average duration.
	if err == nil {
		m.stepsCompleted.Add(1)
		m.totalStepDuration.Add(d.Nanoseconds())
	}
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	started := m.runsStarted.Load()
	completed := m.runsCompleted.Load()
	exited := m.runsExited.Load()
	failed := m.runsFailed.Load()
	steps := m.stepsCompleted.Load()
	totalNs := m.totalStepDuration.Load()

	var avg time.Duration
	if steps > 0 {
		avg = time.Duration(totalNs / steps)
	}

	return BasicMetricsSnapshot{
		RunsStarted:     started,
		RunsCompleted:   completed,
		RunsExited:      exited,
		RunsFailed:      failed,
		RunsInFlight:    started - completed - exited - failed,
		StepsCompleted:  steps,
		AvgStepDuration: avg,
	}
}
