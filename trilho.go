package trilho

import (
	"context"
	"database/sql"

	"github.com/petrijr/trilho/internal/engine"
	"github.com/petrijr/trilho/internal/history"
	"github.com/petrijr/trilho/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	Context        = api.Context
	Fields         = api.Fields
	Result         = api.Result
	Step           = api.Step
	StepFunc       = api.StepFunc
	StepDefinition = api.StepDefinition
	Group          = api.Group
	Branches       = api.Branches
	Future         = api.Future
	Run            = api.Run
	Status         = api.Status

	Observer             = api.Observer
	NoopObserver         = api.NoopObserver
	CompositeObserver    = api.CompositeObserver
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot

	Process = engine.Process
)

// Re-export the core step vocabulary and observer helpers.

var (
	Exit     = api.Exit
	ExitWith = api.ExitWith
	Noop     = api.Noop

	Switch    = api.Switch
	NewFuture = api.NewFuture

	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver

	ErrAlreadyStarted = api.ErrAlreadyStarted
	ErrRunNotFound    = history.ErrRunNotFound
)

// Re-export run status values for convenience.

const (
	StatusPending   = api.StatusPending
	StatusRunning   = api.StatusRunning
	StatusCompleted = api.StatusCompleted
	StatusExited    = api.StatusExited
	StatusFailed    = api.StatusFailed
)

// New builds a process from an ordered list of steps. Nested groups and
// already-constructed processes are flattened once, here; the resulting
// sequence is immutable. The process runs exactly once via Start.
func New(steps ...Step) *Process {
	return engine.NewProcess(engine.Config{
		Defs: api.FlattenSteps(steps...),
	})
}

// NewWithObserver is like New with an Observer receiving run and step
// lifecycle events.
func NewWithObserver(obs Observer, steps ...Step) *Process {
	return engine.NewProcess(engine.Config{
		Defs:     api.FlattenSteps(steps...),
		Observer: obs,
	})
}

// StartFunc runs a freshly constructed process over a fixed step
// sequence. Nil input seeds an empty Context.
type StartFunc func(ctx context.Context, input Context) (Context, error)

// Steps is the one-shot shortcut: construct-then-start in a single
// call. The steps are flattened once; each invocation of the returned
// function runs a fresh process over them, so the shortcut is naturally
// reusable where a *Process is not.
//
//	run := trilho.Steps(validate, charge, notify)
//	out, err := run(ctx, trilho.Context{"order": id})
func Steps(steps ...Step) StartFunc {
	defs := api.FlattenSteps(steps...)
	return func(ctx context.Context, input Context) (Context, error) {
		p := engine.NewProcess(engine.Config{Defs: defs})
		return p.Start(ctx, input)
	}
}

// History stores finished run records. See NewMemoryHistory and
// NewSQLiteHistory.
type History = history.Store

// RunFilter selects runs when listing a History.
type RunFilter = history.Filter

// NewMemoryHistory returns a process-local, non-durable History.
func NewMemoryHistory() History {
	return history.NewInMemoryStore()
}

// NewSQLiteHistory returns a History that persists run records in a
// SQLite database. The schema is created on first use.
//
//	db, _ := sql.Open("sqlite", "file:trilho.db?_journal=WAL")
//	hist, err := trilho.NewSQLiteHistory(db)
func NewSQLiteHistory(db *sql.DB) (History, error) {
	return history.NewSQLiteStore(db)
}

// GetRun fetches a recorded run by ID.
func GetRun(store History, id string) (*Run, error) {
	return store.GetRun(id)
}

// ListRuns returns recorded runs matching the given filter. A zero
// filter returns all runs.
func ListRuns(store History, filter RunFilter) ([]*Run, error) {
	return store.ListRuns(filter)
}
