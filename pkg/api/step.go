package api

import "context"

// Context is the accumulating key/value state threaded through a run.
// At the moment a step executes, it holds the original input's keys plus
// the union of all result fields returned by earlier steps, with later
// steps overwriting earlier ones on collision.
type Context map[string]any

// Fields is the partial result produced by a single step. The engine
// merges it into the run's Context; the step never writes the Context
// in place.
type Fields map[string]any

// Result is what a step hands back: Fields with new Context entries,
// the Exit sentinel (plain or carrying a payload from ExitWith), or nil
// for "no result".
type Result interface {
	result()
}

func (Fields) result() {}

// StepFunc is a single invocable step. It receives the live Context and
// returns its contribution as a Result. Returning a nil Result leaves
// the Context untouched.
type StepFunc func(ctx context.Context, c Context) (Result, error)

// Step is anything that can appear in a process definition: a StepFunc,
// a Group of steps, a pending *Future, or a nested, already-constructed
// process. Flatten is called exactly once, at construction time; the
// flat sequence is immutable afterwards.
type Step interface {
	Flatten() []StepDefinition
}

// StepDefinition is one entry in the flattened sequence. Name is used
// for observer events; definitions produced by plain steps are named
// by position when the process is constructed.
type StepDefinition struct {
	Name string
	Fn   StepFunc
}

// Flatten makes a bare StepFunc usable as a Step.
func (f StepFunc) Flatten() []StepDefinition {
	return []StepDefinition{{Fn: f}}
}

// Group is an ordered sub-sequence of steps. Grouping exists purely for
// assembly convenience: flattening expands groups in place, so grouping
// has no observable effect on execution.
type Group []Step

// Flatten expands the group recursively, left to right.
func (g Group) Flatten() []StepDefinition {
	var defs []StepDefinition
	for _, s := range g {
		defs = append(defs, s.Flatten()...)
	}
	return defs
}

// FlattenSteps expands an ordered list of steps into one flat sequence
// of definitions. Expansion is recursive and depth-unbounded; order is
// preserved exactly as written, depth-first. Step shape is not
// validated here; a nil step surfaces when it is invoked.
func FlattenSteps(steps ...Step) []StepDefinition {
	return Group(steps).Flatten()
}

// Noop resolves immediately with no result and never exits. Useful as
// an explicit "do nothing" switch branch.
var Noop StepFunc = func(ctx context.Context, c Context) (Result, error) {
	return nil, nil
}
