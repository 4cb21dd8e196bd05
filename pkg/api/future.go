package api

import (
	"context"
	"sync"
)

// Future is an in-flight computation placed directly into a process as
// a step. The producing goroutine resolves it with Complete or Fail;
// the run blocks at the future's position in the sequence until it is
// resolved, then merges its fields like any other step result.
//
//	f := api.NewFuture()
//	go func() { f.Complete(api.Fields{"quote": fetchQuote()}) }()
//	p := trilho.New(validate, f, persist)
type Future struct {
	done chan struct{}
	once sync.Once

	res Result
	err error
}

// NewFuture creates an unresolved Future.
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Complete resolves the future with fields to merge into the Context.
// A nil map resolves it with no result. Only the first Complete or Fail
// takes effect.
func (f *Future) Complete(fields Fields) {
	f.once.Do(func() {
		if fields != nil {
			f.res = fields
		}
		close(f.done)
	})
}

// Fail resolves the future with an error, failing the run at the
// future's position. Only the first Complete or Fail takes effect.
func (f *Future) Fail(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Wait blocks until the future is resolved or ctx is done.
func (f *Future) Wait(ctx context.Context) (Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
		return f.res, f.err
	}
}

// Flatten adapts the future into a single waiting step.
func (f *Future) Flatten() []StepDefinition {
	return []StepDefinition{{Fn: func(ctx context.Context, c Context) (Result, error) {
		return f.Wait(ctx)
	}}}
}
