package trilho

import (
	"fmt"

	"github.com/petrijr/trilho/internal/engine"
	"github.com/petrijr/trilho/pkg/api"
)

// Builder provides a fluent API for defining processes with named
// steps. Names appear in observer events and logs; processes built with
// plain New get positional names instead.
//
//	p := trilho.NewBuilder("checkout").
//	    Step("reserve", reserveStock).
//	    Switch("route", "plan", trilho.Branches{
//	        "pro":  upgrade,
//	        "free": trilho.Noop,
//	    }).
//	    Step("receipt", sendReceipt).
//	    Build()
type Builder struct {
	name string
	defs []api.StepDefinition
	obs  Observer
	hist History
}

// NewBuilder creates a new process builder with the given name.
func NewBuilder(name string) *Builder {
	if name == "" {
		panic("trilho: process name must not be empty")
	}
	return &Builder{name: name}
}

// Name returns the process name.
func (b *Builder) Name() string {
	return b.name
}

// Step appends a named step.
func (b *Builder) Step(name string, fn StepFunc) *Builder {
	if name == "" {
		panic("trilho: step name must not be empty")
	}
	if fn == nil {
		panic(fmt.Sprintf("trilho: step %q has nil function", name))
	}

	b.defs = append(b.defs, api.StepDefinition{Name: name, Fn: fn})
	return b
}

// Group appends the flattened steps of an ordered group. Steps without
// a name of their own are named "<name>-1", "<name>-2", and so on.
func (b *Builder) Group(name string, steps ...Step) *Builder {
	if name == "" {
		panic("trilho: group name must not be empty")
	}

	for i, def := range api.FlattenSteps(steps...) {
		if def.Name == "" {
			def.Name = fmt.Sprintf("%s-%d", name, i+1)
		}
		b.defs = append(b.defs, def)
	}
	return b
}

// Switch appends a named branch-selecting step over the given Context
// key.
func (b *Builder) Switch(name, key string, branches Branches) *Builder {
	return b.Step(name, Switch(key, branches))
}

// Process splices the steps of an already-constructed process into the
// sequence.
func (b *Builder) Process(p *Process) *Builder {
	if p == nil {
		panic("trilho: nested process must not be nil")
	}
	b.defs = append(b.defs, p.Flatten()...)
	return b
}

// Observer sets the observer receiving run and step lifecycle events.
func (b *Builder) Observer(obs Observer) *Builder {
	b.obs = obs
	return b
}

// History sets the store that receives the run record when the run
// reaches a terminal status.
func (b *Builder) History(store History) *Builder {
	b.hist = store
	return b
}

// Build constructs the process. The step sequence is frozen here;
// further Builder calls do not affect the built process.
func (b *Builder) Build() *Process {
	defs := make([]api.StepDefinition, len(b.defs))
	copy(defs, b.defs)

	return engine.NewProcess(engine.Config{
		Name:     b.name,
		Defs:     defs,
		Observer: b.obs,
		History:  b.hist,
	})
}
