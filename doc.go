// Package trilho is a minimal sequential process engine for Go.
//
// Trilho composes independently defined steps into one coherent
// process: steps run strictly in declaration order, each one receives
// an accumulating Context and contributes a partial result that is
// merged back in, and any step can terminate the whole run early with
// an optional payload. It is the strictly-linear sibling of a full
// workflow engine: no graphs, no retries, no persistence of in-flight
// state — just ordering, merging, branching, and early exit, done
// carefully.
//
// # Core Concepts
//
// The programming model is intentionally small:
//
//  1. Process
//  2. StepFunc and step shapes
//  3. Context
//  4. Exit
//  5. Switch
//  6. Observer
//
// # Process
//
// A Process is built once from an ordered list of steps and started
// once. Construction flattens arbitrarily nested groups and nested
// process instances into one immutable flat sequence, preserving
// left-to-right, depth-first order:
//
//	p := trilho.New(
//	    loadAccount,
//	    trilho.Group{chargeCard, writeLedger},
//	    notify,
//	)
//	out, err := p.Start(ctx, trilho.Context{"account": id})
//
// Grouping has no observable effect on the outcome; it exists purely
// for assembly. A nested process contributes its own flattened steps,
// never itself as an opaque unit, so an exit inside it stops the outer
// run and its results merge into the outer Context.
//
// The Steps shortcut performs construction-then-start in one call and
// returns a function that can be invoked repeatedly, each time over a
// fresh run:
//
//	run := trilho.Steps(loadAccount, chargeCard, notify)
//	out, err := run(ctx, nil)
//
// # StepFunc and step shapes
//
// A StepFunc is the fundamental unit of work:
//
//	func(ctx context.Context, c trilho.Context) (trilho.Result, error)
//
// Four shapes can appear in a process definition: a StepFunc, a Group
// (ordered sub-sequence), a *Future (an in-flight computation the run
// waits for at that position), and a nested *Process. Noop is a
// predefined step that resolves with no result.
//
// # Context
//
// Context is the accumulating string-keyed state threaded through a
// run. When step i executes, it sees the original input plus every
// field returned by steps 1..i-1, later steps overwriting earlier ones
// on key collision. Steps return updates; they never mutate the map
// they were handed. Each Start owns an independent Context, so nothing
// is shared across runs.
//
// # Exit
//
// Exit is a dedicated sentinel a step returns to stop the run after it
// completes; ExitWith attaches extra fields that merge into the final
// Context first. Exit propagates through every level of nesting —
// groups, nested processes, and switch branches alike. Whether a run
// exited early is recorded on the run record (StatusExited) and via
// Process.Exited, never inside the Context itself.
//
// # Switch
//
// Switch builds a step that inspects one Context key at run time and
// executes the matching branch in place, with the same sequential,
// merging, exit-propagating semantics as the rest of the run. An
// unmatched value is a no-op and control falls through:
//
//	trilho.Switch("plan", trilho.Branches{
//	    "pro":  trilho.Group{provision, upgrade},
//	    "free": trilho.Noop,
//	})
//
// # Observer
//
// An Observer receives start, end, and duration events for the run and
// for each step. The engine only knows the interface; logging
// (LoggingObserver, on log/slog), counters (BasicMetrics), and fan-out
// (CompositeObserver) are layered on from the outside. An optional
// History store records finished runs, in memory or in SQLite.
//
// # Errors
//
// A step error fails the run: Start returns the original error,
// unwrapped and unlogged, and no result Context. Reporting is the
// caller's or the observer's job. Starting the same Process twice
// returns ErrAlreadyStarted.
//
// For examples, see the /examples directory or the project README.
package trilho
