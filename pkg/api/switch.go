package api

import (
	"context"
	"reflect"
)

// Branches maps a discrete Context value to the Step (or Group of
// steps) that runs when Switch finds that value under the inspected
// key. Matching is exact equality against comparable values (strings,
// numbers, booleans), not pattern or range matching.
type Branches map[any]Step

// Switch returns a step that reads c[key] at run time and executes the
// matching branch in place, with the same sequential, result-merging,
// exit-propagating semantics as the surrounding run: later branch steps
// see earlier branch results, and an Exit inside the branch terminates
// the entire outer run, not just the branch.
//
// When no branch matches, the step is a no-op and control falls through
// to whatever follows the switch. Branch step lists are flattened once,
// when Switch is called. The selector never inspects keys other than
// key.
func Switch(key string, branches Branches) StepFunc {
	flat := make(map[any][]StepDefinition, len(branches))
	for match, step := range branches {
		flat[match] = step.Flatten()
	}

	return func(ctx context.Context, c Context) (Result, error) {
		v := c[key]
		if v != nil && !reflect.TypeOf(v).Comparable() {
			// An uncomparable value cannot equal a discrete branch key.
			return nil, nil
		}

		defs, ok := flat[v]
		if !ok {
			return nil, nil
		}

		delta, exited, err := RunSequence(ctx, defs, c)
		if err != nil {
			return nil, err
		}
		if exited {
			return ExitWith(delta), nil
		}
		return delta, nil
	}
}
