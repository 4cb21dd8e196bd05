package api

// exitResult is the termination sentinel. It is a dedicated type rather
// than a conventional key inside Fields, so user result objects can
// never collide with it.
type exitResult struct {
	fields Fields
}

func (exitResult) result() {}

// Exit terminates the whole run after the current step completes. It is
// used directly as a step's result:
//
//	func abort(ctx context.Context, c api.Context) (api.Result, error) {
//		return api.Exit, nil
//	}
//
// Steps after the exiting one never execute, at any nesting depth.
var Exit Result = exitResult{}

// ExitWith returns a termination result that also merges fields into
// the final Context. A nil map is equivalent to Exit.
func ExitWith(fields Fields) Result {
	return exitResult{fields: fields}
}

// AsExit reports whether r requests termination, returning the payload
// to merge.
func AsExit(r Result) (Fields, bool) {
	if ex, ok := r.(exitResult); ok {
		return ex.fields, true
	}
	return nil, false
}

// resultFields normalizes a step result into the fields to merge and
// whether the run should terminate.
func resultFields(r Result) (Fields, bool) {
	switch res := r.(type) {
	case nil:
		return nil, false
	case Fields:
		return res, false
	default:
		return AsExit(r)
	}
}
