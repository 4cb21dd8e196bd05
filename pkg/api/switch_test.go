package api

import (
	"context"
	"errors"
	"testing"
)

func TestSwitchSelectsMatchingBranch(t *testing.T) {
	step := Switch("k", Branches{
		"a": mark("ranA"),
		"b": mark("ranB"),
	})

	ctx := context.Background()

	res, err := step(ctx, Context{"k": "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields, ok := res.(Fields)
	if !ok || fields["ranA"] != true {
		t.Fatalf("expected branch a result, got %v", res)
	}
	if _, ok := fields["ranB"]; ok {
		t.Fatalf("branch b must not run, got %v", fields)
	}
}

func TestSwitchMatchesNonStringKeys(t *testing.T) {
	step := Switch("n", Branches{
		1:    mark("one"),
		true: mark("yes"),
	})

	ctx := context.Background()

	res, err := step(ctx, Context{"n": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields, _ := res.(Fields); fields["one"] != true {
		t.Fatalf("expected integer branch to match, got %v", res)
	}

	res, err = step(ctx, Context{"n": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields, _ := res.(Fields); fields["yes"] != true {
		t.Fatalf("expected boolean branch to match, got %v", res)
	}
}

func TestSwitchFallsThroughOnNoMatch(t *testing.T) {
	step := Switch("k", Branches{"v1": mark("ran")})

	ctx := context.Background()

	for _, c := range []Context{
		{"k": "other"},
		{},
		{"k": nil},
		{"k": []string{"un", "comparable"}},
	} {
		res, err := step(ctx, c)
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", c, err)
		}
		if res != nil {
			t.Fatalf("expected no-op result for %v, got %v", c, res)
		}
	}
}

func TestSwitchBranchStepsShareResults(t *testing.T) {
	step := Switch("k", Branches{
		"go": Group{
			mark("first"),
			StepFunc(func(ctx context.Context, c Context) (Result, error) {
				if c["first"] != true {
					t.Fatal("second branch step must see the first's result")
				}
				if c["seed"] != 1 {
					t.Fatal("branch steps must see the outer context")
				}
				return Fields{"second": true}, nil
			}),
		},
	})

	res, err := step(context.Background(), Context{"k": "go", "seed": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fields, _ := res.(Fields)
	if fields["first"] != true || fields["second"] != true {
		t.Fatalf("expected both branch contributions, got %v", res)
	}
}

func TestSwitchSurfacesBranchExit(t *testing.T) {
	step := Switch("k", Branches{
		"stop": Group{
			mark("cleanup"),
			StepFunc(func(ctx context.Context, c Context) (Result, error) {
				return ExitWith(Fields{"reason": "halted"}), nil
			}),
		},
	})

	res, err := step(context.Background(), Context{"k": "stop"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fields, ok := AsExit(res)
	if !ok {
		t.Fatalf("expected the switch to surface the branch exit, got %v", res)
	}
	if fields["cleanup"] != true || fields["reason"] != "halted" {
		t.Fatalf("expected exit payload to include branch results, got %v", fields)
	}
}

func TestSwitchPropagatesBranchError(t *testing.T) {
	boom := errors.New("branch failure")
	step := Switch("k", Branches{
		"bad": StepFunc(func(ctx context.Context, c Context) (Result, error) {
			return nil, boom
		}),
	})

	_, err := step(context.Background(), Context{"k": "bad"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the original branch error, got %v", err)
	}
}

func TestSwitchNoopBranch(t *testing.T) {
	step := Switch("k", Branches{"skip": Noop})

	res, err := step(context.Background(), Context{"k": "skip"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields, _ := res.(Fields); len(fields) != 0 {
		t.Fatalf("expected empty contribution from Noop branch, got %v", res)
	}
}
