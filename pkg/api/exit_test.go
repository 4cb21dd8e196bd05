package api

import (
	"context"
	"errors"
	"testing"
)

func TestAsExitRecognizesBothForms(t *testing.T) {
	if _, ok := AsExit(Exit); !ok {
		t.Fatal("Exit should be recognized as an exit result")
	}

	fields, ok := AsExit(ExitWith(Fields{"reason": "done"}))
	if !ok {
		t.Fatal("ExitWith should be recognized as an exit result")
	}
	if fields["reason"] != "done" {
		t.Fatalf("expected payload to carry reason, got %v", fields)
	}

	if _, ok := AsExit(Fields{"reason": "done"}); ok {
		t.Fatal("plain Fields must never read as an exit result")
	}
	if _, ok := AsExit(nil); ok {
		t.Fatal("nil result must never read as an exit result")
	}
}

func TestApplyMergesAndReportsExit(t *testing.T) {
	c := Context{"a": 1}

	if exited := Apply(c, Fields{"b": 2, "a": 3}); exited {
		t.Fatal("Fields must not request termination")
	}
	if c["a"] != 3 || c["b"] != 2 {
		t.Fatalf("expected overwrite-on-collision merge, got %v", c)
	}

	if exited := Apply(c, nil); exited {
		t.Fatal("nil result must not request termination")
	}
	if len(c) != 2 {
		t.Fatalf("nil result must not modify the context, got %v", c)
	}

	if exited := Apply(c, ExitWith(Fields{"reason": "x"})); !exited {
		t.Fatal("exit result must request termination")
	}
	if c["reason"] != "x" {
		t.Fatalf("exit payload must merge, got %v", c)
	}
}

func TestRunSequenceAccumulatesDelta(t *testing.T) {
	defs := FlattenSteps(
		mark("a"),
		StepFunc(func(ctx context.Context, c Context) (Result, error) {
			if c["a"] != true {
				t.Fatal("later steps must see earlier branch results")
			}
			return Fields{"b": 2}, nil
		}),
	)

	delta, exited, err := RunSequence(context.Background(), defs, Context{"seed": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exited {
		t.Fatal("no step requested termination")
	}
	if delta["a"] != true || delta["b"] != 2 {
		t.Fatalf("expected delta to hold both contributions, got %v", delta)
	}
	if _, ok := delta["seed"]; ok {
		t.Fatal("delta must not echo the base context")
	}
}

func TestRunSequenceStopsOnExit(t *testing.T) {
	ran := false
	defs := FlattenSteps(
		StepFunc(func(ctx context.Context, c Context) (Result, error) {
			return ExitWith(Fields{"reason": "stop"}), nil
		}),
		StepFunc(func(ctx context.Context, c Context) (Result, error) {
			ran = true
			return nil, nil
		}),
	)

	delta, exited, err := RunSequence(context.Background(), defs, Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exited {
		t.Fatal("expected termination to be reported")
	}
	if ran {
		t.Fatal("steps after the exit must not run")
	}
	if delta["reason"] != "stop" {
		t.Fatalf("expected exit payload in delta, got %v", delta)
	}
}

func TestRunSequencePropagatesErrorUnmodified(t *testing.T) {
	boom := errors.New("boom")
	defs := FlattenSteps(StepFunc(func(ctx context.Context, c Context) (Result, error) {
		return nil, boom
	}))

	_, _, err := RunSequence(context.Background(), defs, Context{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the original error, got %v", err)
	}
}

func TestRunSequenceHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	defs := FlattenSteps(mark("a"))

	_, _, err := RunSequence(ctx, defs, Context{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
