package history

import (
	"errors"
	"testing"
	"time"

	"github.com/petrijr/trilho/pkg/api"
)

func sampleRun(id, name string, status api.Status) *api.Run {
	now := time.Now()
	return &api.Run{
		ID:         id,
		Name:       name,
		Status:     status,
		Input:      api.Context{"seed": 1},
		Output:     api.Context{"seed": 1, "done": true},
		StartedAt:  now,
		FinishedAt: now.Add(time.Millisecond),
		Steps:      2,
	}
}

func TestInMemoryStoreSaveAndGet(t *testing.T) {
	store := NewInMemoryStore()

	run := sampleRun("r1", "checkout", api.StatusCompleted)
	if err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	got, err := store.GetRun("r1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Name != "checkout" || got.Status != api.StatusCompleted {
		t.Fatalf("unexpected run: %+v", got)
	}

	if _, err := store.GetRun("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestInMemoryStoreListFilters(t *testing.T) {
	store := NewInMemoryStore()

	runs := []*api.Run{
		sampleRun("r1", "checkout", api.StatusCompleted),
		sampleRun("r2", "checkout", api.StatusExited),
		sampleRun("r3", "signup", api.StatusCompleted),
		sampleRun("r4", "signup", api.StatusFailed),
	}
	for _, run := range runs {
		if err := store.SaveRun(run); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	all, err := store.ListRuns(Filter{})
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 runs, got %d", len(all))
	}

	checkouts, err := store.ListRuns(Filter{Name: "checkout"})
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(checkouts) != 2 {
		t.Fatalf("expected 2 checkout runs, got %d", len(checkouts))
	}

	failed, err := store.ListRuns(Filter{Status: api.StatusFailed})
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(failed) != 1 || failed[0].ID != "r4" {
		t.Fatalf("expected only r4, got %v", failed)
	}

	both, err := store.ListRuns(Filter{Name: "checkout", Status: api.StatusExited})
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(both) != 1 || both[0].ID != "r2" {
		t.Fatalf("expected only r2, got %v", both)
	}
}
