package history

import (
	"sync"

	"github.com/petrijr/trilho/pkg/api"
)

// InMemoryStore is a simple, goroutine-safe Store backed by a map.
// Records do not survive the process; use SQLiteStore for durability.
type InMemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*api.Run
}

// NewInMemoryStore creates a new InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		runs: make(map[string]*api.Run),
	}
}

// Ensure InMemoryStore implements the interface.
var _ Store = (*InMemoryStore)(nil)

func (s *InMemoryStore) SaveRun(run *api.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return nil
}

func (s *InMemoryStore) GetRun(id string) (*api.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}

	return run, nil
}

func (s *InMemoryStore) ListRuns(filter Filter) ([]*api.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var runs []*api.Run
	for _, run := range s.runs {
		if filter.Name != "" && run.Name != filter.Name {
			continue
		}
		if filter.Status != "" && run.Status != filter.Status {
			continue
		}
		runs = append(runs, run)
	}

	return runs, nil
}
