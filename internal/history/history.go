package history

import (
	"errors"

	"github.com/petrijr/trilho/pkg/api"
)

// ErrRunNotFound is returned when a run record is not found.
var ErrRunNotFound = errors.New("run not found")

// Filter selects run records from a store. Zero values mean "no filter"
// for that field.
type Filter struct {
	// Name, if non-empty, limits results to runs of the given process.
	Name string

	// Status, if non-empty, limits results to runs with the given status.
	Status api.Status
}

// Store persists finished run records. The engine writes a record once,
// when a run reaches a terminal status; stores never see in-flight
// state.
type Store interface {
	SaveRun(run *api.Run) error
	GetRun(id string) (*api.Run, error)
	ListRuns(filter Filter) ([]*api.Run, error)
}
