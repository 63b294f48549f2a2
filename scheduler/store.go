// Package scheduler runs non-preemptive CPU scheduling policies over
// partitioned process queues and assembles their waiting-time results.
package scheduler

import "github.com/Gthulhu/schedsim/domain"

// ProcessStore keeps process records in input order. Ids are assigned
// sequentially from 1 as records are added.
type ProcessStore struct {
	processes []domain.Process
}

func NewProcessStore(specs ...domain.ProcessSpec) *ProcessStore {
	s := &ProcessStore{processes: make([]domain.Process, 0, len(specs))}
	for _, spec := range specs {
		s.Add(spec)
	}
	return s
}

// Add appends a record and returns it with its assigned id
func (s *ProcessStore) Add(spec domain.ProcessSpec) domain.Process {
	p := domain.NewProcess(len(s.processes)+1, spec)
	s.processes = append(s.processes, p)
	return p
}

func (s *ProcessStore) Len() int {
	return len(s.processes)
}

// Processes returns a copy of the stored records
func (s *ProcessStore) Processes() []domain.Process {
	out := make([]domain.Process, len(s.processes))
	copy(out, s.processes)
	return out
}
