package copier

import (
	"sync"

	"record-copier/internal/diagnostic"
	"record-copier/record"
	"record-copier/transform"
)

// Session is the state of one top-level copy.
type Session struct {
	mu      sync.Mutex
	copies  map[string]record.Clone
	created []record.Record

	transforms *transform.Cache
	diags      *diagnostic.Diagnostics
}

func newSession(provider transform.Provider) *Session {
	return &Session{
		copies:     make(map[string]record.Clone),
		transforms: transform.NewCache(provider),
		diags:      &diagnostic.Diagnostics{},
	}
}

// allocation is the result of allocating a clone target.
type allocation struct {
	clone   record.Clone
	managed record.Record // set when the store created the clone
}

// claim returns the clone registered for identity, or allocates and registers
// a new one. The check and the registration happen under one lock, so two
// concurrent copies of the same record always share a clone.
func (s *Session) claim(identity string, allocate func() (allocation, error)) (record.Clone, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if clone, ok := s.copies[identity]; ok {
		return clone, true, nil
	}

	a, err := allocate()
	if a.managed != nil {
		s.created = append(s.created, a.managed)
	}
	if err != nil {
		return nil, false, err
	}

	s.copies[identity] = a.clone

	return a.clone, false, nil
}

// Len returns the number of clones registered in the session.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.copies)
}

// managed returns the store-created clones in creation order.
func (s *Session) managed() []record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]record.Record, len(s.created))
	copy(out, s.created)

	return out
}

// identities maps every source identity to a description of its clone.
func (s *Session) identities() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.copies))
	for id, clone := range s.copies {
		if rec, ok := clone.(record.Record); ok {
			out[id] = record.Describe(rec)
		} else {
			out[id] = "object"
		}
	}

	return out
}
