package options

import "sync"

// Snapshot holds the intermediate property maps built while copying one record.
type Snapshot struct {
	Attributes    map[string]any
	Relationships map[string]any
	Final         map[string]any
}

// Trace collects snapshots keyed by source identity. It is safe for concurrent use.
type Trace struct {
	mu        sync.Mutex
	snapshots map[string]Snapshot
}

// NewTrace returns an empty trace.
func NewTrace() *Trace {
	return &Trace{snapshots: map[string]Snapshot{}}
}

// Record stores the snapshot for a source identity.
func (t *Trace) Record(identity string, snap Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.snapshots == nil {
		t.snapshots = map[string]Snapshot{}
	}
	t.snapshots[identity] = snap
}

// Lookup returns the snapshot recorded for a source identity.
func (t *Trace) Lookup(identity string) (Snapshot, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap, ok := t.snapshots[identity]
	return snap, ok
}

// Len returns the number of recorded snapshots.
func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.snapshots)
}
