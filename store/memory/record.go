package memory

import (
	"context"
	"fmt"
	"sync"

	"record-copier/record"
)

// Record is a record held by a Store.
type Record struct {
	store *Store
	id    string
	model string

	mu        sync.RWMutex
	props     map[string]any
	belongsTo map[string]*Record
	hasMany   map[string][]*Record
	unloaded  bool
}

func newRecord(store *Store, id, model string) *Record {
	return &Record{
		store:     store,
		id:        id,
		model:     model,
		props:     make(map[string]any),
		belongsTo: make(map[string]*Record),
		hasMany:   make(map[string][]*Record),
	}
}

// Identity implements record.Record.
func (r *Record) Identity() string { return r.id }

// ModelName implements record.Record.
func (r *Record) ModelName() string { return r.model }

// IsCopyable implements record.Marker.
func (r *Record) IsCopyable() bool { return r.store.schema.copyable(r.model) }

// Unloaded reports whether the record was removed from its store.
func (r *Record) Unloaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.unloaded
}

// Get implements record.Record. Properties never set read as nil.
func (r *Record) Get(_ context.Context, name string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rel, ok := r.store.schema.relationship(r.model, name)
	if !ok {
		return r.props[name], nil
	}

	switch rel.Kind {
	case record.KindToOne:
		if related := r.belongsTo[name]; related != nil {
			return related, nil
		}
		return nil, nil
	default:
		members := r.hasMany[name]
		out := make([]record.Record, len(members))
		for i, m := range members {
			out[i] = m
		}
		return out, nil
	}
}

// MustGet is Get for tests and fixtures; it never fails for memory records.
func (r *Record) MustGet(name string) any {
	v, _ := r.Get(context.Background(), name)
	return v
}

// SetProperties implements record.Clone. Relationship values must be records
// of the same store.
func (r *Record) SetProperties(_ context.Context, props map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, value := range props {
		rel, ok := r.store.schema.relationship(r.model, name)
		if !ok {
			r.props[name] = value
			continue
		}

		switch rel.Kind {
		case record.KindToOne:
			related, err := asMember(value)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", r.model, name, err)
			}
			r.belongsTo[name] = related
		default:
			members, err := asMembers(value)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", r.model, name, err)
			}
			r.hasMany[name] = members
		}
	}

	return nil
}

func asMember(value any) (*Record, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *Record:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: expected a memory record, got %T", ErrForeignRecord, value)
	}
}

func asMembers(value any) ([]*Record, error) {
	var items []any
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []*Record:
		return append([]*Record(nil), v...), nil
	case []record.Record:
		for _, item := range v {
			items = append(items, item)
		}
	case []record.Clone:
		for _, item := range v {
			items = append(items, item)
		}
	case []any:
		items = v
	default:
		return nil, fmt.Errorf("%w: expected a list of memory records, got %T", ErrForeignRecord, value)
	}

	out := make([]*Record, 0, len(items))
	for _, item := range items {
		m, err := asMember(item)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}
