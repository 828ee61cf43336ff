package transform

import (
	"fmt"
	"slices"
	"sync"

	"record-copier/record"
)

// Factory builds a fresh transform instance.
type Factory func() Transform

// Registry holds named transform factories and implements Provider.
// Every resolution builds a new instance, so transforms holding state are
// never shared between sessions.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry pre-populated with the built-in transforms.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.Register("string", Passthrough)
	r.Register("number", Passthrough)
	r.Register("boolean", Passthrough)
	r.Register("date", Date)
	r.Register("object", Object)
	r.Register("array", Array)

	return r
}

// NewEmptyRegistry creates a registry without any transforms.
func NewEmptyRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds or replaces the factory for an attribute type.
func (r *Registry) Register(attrType string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[attrType] = factory
}

// Has returns true if a transform is registered for the attribute type.
func (r *Registry) Has(attrType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[attrType]
	return exists
}

// Names returns all registered attribute types, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Transform implements Provider.
func (r *Registry) Transform(rec record.Record, attrType string) (Transform, error) {
	r.mu.RLock()
	factory, ok := r.factories[attrType]
	r.mu.RUnlock()

	if !ok {
		model := ""
		if rec != nil {
			model = rec.ModelName()
		}
		return nil, fmt.Errorf("%w: %q (model %q)", ErrUnknownTransform, attrType, model)
	}

	return factory(), nil
}
