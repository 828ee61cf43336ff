// Package memory is an in-memory record store with a declarative schema.
//
// It implements record.Store and record.Schema and is meant for tests,
// fixtures and tooling around the copier.
package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"record-copier/record"
)

var (
	ErrUnknownModel   = errors.New("unknown model")
	ErrForeignRecord  = errors.New("record does not belong to this store")
	ErrRecordNotFound = errors.New("record not found")
)

// Store holds records in memory. It is safe for concurrent use.
type Store struct {
	schema *Schema

	mu      sync.RWMutex
	records map[string]*Record
	order   []string
}

// NewStore creates an empty store for the given schema.
func NewStore(schema *Schema) *Store {
	if schema.Models == nil {
		schema.Models = map[string]Model{}
	}

	return &Store{
		schema:  schema,
		records: make(map[string]*Record),
	}
}

// Schema returns the schema of the store.
func (s *Store) Schema() *Schema { return s.schema }

// CreateRecord implements record.Store.
func (s *Store) CreateRecord(_ context.Context, modelName string) (record.Record, error) {
	return s.create(modelName)
}

// Push creates a record and sets its properties in one step.
func (s *Store) Push(modelName string, props map[string]any) (*Record, error) {
	rec, err := s.create(modelName)
	if err != nil {
		return nil, err
	}

	if err := rec.SetProperties(context.Background(), props); err != nil {
		_ = s.unload(rec)
		return nil, err
	}

	return rec, nil
}

func (s *Store) create(modelName string) (*Record, error) {
	if _, ok := s.schema.Models[modelName]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, modelName)
	}

	rec := newRecord(s, uuid.NewString(), modelName)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.id] = rec
	s.order = append(s.order, rec.id)

	return rec, nil
}

// UnloadRecord implements record.Store.
func (s *Store) UnloadRecord(_ context.Context, rec record.Record) error {
	mine, ok := rec.(*Record)
	if !ok || mine.store != s {
		return fmt.Errorf("%w: %s", ErrForeignRecord, record.Describe(rec))
	}

	return s.unload(mine)
}

func (s *Store) unload(rec *Record) error {
	s.mu.Lock()
	if _, ok := s.records[rec.id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrRecordNotFound, record.Describe(rec))
	}
	delete(s.records, rec.id)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == rec.id })
	s.mu.Unlock()

	rec.mu.Lock()
	rec.unloaded = true
	rec.mu.Unlock()

	return nil
}

// LinkExistingMembers implements record.Store. It copies the related records
// held in source's relationship state into target's, without going through Get.
func (s *Store) LinkExistingMembers(
	_ context.Context,
	target record.Record,
	name string,
	kind record.RelationshipKind,
	source record.Record,
) error {
	dst, ok := target.(*Record)
	if !ok || dst.store != s {
		return fmt.Errorf("%w: target %s", record.ErrLinkUnsupported, record.Describe(target))
	}

	src, ok := source.(*Record)
	if !ok || src.store != s {
		return fmt.Errorf("%w: source %s", record.ErrLinkUnsupported, record.Describe(source))
	}

	rel, ok := s.schema.relationship(dst.model, name)
	if !ok || rel.Kind != kind {
		return fmt.Errorf("%w: %s has no %s relationship %q", record.ErrLinkUnsupported, dst.model, kind, name)
	}

	if src == dst {
		return nil
	}

	src.mu.RLock()
	related := src.belongsTo[name]
	members := append([]*Record(nil), src.hasMany[name]...)
	src.mu.RUnlock()

	dst.mu.Lock()
	defer dst.mu.Unlock()

	switch kind {
	case record.KindToOne:
		dst.belongsTo[name] = related
	case record.KindToMany:
		dst.hasMany[name] = append(dst.hasMany[name], members...)
	default:
		return fmt.Errorf("%w: kind %s", record.ErrLinkUnsupported, kind)
	}

	return nil
}

// Find returns the loaded record with the given identity.
func (s *Store) Find(identity string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[identity]
	return rec, ok
}

// Records returns every loaded record in creation order.
func (s *Store) Records() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}

	return out
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}
