package record

import (
	"context"
	"errors"
	"reflect"
)

var (
	ErrLinkUnsupported = errors.New("relationship link is not supported")
	ErrUnknownProperty = errors.New("unknown property")
)

// Record is a node of the source graph.
type Record interface {
	// Identity is the unique runtime identity of the record.
	Identity() string
	// ModelName is the schema type of the record.
	ModelName() string
	// Get reads an attribute, a relationship or any other property.
	//
	// To-one relationships return a Record (or nil), to-many relationships
	// return an ordered []Record. Reading a relationship may block.
	Get(ctx context.Context, name string) (any, error)
}

// Clone is the target of a copy: anything accepting bulk property assignment.
type Clone interface {
	SetProperties(ctx context.Context, props map[string]any) error
}

// Copyable is implemented by attribute values which know how to copy themselves,
// e.g. embedded structured fragments.
type Copyable interface {
	Copy(ctx context.Context, deep bool) (any, error)
}

// Store creates and unloads managed records.
type Store interface {
	CreateRecord(ctx context.Context, modelName string) (Record, error)
	UnloadRecord(ctx context.Context, rec Record) error

	// LinkExistingMembers adds the members of source's relationship name into
	// target's own relationship state without loading them through Get.
	// Returns ErrLinkUnsupported when the link cannot be made.
	LinkExistingMembers(ctx context.Context, target Record, name string, kind RelationshipKind, source Record) error
}

// Schema enumerates the attributes and relationships of a record.
type Schema interface {
	EachAttribute(rec Record, fn func(name string, meta AttributeMeta))
	EachRelationship(rec Record, fn func(name string, meta RelationshipMeta))
}

// AttributeMeta describes a declared attribute. Type is empty for untyped attributes.
type AttributeMeta struct {
	Type    string
	Options map[string]any
}

// RelationshipMeta describes a declared relationship.
type RelationshipMeta struct {
	Kind RelationshipKind
	Type string
}

// Object is the bare clone used when neither a model nor an object factory is requested.
type Object map[string]any

// SetProperties implements Clone.
func (o Object) SetProperties(_ context.Context, props map[string]any) error {
	for k, v := range props {
		o[k] = v
	}

	return nil
}

// Marker lets a record opt out of being cloned. Records without it are copyable.
type Marker interface {
	IsCopyable() bool
}

// IsNil reports whether rec is nil, including a typed nil pointer held in
// the interface.
func IsNil(rec Record) bool {
	if rec == nil {
		return true
	}

	v := reflect.ValueOf(rec)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// AsCopyable reports whether v is a record the engine may clone.
func AsCopyable(v any) (Record, bool) {
	rec, ok := v.(Record)
	if !ok || IsNil(rec) {
		return nil, false
	}

	if m, ok := v.(Marker); ok && !m.IsCopyable() {
		return nil, false
	}

	return rec, true
}

// AsCopyableList reports whether v is a non-empty to-many value whose members
// are all copyable records, and returns them in order.
func AsCopyableList(v any) ([]Record, bool) {
	var members []Record
	switch list := v.(type) {
	case []Record:
		members = list
	case []any:
		members = make([]Record, 0, len(list))
		for _, item := range list {
			rec, ok := item.(Record)
			if !ok {
				return nil, false
			}
			members = append(members, rec)
		}
	default:
		return nil, false
	}

	if len(members) == 0 {
		return nil, false
	}

	for _, m := range members {
		if _, ok := AsCopyable(m); !ok {
			return nil, false
		}
	}

	return members, true
}

// Describe renders a record as "Model:identity" for messages.
func Describe(rec Record) string {
	if IsNil(rec) {
		return "<nil>"
	}

	return rec.ModelName() + ":" + rec.Identity()
}
