// Package transform provides the value transforms used to clone non-primitive
// attribute values.
//
// A value is cloned by serializing it and deserializing the result, which
// yields a new instance instead of an alias of the source value. Transforms
// are looked up by declared attribute type through a Provider; the Registry
// is the built-in Provider and Cache scopes resolved instances to one copy
// session.
package transform

import (
	"errors"
	"fmt"

	"record-copier/record"
)

var ErrUnknownTransform = errors.New("no transform registered for attribute type")

// Transform converts an attribute value to and from its serialized form.
type Transform interface {
	Serialize(value any, attrOpts map[string]any) (any, error)
	Deserialize(wire any, attrOpts map[string]any) (any, error)
}

// Provider resolves the transform for a declared attribute type.
type Provider interface {
	Transform(rec record.Record, attrType string) (Transform, error)
}

// Funcs adapts a pair of functions to Transform.
type Funcs struct {
	SerializeFunc   func(value any, attrOpts map[string]any) (any, error)
	DeserializeFunc func(wire any, attrOpts map[string]any) (any, error)
}

func (f Funcs) Serialize(value any, attrOpts map[string]any) (any, error) {
	return f.SerializeFunc(value, attrOpts)
}

func (f Funcs) Deserialize(wire any, attrOpts map[string]any) (any, error) {
	return f.DeserializeFunc(wire, attrOpts)
}

// Clone round-trips value through t, returning an independent instance.
func Clone(t Transform, value any, attrOpts map[string]any) (any, error) {
	wire, err := t.Serialize(value, attrOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize: %w", err)
	}

	out, err := t.Deserialize(wire, attrOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize: %w", err)
	}

	return out, nil
}
