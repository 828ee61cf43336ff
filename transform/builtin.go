package transform

import (
	"fmt"
	"reflect"
	"time"

	"gopkg.in/yaml.v3"
)

// Passthrough returns values unchanged. Used for primitive attribute types.
func Passthrough() Transform {
	identity := func(v any, _ map[string]any) (any, error) { return v, nil }
	return Funcs{SerializeFunc: identity, DeserializeFunc: identity}
}

// Date serializes time values as RFC 3339 strings with nanoseconds.
func Date() Transform { return dateTransform{} }

// Object serializes structured values as YAML documents and decodes them back
// as map[string]any. Floats stay floats, whole numbers included.
func Object() Transform { return yamlTransform{decode: func() any { return map[string]any{} }} }

// Array serializes sequences as YAML documents and decodes them back as []any.
func Array() Transform { return yamlTransform{decode: func() any { return []any{} }} }

type dateTransform struct{}

func (dateTransform) Serialize(value any, _ map[string]any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return v.Format(time.RFC3339Nano), nil
	case string:
		return v, nil
	default:
		return nil, fmt.Errorf("date: unsupported value of type %T", value)
	}
}

func (dateTransform) Deserialize(wire any, _ map[string]any) (any, error) {
	switch v := wire.(type) {
	case nil:
		return nil, nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("date: unsupported wire value of type %T", wire)
	}
}

type yamlTransform struct {
	decode func() any
}

func (t yamlTransform) Serialize(value any, _ map[string]any) (any, error) {
	if value == nil {
		return nil, nil
	}

	var node yaml.Node
	if err := node.Encode(value); err != nil {
		return nil, err
	}
	tagFloats(&node, reflect.ValueOf(value))

	data, err := yaml.Marshal(&node)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// tagFloats marks the scalars encoded from float values as !!float, so a
// whole number such as 1.0 decodes back as float64 rather than int.
func tagFloats(n *yaml.Node, v reflect.Value) {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return
	}

	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		if n.Kind == yaml.ScalarNode {
			n.Tag = "!!float"
		}
	case reflect.Slice, reflect.Array:
		if n.Kind != yaml.SequenceNode {
			return
		}
		for i, item := range n.Content {
			if i < v.Len() {
				tagFloats(item, v.Index(i))
			}
		}
	case reflect.Map:
		keyType := v.Type().Key()
		if n.Kind != yaml.MappingNode || keyType.Kind() != reflect.String {
			return
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := reflect.ValueOf(n.Content[i].Value).Convert(keyType)
			tagFloats(n.Content[i+1], v.MapIndex(key))
		}
	}
}

func (t yamlTransform) Deserialize(wire any, _ map[string]any) (any, error) {
	var data []byte
	switch v := wire.(type) {
	case nil:
		return nil, nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil, fmt.Errorf("unsupported wire value of type %T", wire)
	}

	switch out := t.decode().(type) {
	case map[string]any:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return out, nil
	case []any:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported decode target %T", out)
	}
}
