package memory

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"record-copier/record"
)

// Fixture is the YAML description of a schema and a record graph.
//
//	models:
//	  Post:
//	    attributes:
//	      - {name: title, type: string}
//	    relationships:
//	      - {name: comments, kind: hasMany, type: Comment}
//	  Comment:
//	    relationships:
//	      - {name: post, kind: belongsTo, type: Post}
//	records:
//	  - key: a
//	    model: Post
//	    attributes: {title: x}
//	    relationships: {comments: [c1, c2]}
//	  - key: c1
//	    model: Comment
//	    relationships: {post: a}
type Fixture struct {
	Models  map[string]Model `yaml:"models"`
	Records []FixtureRecord  `yaml:"records"`
}

// FixtureRecord is one record of a fixture. Relationships reference other
// records by key: a single key for to-one, a list of keys for to-many.
type FixtureRecord struct {
	Key           string               `yaml:"key"`
	Model         string               `yaml:"model"`
	Attributes    map[string]any       `yaml:"attributes,omitempty"`
	Relationships map[string]KeyOrKeys `yaml:"relationships,omitempty"`
}

// KeyOrKeys accepts either a single key or a list of keys.
type KeyOrKeys []string

// UnmarshalYAML implements custom YAML unmarshaling for KeyOrKeys.
func (k *KeyOrKeys) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*k = KeyOrKeys{str}
		} else {
			*k = KeyOrKeys{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*k = arr

		return nil

	default:
		return fmt.Errorf("expected key or list of keys, got %v", node.Kind)
	}
}

// LoadFixture loads a YAML fixture from the given path.
func LoadFixture(path string) (*Store, map[string]*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	return ParseFixture(data)
}

// ParseFixture builds a store from YAML fixture data and returns it with the
// records indexed by fixture key.
func ParseFixture(data []byte) (*Store, map[string]*Record, error) {
	var f Fixture

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse fixture YAML: %w", err)
	}

	return f.Build()
}

// Build creates the fixture's store and records.
func (f *Fixture) Build() (*Store, map[string]*Record, error) {
	store := NewStore(&Schema{Models: f.Models})
	byKey := make(map[string]*Record, len(f.Records))

	for _, fr := range f.Records {
		if _, dup := byKey[fr.Key]; dup {
			return nil, nil, fmt.Errorf("fixture record %q: duplicate key", fr.Key)
		}

		attrs, err := fixtureAttributes(f.Models[fr.Model], fr.Attributes)
		if err != nil {
			return nil, nil, fmt.Errorf("fixture record %q: %w", fr.Key, err)
		}

		rec, err := store.Push(fr.Model, attrs)
		if err != nil {
			return nil, nil, fmt.Errorf("fixture record %q: %w", fr.Key, err)
		}
		byKey[fr.Key] = rec
	}

	for _, fr := range f.Records {
		props := make(map[string]any, len(fr.Relationships))
		for name, keys := range fr.Relationships {
			rel, ok := store.schema.relationship(fr.Model, name)
			if !ok {
				return nil, nil, fmt.Errorf("fixture record %q: %s has no relationship %q", fr.Key, fr.Model, name)
			}

			members := make([]*Record, 0, len(keys))
			for _, key := range keys {
				related, ok := byKey[key]
				if !ok {
					return nil, nil, fmt.Errorf("fixture record %q: %w: %q", fr.Key, ErrRecordNotFound, key)
				}
				members = append(members, related)
			}

			if rel.Kind == record.KindToOne {
				if len(members) > 1 {
					return nil, nil, fmt.Errorf("fixture record %q: to-one %q has %d keys", fr.Key, name, len(members))
				}
				if len(members) == 1 {
					props[name] = members[0]
				}
				continue
			}
			props[name] = members
		}

		if err := byKey[fr.Key].SetProperties(context.Background(), props); err != nil {
			return nil, nil, fmt.Errorf("fixture record %q: %w", fr.Key, err)
		}
	}

	return store, byKey, nil
}

// fixtureAttributes parses date attributes given as strings.
func fixtureAttributes(model Model, attrs map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(attrs))
	for name, value := range attrs {
		out[name] = value
	}

	for _, attr := range model.Attributes {
		if attr.Type != "date" {
			continue
		}

		s, ok := out[attr.Name].(string)
		if !ok {
			continue
		}

		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", attr.Name, err)
		}
		out[attr.Name] = t
	}

	return out, nil
}
