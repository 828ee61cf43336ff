package memory

import (
	"record-copier/record"
)

// AttributeDef declares one attribute of a model.
type AttributeDef struct {
	Name    string         `yaml:"name"`
	Type    string         `yaml:"type,omitempty"`
	Options map[string]any `yaml:"options,omitempty"`
}

// RelationshipDef declares one relationship of a model.
type RelationshipDef struct {
	Name string                  `yaml:"name"`
	Kind record.RelationshipKind `yaml:"kind"`
	Type string                  `yaml:"type"`
}

// Model declares the attributes and relationships of one record type.
type Model struct {
	Attributes    []AttributeDef    `yaml:"attributes,omitempty"`
	Relationships []RelationshipDef `yaml:"relationships,omitempty"`
	// Copyable set to false makes records of the model be shared instead of cloned.
	Copyable *bool `yaml:"copyable,omitempty"`
}

// Schema holds the models of a store and implements record.Schema.
// Attributes and relationships are enumerated in declaration order.
type Schema struct {
	Models map[string]Model `yaml:"models"`
}

// EachAttribute implements record.Schema.
func (s *Schema) EachAttribute(rec record.Record, fn func(name string, meta record.AttributeMeta)) {
	model, ok := s.Models[rec.ModelName()]
	if !ok {
		return
	}

	for _, attr := range model.Attributes {
		fn(attr.Name, record.AttributeMeta{Type: attr.Type, Options: attr.Options})
	}
}

// EachRelationship implements record.Schema.
func (s *Schema) EachRelationship(rec record.Record, fn func(name string, meta record.RelationshipMeta)) {
	model, ok := s.Models[rec.ModelName()]
	if !ok {
		return
	}

	for _, rel := range model.Relationships {
		fn(rel.Name, record.RelationshipMeta{Kind: rel.Kind, Type: rel.Type})
	}
}

func (s *Schema) relationship(model, name string) (RelationshipDef, bool) {
	for _, rel := range s.Models[model].Relationships {
		if rel.Name == name {
			return rel, true
		}
	}

	return RelationshipDef{}, false
}

func (s *Schema) copyable(model string) bool {
	m := s.Models[model].Copyable
	return m == nil || *m
}

// PropertyNames returns the attribute then relationship names of model.
func (s *Schema) PropertyNames(model string) []string {
	m := s.Models[model]
	names := make([]string, 0, len(m.Attributes)+len(m.Relationships))
	for _, attr := range m.Attributes {
		names = append(names, attr.Name)
	}
	for _, rel := range m.Relationships {
		names = append(names, rel.Name)
	}

	return names
}

// RelationshipType returns the related model of relationship name on model.
func (s *Schema) RelationshipType(model, name string) (string, bool) {
	rel, ok := s.relationship(model, name)
	return rel.Type, ok
}
