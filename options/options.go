// Package options defines the knobs of a single copy operation and the
// layered merge of built-in defaults, per-type configuration and call-site
// options.
//
// # Merge order
//
// Options are resolved per copied record:
//  1. built-in defaults (Defaults)
//  2. options configured for the record's model type
//  3. options passed by the caller, or the relationship sub-options of the
//     parent record (highest)
//
// A later layer replaces whole fields of an earlier one; sets and maps are not
// unioned. Passing an empty, non-nil slice clears a configured set.
package options

import (
	"slices"

	"record-copier/record"
)

// CopyOptions controls one copy operation.
type CopyOptions struct {
	// IgnoreAttributes are attributes and relationships that are not copied at all.
	IgnoreAttributes []string `yaml:"ignore_attributes,omitempty" toml:"ignore_attributes,omitempty"`
	// OtherAttributes are extra properties, not declared in the schema, copied verbatim.
	OtherAttributes []string `yaml:"other_attributes,omitempty" toml:"other_attributes,omitempty"`
	// CopyByReference are attributes and relationships shared with the source instead of cloned.
	CopyByReference []string `yaml:"copy_by_reference,omitempty" toml:"copy_by_reference,omitempty"`
	// Overwrite forces literal values, bypassing all other copy logic for those names.
	Overwrite map[string]any `yaml:"overwrite,omitempty" toml:"overwrite,omitempty"`
	// Relationships holds per-relationship sub-options.
	Relationships map[string]RelationshipOptions `yaml:"relationships,omitempty" toml:"relationships,omitempty"`
	// CreateAsModel creates the clone through the store. Defaults to true.
	CreateAsModel *bool `yaml:"create_as_model,omitempty" toml:"create_as_model,omitempty"`
	// ObjectDefinition builds the clone when CreateAsModel is false.
	ObjectDefinition func() record.Clone `yaml:"-" toml:"-"`
	// Trace, when set, receives the intermediate property maps of every copied record.
	Trace *Trace `yaml:"-" toml:"-"`
}

// RelationshipOptions are the options used for the records of one relationship.
type RelationshipOptions struct {
	// Deep overrides the ambient deep flag for this relationship.
	Deep *bool `yaml:"deep,omitempty" toml:"deep,omitempty"`

	CopyOptions `yaml:",inline"`
}

// Bool returns a pointer to b, for the optional flags.
func Bool(b bool) *bool { return &b }

// Defaults returns the built-in options.
func Defaults() CopyOptions {
	return CopyOptions{
		IgnoreAttributes: []string{},
		OtherAttributes:  []string{},
		CopyByReference:  []string{},
		Overwrite:        map[string]any{},
		Relationships:    map[string]RelationshipOptions{},
		CreateAsModel:    Bool(true),
	}
}

// Merge layers opts on top of the built-in defaults. Nil layers are skipped.
func Merge(layers ...*CopyOptions) CopyOptions {
	out := Defaults()
	for _, layer := range layers {
		if layer == nil {
			continue
		}

		if layer.IgnoreAttributes != nil {
			out.IgnoreAttributes = layer.IgnoreAttributes
		}
		if layer.OtherAttributes != nil {
			out.OtherAttributes = layer.OtherAttributes
		}
		if layer.CopyByReference != nil {
			out.CopyByReference = layer.CopyByReference
		}
		if layer.Overwrite != nil {
			out.Overwrite = layer.Overwrite
		}
		if layer.Relationships != nil {
			out.Relationships = layer.Relationships
		}
		if layer.CreateAsModel != nil {
			out.CreateAsModel = layer.CreateAsModel
		}
		if layer.ObjectDefinition != nil {
			out.ObjectDefinition = layer.ObjectDefinition
		}
		if layer.Trace != nil {
			out.Trace = layer.Trace
		}
	}

	return out
}

// Ignores reports whether name is excluded from the copy.
func (o CopyOptions) Ignores(name string) bool {
	return slices.Contains(o.IgnoreAttributes, name)
}

// ByReference reports whether name is shared instead of cloned.
func (o CopyOptions) ByReference(name string) bool {
	return slices.Contains(o.CopyByReference, name)
}

// Overwritten returns the forced value for name. A present key with a nil
// value still counts as an overwrite.
func (o CopyOptions) Overwritten(name string) (any, bool) {
	v, ok := o.Overwrite[name]
	return v, ok
}

// AsModel reports whether the clone is created through the store.
func (o CopyOptions) AsModel() bool {
	return o.CreateAsModel == nil || *o.CreateAsModel
}

// Relationship returns the sub-options for the records of relationship name
// and the deep flag to copy them with. The deep flag falls back to ambient.
func (o CopyOptions) Relationship(name string, ambient bool) (*CopyOptions, bool) {
	rel, ok := o.Relationships[name]
	if !ok {
		return nil, ambient
	}

	deep := ambient
	if rel.Deep != nil {
		deep = *rel.Deep
	}

	sub := rel.CopyOptions

	return &sub, deep
}
