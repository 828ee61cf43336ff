package memory

import (
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"record-copier/record"
)

// DumpRecord is the YAML view of one record of a dumped graph. Records are
// referred to by traversal labels ("Post#1") so two graphs with different
// identities dump identically when they have the same shape.
type DumpRecord struct {
	Ref           string         `yaml:"ref"`
	Model         string         `yaml:"model"`
	Attributes    map[string]any `yaml:"attributes,omitempty"`
	Relationships map[string]any `yaml:"relationships,omitempty"`
}

// Dump walks the graph reachable from root, breadth first, in schema order.
func Dump(root *Record) []DumpRecord {
	labels := map[*Record]string{}
	counts := map[string]int{}
	label := func(r *Record) string {
		if l, ok := labels[r]; ok {
			return l
		}
		counts[r.model]++
		l := fmt.Sprintf("%s#%d", r.model, counts[r.model])
		labels[r] = l
		return l
	}

	var out []DumpRecord
	queue := []*Record{root}
	label(root)
	seen := map[*Record]bool{root: true}

	visit := func(r *Record) string {
		l := label(r)
		if !seen[r] {
			seen[r] = true
			queue = append(queue, r)
		}
		return l
	}

	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]

		r.mu.RLock()
		dr := DumpRecord{Ref: labels[r], Model: r.model}
		if len(r.props) > 0 {
			dr.Attributes = maps.Clone(r.props)
		}

		rels := map[string]any{}
		for _, def := range r.store.schema.Models[r.model].Relationships {
			switch def.Kind {
			case record.KindToOne:
				if related := r.belongsTo[def.Name]; related != nil {
					rels[def.Name] = visit(related)
				}
			default:
				if members := r.hasMany[def.Name]; len(members) > 0 {
					refs := make([]string, 0, len(members))
					for _, m := range members {
						refs = append(refs, visit(m))
					}
					rels[def.Name] = refs
				}
			}
		}
		r.mu.RUnlock()

		if len(rels) > 0 {
			dr.Relationships = rels
		}
		out = append(out, dr)
	}

	return out
}

// DumpYAML renders Dump(root) as YAML.
func DumpYAML(root *Record) ([]byte, error) {
	return yaml.Marshal(Dump(root))
}

// ModelNames returns the model names of a schema, sorted.
func (s *Schema) ModelNames() []string {
	return slices.Sorted(maps.Keys(s.Models))
}
