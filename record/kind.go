package record

import "fmt"

type RelationshipKind int

const (
	_ RelationshipKind = iota // skip zero value, it marks an unknown kind

	KindToOne
	KindToMany

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// String returns the schema spelling of the kind.
func (k RelationshipKind) String() string {
	switch k {
	case KindToOne:
		return "belongsTo"
	case KindToMany:
		return "hasMany"
	default:
		return "unknown"
	}
}

// ParseRelationshipKind accepts both schema spellings ("belongsTo", "hasMany")
// and descriptive ones ("to-one", "to-many").
func ParseRelationshipKind(s string) (RelationshipKind, error) {
	switch s {
	case "belongsTo", "to-one", "one":
		return KindToOne, nil
	case "hasMany", "to-many", "many":
		return KindToMany, nil
	default:
		return 0, fmt.Errorf("unknown relationship kind %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *RelationshipKind) UnmarshalText(text []byte) error {
	parsed, err := ParseRelationshipKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k RelationshipKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
