package primitive

// KindEnum classifies a declared attribute type.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it for untyped attributes

	KindString
	KindNumber
	KindBoolean
	KindDate
	KindObject
	KindArray
	KindCustom // any other declared type, resolved through the transform registry

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// String returns the declared type name of the kind.
func (k KindEnum) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindCustom:
		return "custom"
	default:
		return "untyped"
	}
}

// IsPrimitive reports whether values of the kind are immutable scalars,
// copied as-is instead of through a transform.
func (k KindEnum) IsPrimitive() bool {
	switch k {
	default:
		return false
	case KindString, KindNumber, KindBoolean:
		return true
	}
}

// IsTyped reports whether an attribute of the kind declares a type at all.
func (k KindEnum) IsTyped() bool {
	return k != 0
}

// FromTypeName classifies a declared attribute type name.
// An empty name means the attribute is untyped.
func FromTypeName(name string) KindEnum {
	switch name {
	case "":
		return 0
	case "string":
		return KindString
	case "number":
		return KindNumber
	case "boolean":
		return KindBoolean
	case "date":
		return KindDate
	case "object":
		return KindObject
	case "array":
		return KindArray
	default:
		return KindCustom
	}
}
