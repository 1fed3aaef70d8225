package fluxbridge

// TypeKind discriminates the variants of a TypeValue on the wire.
type TypeKind string

const (
	KindBasic      TypeKind = "basic"
	KindVar        TypeKind = "var"
	KindArray      TypeKind = "array"
	KindVector     TypeKind = "vector"
	KindStream     TypeKind = "stream"
	KindDictionary TypeKind = "dictionary"
	KindRecord     TypeKind = "record"
	KindFunction   TypeKind = "function"
	KindDynamic    TypeKind = "dynamic"
	KindUnknown    TypeKind = "unknown"
)

// Valid reports whether k is one of the declared kinds.
func (k TypeKind) Valid() bool {
	switch k {
	case KindBasic, KindVar, KindArray, KindVector, KindStream, KindDictionary,
		KindRecord, KindFunction, KindDynamic, KindUnknown:
		return true
	}
	return false
}

// TypeValue is the boundary representation of an inferred monotype.
//
// It is decoupled from the frontend's own type representation: Kind selects
// the variant, Name is set for basic types, Var for type variables, and Text
// always holds the frontend's rendering of the type.
type TypeValue struct {
	Kind TypeKind `json:"kind"`
	Name string   `json:"name,omitempty"`
	Var  *uint64  `json:"var,omitempty"`
	Text string   `json:"text"`

	// Unresolved is only ever set on the value returned by UnresolvedType.
	Unresolved bool `json:"unresolved,omitempty"`
}

// UnresolvedType returns the sentinel reported when a variable is not bound
// or its type cannot be inferred. It is the free type variable 0, flagged as
// unresolved so it cannot be mistaken for an inferred type variable.
func UnresolvedType() TypeValue {
	var v uint64
	return TypeValue{
		Kind:       KindVar,
		Var:        &v,
		Text:       "A",
		Unresolved: true,
	}
}

// IsUnresolved reports whether t is the unresolved sentinel.
func (t TypeValue) IsUnresolved() bool {
	return t.Unresolved
}

// BasicType returns the value describing the named basic type, e.g. "int".
func BasicType(name string) TypeValue {
	return TypeValue{Kind: KindBasic, Name: name, Text: name}
}
