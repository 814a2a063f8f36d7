package tinybuf

// Kind identifies a type descriptor variant. The set is closed: every
// encodable type is one of these, and the codec dispatches on Kind with
// a single switch.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUint
	KindSint
	KindBool
	KindString
	KindList
	KindOptional
	KindRecord
)

// String returns the kind name as written in schema text.
func (k Kind) String() string {
	switch k {
	case KindUint:
		return "int"
	case KindSint:
		return "sint"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindOptional:
		return "optional"
	case KindRecord:
		return "record"
	default:
		return "invalid"
	}
}

// Type is a runtime type descriptor. Descriptors are immutable once
// built and may be shared freely across goroutines.
type Type struct {
	kind   Kind
	elem   *Type       // inner type for KindList and KindOptional
	record *RecordType // for KindRecord
}

// Scalar descriptors. Stateless, so a single shared instance each.
var (
	UintType   = &Type{kind: KindUint}
	SintType   = &Type{kind: KindSint}
	BoolType   = &Type{kind: KindBool}
	StringType = &Type{kind: KindString}
)

// ListOf returns the descriptor for a list of elem.
func ListOf(elem *Type) *Type {
	return &Type{kind: KindList, elem: elem}
}

// OptionalOf returns the descriptor for an optional elem.
func OptionalOf(elem *Type) *Type {
	return &Type{kind: KindOptional, elem: elem}
}

// Kind returns the descriptor's variant.
func (t *Type) Kind() Kind {
	return t.kind
}

// Elem returns the inner descriptor of a list or optional, nil otherwise.
func (t *Type) Elem() *Type {
	return t.elem
}

// Record returns the record type of a KindRecord descriptor, nil otherwise.
func (t *Type) Record() *RecordType {
	return t.record
}

// Equal reports structural equality: two ListOf(StringType) descriptors
// are equal regardless of identity.
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil || t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindList, KindOptional:
		return t.elem.Equal(other.elem)
	case KindRecord:
		return t.record.Equal(other.record)
	default:
		return true
	}
}

// String returns the type as it would appear in schema text, e.g.
// "optional(list(string))" or the record's name.
func (t *Type) String() string {
	switch t.kind {
	case KindList:
		return "list(" + t.elem.String() + ")"
	case KindOptional:
		return "optional(" + t.elem.String() + ")"
	case KindRecord:
		return t.record.Name()
	default:
		return t.kind.String()
	}
}
