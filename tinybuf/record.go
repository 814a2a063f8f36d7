package tinybuf

import (
	"fmt"
	"strconv"
)

// FieldSpec declares one record field: a numeric wire key, an
// application-facing name, and the field's type. Keys and names are each
// unique within a record; only the key appears on the wire.
type FieldSpec struct {
	Key  uint64
	Name string
	Type *Type
}

// RecordType is a named, ordered set of field specifications. It is
// built once, at schema-load time, and immutable afterwards; any number
// of goroutines may encode and decode through it concurrently.
type RecordType struct {
	name   string
	fields []FieldSpec
	typ    *Type
}

// NewRecordType builds a record type from field specifications.
// Duplicate keys or names are rejected.
func NewRecordType(name string, fields ...FieldSpec) (*RecordType, error) {
	if name == "" {
		name = "UserType"
	}
	byKey := make(map[uint64]bool, len(fields))
	byName := make(map[string]bool, len(fields))
	for _, f := range fields {
		if byKey[f.Key] {
			return nil, fmt.Errorf("record %s: duplicate field key %d", name, f.Key)
		}
		if byName[f.Name] {
			return nil, fmt.Errorf("record %s: duplicate field name %q", name, f.Name)
		}
		byKey[f.Key] = true
		byName[f.Name] = true
	}
	rt := &RecordType{name: name, fields: append([]FieldSpec(nil), fields...)}
	rt.typ = &Type{kind: KindRecord, record: rt}
	return rt, nil
}

// Name returns the record type's name.
func (rt *RecordType) Name() string {
	return rt.name
}

// Fields returns the field specifications in declaration order.
func (rt *RecordType) Fields() []FieldSpec {
	return append([]FieldSpec(nil), rt.fields...)
}

// Type returns the descriptor embedding this record as a field type.
func (rt *RecordType) Type() *Type {
	return rt.typ
}

// Equal reports whether two record types declare the same fields, by
// key, name and structural field type. Names of the record types
// themselves do not participate.
func (rt *RecordType) Equal(other *RecordType) bool {
	if rt == other {
		return true
	}
	if rt == nil || other == nil || len(rt.fields) != len(other.fields) {
		return false
	}
	for i, f := range rt.fields {
		o := other.fields[i]
		if f.Key != o.Key || f.Name != o.Name || !f.Type.Equal(o.Type) {
			return false
		}
	}
	return true
}

// Linear scans: records hold a handful of fields, an index would be
// more code than it saves.

func (rt *RecordType) fieldByKey(key uint64) (FieldSpec, bool) {
	for _, f := range rt.fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

func (rt *RecordType) fieldByName(name string) (FieldSpec, bool) {
	for _, f := range rt.fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// New builds a record instance from named field values. Completeness is
// not checked here; it is enforced at encode time. Fields are ordered by
// declaration, so encoding a New-built record is deterministic.
func (rt *RecordType) New(values map[string]any) *Record {
	rec := newRecord(rt)
	for _, f := range rt.fields {
		if v, ok := values[f.Name]; ok {
			rec.Set(f.Name, v)
		}
	}
	// Undeclared names carry over too: encode reports them, and equality
	// against the source mapping stays honest.
	for name, v := range values {
		if _, ok := rt.fieldByName(name); !ok {
			rec.Set(name, v)
		}
	}
	return rec
}

// Encode serializes a value of this record type. v is either a *Record
// or a plain map[string]any. The wire layout is a field count followed
// by (key, value) pairs; pair order follows the record's own field order
// (declaration order for maps), and decoders never depend on it.
//
// The set of names in v must equal the declared names exactly —
// optional fields too, with a nil value when absent. Any difference
// fails with *IncompleteValueError before a single byte is produced.
func (rt *RecordType) Encode(v any) ([]byte, error) {
	return rt.appendRecord(nil, v)
}

func (rt *RecordType) appendRecord(dst []byte, v any) ([]byte, error) {
	var names []string
	var get func(string) any

	switch val := v.(type) {
	case *Record:
		names = val.names
		get = func(name string) any { return val.values[name] }
	case map[string]any:
		for _, f := range rt.fields {
			if _, ok := val[f.Name]; ok {
				names = append(names, f.Name)
			}
		}
		for name := range val {
			if _, ok := rt.fieldByName(name); !ok {
				names = append(names, name)
			}
		}
		get = func(name string) any { return val[name] }
	default:
		return nil, fmt.Errorf("record %s: cannot encode %T", rt.name, v)
	}

	if err := rt.checkComplete(names); err != nil {
		return nil, err
	}

	dst = appendUvarint(dst, uint64(len(names)))
	for _, name := range names {
		f, _ := rt.fieldByName(name)
		dst = appendUvarint(dst, f.Key)
		var err error
		dst, err = f.Type.appendValue(dst, get(name))
		if err != nil {
			return nil, fmt.Errorf("record %s, field %s: %w", rt.name, name, err)
		}
	}
	return dst, nil
}

// checkComplete verifies the symmetric difference between the supplied
// and declared name sets is empty.
func (rt *RecordType) checkComplete(names []string) error {
	supplied := make(map[string]bool, len(names))
	for _, name := range names {
		supplied[name] = true
	}
	var missing, extra []string
	for _, f := range rt.fields {
		if !supplied[f.Name] {
			missing = append(missing, f.Name)
		}
	}
	for _, name := range names {
		if _, ok := rt.fieldByName(name); !ok {
			extra = append(extra, name)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		return &IncompleteValueError{Record: rt.name, Missing: missing, Extra: extra}
	}
	return nil
}

// Decode deserializes one record from data.
func (rt *RecordType) Decode(data []byte) (*Record, error) {
	return rt.DecodeFrom(newBytesReader(data))
}

// DecodeFrom deserializes one record, advancing r past it. Field pairs
// are identified purely by key; a key with no matching field spec fails
// immediately with *UnknownFieldError and no partial record.
func (rt *RecordType) DecodeFrom(r *Reader) (*Record, error) {
	count, err := readLength(r, "field count")
	if err != nil {
		return nil, err
	}
	rec := newRecord(rt)
	for i := uint64(0); i < count; i++ {
		key, keyBig, err := readUvarint(r)
		if err != nil {
			return nil, err
		}
		if keyBig != nil {
			return nil, &UnknownFieldError{Record: rt.name, Key: keyBig.String()}
		}
		f, ok := rt.fieldByKey(key)
		if !ok {
			return nil, &UnknownFieldError{Record: rt.name, Key: strconv.FormatUint(key, 10)}
		}
		v, err := f.Type.DecodeFrom(r)
		if err != nil {
			return nil, fmt.Errorf("record %s, field %s: %w", rt.name, f.Name, err)
		}
		rec.Set(f.Name, v)
	}
	return rec, nil
}
