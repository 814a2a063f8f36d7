package tinybuf

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// Record is a runtime instance of a RecordType: named field values in
// insertion order, bound to the type that can re-serialize them. Decode
// produces a fresh Record per call; application code builds one with
// RecordType.New or Set to encode.
type Record struct {
	typ    *RecordType
	names  []string
	values map[string]any
}

func newRecord(rt *RecordType) *Record {
	return &Record{typ: rt, values: map[string]any{}}
}

// Type returns the owning record type.
func (r *Record) Type() *RecordType {
	return r.typ
}

// Get returns the named field's value.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Set assigns a field value, keeping first-insertion order. No
// validation happens here; encode enforces completeness. Returns r for
// chaining.
func (r *Record) Set(name string, v any) *Record {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
	return r
}

// Len returns the number of fields set.
func (r *Record) Len() int {
	return len(r.names)
}

// Names returns the field names in insertion order.
func (r *Record) Names() []string {
	return append([]string(nil), r.names...)
}

// Map returns a copy of the backing name-value mapping.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// Encode delegates to the owning record type, serializing fields in
// this record's insertion order.
func (r *Record) Encode() ([]byte, error) {
	return r.typ.appendRecord(nil, r)
}

// Equal compares field values against another *Record or a plain
// map[string]any. Comparison is by value: a field set as int(20)
// equals its decoded uint64(20) counterpart, and nested records match
// nested plain maps. Field order does not participate.
func (r *Record) Equal(other any) bool {
	switch o := other.(type) {
	case *Record:
		return o != nil && mapsEqual(r.values, o.values)
	case map[string]any:
		return mapsEqual(r.values, o)
	default:
		return false
	}
}

// String renders the record as Name(field1=value1, ...), fields in
// insertion order.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString(r.typ.name)
	sb.WriteByte('(')
	for i, name := range r.names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(renderValue(r.values[name]))
	}
	sb.WriteByte(')')
	return sb.String()
}

func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(val)
	case *Record:
		return val.String()
	case []any:
		parts := make([]string, len(val))
		for i, elem := range val {
			parts[i] = renderValue(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func mapsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !valueEqual(av, bv) {
			return false
		}
	}
	return true
}

// valueEqual compares decoded and application-built values loosely:
// numerics by magnitude regardless of Go type, records against records
// or maps, sequences elementwise.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ar, ok := a.(*Record); ok {
		return ar.Equal(b)
	}
	if br, ok := b.(*Record); ok {
		return br.Equal(a)
	}
	if am, ok := a.(map[string]any); ok {
		if bm, ok := b.(map[string]any); ok {
			return mapsEqual(am, bm)
		}
		return false
	}
	if an, ok := toBig(a); ok {
		bn, ok := toBig(b)
		return ok && an.Cmp(bn) == 0
	}
	if as, aok := asSlice(a); aok {
		bs, bok := asSlice(b)
		if !bok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !valueEqual(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}

// toBig normalizes any integer-valued type to a big.Int for comparison.
func toBig(v any) (*big.Int, bool) {
	switch n := v.(type) {
	case uint64:
		return new(big.Int).SetUint64(n), true
	case uint:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), true
	case int:
		return big.NewInt(int64(n)), true
	case int64:
		return big.NewInt(n), true
	case int32:
		return big.NewInt(int64(n)), true
	case *big.Int:
		return n, true
	case float64:
		bi, acc := big.NewFloat(n).Int(nil)
		return bi, acc == big.Exact
	default:
		return nil, false
	}
}

func asSlice(v any) ([]any, bool) {
	if elems, ok := v.([]any); ok {
		return elems, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, true
}
