package tinybuf

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
)

// Encode serializes v as a value of type t. Encoding is all-or-nothing:
// on error no bytes are returned.
func (t *Type) Encode(v any) ([]byte, error) {
	return t.appendValue(nil, v)
}

// appendValue dispatches on the descriptor's kind. Record values
// delegate to the owning RecordType.
func (t *Type) appendValue(dst []byte, v any) ([]byte, error) {
	switch t.kind {
	case KindUint:
		n, b, err := toUnsigned(v)
		if err != nil {
			return nil, err
		}
		if b != nil {
			return appendUvarintBig(dst, b), nil
		}
		return appendUvarint(dst, n), nil

	case KindSint:
		neg, mag, magBig, err := toSigned(v)
		if err != nil {
			return nil, err
		}
		dst = appendBool(dst, !neg)
		if magBig != nil {
			return appendUvarintBig(dst, magBig), nil
		}
		return appendUvarint(dst, mag), nil

	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as bool", v)
		}
		return appendBool(dst, b), nil

	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("cannot encode %T as string", v)
		}
		return appendString(dst, s), nil

	case KindList:
		elems, err := toSlice(v)
		if err != nil {
			return nil, err
		}
		dst = appendUvarint(dst, uint64(len(elems)))
		for _, elem := range elems {
			dst, err = t.elem.appendValue(dst, elem)
			if err != nil {
				return nil, err
			}
		}
		return dst, nil

	case KindOptional:
		if v == nil {
			return appendBool(dst, false), nil
		}
		dst = appendBool(dst, true)
		return t.elem.appendValue(dst, v)

	case KindRecord:
		return t.record.appendRecord(dst, v)

	default:
		return nil, fmt.Errorf("cannot encode with invalid type descriptor")
	}
}

// toUnsigned coerces v to a non-negative integer: a uint64, or a
// *big.Int when the value exceeds 64 bits.
func toUnsigned(v any) (uint64, *big.Int, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil, nil
	case uint:
		return uint64(n), nil, nil
	case uint32:
		return uint64(n), nil, nil
	case int:
		if n < 0 {
			return 0, nil, fmt.Errorf("cannot encode negative value %d as unsigned int", n)
		}
		return uint64(n), nil, nil
	case int64:
		if n < 0 {
			return 0, nil, fmt.Errorf("cannot encode negative value %d as unsigned int", n)
		}
		return uint64(n), nil, nil
	case int32:
		if n < 0 {
			return 0, nil, fmt.Errorf("cannot encode negative value %d as unsigned int", n)
		}
		return uint64(n), nil, nil
	case *big.Int:
		if n.Sign() < 0 {
			return 0, nil, fmt.Errorf("cannot encode negative value %s as unsigned int", n)
		}
		if n.IsUint64() {
			return n.Uint64(), nil, nil
		}
		return 0, n, nil
	case float64:
		// JSON decoding hands integers over as float64.
		if n < 0 || n != math.Trunc(n) || n > math.MaxUint64 {
			return 0, nil, fmt.Errorf("cannot encode %v as unsigned int", n)
		}
		return uint64(n), nil, nil
	default:
		return 0, nil, fmt.Errorf("cannot encode %T as unsigned int", v)
	}
}

// toSigned coerces v to a sign and magnitude. Negative zero normalizes
// to a non-negative zero.
func toSigned(v any) (neg bool, mag uint64, magBig *big.Int, err error) {
	switch n := v.(type) {
	case int:
		return signSplit(int64(n))
	case int64:
		return signSplit(n)
	case int32:
		return signSplit(int64(n))
	case uint64:
		return false, n, nil, nil
	case uint:
		return false, uint64(n), nil, nil
	case uint32:
		return false, uint64(n), nil, nil
	case *big.Int:
		abs := new(big.Int).Abs(n)
		if abs.IsUint64() {
			return n.Sign() < 0, abs.Uint64(), nil, nil
		}
		return n.Sign() < 0, 0, abs, nil
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt64 {
			return false, 0, nil, fmt.Errorf("cannot encode %v as signed int", n)
		}
		return signSplit(int64(n))
	default:
		return false, 0, nil, fmt.Errorf("cannot encode %T as signed int", v)
	}
}

func signSplit(n int64) (bool, uint64, *big.Int, error) {
	if n >= 0 {
		return false, uint64(n), nil, nil
	}
	// Negating math.MinInt64 overflows int64; go through uint64.
	return true, -uint64(n), nil, nil
}

// toSlice accepts []any directly and any other slice or array kind via
// reflection, so typed slices like []string encode without repacking.
func toSlice(v any) ([]any, error) {
	if elems, ok := v.([]any); ok {
		return elems, nil
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("cannot encode %T as list", v)
	}
	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, nil
}
