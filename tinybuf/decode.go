package tinybuf

import (
	"fmt"
	"math"
	"math/big"
)

// Decode deserializes one value of type t from data. Trailing bytes are
// left unexamined; use DecodeFrom with a shared Reader to decode a
// sequence of values.
func (t *Type) Decode(data []byte) (any, error) {
	return t.DecodeFrom(newBytesReader(data))
}

// DecodeFrom deserializes one value of type t, advancing r past exactly
// the bytes the value occupies.
//
// Decoded values have canonical types: uint64 (or *big.Int beyond 64
// bits) for int, int64 (or *big.Int) for sint, bool, string, []any for
// lists, nil for absent optionals, and *Record for records.
func (t *Type) DecodeFrom(r *Reader) (any, error) {
	switch t.kind {
	case KindUint:
		n, b, err := readUvarint(r)
		if err != nil {
			return nil, err
		}
		if b != nil {
			return b, nil
		}
		return n, nil

	case KindSint:
		return readSigned(r)

	case KindBool:
		return readBool(r)

	case KindString:
		return readString(r)

	case KindList:
		count, err := readLength(r, "list length")
		if err != nil {
			return nil, err
		}
		elems := []any{}
		for i := uint64(0); i < count; i++ {
			elem, err := t.elem.DecodeFrom(r)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return elems, nil

	case KindOptional:
		present, err := readBool(r)
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, nil
		}
		return t.elem.DecodeFrom(r)

	case KindRecord:
		return t.record.DecodeFrom(r)

	default:
		return nil, fmt.Errorf("cannot decode with invalid type descriptor")
	}
}

// readSigned decodes sign + magnitude, collapsing into int64 when the
// value fits. Negative zero never comes back: -0 decodes as int64(0).
func readSigned(r *Reader) (any, error) {
	nonNegative, err := readBool(r)
	if err != nil {
		return nil, err
	}
	mag, magBig, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	if magBig == nil {
		if nonNegative {
			if mag <= math.MaxInt64 {
				return int64(mag), nil
			}
			return new(big.Int).SetUint64(mag), nil
		}
		if mag <= math.MaxInt64 {
			return -int64(mag), nil
		}
		if mag == uint64(math.MaxInt64)+1 {
			return int64(math.MinInt64), nil
		}
		return new(big.Int).Neg(new(big.Int).SetUint64(mag)), nil
	}
	if nonNegative {
		return magBig, nil
	}
	return magBig.Neg(magBig), nil
}
