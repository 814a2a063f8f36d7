package tinybuf

import (
	"math/big"
	"unicode/utf8"
)

// Varint layout: 7 value bits per byte, least-significant group first,
// bit 7 set while more groups follow.
const (
	varintValueMask    = 0x7f
	varintContinueMask = 0x80
)

func appendUvarint(dst []byte, n uint64) []byte {
	for {
		b := byte(n & varintValueMask)
		n >>= 7
		if n > 0 {
			b |= varintContinueMask
		}
		dst = append(dst, b)
		if n == 0 {
			return dst
		}
	}
}

// appendUvarintBig encodes an arbitrary-precision magnitude. n must be
// non-negative; it is not modified.
func appendUvarintBig(dst []byte, n *big.Int) []byte {
	if n.IsUint64() {
		return appendUvarint(dst, n.Uint64())
	}
	rest := new(big.Int).Set(n)
	low := new(big.Int)
	for {
		low.And(rest, big7f)
		b := byte(low.Uint64())
		rest.Rsh(rest, 7)
		if rest.Sign() > 0 {
			b |= varintContinueMask
		}
		dst = append(dst, b)
		if rest.Sign() == 0 {
			return dst
		}
	}
}

var big7f = big.NewInt(varintValueMask)

func appendBool(dst []byte, v bool) []byte {
	if v {
		return appendUvarint(dst, 1)
	}
	return appendUvarint(dst, 0)
}

func appendString(dst []byte, s string) []byte {
	dst = appendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// readUvarint decodes one varint. The value comes back as a uint64 when
// it fits, otherwise as a *big.Int (and the uint64 is zero).
func readUvarint(r *Reader) (uint64, *big.Int, error) {
	var groups []byte
	for {
		b, err := r.readByte()
		if err != nil {
			return 0, nil, malformed("unterminated varint", err)
		}
		groups = append(groups, b&varintValueMask)
		if b&varintContinueMask == 0 {
			break
		}
	}

	// Fast path: nine groups is at most 63 bits.
	if len(groups) <= 9 {
		var n uint64
		for i := len(groups) - 1; i >= 0; i-- {
			n = n<<7 | uint64(groups[i])
		}
		return n, nil, nil
	}

	n := new(big.Int)
	group := new(big.Int)
	for i := len(groups) - 1; i >= 0; i-- {
		n.Lsh(n, 7)
		n.Or(n, group.SetUint64(uint64(groups[i])))
	}
	if n.IsUint64() {
		return n.Uint64(), nil, nil
	}
	return 0, n, nil
}

// readLength decodes a varint used as a count or byte length. Lengths
// beyond uint64 cannot describe real input, so they are malformed.
func readLength(r *Reader, what string) (uint64, error) {
	n, b, err := readUvarint(r)
	if err != nil {
		return 0, err
	}
	if b != nil {
		return 0, malformed(what+" does not fit in 64 bits", nil)
	}
	return n, nil
}

func readBool(r *Reader) (bool, error) {
	n, b, err := readUvarint(r)
	if err != nil {
		return false, err
	}
	return b != nil || n != 0, nil
}

func readString(r *Reader) (string, error) {
	length, err := readLength(r, "string length")
	if err != nil {
		return "", err
	}
	raw, err := r.readFull(length)
	if err != nil {
		return "", malformed("short string body", err)
	}
	if !utf8.Valid(raw) {
		return "", malformed("string is not valid UTF-8", nil)
	}
	return string(raw), nil
}
