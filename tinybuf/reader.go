package tinybuf

import (
	"bufio"
	"bytes"
	"io"
)

// Reader is a forward-only cursor over a byte source. Every nested
// decoder shares the one Reader it is handed, so bytes are consumed
// exactly once and never re-read. A Reader is single-use: decode calls
// advance it and there is no way back.
type Reader struct {
	src io.ByteReader
	pos int
}

// NewReader wraps r in a decode cursor. If r is not an io.ByteReader it
// is buffered, so r should not be reused by the caller afterwards.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{src: br}
}

func newBytesReader(data []byte) *Reader {
	return &Reader{src: bytes.NewReader(data)}
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int {
	return r.pos
}

func (r *Reader) readByte() (byte, error) {
	b, err := r.src.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	r.pos++
	return b, nil
}

// readFull reads exactly n bytes. The initial allocation is capped
// because n comes off the wire and is attacker-controlled.
func (r *Reader) readFull(n uint64) ([]byte, error) {
	capHint := n
	if capHint > 4096 {
		capHint = 4096
	}
	out := make([]byte, 0, capHint)
	for uint64(len(out)) < n {
		b, err := r.readByte()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
