package tinybuf

import (
	"fmt"
	"strings"
)

// MalformedInputError reports a byte stream that ends or breaks before a
// value is complete: an unterminated varint, a short string/list/record
// body, or string bytes that are not valid UTF-8.
type MalformedInputError struct {
	Msg string
	Err error // underlying cause, if any (e.g. io.ErrUnexpectedEOF)
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed input: %s: %v", e.Msg, e.Err)
	}
	return "malformed input: " + e.Msg
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// UnknownFieldError reports a decoded record key with no matching field
// specification. Decoding stops immediately; no partial record is returned.
type UnknownFieldError struct {
	Record string
	Key    string // decimal rendering; keys may exceed uint64
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: no field with key %s", e.Record, e.Key)
}

// IncompleteValueError reports an encode input whose field names do not
// match the record's declared names exactly.
type IncompleteValueError struct {
	Record  string
	Missing []string // declared but not supplied
	Extra   []string // supplied but not declared
}

func (e *IncompleteValueError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, "unrecognized "+strings.Join(e.Extra, ", "))
	}
	return fmt.Sprintf("%s: incomplete value: %s", e.Record, strings.Join(parts, "; "))
}

// UnknownTypeError reports a schema type expression matching neither a
// built-in, a combinator, nor a registered import alias.
type UnknownTypeError struct {
	Desc string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q", e.Desc)
}

// CyclicSchemaError reports a schema file that imports itself, directly
// or transitively.
type CyclicSchemaError struct {
	Path  string
	Stack []string // files in resolution order, outermost first
}

func (e *CyclicSchemaError) Error() string {
	return fmt.Sprintf("cyclic schema import: %s (via %s)", e.Path, strings.Join(e.Stack, " -> "))
}

func malformed(msg string, err error) error {
	return &MalformedInputError{Msg: msg, Err: err}
}
