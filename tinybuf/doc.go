// Package tinybuf implements a compact, schema-driven binary
// serialization format.
//
// A schema is a plain-text file declaring named, numbered record fields:
//
//	require definitions/Person
//	1. name  : string
//	2. age   : int
//	3. phones: optional(list string)
//
// Loading a schema yields a *RecordType, a runtime type descriptor that
// encodes and decodes values immediately — no code generation step.
//
// # Data Model
//
// Scalars: int (unsigned), sint (signed), bool, string
// Combinators: list(T), optional(T)
// Records: named, numbered fields, nestable across files via "require"
//
// # Wire Format
//
// Integers use an LEB128-style varint: 7 bits per byte, least-significant
// group first, high bit set while more bytes follow. Magnitude is
// unbounded; values beyond 64 bits round-trip through math/big.
//
//	sint     = bool(sign) + varint(abs value)
//	bool     = varint 0 or 1 (any nonzero decodes true)
//	string   = varint(byte length) + UTF-8 bytes
//	list     = varint(count) + count × element
//	optional = bool(present) [+ element]
//	record   = varint(field count) + per field: varint(key) + value
//
// Record fields are identified on the wire purely by their numeric key;
// encoding order is not canonical and decoders must not rely on it.
//
// The format is not self-describing: the reader must already hold the
// schema. There is no version negotiation and no integrity checking.
package tinybuf
