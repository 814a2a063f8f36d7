package tinybuf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_EncodeStrings(t *testing.T) {
	values := []any{
		"Hello, world!",
		"This is the middle value.",
		"Goodbye, world!",
	}

	expected := appendUvarint(nil, 3)
	for _, s := range values {
		expected = appendString(expected, s.(string))
	}

	got, err := ListOf(StringType).Encode(values)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestList_DecodeUints(t *testing.T) {
	data := appendUvarint(nil, 5)
	for n := uint64(1); n <= 5; n++ {
		data = appendUvarint(data, n)
	}

	got, err := ListOf(UintType).Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []any{uint64(1), uint64(2), uint64(3), uint64(4), uint64(5)}, got)
}

func TestList_Roundtrip(t *testing.T) {
	tests := []struct {
		name   string
		typ    *Type
		values []any
	}{
		{"bools", ListOf(BoolType), []any{true, false, true, false, true}},
		{"empty", ListOf(StringType), []any{}},
		{"nested", ListOf(ListOf(UintType)), []any{[]any{uint64(1)}, []any{}, []any{uint64(2), uint64(3)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.typ.Encode(tt.values)
			require.NoError(t, err)
			got, err := tt.typ.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.values, got)
		})
	}
}

func TestList_EmptyIsJustCount(t *testing.T) {
	data, err := ListOf(StringType).Encode([]any{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, data)
}

func TestList_TypedSlices(t *testing.T) {
	data, err := ListOf(StringType).Encode([]string{"a", "b"})
	require.NoError(t, err)
	got, err := ListOf(StringType).Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, got)
}

func TestOptional_EncodePresent(t *testing.T) {
	expected := appendBool(nil, true)
	expected = appendBool(expected, false)

	got, err := OptionalOf(BoolType).Encode(false)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestOptional_EncodeAbsent(t *testing.T) {
	got, err := OptionalOf(BoolType).Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, appendBool(nil, false), got)
}

func TestOptional_DecodeUint(t *testing.T) {
	data := appendBool(nil, true)
	data = appendUvarint(data, 15)
	got, err := OptionalOf(UintType).Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(15), got)

	got, err = OptionalOf(UintType).Decode(appendBool(nil, false))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOptional_StringRoundtrip(t *testing.T) {
	typ := OptionalOf(StringType)
	for _, v := range []any{"Hello, world!", nil} {
		data, err := typ.Encode(v)
		require.NoError(t, err)
		got, err := typ.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestOptional_OfListRoundtrip(t *testing.T) {
	typ := OptionalOf(ListOf(StringType))
	for _, v := range []any{[]any{"a", "b"}, nil} {
		data, err := typ.Encode(v)
		require.NoError(t, err)
		got, err := typ.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestDecodeFrom_SharedCursor(t *testing.T) {
	// Nested decoders share one forward cursor: two values written back
	// to back come out of a single Reader in sequence.
	data, err := StringType.Encode("first")
	require.NoError(t, err)
	more, err := ListOf(UintType).Encode([]any{uint64(7), uint64(8)})
	require.NoError(t, err)
	data = append(data, more...)

	r := NewReader(bytes.NewReader(data))
	s, err := StringType.DecodeFrom(r)
	require.NoError(t, err)
	assert.Equal(t, "first", s)

	l, err := ListOf(UintType).DecodeFrom(r)
	require.NoError(t, err)
	assert.Equal(t, []any{uint64(7), uint64(8)}, l)
	assert.Equal(t, len(data), r.Pos())
}
