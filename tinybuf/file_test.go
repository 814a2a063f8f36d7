package tinybuf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchema(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestFromFile_Basic(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, "person.buf", `
		1. name : string
		2. age : int
	`)

	rt, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Person", rt.Name())

	expected := mustRecordType(t, "Person",
		FieldSpec{Key: 1, Name: "name", Type: StringType},
		FieldSpec{Key: 2, Name: "age", Type: UintType},
	)
	assert.True(t, expected.Equal(rt))
}

func TestFromFile_SuffixOptional(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "person.buf", "1. name : string")

	withSuffix, err := FromFile(filepath.Join(dir, "person.buf"))
	require.NoError(t, err)
	withoutSuffix, err := FromFile(filepath.Join(dir, "person"))
	require.NoError(t, err)
	assert.True(t, withSuffix.Equal(withoutSuffix))
}

func TestFromFile_MissingFile(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.buf"))
	assert.Error(t, err)
}

func TestFromFile_RequireImport(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "definitions/Person.buf", `
		1. name : string
		2. age : int
	`)
	clubPath := writeSchema(t, dir, "definitions/Club.buf", `
		require Person
		1. name : string
		2. members : list(person)
	`)

	person, err := FromFile(filepath.Join(dir, "definitions/Person.buf"))
	require.NoError(t, err)

	club, err := FromFile(clubPath)
	require.NoError(t, err)

	expected := mustRecordType(t, "Club",
		FieldSpec{Key: 1, Name: "name", Type: StringType},
		FieldSpec{Key: 2, Name: "members", Type: ListOf(person.Type())},
	)
	assert.True(t, expected.Equal(club))
}

func TestFromFile_RequireSubdirectory(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "defs/nested/Person.buf", "1. name : string")
	rootPath := writeSchema(t, dir, "defs/Club.buf", `
		require nested/Person
		1. members : list(person)
	`)

	club, err := FromFile(rootPath)
	require.NoError(t, err)
	members := club.Fields()[0].Type
	require.Equal(t, KindList, members.Kind())
	assert.Equal(t, "Person", members.Elem().Record().Name())
}

func TestFromFile_NestedRoundtrip(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "Person.buf", `
		1. name : string
		2. age : int
	`)
	clubPath := writeSchema(t, dir, "Club.buf", `
		require Person
		1. name : string
		2. members : list(person)
	`)

	club, err := FromFile(clubPath)
	require.NoError(t, err)

	value := map[string]any{
		"name": "The Kool Kids Klub",
		"members": []any{
			map[string]any{"name": "Bede", "age": 20},
			map[string]any{"name": "Jake", "age": 21},
			map[string]any{"name": "Cal", "age": 22},
		},
	}
	data, err := club.Encode(value)
	require.NoError(t, err)
	rec, err := club.Decode(data)
	require.NoError(t, err)
	assert.True(t, rec.Equal(value))
}

func TestFromFile_ResolutionIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, "person.buf", "1. name : string")

	first, err := FromFile(path)
	require.NoError(t, err)
	second, err := FromFile(path)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.True(t, first.Equal(second))
}

func TestFromFile_CyclicImport(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "a.buf", `
		require b
		1. other : b
	`)
	writeSchema(t, dir, "b.buf", `
		require a
		1. other : a
	`)

	_, err := FromFile(filepath.Join(dir, "a.buf"))
	var cyclic *CyclicSchemaError
	require.ErrorAs(t, err, &cyclic)
	assert.Contains(t, cyclic.Stack, filepath.Join(dir, "a.buf"))
}

func TestFromFile_SelfImport(t *testing.T) {
	dir := t.TempDir()
	path := writeSchema(t, dir, "loop.buf", `
		require loop
		1. inner : loop
	`)

	_, err := FromFile(path)
	var cyclic *CyclicSchemaError
	assert.ErrorAs(t, err, &cyclic)
}

func TestTitleCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"person", "Person"},
		{"PERSON", "Person"},
		{"my_type", "My_Type"},
		{"club2000", "Club2000"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, titleCase(tt.in), "titleCase(%q)", tt.in)
	}
}
