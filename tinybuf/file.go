package tinybuf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// FromFile loads and resolves a schema file. A missing ".buf" suffix is
// appended; the record type is named after the file's title-cased base
// name. Imports resolve relative to the file's own directory.
//
// Resolution is not cached: loading the same schema twice re-reads and
// re-parses it, yielding an equal but distinct RecordType.
func FromFile(path string) (*RecordType, error) {
	return loadSchemaFile(path, nil)
}

// loadSchemaFile carries the stack of files currently being resolved so
// an import chain that reaches back into itself fails instead of
// recursing forever.
func loadSchemaFile(path string, stack []string) (*RecordType, error) {
	if !strings.HasSuffix(path, ".buf") {
		path += ".buf"
	}
	path = filepath.Clean(path)

	for _, inProgress := range stack {
		if inProgress == path {
			return nil, &CyclicSchemaError{Path: path, Stack: append(stack[:len(stack):len(stack)], path)}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	name := titleCase(strings.TrimSuffix(filepath.Base(path), ".buf"))
	ctx := &resolveContext{
		dir:     filepath.Dir(path),
		aliases: map[string]string{},
		stack:   append(append([]string(nil), stack...), path),
	}
	return parseSchema(strings.Split(string(data), "\n"), ctx, name)
}

// titleCase uppercases the first letter of each letter run and
// lowercases the rest, so "person" and "PERSON" both name "Person".
func titleCase(s string) string {
	var sb strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				sb.WriteRune(unicode.ToLower(r))
			} else {
				sb.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			sb.WriteRune(r)
			prevLetter = false
		}
	}
	return sb.String()
}
