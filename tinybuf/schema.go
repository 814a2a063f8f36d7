package tinybuf

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Punctuation stripped from field declaration lines before tokenizing,
// so "1. name: string", "1 name string" and "1:name(string)" are all
// the same declaration.
const ignoredChars = "():.-/"

// resolveContext threads schema resolution state through recursive
// computeType calls: the importing file's directory, the "require"
// alias registry, and the stack of files currently being resolved
// (the cycle guard).
type resolveContext struct {
	dir     string
	aliases map[string]string // lowercase type name -> schema file path
	stack   []string
}

// FromLines resolves schema-definition lines into a record type. dir is
// the base directory for "require" imports ("." when unused); name
// becomes the record type's name ("UserType" when empty).
func FromLines(lines []string, dir, name string) (*RecordType, error) {
	return parseSchema(lines, &resolveContext{
		dir:     dir,
		aliases: map[string]string{},
	}, name)
}

func parseSchema(lines []string, ctx *resolveContext, name string) (*RecordType, error) {
	var fields []FieldSpec

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "require") {
			if err := registerImport(line, ctx); err != nil {
				return nil, err
			}
			continue
		}

		f, err := parseFieldLine(line, ctx)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	return NewRecordType(name, fields...)
}

// registerImport handles a "require <relative-path>" line: the imported
// type becomes referable by its lowercased base name.
func registerImport(line string, ctx *resolveContext) error {
	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return fmt.Errorf("invalid require line %q", line)
	}
	path := tokens[1]
	alias := strings.ToLower(strings.TrimSuffix(filepath.Base(path), ".buf"))
	ctx.aliases[alias] = filepath.Join(ctx.dir, path)
	return nil
}

// parseFieldLine parses "<key> <name> : <type expr>" after punctuation
// stripping: first token is the numeric key, second the field name, the
// rest (lowercased) describe the type.
func parseFieldLine(line string, ctx *resolveContext) (FieldSpec, error) {
	cleaned := line
	for _, ch := range ignoredChars {
		cleaned = strings.ReplaceAll(cleaned, string(ch), " ")
	}
	tokens := strings.Fields(cleaned)
	if len(tokens) < 3 {
		return FieldSpec{}, fmt.Errorf("invalid field line %q: want key, name and type", line)
	}

	key, err := strconv.ParseUint(tokens[0], 10, 64)
	if err != nil {
		return FieldSpec{}, fmt.Errorf("invalid field line %q: bad key %q", line, tokens[0])
	}

	typeTokens := tokens[2:]
	for i, tok := range typeTokens {
		typeTokens[i] = strings.ToLower(tok)
	}
	typ, err := computeType(typeTokens, ctx)
	if err != nil {
		return FieldSpec{}, err
	}

	return FieldSpec{Key: key, Name: tokens[1], Type: typ}, nil
}

// computeType resolves a type-description token sequence, recursing
// through higher-order combinators so "optional list string" comes back
// as OptionalOf(ListOf(StringType)).
func computeType(tokens []string, ctx *resolveContext) (*Type, error) {
	if len(tokens) == 0 {
		return nil, &UnknownTypeError{Desc: ""}
	}

	if len(tokens) == 1 {
		tok := tokens[0]
		switch tok {
		case "string":
			return StringType, nil
		case "int":
			return UintType, nil
		case "sint":
			return SintType, nil
		case "bool":
			return BoolType, nil
		}
		if path, ok := ctx.aliases[tok]; ok {
			rt, err := loadSchemaFile(path, ctx.stack)
			if err != nil {
				return nil, err
			}
			return rt.Type(), nil
		}
		return nil, &UnknownTypeError{Desc: tok}
	}

	var wrap func(*Type) *Type
	switch tokens[0] {
	case "list":
		wrap = ListOf
	case "optional":
		wrap = OptionalOf
	default:
		return nil, &UnknownTypeError{Desc: strings.Join(tokens, " ")}
	}
	inner, err := computeType(tokens[1:], ctx)
	if err != nil {
		return nil, err
	}
	return wrap(inner), nil
}
