// Package tokenizer splits raw test input into top-level value substrings.
//
// The grammar is the JSON value shape restricted to what test cases carry:
// bracketed lists, brace-delimited objects, double-quoted strings with
// backslash escapes, and bare scalars. Nothing here converts values; it only
// locates them, so each target can decide how a token becomes a literal.
package tokenizer

import (
	"encoding/json"
	"strings"

	herrors "codemasti/pkg/errors"
)

var closing = map[byte]byte{
	'[': ']',
	'{': '}',
}

// Field is one key/value pair of an object literal, in source order
type Field struct {
	Key   string
	Value string
}

// SplitTopLevel returns the top-level elements of raw. A bracketed list is
// split into its elements; anything else is a single element.
func SplitTopLevel(raw string) ([]string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, parseErr("input is empty")
	}
	if s[0] == '[' {
		return splitEnclosed(s)
	}
	if err := checkValue(s); err != nil {
		return nil, err
	}
	return []string{s}, nil
}

// SplitArrayLiteral splits an already identified [...] span into its elements
func SplitArrayLiteral(raw string) ([]string, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s[0] != '[' {
		return nil, parseErr("expected an array literal, got %q", raw)
	}
	return splitEnclosed(s)
}

// SplitObjectLiteral splits a {...} span into its fields. Keys may be
// JSON strings or bare identifiers.
func SplitObjectLiteral(raw string) ([]Field, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s[0] != '{' {
		return nil, parseErr("expected an object literal, got %q", raw)
	}
	entries, err := splitEnclosed(s)
	if err != nil {
		return nil, err
	}

	fields := make([]Field, 0, len(entries))
	for _, entry := range entries {
		field, err := splitEntry(entry)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// Lookup returns the value of the first field named key
func Lookup(fields []Field, key string) (string, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// CheckValue verifies that raw holds exactly one well-formed value
func CheckValue(raw string) error {
	s := strings.TrimSpace(raw)
	if s == "" {
		return parseErr("input is empty")
	}
	return checkValue(s)
}

// IsQuoted reports whether tok is a double-quoted string literal
func IsQuoted(tok string) bool {
	return len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"'
}

// Unquote decodes a JSON string literal
func Unquote(tok string) (string, error) {
	if !IsQuoted(tok) {
		return "", parseErr("expected a string literal, got %q", tok)
	}
	var s string
	if err := json.Unmarshal([]byte(tok), &s); err != nil {
		return "", herrors.Wrapf(err, herrors.InputParse, "invalid string literal %s", tok)
	}
	return s, nil
}

func splitEntry(entry string) (Field, error) {
	var key, rest string
	if entry[0] == '"' {
		end, err := scanString(entry, 0)
		if err != nil {
			return Field{}, err
		}
		if key, err = Unquote(entry[:end+1]); err != nil {
			return Field{}, err
		}
		rest = strings.TrimSpace(entry[end+1:])
	} else {
		idx := strings.IndexByte(entry, ':')
		if idx < 0 {
			return Field{}, parseErr("expected key: value, got %q", entry)
		}
		key = strings.TrimSpace(entry[:idx])
		if key == "" || strings.ContainsAny(key, `[]{}",`) {
			return Field{}, parseErr("invalid object key %q", key)
		}
		rest = entry[idx:]
	}

	if !strings.HasPrefix(rest, ":") {
		return Field{}, parseErr("expected ':' after key %q", key)
	}
	value := strings.TrimSpace(rest[1:])
	if value == "" {
		return Field{}, parseErr("missing value for key %q", key)
	}
	return Field{Key: key, Value: value}, nil
}

// splitEnclosed splits s, which starts with an opening bracket, at the commas
// of its first nesting level. The matching close must be the last byte.
func splitEnclosed(s string) ([]string, error) {
	parts := make([]string, 0, 4)
	stack := make([]byte, 0, 8)
	start := 1

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			end, err := scanString(s, i)
			if err != nil {
				return nil, err
			}
			i = end
		case '[', '{':
			stack = append(stack, c)
		case ']', '}':
			if len(stack) == 0 {
				return nil, parseErr("unexpected %q at offset %d", c, i)
			}
			top := stack[len(stack)-1]
			if closing[top] != c {
				return nil, parseErr("mismatched %q at offset %d, expected %q", c, i, closing[top])
			}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				continue
			}
			if i != len(s)-1 {
				return nil, parseErr("unexpected text after offset %d: %q", i, s[i+1:])
			}
			last := strings.TrimSpace(s[start:i])
			if last == "" {
				if len(parts) > 0 {
					return nil, parseErr("empty element before offset %d", i)
				}
				return parts, nil
			}
			return append(parts, last), nil
		case ',':
			if len(stack) == 1 {
				part := strings.TrimSpace(s[start:i])
				if part == "" {
					return nil, parseErr("empty element at offset %d", i)
				}
				parts = append(parts, part)
				start = i + 1
			}
		}
	}

	return nil, parseErr("unbalanced %q: missing %q", s[0], closing[s[0]])
}

// scanString returns the offset of the quote closing the string opened at s[i]
func scanString(s string, i int) (int, error) {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j, nil
		}
	}
	return 0, parseErr("unterminated string starting at offset %d", i)
}

func checkValue(s string) error {
	switch s[0] {
	case '[', '{':
		_, err := splitEnclosed(s)
		return err
	case '"':
		end, err := scanString(s, 0)
		if err != nil {
			return err
		}
		if end != len(s)-1 {
			return parseErr("unexpected text after string: %q", s[end+1:])
		}
		return nil
	}
	if idx := strings.IndexAny(s, `[]{}"`); idx >= 0 {
		return parseErr("unexpected %q at offset %d", s[idx], idx)
	}
	return nil
}

func parseErr(format string, args ...interface{}) *herrors.Error {
	return herrors.Newf(herrors.InputParse, format, args...)
}
