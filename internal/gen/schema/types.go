package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the closed set of abstract value kinds a problem signature may use
type Kind string

const (
	KindInt     Kind = "int"
	KindString  Kind = "string"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindVoid    Kind = "void"
)

// Type is an abstract value type. Arrays carry their element type.
type Type struct {
	Kind Kind
	Elem *Type

	// invalid keeps the original spelling of a type that failed to parse,
	// so validation can report it alongside every other violation
	invalid string
}

func Int() Type     { return Type{Kind: KindInt} }
func String() Type  { return Type{Kind: KindString} }
func Boolean() Type { return Type{Kind: KindBoolean} }
func Object() Type  { return Type{Kind: KindObject} }
func Void() Type    { return Type{Kind: KindVoid} }

// ArrayOf creates an array type with the given element type
func ArrayOf(elem Type) Type {
	return Type{Kind: KindArray, Elem: &elem}
}

// IsZero reports whether the type was never set
func (t Type) IsZero() bool {
	return t.Kind == "" && t.invalid == ""
}

// IsScalar reports whether the type is int, string or boolean
func (t Type) IsScalar() bool {
	switch t.Kind {
	case KindInt, KindString, KindBoolean:
		return true
	}
	return false
}

// Element returns the element type of an array, int for a bare array
func (t Type) Element() Type {
	if t.Elem == nil {
		return Int()
	}
	return *t.Elem
}

// Equal compares two types structurally
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.invalid != o.invalid {
		return false
	}
	if t.Kind != KindArray {
		return true
	}
	return t.Element().Equal(o.Element())
}

// Check returns an error if the type is not a well-formed abstract type
func (t Type) Check() error {
	if t.invalid != "" {
		return fmt.Errorf("unknown type %q", t.invalid)
	}
	switch t.Kind {
	case KindInt, KindString, KindBoolean, KindObject, KindVoid:
		return nil
	case KindArray:
		elem := t.Element()
		if elem.Kind == KindVoid {
			return fmt.Errorf("array element type cannot be void")
		}
		return elem.Check()
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown type %q", string(t.Kind))
	}
}

// String returns the canonical spelling, e.g. "array<array<int>>"
func (t Type) String() string {
	if t.invalid != "" {
		return t.invalid
	}
	if t.Kind == KindArray {
		return "array<" + t.Element().String() + ">"
	}
	return string(t.Kind)
}

var typeAliases = map[string]Kind{
	"int":     KindInt,
	"integer": KindInt,
	"number":  KindInt,
	"string":  KindString,
	"str":     KindString,
	"boolean": KindBoolean,
	"bool":    KindBoolean,
	"object":  KindObject,
	"map":     KindObject,
	"dict":    KindObject,
	"void":    KindVoid,
	"none":    KindVoid,
}

// ParseType parses the textual spelling of a type.
// Accepted forms: scalars, "array<T>", "list<T>", "T[]" and bare "array" (array of int).
func ParseType(s string) (Type, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return Type{}, fmt.Errorf("type is required")
	}

	if strings.HasSuffix(raw, "[]") {
		elem, err := ParseType(raw[:len(raw)-2])
		if err != nil {
			return Type{}, err
		}
		return arrayChecked(elem, s)
	}

	for _, prefix := range []string{"array<", "list<"} {
		if strings.HasPrefix(raw, prefix) {
			if !strings.HasSuffix(raw, ">") {
				return Type{}, fmt.Errorf("unknown type %q", s)
			}
			elem, err := ParseType(raw[len(prefix) : len(raw)-1])
			if err != nil {
				return Type{}, err
			}
			return arrayChecked(elem, s)
		}
	}

	if raw == "array" || raw == "list" {
		return ArrayOf(Int()), nil
	}

	if kind, ok := typeAliases[raw]; ok {
		return Type{Kind: kind}, nil
	}
	return Type{}, fmt.Errorf("unknown type %q", s)
}

func arrayChecked(elem Type, original string) (Type, error) {
	if elem.Kind == KindVoid {
		return Type{}, fmt.Errorf("unknown type %q: array element type cannot be void", original)
	}
	return ArrayOf(elem), nil
}

// MustParseType is ParseType for literals known to be valid
func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// MarshalJSON writes the canonical spelling
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON never fails on an unknown spelling; Check reports it instead
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("type must be a string: %w", err)
	}
	if strings.TrimSpace(s) == "" {
		*t = Type{}
		return nil
	}
	parsed, err := ParseType(s)
	if err != nil {
		*t = Type{invalid: s}
		return nil
	}
	*t = parsed
	return nil
}
