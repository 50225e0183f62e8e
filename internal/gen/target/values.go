package target

import (
	"encoding/json"
	"strconv"
	"strings"

	"codemasti/internal/gen/schema"
	"codemasti/internal/gen/tokenizer"
	herrors "codemasti/pkg/errors"
)

// literalSyntax builds native literals of type E for one target
type literalSyntax[E any] interface {
	intLiteral(v int64) E
	boolLiteral(v bool) E
	stringLiteral(s string) E
	arrayLiteral(ctx *Context, elem schema.Type, elems []E) E
	objectLiteral(ctx *Context, typ schema.Type, jsonText string) E
}

// buildLiteral converts one raw token into a native literal, descending
// into array tokens through the tokenizer
func buildLiteral[E any](ctx *Context, syn literalSyntax[E], intBits int, typ schema.Type, tok string) (E, error) {
	var zero E
	tok = strings.TrimSpace(tok)

	switch typ.Kind {
	case schema.KindInt:
		v, err := parseInt(tok, intBits)
		if err != nil {
			return zero, err
		}
		return syn.intLiteral(v), nil

	case schema.KindBoolean:
		v, err := parseBool(tok)
		if err != nil {
			return zero, err
		}
		return syn.boolLiteral(v), nil

	case schema.KindString:
		v, err := parseString(tok)
		if err != nil {
			return zero, err
		}
		return syn.stringLiteral(v), nil

	case schema.KindArray:
		if containsObject(typ) {
			if err := checkJSON(tok, '['); err != nil {
				return zero, err
			}
			return syn.objectLiteral(ctx, typ, tok), nil
		}
		tokens, err := tokenizer.SplitArrayLiteral(tok)
		if err != nil {
			return zero, err
		}
		elems := make([]E, 0, len(tokens))
		for _, t := range tokens {
			elem, err := buildLiteral(ctx, syn, intBits, typ.Element(), t)
			if err != nil {
				return zero, err
			}
			elems = append(elems, elem)
		}
		return syn.arrayLiteral(ctx, typ.Element(), elems), nil

	case schema.KindObject:
		if err := checkJSON(tok, '{'); err != nil {
			return zero, err
		}
		return syn.objectLiteral(ctx, typ, tok), nil
	}

	return zero, herrors.Newf(herrors.UnsupportedType, "type %s cannot be declared", typ)
}

// parseInt accepts JSON integer syntax only: no sign other than a leading
// minus and no leading zeros
func parseInt(tok string, bits int) (int64, error) {
	if !isIntegerLiteral(tok) {
		return 0, herrors.Newf(herrors.InputParse, "%q is not an integer literal", tok)
	}
	v, err := strconv.ParseInt(tok, 10, bits)
	if err != nil {
		return 0, herrors.Wrapf(err, herrors.InputParse, "%q is not a valid %d-bit int", tok, bits)
	}
	return v, nil
}

func isIntegerLiteral(tok string) bool {
	digits := strings.TrimPrefix(tok, "-")
	if digits == "" || (len(digits) > 1 && digits[0] == '0') {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// parseBool accepts the JSON literals true and false, nothing else
func parseBool(tok string) (bool, error) {
	switch tok {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, herrors.Newf(herrors.InputParse, "%q is not a valid boolean", tok)
}

// parseString accepts a double-quoted JSON string literal only
func parseString(tok string) (string, error) {
	if !strings.HasPrefix(tok, `"`) {
		return "", herrors.Newf(herrors.InputParse, "%q is not a quoted string", tok)
	}
	return tokenizer.Unquote(tok)
}

// checkJSON verifies that tok is a JSON document opening with open
func checkJSON(tok string, open byte) error {
	if tok == "" || tok[0] != open {
		return herrors.Newf(herrors.InputParse, "expected a literal starting with %q, got %q", open, tok)
	}
	if !json.Valid([]byte(tok)) {
		return herrors.Newf(herrors.InputParse, "%q is not valid JSON", tok)
	}
	return nil
}

func containsObject(typ schema.Type) bool {
	switch typ.Kind {
	case schema.KindObject:
		return true
	case schema.KindArray:
		return containsObject(typ.Element())
	}
	return false
}

// unsupported returns an UnsupportedTypeError if typ or any element type is in kinds
func unsupported(target schema.Target, typ schema.Type, kinds ...schema.Kind) error {
	if err := typ.Check(); err != nil {
		return herrors.Wrapf(err, herrors.UnsupportedType, "%s: %s", target, err)
	}
	for t := typ; ; t = t.Element() {
		for _, k := range kinds {
			if t.Kind == k {
				return herrors.Newf(herrors.UnsupportedType, "type %s is not supported by %s", typ, target).
					WithDetail("target", string(target)).
					WithDetail("type", typ.String())
			}
		}
		if t.Kind != schema.KindArray {
			return nil
		}
	}
}
