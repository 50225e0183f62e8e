package synth

import (
	"encoding/json"
	"strconv"
	"strings"

	"codemasti/internal/gen/schema"
	"codemasti/internal/gen/tokenizer"
	herrors "codemasti/pkg/errors"
)

// implicitName names the argument of a signature that declares no parameters
const implicitName = "input"

// binding pairs a parameter with the raw token it is initialised from
type binding struct {
	param schema.Parameter
	token string
}

// bind maps the raw test input onto the declared parameters per inputFormat
func bind(io schema.IOConfig, raw string) ([]binding, error) {
	switch io.InputFormat {
	case schema.FormatArray:
		return bindArray(io.Parameters, raw)
	case schema.FormatSingle:
		return bindSingle(io.Parameters, raw)
	case schema.FormatObject:
		return bindObject(io.Parameters, raw)
	case schema.FormatString:
		return bindString(io.Parameters, raw)
	}
	return nil, herrors.Newf(herrors.SchemaValidation, "unknown inputFormat %q", io.InputFormat)
}

// bindArray spreads the top-level elements of raw over the parameters, one
// element each. A lone array parameter is therefore written [[1,2,3]].
func bindArray(params []schema.Parameter, raw string) ([]binding, error) {
	parts, err := tokenizer.SplitTopLevel(raw)
	if err != nil {
		return nil, err
	}

	if len(parts) != len(params) {
		return nil, herrors.Newf(herrors.InputArity, "expected %d values, got %d", len(params), len(parts)).
			WithDetail("expected", len(params)).
			WithDetail("actual", len(parts))
	}

	bindings := make([]binding, len(params))
	for i, p := range params {
		bindings[i] = binding{param: p, token: parts[i]}
	}
	return bindings, nil
}

func bindSingle(params []schema.Parameter, raw string) ([]binding, error) {
	token := strings.TrimSpace(raw)
	if err := tokenizer.CheckValue(token); err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return []binding{{param: schema.Parameter{Name: implicitName, Type: inferType(token)}, token: token}}, nil
	}
	if len(params) > 1 {
		return nil, herrors.Newf(herrors.InputArity, "single input cannot fill %d parameters", len(params))
	}
	return []binding{{param: params[0], token: token}}, nil
}

// bindObject locates each parameter by its name in the top-level object.
// Extra keys are ignored.
func bindObject(params []schema.Parameter, raw string) ([]binding, error) {
	fields, err := tokenizer.SplitObjectLiteral(raw)
	if err != nil {
		return nil, err
	}

	bindings := make([]binding, len(params))
	for i, p := range params {
		value, ok := tokenizer.Lookup(fields, p.Name)
		if !ok {
			return nil, herrors.Newf(herrors.InputParse, "input object has no key %q", p.Name).
				WithDetail("parameter", p.Name)
		}
		bindings[i] = binding{param: p, token: value}
	}
	return bindings, nil
}

// bindString passes the raw input through untouched as one string argument
func bindString(params []schema.Parameter, raw string) ([]binding, error) {
	param := schema.Parameter{Name: implicitName, Type: schema.String()}
	if len(params) == 1 {
		param = params[0]
	} else if len(params) > 1 {
		return nil, herrors.Newf(herrors.InputArity, "string input cannot fill %d parameters", len(params))
	}

	token, err := json.Marshal(raw)
	if err != nil {
		return nil, herrors.Wrapf(err, herrors.InputParse, "cannot encode input as a string")
	}
	return []binding{{param: param, token: string(token)}}, nil
}

// inferType guesses the type of a scalar-convention input
func inferType(token string) schema.Type {
	switch {
	case tokenizer.IsQuoted(token):
		return schema.String()
	case token == "true" || token == "false":
		return schema.Boolean()
	case strings.HasPrefix(token, "{"):
		return schema.Object()
	case strings.HasPrefix(token, "["):
		elems, err := tokenizer.SplitArrayLiteral(token)
		if err != nil || len(elems) == 0 {
			return schema.ArrayOf(schema.Int())
		}
		return schema.ArrayOf(inferType(elems[0]))
	}
	if _, err := strconv.ParseInt(token, 10, 64); err == nil {
		return schema.Int()
	}
	return schema.String()
}
