// Package synth builds the dynamic block of a harness: argument
// declarations, the call to the candidate's function and the output line.
package synth

import (
	"errors"
	"strings"

	"codemasti/internal/gen/schema"
	"codemasti/internal/gen/target"
	herrors "codemasti/pkg/errors"
)

// Block is a synthesized dynamic block with the context the mapper filled
// while building it (imports, helpers)
type Block struct {
	Text    string
	Context *target.Context
}

// Synthesize builds the dynamic block for io and the raw test input in the
// given target language
func Synthesize(io schema.IOConfig, rawTestInput string, t schema.Target) (string, error) {
	m, ok := target.Lookup(t)
	if !ok {
		return "", herrors.Newf(herrors.UnsupportedType, "unknown target %q", t)
	}
	block, err := Build(io, rawTestInput, m)
	if err != nil {
		return "", err
	}
	return block.Text, nil
}

// Build is Synthesize with an explicit mapper. Any failure aborts the whole
// block; no partial text is returned.
func Build(io schema.IOConfig, rawTestInput string, m target.Mapper) (*Block, error) {
	if err := CheckTypes(io, m); err != nil {
		return nil, err
	}

	bindings, err := bind(io, rawTestInput)
	if err != nil {
		return nil, err
	}

	ctx := target.NewContext(m.Target())
	ctx.Claim(io.FunctionName)

	var lines []string
	args := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if err := m.Supports(b.param.Type); err != nil {
			return nil, annotate(err, b.param.Name)
		}
		name := ctx.Local(b.param.Name, m.Reserved)
		decl, err := m.DeclareAndParse(ctx, name, b.param.Type, b.token)
		if err != nil {
			return nil, annotate(err, b.param.Name)
		}
		lines = append(lines, decl...)
		args = append(args, name)
	}

	methodStyle := m.MethodStyle()
	if methodStyle {
		lines = append(lines, m.DeclareInstance("solution")...)
	}
	call := m.Invoke(io.FunctionName, args, methodStyle)

	if io.ReturnType.Kind == schema.KindVoid {
		lines = append(lines, m.CallStatement(call))
	} else {
		lines = append(lines, m.DeclareResult("result", io.ReturnType, call))
		frag, err := m.FormatValue(ctx, "result", io.ReturnType)
		if err != nil {
			return nil, err
		}
		lines = append(lines, frag.Stmts...)
		lines = append(lines, m.Print(ctx, frag.Expr))
	}

	lines = append(m.Helpers(ctx), lines...)
	return &Block{Text: strings.Join(lines, "\n"), Context: ctx}, nil
}

// BuildDynamic checks the test input exactly as Build does, so malformed input
// fails at assembly on every target, but leaves the parsing to the template
// at run time. Only the object convention yields text: the statement that
// turns the decoded object into positional arguments.
func BuildDynamic(io schema.IOConfig, rawTestInput string, m target.Mapper) (*Block, error) {
	if _, err := Build(io, rawTestInput, m); err != nil {
		return nil, err
	}

	block := &Block{Context: target.NewContext(m.Target())}
	if io.InputFormat != schema.FormatObject {
		return block, nil
	}
	s, ok := m.(target.FieldSpreader)
	if !ok {
		return nil, herrors.Newf(herrors.UnsupportedType, "%s cannot take object input", m.Target())
	}
	names := make([]string, len(io.Parameters))
	for i, p := range io.Parameters {
		names[i] = p.Name
	}
	block.Text = s.SpreadFields(names)
	return block, nil
}

// CheckTypes reports an UnsupportedTypeError for the first declared type the
// target cannot map. It needs no test input, so authoring tools call it directly.
func CheckTypes(io schema.IOConfig, m target.Mapper) error {
	for _, p := range io.Parameters {
		if err := m.Supports(p.Type); err != nil {
			return annotate(err, p.Name)
		}
	}
	if err := m.Supports(io.ReturnType); err != nil {
		return annotate(err, "return value")
	}
	if rc, ok := m.(target.ResultChecker); ok && io.ReturnType.Kind != schema.KindVoid {
		if err := rc.SupportsResult(io.ReturnType); err != nil {
			return annotate(err, "return value")
		}
	}
	return nil
}

// annotate prefixes the failing parameter while keeping the error kind
func annotate(err error, what string) error {
	var he *herrors.Error
	if !errors.As(err, &he) {
		return err
	}
	msg := he.Message
	if msg == "" {
		msg = he.Kind.Message()
	}
	return herrors.Wrapf(err, he.Kind, "%s: %s", what, msg)
}
