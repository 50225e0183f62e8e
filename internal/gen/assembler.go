// Package gen assembles execution harnesses: complete programs that wrap a
// candidate's function with input parsing, the call and output formatting.
package gen

import (
	"fmt"

	"codemasti/internal/gen/render"
	"codemasti/internal/gen/schema"
	"codemasti/internal/gen/synth"
	"codemasti/internal/gen/target"
	herrors "codemasti/pkg/errors"

	"github.com/rs/zerolog"
)

// Assembler turns an execution config, candidate code and one test case into
// a program for the execution backend. It holds no state between calls and is
// safe for concurrent use.
type Assembler struct {
	logger   zerolog.Logger
	registry *target.Registry
}

// Option configures an Assembler
type Option func(*Assembler)

// WithLogger sets the logger used for debug traces
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// WithRegistry replaces the default mapper registry
func WithRegistry(registry *target.Registry) Option {
	return func(a *Assembler) {
		a.registry = registry
	}
}

// NewAssembler creates a new assembler
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		logger:   zerolog.Nop(),
		registry: target.DefaultRegistry,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble generates the harness program of one test case for target t
func (a *Assembler) Assemble(cfg schema.ExecutionConfig, userCode string, testCase schema.TestCase, t schema.Target) (*schema.GeneratedProgram, error) {
	if err := schema.ValidateExecutionConfig(cfg); err != nil {
		return nil, err
	}

	m, err := a.mapper(t)
	if err != nil {
		return nil, err
	}
	if err := synth.CheckTypes(cfg.IO, m); err != nil {
		return nil, err
	}

	tmpl, err := render.Resolve(cfg, t)
	if err != nil {
		return nil, herrors.Wrapf(err, herrors.TemplateIntegrity, "no template for %s", t)
	}

	// Dynamic targets parse the input inside their template at run time
	build := synth.Build
	if t.IsDynamic() {
		build = synth.BuildDynamic
	}
	block, err := build(cfg.IO, testCase.Input, m)
	if err != nil {
		return nil, err
	}

	if p, ok := m.(target.UserCodePreparer); ok {
		userCode = p.PrepareUserCode(block.Context, userCode)
	}

	text, err := render.Render(tmpl, render.Slots{
		render.UserCode:     userCode,
		render.TestInput:    testCase.Input,
		render.FunctionName: cfg.IO.FunctionName,
		render.InputFormat:  string(cfg.IO.InputFormat),
		render.DynamicBlock: block.Text,
	}, m.EscapeString)
	if err != nil {
		return nil, err
	}

	program := &schema.GeneratedProgram{
		SourceText:       m.Finalize(block.Context, text),
		TargetLanguageID: cfg.LanguageID(t),
		Target:           t,
		TemplateVersion:  tmpl.Version,
	}

	a.logger.Debug().
		Str("target", string(t)).
		Str("function", cfg.IO.FunctionName).
		Str("template", tmpl.Version).
		Int("bytes", len(program.SourceText)).
		Msg("Harness assembled")

	return program, nil
}

// Validate checks an IO schema for problem authoring: the schema rules and,
// when t is set, whether the target can map every declared type
func (a *Assembler) Validate(io schema.IOConfig, t schema.Target) error {
	if err := schema.ValidateIO(io); err != nil {
		return err
	}
	if t == "" {
		return nil
	}
	m, err := a.mapper(t)
	if err != nil {
		return err
	}
	return synth.CheckTypes(io, m)
}

// ValidateTemplates checks every template the config carries
func (a *Assembler) ValidateTemplates(cfg schema.ExecutionConfig) error {
	var violations []string
	for _, t := range schema.Targets() {
		tmpl, ok := cfg.Templates[t]
		if !ok {
			continue
		}
		if err := render.Check(tmpl); err != nil {
			violations = append(violations, fmt.Sprintf("templates.%s: %s", t, err))
		}
	}
	if len(violations) > 0 {
		e := herrors.New(herrors.TemplateIntegrity)
		e.Violations = violations
		return e
	}
	return nil
}

func (a *Assembler) mapper(t schema.Target) (target.Mapper, error) {
	m, ok := a.registry.Get(t)
	if !ok {
		return nil, herrors.Newf(herrors.UnsupportedType, "unknown target %q", t).
			WithDetail("target", string(t))
	}
	return m, nil
}
