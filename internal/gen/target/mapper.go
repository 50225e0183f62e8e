package target

import (
	"codemasti/internal/gen/schema"
)

// Fragment is the output of FormatValue: statements to run first, then the
// expression holding the canonical text
type Fragment struct {
	Stmts []string
	Expr  string
}

// Mapper maps abstract types onto one target language
type Mapper interface {
	// Target returns the language this mapper handles
	Target() schema.Target

	// Supports returns an UnsupportedTypeError if typ has no native mapping
	Supports(typ schema.Type) error

	// DeclareAndParse declares varName with the native type of typ,
	// initialised from rawToken
	DeclareAndParse(ctx *Context, varName string, typ schema.Type, rawToken string) ([]string, error)

	// FormatValue serialises the native value expr into the canonical output text
	FormatValue(ctx *Context, expr string, typ schema.Type) (Fragment, error)

	// Invoke returns the call expression for the candidate's function
	Invoke(functionName string, args []string, methodStyle bool) string

	// MethodStyle reports whether the target calls a method on a solution instance
	MethodStyle() bool

	// DeclareInstance declares the solution instance used by method-style calls
	DeclareInstance(name string) []string

	// DeclareResult binds the call result to name
	DeclareResult(name string, typ schema.Type, call string) string

	// CallStatement turns a call expression into a statement
	CallStatement(call string) string

	// Print writes one output line
	Print(ctx *Context, expr string) string

	// Helpers declares the helpers the block marked as required
	Helpers(ctx *Context) []string

	// Reserved reports whether name cannot be used for a local variable
	Reserved(name string) bool

	// EscapeString escapes s for the inside of a double-quoted string literal
	EscapeString(s string) string

	// Finalize adjusts the rendered program, e.g. adding missing imports
	Finalize(ctx *Context, source string) string
}

// UserCodePreparer is implemented by mappers that rewrite the candidate's code
// before it is placed into the template
type UserCodePreparer interface {
	PrepareUserCode(ctx *Context, code string) string
}

// ResultChecker is implemented by mappers that can declare a type as a
// parameter but cannot print it canonically as a result
type ResultChecker interface {
	SupportsResult(typ schema.Type) error
}

// FieldSpreader is implemented by mappers whose templates decode the test
// input at run time. SpreadFields returns the statement replacing the decoded
// object in args with its fields, in the given order.
type FieldSpreader interface {
	SpreadFields(names []string) string
}

// Registry holds the mapper of every target
type Registry struct {
	mappers map[schema.Target]Mapper
}

// NewRegistry creates a new mapper registry
func NewRegistry() *Registry {
	return &Registry{
		mappers: make(map[schema.Target]Mapper),
	}
}

// Register registers a mapper for its target
func (r *Registry) Register(m Mapper) {
	r.mappers[m.Target()] = m
}

// Get returns the mapper for a target
func (r *Registry) Get(t schema.Target) (Mapper, bool) {
	m, ok := r.mappers[t]
	return m, ok
}

// DefaultRegistry is the default mapper registry
var DefaultRegistry = NewRegistry()

// RegisterMapper registers a mapper with the default registry
func RegisterMapper(m Mapper) {
	DefaultRegistry.Register(m)
}

// Lookup returns the mapper for t from the default registry
func Lookup(t schema.Target) (Mapper, bool) {
	return DefaultRegistry.Get(t)
}

// init registers all built-in mappers
func init() {
	RegisterMapper(&JavaScriptMapper{})
	RegisterMapper(&PythonMapper{})
	RegisterMapper(&JavaMapper{})
	RegisterMapper(&CppMapper{})
	RegisterMapper(&GoMapper{})
}
