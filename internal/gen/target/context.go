package target

import (
	"fmt"
	"sort"
	"strings"

	"codemasti/internal/gen/schema"
)

// Context holds the state of one synthesis call. It is never shared between
// calls, which keeps generated names deterministic.
type Context struct {
	Target schema.Target

	// Imports collects the imports or headers the generated block needs
	Imports map[string]string // path -> alias (empty string for no alias)

	helpers map[string]bool
	locals  map[string]bool
	temps   int
}

// NewContext creates a new context for one synthesis call
func NewContext(t schema.Target) *Context {
	return &Context{
		Target:  t,
		Imports: make(map[string]string),
		helpers: make(map[string]bool),
		locals:  make(map[string]bool),
	}
}

// AddImport adds an import to the context
func (ctx *Context) AddImport(path string) {
	if _, exists := ctx.Imports[path]; !exists {
		ctx.Imports[path] = ""
	}
}

// AddImportAlias adds an aliased import
func (ctx *Context) AddImportAlias(alias, path string) {
	ctx.Imports[path] = alias
}

// SortedImports returns the collected imports in lexical order
func (ctx *Context) SortedImports() []string {
	out := make([]string, 0, len(ctx.Imports))
	for path := range ctx.Imports {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Require marks a helper as needed by the block
func (ctx *Context) Require(helper string) {
	ctx.helpers[helper] = true
}

// Requires reports whether a helper was marked as needed
func (ctx *Context) Requires(helper string) bool {
	return ctx.helpers[helper]
}

// Temp returns a fresh harness-private name such as harnessSb0
func (ctx *Context) Temp(kind string) string {
	name := fmt.Sprintf("harness%s%d", kind, ctx.temps)
	ctx.temps++
	return name
}

// Local returns a variable name derived from name that is neither reserved
// in the target nor already taken in this block
func (ctx *Context) Local(name string, reserved func(string) bool) string {
	candidate := name
	for reserved(candidate) || ctx.locals[candidate] || isHarnessName(candidate) {
		candidate += "_"
	}
	ctx.locals[candidate] = true
	return candidate
}

// isHarnessName matches the names Temp and the helpers use: "harness", an
// upper-case letter, then letters and digits only
func isHarnessName(name string) bool {
	const prefix = "harness"
	if !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
		return false
	}
	rest := name[len(prefix):]
	if rest[0] < 'A' || rest[0] > 'Z' {
		return false
	}
	return !strings.ContainsRune(rest, '_')
}

// Claim marks name as taken so no local variable shadows it
func (ctx *Context) Claim(name string) {
	ctx.locals[name] = true
}
