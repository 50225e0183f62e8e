package target

import (
	"regexp"
	"strconv"
	"strings"

	"codemasti/internal/gen/schema"
)

// PythonMapper maps types onto Python 3. Formatting goes through json.dumps
// with compact separators, which matches JSON.stringify.
type PythonMapper struct{}

func (m *PythonMapper) Target() schema.Target {
	return schema.Python
}

func (m *PythonMapper) Supports(typ schema.Type) error {
	return unsupported(schema.Python, typ)
}

func (m *PythonMapper) DeclareAndParse(ctx *Context, varName string, typ schema.Type, rawToken string) ([]string, error) {
	if err := m.Supports(typ); err != nil {
		return nil, err
	}
	lit, err := buildLiteral[string](ctx, pyLiterals{}, 64, typ, rawToken)
	if err != nil {
		return nil, err
	}
	return []string{varName + " = " + lit}, nil
}

func (m *PythonMapper) FormatValue(ctx *Context, expr string, typ schema.Type) (Fragment, error) {
	if err := m.Supports(typ); err != nil {
		return Fragment{}, err
	}
	ctx.AddImport("json")
	return Fragment{Expr: `json.dumps(` + expr + `, separators=(",", ":"), ensure_ascii=False)`}, nil
}

func (m *PythonMapper) Invoke(functionName string, args []string, methodStyle bool) string {
	return invokeExpr(functionName, args, methodStyle)
}

func (m *PythonMapper) MethodStyle() bool {
	return false
}

func (m *PythonMapper) DeclareInstance(name string) []string {
	return []string{name + " = Solution()"}
}

func (m *PythonMapper) DeclareResult(name string, typ schema.Type, call string) string {
	return name + " = " + call
}

func (m *PythonMapper) CallStatement(call string) string {
	return call
}

func (m *PythonMapper) Print(ctx *Context, expr string) string {
	return "print(" + expr + ")"
}

func (m *PythonMapper) Helpers(ctx *Context) []string {
	return nil
}

func (m *PythonMapper) Reserved(name string) bool {
	return pythonReserved[name]
}

func (m *PythonMapper) EscapeString(s string) string {
	return escapePython(s)
}

// SpreadFields picks the named fields of the decoded input object in order
func (m *PythonMapper) SpreadFields(names []string) string {
	return "args = " + spreadFields(names, pyLiterals{}.stringLiteral)
}

var pythonImportLine = regexp.MustCompile(`(?m)^import\s+(\w+)\s*$`)

// Finalize prepends the imports the block needs and the program lacks
func (m *PythonMapper) Finalize(ctx *Context, source string) string {
	present := make(map[string]bool)
	for _, match := range pythonImportLine.FindAllStringSubmatch(source, -1) {
		present[match[1]] = true
	}

	var header strings.Builder
	for _, mod := range ctx.SortedImports() {
		if !present[mod] {
			header.WriteString("import " + mod + "\n")
		}
	}
	return header.String() + source
}

type pyLiterals struct{}

func (pyLiterals) intLiteral(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (pyLiterals) boolLiteral(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func (pyLiterals) stringLiteral(s string) string {
	return `"` + escapePython(s) + `"`
}

func (pyLiterals) arrayLiteral(_ *Context, _ schema.Type, elems []string) string {
	return "[" + strings.Join(elems, ", ") + "]"
}

func (pyLiterals) objectLiteral(ctx *Context, _ schema.Type, jsonText string) string {
	ctx.AddImport("json")
	return `json.loads("` + escapePython(jsonText) + `")`
}
