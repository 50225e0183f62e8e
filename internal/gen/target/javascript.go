package target

import (
	"strconv"
	"strings"

	"codemasti/internal/gen/schema"
)

// JavaScriptMapper maps types onto Node.js. Values are plain JSON, so
// formatting is JSON.stringify.
type JavaScriptMapper struct{}

func (m *JavaScriptMapper) Target() schema.Target {
	return schema.JavaScript
}

func (m *JavaScriptMapper) Supports(typ schema.Type) error {
	return unsupported(schema.JavaScript, typ)
}

func (m *JavaScriptMapper) DeclareAndParse(ctx *Context, varName string, typ schema.Type, rawToken string) ([]string, error) {
	if err := m.Supports(typ); err != nil {
		return nil, err
	}
	lit, err := buildLiteral[string](ctx, jsLiterals{}, 64, typ, rawToken)
	if err != nil {
		return nil, err
	}
	return []string{"const " + varName + " = " + lit + ";"}, nil
}

func (m *JavaScriptMapper) FormatValue(ctx *Context, expr string, typ schema.Type) (Fragment, error) {
	if err := m.Supports(typ); err != nil {
		return Fragment{}, err
	}
	return Fragment{Expr: "JSON.stringify(" + expr + ")"}, nil
}

func (m *JavaScriptMapper) Invoke(functionName string, args []string, methodStyle bool) string {
	return invokeExpr(functionName, args, methodStyle)
}

func (m *JavaScriptMapper) MethodStyle() bool {
	return false
}

func (m *JavaScriptMapper) DeclareInstance(name string) []string {
	return []string{"const " + name + " = new Solution();"}
}

func (m *JavaScriptMapper) DeclareResult(name string, typ schema.Type, call string) string {
	return "const " + name + " = " + call + ";"
}

func (m *JavaScriptMapper) CallStatement(call string) string {
	return call + ";"
}

func (m *JavaScriptMapper) Print(ctx *Context, expr string) string {
	return "console.log(" + expr + ");"
}

func (m *JavaScriptMapper) Helpers(ctx *Context) []string {
	return nil
}

func (m *JavaScriptMapper) Reserved(name string) bool {
	return javaScriptReserved[name]
}

func (m *JavaScriptMapper) EscapeString(s string) string {
	return escapeJS(s)
}

// SpreadFields picks the named fields of the decoded input object in order
func (m *JavaScriptMapper) SpreadFields(names []string) string {
	return "args = " + spreadFields(names, jsLiterals{}.stringLiteral) + ";"
}

func (m *JavaScriptMapper) Finalize(ctx *Context, source string) string {
	return source
}

type jsLiterals struct{}

func (jsLiterals) intLiteral(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (jsLiterals) boolLiteral(v bool) string {
	return strconv.FormatBool(v)
}

func (jsLiterals) stringLiteral(s string) string {
	return `"` + escapeJS(s) + `"`
}

func (jsLiterals) arrayLiteral(_ *Context, _ schema.Type, elems []string) string {
	return "[" + strings.Join(elems, ", ") + "]"
}

func (jsLiterals) objectLiteral(_ *Context, _ schema.Type, jsonText string) string {
	return `JSON.parse("` + escapeJS(jsonText) + `")`
}

// spreadFields builds [args[0]["a"], args[0]["b"]], valid in both JavaScript and Python
func spreadFields(names []string, quote func(string) string) string {
	fields := make([]string, len(names))
	for i, name := range names {
		fields[i] = "args[0][" + quote(name) + "]"
	}
	return "[" + strings.Join(fields, ", ") + "]"
}

// invokeExpr is the call syntax shared by every target
func invokeExpr(functionName string, args []string, methodStyle bool) string {
	call := functionName + "(" + strings.Join(args, ", ") + ")"
	if methodStyle {
		return instanceName + "." + call
	}
	return call
}
