package target

import (
	"fmt"
	"strconv"
	"strings"

	"codemasti/internal/gen/schema"
)

const helperQuote = "quote"

// JavaMapper maps types onto Java. Objects have no natural native type
// without a JSON library, so they are rejected.
type JavaMapper struct{}

func (m *JavaMapper) Target() schema.Target {
	return schema.Java
}

func (m *JavaMapper) Supports(typ schema.Type) error {
	return unsupported(schema.Java, typ, schema.KindObject)
}

func (m *JavaMapper) nativeType(typ schema.Type) string {
	switch typ.Kind {
	case schema.KindInt:
		return "int"
	case schema.KindBoolean:
		return "boolean"
	case schema.KindString:
		return "String"
	case schema.KindArray:
		return m.nativeType(typ.Element()) + "[]"
	}
	return "void"
}

func (m *JavaMapper) DeclareAndParse(ctx *Context, varName string, typ schema.Type, rawToken string) ([]string, error) {
	if err := m.Supports(typ); err != nil {
		return nil, err
	}
	lit, err := buildLiteral[string](ctx, javaLiterals{m}, 32, typ, rawToken)
	if err != nil {
		return nil, err
	}
	return []string{m.nativeType(typ) + " " + varName + " = " + lit + ";"}, nil
}

func (m *JavaMapper) FormatValue(ctx *Context, expr string, typ schema.Type) (Fragment, error) {
	if err := m.Supports(typ); err != nil {
		return Fragment{}, err
	}

	switch typ.Kind {
	case schema.KindInt, schema.KindBoolean:
		return Fragment{Expr: "String.valueOf(" + expr + ")"}, nil
	case schema.KindString:
		ctx.Require(helperQuote)
		return Fragment{Expr: "harnessQuote.apply(" + expr + ")"}, nil
	}

	sb := ctx.Temp("Sb")
	w := newLineWriter("    ")
	w.line("StringBuilder %s = new StringBuilder();", sb)
	m.appendValue(ctx, w, sb, expr, typ)
	return Fragment{Stmts: w.lines, Expr: sb + ".toString()"}, nil
}

func (m *JavaMapper) appendValue(ctx *Context, w *lineWriter, sb, expr string, typ schema.Type) {
	switch typ.Kind {
	case schema.KindInt, schema.KindBoolean:
		w.line("%s.append(%s);", sb, expr)
	case schema.KindString:
		ctx.Require(helperQuote)
		w.line("%s.append(harnessQuote.apply(%s));", sb, expr)
	case schema.KindArray:
		i := ctx.Temp("I")
		w.open("if (%s == null) {", expr)
		w.line(`%s.append("null");`, sb)
		w.close("} else {")
		w.depth++
		w.line("%s.append('[');", sb)
		w.open("for (int %s = 0; %s < %s.length; %s++) {", i, i, expr, i)
		w.line("if (%s > 0) %s.append(',');", i, sb)
		m.appendValue(ctx, w, sb, fmt.Sprintf("%s[%s]", expr, i), typ.Element())
		w.close("}")
		w.line("%s.append(']');", sb)
		w.close("}")
	}
}

func (m *JavaMapper) Invoke(functionName string, args []string, methodStyle bool) string {
	return invokeExpr(functionName, args, methodStyle)
}

func (m *JavaMapper) MethodStyle() bool {
	return true
}

func (m *JavaMapper) DeclareInstance(name string) []string {
	return []string{"Solution " + name + " = new Solution();"}
}

func (m *JavaMapper) DeclareResult(name string, typ schema.Type, call string) string {
	return m.nativeType(typ) + " " + name + " = " + call + ";"
}

func (m *JavaMapper) CallStatement(call string) string {
	return call + ";"
}

func (m *JavaMapper) Print(ctx *Context, expr string) string {
	return "System.out.println(" + expr + ");"
}

func (m *JavaMapper) Helpers(ctx *Context) []string {
	if !ctx.Requires(helperQuote) {
		return nil
	}
	return []string{
		"java.util.function.Function<String, String> harnessQuote = harnessStr -> {",
		`    if (harnessStr == null) return "null";`,
		`    StringBuilder harnessBuf = new StringBuilder("\"");`,
		"    for (int harnessIdx = 0; harnessIdx < harnessStr.length(); harnessIdx++) {",
		"        char harnessCh = harnessStr.charAt(harnessIdx);",
		"        switch (harnessCh) {",
		`            case '"': harnessBuf.append("\\\""); break;`,
		`            case '\\': harnessBuf.append("\\\\"); break;`,
		`            case '\n': harnessBuf.append("\\n"); break;`,
		`            case '\r': harnessBuf.append("\\r"); break;`,
		`            case '\t': harnessBuf.append("\\t"); break;`,
		`            case '\b': harnessBuf.append("\\b"); break;`,
		`            case '\f': harnessBuf.append("\\f"); break;`,
		"            default:",
		"                if (harnessCh < 0x20) {",
		`                    harnessBuf.append(String.format("\\u%04x", (int) harnessCh));`,
		"                } else {",
		"                    harnessBuf.append(harnessCh);",
		"                }",
		"        }",
		"    }",
		`    return harnessBuf.append('"').toString();`,
		"};",
	}
}

func (m *JavaMapper) Reserved(name string) bool {
	return javaReserved[name]
}

func (m *JavaMapper) EscapeString(s string) string {
	return escapeJava(s)
}

func (m *JavaMapper) Finalize(ctx *Context, source string) string {
	return source
}

type javaLiterals struct {
	m *JavaMapper
}

func (javaLiterals) intLiteral(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (javaLiterals) boolLiteral(v bool) string {
	return strconv.FormatBool(v)
}

func (javaLiterals) stringLiteral(s string) string {
	return `"` + escapeJava(s) + `"`
}

func (l javaLiterals) arrayLiteral(_ *Context, elem schema.Type, elems []string) string {
	return "new " + l.m.nativeType(elem) + "[]{" + strings.Join(elems, ", ") + "}"
}

func (javaLiterals) objectLiteral(_ *Context, typ schema.Type, _ string) string {
	// unreachable: Supports rejects objects first
	return "null"
}
