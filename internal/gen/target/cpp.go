package target

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"codemasti/internal/gen/schema"
)

// CppMapper maps types onto C++17 with std::vector and std::string.
// Objects are rejected, the standard library has no dynamic value type.
type CppMapper struct{}

func (m *CppMapper) Target() schema.Target {
	return schema.Cpp
}

func (m *CppMapper) Supports(typ schema.Type) error {
	return unsupported(schema.Cpp, typ, schema.KindObject)
}

func (m *CppMapper) nativeType(ctx *Context, typ schema.Type) string {
	switch typ.Kind {
	case schema.KindInt:
		return "int"
	case schema.KindBoolean:
		return "bool"
	case schema.KindString:
		ctx.AddImport("string")
		return "std::string"
	case schema.KindArray:
		ctx.AddImport("vector")
		return "std::vector<" + m.nativeType(ctx, typ.Element()) + ">"
	}
	return "void"
}

func (m *CppMapper) DeclareAndParse(ctx *Context, varName string, typ schema.Type, rawToken string) ([]string, error) {
	if err := m.Supports(typ); err != nil {
		return nil, err
	}
	lit, err := buildLiteral[string](ctx, cppLiterals{}, 32, typ, rawToken)
	if err != nil {
		return nil, err
	}
	return []string{m.nativeType(ctx, typ) + " " + varName + " = " + lit + ";"}, nil
}

func (m *CppMapper) FormatValue(ctx *Context, expr string, typ schema.Type) (Fragment, error) {
	if err := m.Supports(typ); err != nil {
		return Fragment{}, err
	}

	ctx.AddImport("string")
	switch typ.Kind {
	case schema.KindInt:
		return Fragment{Expr: "std::to_string(" + expr + ")"}, nil
	case schema.KindBoolean:
		return Fragment{Expr: `std::string(` + expr + ` ? "true" : "false")`}, nil
	case schema.KindString:
		ctx.Require(helperQuote)
		return Fragment{Expr: "harnessQuote(" + expr + ")"}, nil
	}

	out := ctx.Temp("Out")
	w := newLineWriter("    ")
	w.line("std::string %s;", out)
	m.appendValue(ctx, w, out, expr, typ)
	return Fragment{Stmts: w.lines, Expr: out}, nil
}

func (m *CppMapper) appendValue(ctx *Context, w *lineWriter, out, expr string, typ schema.Type) {
	switch typ.Kind {
	case schema.KindInt:
		w.line("%s += std::to_string(%s);", out, expr)
	case schema.KindBoolean:
		w.line(`%s += (%s ? "true" : "false");`, out, expr)
	case schema.KindString:
		ctx.Require(helperQuote)
		w.line("%s += harnessQuote(%s);", out, expr)
	case schema.KindArray:
		i := ctx.Temp("I")
		w.line("%s += '[';", out)
		w.open("for (size_t %s = 0; %s < %s.size(); %s++) {", i, i, expr, i)
		w.line("if (%s > 0) %s += ',';", i, out)
		m.appendValue(ctx, w, out, fmt.Sprintf("%s[%s]", expr, i), typ.Element())
		w.close("}")
		w.line("%s += ']';", out)
	}
}

func (m *CppMapper) Invoke(functionName string, args []string, methodStyle bool) string {
	return invokeExpr(functionName, args, methodStyle)
}

func (m *CppMapper) MethodStyle() bool {
	return true
}

func (m *CppMapper) DeclareInstance(name string) []string {
	return []string{"Solution " + name + ";"}
}

func (m *CppMapper) DeclareResult(name string, typ schema.Type, call string) string {
	return "auto " + name + " = " + call + ";"
}

func (m *CppMapper) CallStatement(call string) string {
	return call + ";"
}

func (m *CppMapper) Print(ctx *Context, expr string) string {
	ctx.AddImport("iostream")
	return "std::cout << " + expr + " << std::endl;"
}

func (m *CppMapper) Helpers(ctx *Context) []string {
	if !ctx.Requires(helperQuote) {
		return nil
	}
	ctx.AddImport("cstdio")
	return []string{
		"auto harnessQuote = [](const std::string& harnessStr) {",
		`    std::string harnessBuf = "\"";`,
		"    for (unsigned char harnessCh : harnessStr) {",
		"        switch (harnessCh) {",
		`            case '"': harnessBuf += "\\\""; break;`,
		`            case '\\': harnessBuf += "\\\\"; break;`,
		`            case '\n': harnessBuf += "\\n"; break;`,
		`            case '\r': harnessBuf += "\\r"; break;`,
		`            case '\t': harnessBuf += "\\t"; break;`,
		`            case '\b': harnessBuf += "\\b"; break;`,
		`            case '\f': harnessBuf += "\\f"; break;`,
		"            default:",
		"                if (harnessCh < 0x20) {",
		"                    char harnessHex[8];",
		`                    std::snprintf(harnessHex, sizeof(harnessHex), "\\u%04x", harnessCh);`,
		"                    harnessBuf += harnessHex;",
		"                } else {",
		"                    harnessBuf += static_cast<char>(harnessCh);",
		"                }",
		"        }",
		"    }",
		`    harnessBuf += "\"";`,
		"    return harnessBuf;",
		"};",
	}
}

func (m *CppMapper) Reserved(name string) bool {
	return cppReserved[name]
}

func (m *CppMapper) EscapeString(s string) string {
	return escapeCpp(s)
}

var cppInclude = regexp.MustCompile(`(?m)^\s*#\s*include\s*<([^>]+)>`)

// Finalize prepends the headers the block needs unless the program already
// includes them or the catch-all bits/stdc++.h
func (m *CppMapper) Finalize(ctx *Context, source string) string {
	present := make(map[string]bool)
	for _, match := range cppInclude.FindAllStringSubmatch(source, -1) {
		present[strings.TrimSpace(match[1])] = true
	}
	if present["bits/stdc++.h"] {
		return source
	}

	var header strings.Builder
	for _, h := range ctx.SortedImports() {
		if !present[h] {
			header.WriteString("#include <" + h + ">\n")
		}
	}
	return header.String() + source
}

type cppLiterals struct{}

func (cppLiterals) intLiteral(v int64) string {
	return strconv.FormatInt(v, 10)
}

func (cppLiterals) boolLiteral(v bool) string {
	return strconv.FormatBool(v)
}

func (cppLiterals) stringLiteral(s string) string {
	return `"` + escapeCpp(s) + `"`
}

func (cppLiterals) arrayLiteral(_ *Context, _ schema.Type, elems []string) string {
	return "{" + strings.Join(elems, ", ") + "}"
}

func (cppLiterals) objectLiteral(_ *Context, _ schema.Type, _ string) string {
	// unreachable: Supports rejects objects first
	return "{}"
}
