package target

import (
	"go/format"
	"strconv"

	"codemasti/internal/gen/ir"
	"codemasti/internal/gen/schema"
)

// GoMapper maps types onto Go. Statements are built as IR and emitted, so
// literals get Go quoting from the emitter. Object parameters decode through
// encoding/json into map[string]interface{}; object results are refused
// because a Go map does not keep key order.
type GoMapper struct{}

func (m *GoMapper) Target() schema.Target {
	return schema.Go
}

func (m *GoMapper) Supports(typ schema.Type) error {
	return unsupported(schema.Go, typ)
}

// SupportsResult rejects types containing objects
func (m *GoMapper) SupportsResult(typ schema.Type) error {
	return unsupported(schema.Go, typ, schema.KindObject)
}

func (m *GoMapper) nativeType(typ schema.Type) string {
	switch typ.Kind {
	case schema.KindInt:
		return "int"
	case schema.KindBoolean:
		return "bool"
	case schema.KindString:
		return "string"
	case schema.KindArray:
		return "[]" + m.nativeType(typ.Element())
	case schema.KindObject:
		return "map[string]interface{}"
	}
	return ""
}

func (m *GoMapper) DeclareAndParse(ctx *Context, varName string, typ schema.Type, rawToken string) ([]string, error) {
	if err := m.Supports(typ); err != nil {
		return nil, err
	}
	value, err := buildLiteral[ir.Expr](ctx, goLiterals{m}, 64, typ, rawToken)
	if err != nil {
		return nil, err
	}
	return renderStmts(ir.Define(ir.Id(varName), value))
}

func (m *GoMapper) FormatValue(ctx *Context, expr string, typ schema.Type) (Fragment, error) {
	if err := m.SupportsResult(typ); err != nil {
		return Fragment{}, err
	}

	if typ.Kind != schema.KindArray {
		text, err := renderExpr(m.scalarText(ctx, ir.Raw(expr), typ))
		if err != nil {
			return Fragment{}, err
		}
		return Fragment{Expr: text}, nil
	}

	ctx.AddImport("strings")
	sb := ctx.Temp("Sb")
	stmts := []ir.Stmt{ir.Var(sb, "strings.Builder")}
	stmts = append(stmts, m.appendValue(ctx, sb, ir.Raw(expr), typ)...)

	lines, err := renderStmts(stmts...)
	if err != nil {
		return Fragment{}, err
	}
	return Fragment{Stmts: lines, Expr: sb + ".String()"}, nil
}

// scalarText converts a non-array value to its canonical text
func (m *GoMapper) scalarText(ctx *Context, x ir.Expr, typ schema.Type) ir.Expr {
	switch typ.Kind {
	case schema.KindInt:
		ctx.AddImport("strconv")
		return ir.Call("strconv.Itoa", x)
	case schema.KindBoolean:
		ctx.AddImport("strconv")
		return ir.Call("strconv.FormatBool", x)
	default:
		ctx.Require(helperQuote)
		return ir.Call("harnessQuote", x)
	}
}

func (m *GoMapper) appendValue(ctx *Context, sb string, x ir.Expr, typ schema.Type) []ir.Stmt {
	if typ.Kind != schema.KindArray {
		return []ir.Stmt{
			ir.ExprStatement(ir.CallOn(ir.Id(sb), "WriteString", m.scalarText(ctx, x, typ))),
		}
	}

	i, v := ctx.Temp("I"), ctx.Temp("V")
	body := []ir.Stmt{
		ir.If(ir.Gt(ir.Id(i), ir.Lit(0)),
			ir.ExprStatement(ir.CallOn(ir.Id(sb), "WriteByte", ir.Char(','))),
		),
	}
	body = append(body, m.appendValue(ctx, sb, ir.Id(v), typ.Element())...)

	// a nil slice prints null, as the other targets print a null array
	return []ir.Stmt{
		ir.IfElse(ir.Eq(x, ir.Nil()),
			[]ir.Stmt{ir.ExprStatement(ir.CallOn(ir.Id(sb), "WriteString", ir.Lit("null")))},
			[]ir.Stmt{
				ir.ExprStatement(ir.CallOn(ir.Id(sb), "WriteByte", ir.Char('['))),
				ir.Range(i, v, x, body...),
				ir.ExprStatement(ir.CallOn(ir.Id(sb), "WriteByte", ir.Char(']'))),
			},
		),
	}
}

func (m *GoMapper) Invoke(functionName string, args []string, methodStyle bool) string {
	return invokeExpr(functionName, args, methodStyle)
}

func (m *GoMapper) MethodStyle() bool {
	return false
}

func (m *GoMapper) DeclareInstance(name string) []string {
	return []string{name + " := &Solution{}"}
}

func (m *GoMapper) DeclareResult(name string, typ schema.Type, call string) string {
	return name + " := " + call
}

func (m *GoMapper) CallStatement(call string) string {
	return call
}

func (m *GoMapper) Print(ctx *Context, expr string) string {
	ctx.AddImport("fmt")
	return "fmt.Println(" + expr + ")"
}

func (m *GoMapper) Helpers(ctx *Context) []string {
	var stmts []ir.Stmt
	if ctx.Requires(helperQuote) {
		ctx.AddImport("fmt")
		ctx.AddImport("strings")
		stmts = append(stmts, goQuoteHelper())
	}
	lines, err := renderStmts(stmts...)
	if err != nil {
		// the helpers are fixed trees, so this only fires on an emitter defect
		panic(err)
	}
	return lines
}

func (m *GoMapper) Reserved(name string) bool {
	return goReserved[name]
}

func (m *GoMapper) EscapeString(s string) string {
	q := strconv.Quote(s)
	return q[1 : len(q)-1]
}

// PrepareUserCode strips the package clause and imports from the candidate's
// code. The imports move into the harness import block.
func (m *GoMapper) PrepareUserCode(ctx *Context, code string) string {
	rest, imports := splitGoImports(code)
	for path, alias := range imports {
		if alias != "" {
			ctx.AddImportAlias(alias, path)
		} else {
			ctx.AddImport(path)
		}
	}
	return rest
}

// Finalize adds the imports the block needs and gofmts the program. A program
// that does not parse, usually because of the candidate's code, is returned as is.
func (m *GoMapper) Finalize(ctx *Context, source string) string {
	source = addGoImports(source, ctx.Imports)
	formatted, err := format.Source([]byte(source))
	if err != nil {
		return source
	}
	return string(formatted)
}

// goQuoteHelper builds the closure producing JSON.stringify compatible string literals
func goQuoteHelper() ir.Stmt {
	write := func(s string) ir.Stmt {
		return ir.ExprStatement(ir.CallOn(ir.Id("harnessBuf"), "WriteString", ir.Lit(s)))
	}
	escapes := []struct {
		ch  rune
		out string
	}{
		{'"', `\"`},
		{'\\', `\\`},
		{'\n', `\n`},
		{'\r', `\r`},
		{'\t', `\t`},
		{'\b', `\b`},
		{'\f', `\f`},
	}

	cases := make([]ir.CaseClause, 0, len(escapes)+1)
	for _, e := range escapes {
		cases = append(cases, ir.Case([]ir.Expr{ir.Char(e.ch)}, write(e.out)))
	}
	cases = append(cases, ir.Default(
		ir.IfElse(ir.Lt(ir.Id("harnessCh"), ir.Raw("0x20")),
			[]ir.Stmt{ir.ExprStatement(ir.Call("fmt.Fprintf", ir.Addr(ir.Id("harnessBuf")), ir.Lit(`\u%04x`), ir.Id("harnessCh")))},
			[]ir.Stmt{ir.ExprStatement(ir.CallOn(ir.Id("harnessBuf"), "WriteRune", ir.Id("harnessCh")))},
		),
	))

	return ir.Define(ir.Id("harnessQuote"), ir.Closure(
		[]ir.Param{{Name: "harnessStr", Type: "string"}},
		[]ir.Param{{Type: "string"}},
		ir.Var("harnessBuf", "strings.Builder"),
		ir.ExprStatement(ir.CallOn(ir.Id("harnessBuf"), "WriteByte", ir.Char('"'))),
		ir.Range("_", "harnessCh", ir.Id("harnessStr"), ir.Switch(ir.Id("harnessCh"), cases...)),
		ir.ExprStatement(ir.CallOn(ir.Id("harnessBuf"), "WriteByte", ir.Char('"'))),
		ir.Return(ir.CallOn(ir.Id("harnessBuf"), "String")),
	))
}

type goLiterals struct {
	m *GoMapper
}

func (goLiterals) intLiteral(v int64) ir.Expr {
	return ir.Lit(v)
}

func (goLiterals) boolLiteral(v bool) ir.Expr {
	return ir.Lit(v)
}

func (goLiterals) stringLiteral(s string) ir.Expr {
	return ir.Lit(s)
}

func (l goLiterals) arrayLiteral(_ *Context, elem schema.Type, elems []ir.Expr) ir.Expr {
	return ir.Composite("[]"+l.m.nativeType(elem), elems...)
}

// objectLiteral decodes the JSON text at run time inside an immediately
// invoked closure, so the declaration stays a single expression
func (l goLiterals) objectLiteral(ctx *Context, typ schema.Type, jsonText string) ir.Expr {
	ctx.AddImport("encoding/json")
	native := l.m.nativeType(typ)
	return ir.ClosureCall([]ir.Param{{Type: native}},
		ir.Var("harnessV", native),
		ir.IfInit(
			ir.Define(ir.Id("err"), ir.Call("json.Unmarshal", ir.Call("[]byte", ir.Lit(jsonText)), ir.Addr(ir.Id("harnessV")))),
			ir.Neq(ir.Id("err"), ir.Nil()),
			ir.ExprStatement(ir.Call("panic", ir.Id("err"))),
		),
		ir.Return(ir.Id("harnessV")),
	)
}

func renderStmts(stmts ...ir.Stmt) ([]string, error) {
	lines := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		text, err := ir.Render(stmt)
		if err != nil {
			return nil, err
		}
		lines = append(lines, text)
	}
	return lines, nil
}

func renderExpr(e ir.Expr) (string, error) {
	return ir.Render(ir.ExprStatement(e))
}
