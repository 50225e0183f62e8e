package ir

import "fmt"

// Expression builders

// Id creates an identifier
func Id(name string) *Ident {
	return &Ident{Name: name}
}

// Lit creates a literal
func Lit(value any) *Literal {
	switch v := value.(type) {
	case string:
		return &Literal{Value: v, Kind: "string"}
	case int:
		return &Literal{Value: int64(v), Kind: "int"}
	case int64:
		return &Literal{Value: v, Kind: "int"}
	case bool:
		return &Literal{Value: v, Kind: "bool"}
	case nil:
		return &Literal{Value: nil, Kind: "nil"}
	default:
		return &Literal{Value: v, Kind: "unknown"}
	}
}

// Char creates a rune literal
func Char(r rune) *Literal {
	return &Literal{Value: r, Kind: "rune"}
}

// Nil creates a nil literal
func Nil() *Literal {
	return &Literal{Value: nil, Kind: "nil"}
}

// Call creates a function call
func Call(fn string, args ...Expr) *CallExpr {
	return &CallExpr{
		Func: parseExpr(fn),
		Args: args,
	}
}

// CallOn creates a method call on an expression
func CallOn(receiver Expr, method string, args ...Expr) *CallExpr {
	return &CallExpr{
		Func: &SelectorExpr{X: receiver, Sel: method},
		Args: args,
	}
}

// Sel creates a selector expression: x.name
func Sel(x Expr, name string) *SelectorExpr {
	return &SelectorExpr{X: x, Sel: name}
}

// Index creates an index expression: x[i]
func Index(x Expr, index Expr) *IndexExpr {
	return &IndexExpr{X: x, Index: index}
}

// Addr creates an address-of expression: &x
func Addr(x Expr) *UnaryExpr {
	return &UnaryExpr{Op: "&", X: x}
}

func Eq(x, y Expr) *BinaryExpr  { return &BinaryExpr{X: x, Op: "==", Y: y} }
func Neq(x, y Expr) *BinaryExpr { return &BinaryExpr{X: x, Op: "!=", Y: y} }
func Lt(x, y Expr) *BinaryExpr  { return &BinaryExpr{X: x, Op: "<", Y: y} }
func Gt(x, y Expr) *BinaryExpr  { return &BinaryExpr{X: x, Op: ">", Y: y} }

// Composite creates a composite literal
func Composite(typ string, elems ...Expr) *CompositeLit {
	return &CompositeLit{Type: typ, Elements: elems}
}

// Closure creates a function literal
func Closure(params []Param, results []Param, body ...Stmt) *FuncLit {
	return &FuncLit{
		Params:  params,
		Results: results,
		Body:    body,
	}
}

// ClosureCall creates an immediately invoked function literal
func ClosureCall(results []Param, body ...Stmt) *CallExpr {
	return &CallExpr{
		Func: &FuncLit{
			Results: results,
			Body:    body,
		},
	}
}

// Raw creates a raw expression (escape hatch)
func Raw(code string) *RawExpr {
	return &RawExpr{Code: code}
}

// Rawf creates a formatted raw expression
func Rawf(format string, args ...any) *RawExpr {
	return &RawExpr{Code: fmt.Sprintf(format, args...)}
}

// Statement builders

// Var creates a variable declaration
func Var(name, typ string) *VarDecl {
	return &VarDecl{Name: name, Type: typ}
}

// Define creates a short variable declaration (:=)
func Define(left Expr, right Expr) *AssignStmt {
	return &AssignStmt{
		Left:   []Expr{left},
		Right:  []Expr{right},
		Define: true,
	}
}

// If creates an if statement
func If(cond Expr, then ...Stmt) *IfStmt {
	return &IfStmt{Cond: cond, Then: then}
}

// IfElse creates an if-else statement
func IfElse(cond Expr, then []Stmt, els []Stmt) *IfStmt {
	return &IfStmt{Cond: cond, Then: then, Else: els}
}

// IfInit creates an if statement with init
func IfInit(init Stmt, cond Expr, then ...Stmt) *IfStmt {
	return &IfStmt{Init: init, Cond: cond, Then: then}
}

// Range creates a for-range loop
func Range(key, value string, x Expr, body ...Stmt) *RangeStmt {
	return &RangeStmt{
		Key:    key,
		Value:  value,
		X:      x,
		Define: true,
		Body:   body,
	}
}

// Switch creates an expression switch
func Switch(tag Expr, cases ...CaseClause) *SwitchStmt {
	return &SwitchStmt{Tag: tag, Cases: cases}
}

// Case creates a case clause matching any of values
func Case(values []Expr, body ...Stmt) CaseClause {
	return CaseClause{Values: values, Body: body}
}

// Default creates the default clause
func Default(body ...Stmt) CaseClause {
	return CaseClause{Body: body}
}

// Return creates a return statement
func Return(values ...Expr) *ReturnStmt {
	return &ReturnStmt{Values: values}
}

// ExprStatement wraps an expression as a statement
func ExprStatement(e Expr) *ExprStmt {
	return &ExprStmt{X: e}
}

// parseExpr parses a dot-separated path into an expression
// e.g., "foo.bar.baz" -> Sel(Sel(Id("foo"), "bar"), "baz")
func parseExpr(path string) Expr {
	var result Expr
	start := 0

	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			part := path[start:i]
			if result == nil {
				result = Id(part)
			} else {
				result = &SelectorExpr{X: result, Sel: part}
			}
			start = i + 1
		}
	}

	return result
}
