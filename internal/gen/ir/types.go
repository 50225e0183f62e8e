// Package ir is a small Go syntax tree used to build the statements the Go
// harness target injects into its wrapper template.
package ir

// Node is the base interface for all IR nodes
type Node interface {
	irNode()
}

// Expr represents an expression
type Expr interface {
	Node
	irExpr()
}

// Stmt represents a statement
type Stmt interface {
	Node
	irStmt()
}

// Param represents a function parameter or return value
type Param struct {
	Name string // can be empty for unnamed returns
	Type string
}

// VarDecl represents a var declaration: var name Type = value
type VarDecl struct {
	Name  string
	Type  string // can be empty for type inference
	Value Expr   // can be nil
}

func (VarDecl) irNode() {}
func (VarDecl) irStmt() {}

// AssignStmt represents assignment: lhs = rhs or lhs := rhs
type AssignStmt struct {
	Left   []Expr
	Right  []Expr
	Define bool // true for :=, false for =
}

func (AssignStmt) irNode() {}
func (AssignStmt) irStmt() {}

// IfStmt represents an if statement
type IfStmt struct {
	Init Stmt // optional init statement
	Cond Expr
	Then []Stmt
	Else []Stmt // can be empty, or contain single IfStmt for else-if
}

func (IfStmt) irNode() {}
func (IfStmt) irStmt() {}

// RangeStmt represents a for-range loop
type RangeStmt struct {
	Key    string // can be "_" or empty
	Value  string // can be "_" or empty
	X      Expr   // expression to range over
	Define bool   // true for :=, false for =
	Body   []Stmt
}

func (RangeStmt) irNode() {}
func (RangeStmt) irStmt() {}

// SwitchStmt represents an expression switch
type SwitchStmt struct {
	Tag   Expr // can be nil for a tagless switch
	Cases []CaseClause
}

func (SwitchStmt) irNode() {}
func (SwitchStmt) irStmt() {}

// CaseClause is one case of a switch; no values means default
type CaseClause struct {
	Values []Expr
	Body   []Stmt
}

// ReturnStmt represents a return statement
type ReturnStmt struct {
	Values []Expr
}

func (ReturnStmt) irNode() {}
func (ReturnStmt) irStmt() {}

// ExprStmt wraps an expression as a statement
type ExprStmt struct {
	X Expr
}

func (ExprStmt) irNode() {}
func (ExprStmt) irStmt() {}

// Ident represents an identifier
type Ident struct {
	Name string
}

func (Ident) irNode() {}
func (Ident) irExpr() {}

// Literal represents a literal value
type Literal struct {
	Value any    // string, rune, int64, bool, nil
	Kind  string // "string", "rune", "int", "bool", "nil"
}

func (Literal) irNode() {}
func (Literal) irExpr() {}

// CallExpr represents a function call
type CallExpr struct {
	Func Expr
	Args []Expr
}

func (CallExpr) irNode() {}
func (CallExpr) irExpr() {}

// SelectorExpr represents a.b
type SelectorExpr struct {
	X   Expr
	Sel string
}

func (SelectorExpr) irNode() {}
func (SelectorExpr) irExpr() {}

// IndexExpr represents a[i]
type IndexExpr struct {
	X     Expr
	Index Expr
}

func (IndexExpr) irNode() {}
func (IndexExpr) irExpr() {}

// UnaryExpr represents a unary expression: &x, !x, -x
type UnaryExpr struct {
	Op string
	X  Expr
}

func (UnaryExpr) irNode() {}
func (UnaryExpr) irExpr() {}

// BinaryExpr represents a binary expression: x + y, x == y, etc.
type BinaryExpr struct {
	X  Expr
	Op string
	Y  Expr
}

func (BinaryExpr) irNode() {}
func (BinaryExpr) irExpr() {}

// CompositeLit represents a composite literal: Type{...}
type CompositeLit struct {
	Type     string // e.g., "[]string", "[][]int"
	Elements []Expr
}

func (CompositeLit) irNode() {}
func (CompositeLit) irExpr() {}

// FuncLit represents a function literal (closure)
type FuncLit struct {
	Params  []Param
	Results []Param
	Body    []Stmt
}

func (FuncLit) irNode() {}
func (FuncLit) irExpr() {}

// RawExpr allows inserting raw Go code (escape hatch)
type RawExpr struct {
	Code string
}

func (RawExpr) irNode() {}
func (RawExpr) irExpr() {}
