package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Emitter writes Go code from IR nodes
type Emitter struct {
	w      io.Writer
	indent int
	err    error
}

// NewEmitter creates a new emitter
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Emit writes the IR node to the writer
func (e *Emitter) Emit(n Node) error {
	e.emit(n)
	return e.err
}

// EmitStmts writes statements one per line at the current indentation
func (e *Emitter) EmitStmts(stmts []Stmt) error {
	for _, stmt := range stmts {
		e.writeIndent()
		e.emit(stmt)
		e.newline()
	}
	return e.err
}

// Render returns the source text of a single statement
func Render(stmt Stmt) (string, error) {
	var sb strings.Builder
	if err := NewEmitter(&sb).Emit(stmt); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (e *Emitter) write(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *Emitter) writef(format string, args ...any) {
	e.write(fmt.Sprintf(format, args...))
}

func (e *Emitter) writeIndent() {
	e.write(strings.Repeat("\t", e.indent))
}

func (e *Emitter) newline() {
	e.write("\n")
}

func (e *Emitter) emit(n Node) {
	if e.err != nil {
		return
	}

	switch v := n.(type) {
	case *VarDecl:
		e.emitVarDecl(v)
	case *AssignStmt:
		e.emitAssign(v)
	case *IfStmt:
		e.emitIf(v)
	case *RangeStmt:
		e.emitRange(v)
	case *SwitchStmt:
		e.emitSwitch(v)
	case *ReturnStmt:
		e.emitReturn(v)
	case *ExprStmt:
		e.emitExpr(v.X)
	case Expr:
		e.emitExpr(v)
	default:
		e.err = fmt.Errorf("unknown node type: %T", n)
	}
}

func (e *Emitter) emitBody(stmts []Stmt) {
	e.write(" {\n")
	e.indent++
	for _, stmt := range stmts {
		e.writeIndent()
		e.emit(stmt)
		e.newline()
	}
	e.indent--
	e.writeIndent()
	e.write("}")
}

func (e *Emitter) emitParams(params []Param) {
	for i, p := range params {
		if i > 0 {
			e.write(", ")
		}
		if p.Name != "" {
			e.write(p.Name)
			e.write(" ")
		}
		e.write(p.Type)
	}
}

func (e *Emitter) emitVarDecl(v *VarDecl) {
	e.write("var ")
	e.write(v.Name)
	if v.Type != "" {
		e.write(" ")
		e.write(v.Type)
	}
	if v.Value != nil {
		e.write(" = ")
		e.emitExpr(v.Value)
	}
}

func (e *Emitter) emitAssign(a *AssignStmt) {
	for i, l := range a.Left {
		if i > 0 {
			e.write(", ")
		}
		e.emitExpr(l)
	}

	if a.Define {
		e.write(" := ")
	} else {
		e.write(" = ")
	}

	for i, r := range a.Right {
		if i > 0 {
			e.write(", ")
		}
		e.emitExpr(r)
	}
}

func (e *Emitter) emitIf(i *IfStmt) {
	e.write("if ")
	if i.Init != nil {
		e.emit(i.Init)
		e.write("; ")
	}
	e.emitExpr(i.Cond)
	e.emitBody(i.Then)

	if len(i.Else) > 0 {
		e.write(" else ")
		if len(i.Else) == 1 {
			if elif, ok := i.Else[0].(*IfStmt); ok {
				e.emitIf(elif)
				return
			}
		}
		e.write("{\n")
		e.indent++
		for _, stmt := range i.Else {
			e.writeIndent()
			e.emit(stmt)
			e.newline()
		}
		e.indent--
		e.writeIndent()
		e.write("}")
	}
}

func (e *Emitter) emitRange(r *RangeStmt) {
	e.write("for ")

	hasKey := r.Key != "" && r.Key != "_"
	hasValue := r.Value != "" && r.Value != "_"

	if hasKey || hasValue {
		if hasKey {
			e.write(r.Key)
		} else {
			e.write("_")
		}
		if hasValue {
			e.write(", ")
			e.write(r.Value)
		}
		if r.Define {
			e.write(" := ")
		} else {
			e.write(" = ")
		}
	}

	e.write("range ")
	e.emitExpr(r.X)
	e.emitBody(r.Body)
}

func (e *Emitter) emitSwitch(s *SwitchStmt) {
	e.write("switch ")
	if s.Tag != nil {
		e.emitExpr(s.Tag)
		e.write(" ")
	}
	e.write("{\n")
	for _, c := range s.Cases {
		e.writeIndent()
		if len(c.Values) == 0 {
			e.write("default:\n")
		} else {
			e.write("case ")
			for i, v := range c.Values {
				if i > 0 {
					e.write(", ")
				}
				e.emitExpr(v)
			}
			e.write(":\n")
		}
		e.indent++
		for _, stmt := range c.Body {
			e.writeIndent()
			e.emit(stmt)
			e.newline()
		}
		e.indent--
	}
	e.writeIndent()
	e.write("}")
}

func (e *Emitter) emitReturn(r *ReturnStmt) {
	e.write("return")
	if len(r.Values) > 0 {
		e.write(" ")
		for i, v := range r.Values {
			if i > 0 {
				e.write(", ")
			}
			e.emitExpr(v)
		}
	}
}

func (e *Emitter) emitExpr(expr Expr) {
	if e.err != nil {
		return
	}

	switch v := expr.(type) {
	case *Ident:
		e.write(v.Name)

	case *Literal:
		e.emitLiteral(v)

	case *CallExpr:
		e.emitExpr(v.Func)
		e.write("(")
		for i, arg := range v.Args {
			if i > 0 {
				e.write(", ")
			}
			e.emitExpr(arg)
		}
		e.write(")")

	case *SelectorExpr:
		e.emitExpr(v.X)
		e.write(".")
		e.write(v.Sel)

	case *IndexExpr:
		e.emitExpr(v.X)
		e.write("[")
		e.emitExpr(v.Index)
		e.write("]")

	case *UnaryExpr:
		e.write(v.Op)
		e.emitExpr(v.X)

	case *BinaryExpr:
		e.emitExpr(v.X)
		e.writef(" %s ", v.Op)
		e.emitExpr(v.Y)

	case *CompositeLit:
		e.write(v.Type)
		e.write("{")
		for i, elem := range v.Elements {
			if i > 0 {
				e.write(", ")
			}
			e.emitExpr(elem)
		}
		e.write("}")

	case *FuncLit:
		e.write("func(")
		e.emitParams(v.Params)
		e.write(")")
		if len(v.Results) > 0 {
			e.write(" ")
			if len(v.Results) == 1 && v.Results[0].Name == "" {
				e.write(v.Results[0].Type)
			} else {
				e.write("(")
				e.emitParams(v.Results)
				e.write(")")
			}
		}
		e.emitBody(v.Body)

	case *RawExpr:
		e.write(v.Code)

	default:
		e.err = fmt.Errorf("unknown expression type: %T", expr)
	}
}

func (e *Emitter) emitLiteral(l *Literal) {
	switch l.Kind {
	case "string":
		e.write(strconv.Quote(l.Value.(string)))
	case "rune":
		e.write(strconv.QuoteRune(l.Value.(rune)))
	case "int":
		e.writef("%d", l.Value)
	case "bool":
		e.writef("%t", l.Value)
	case "nil":
		e.write("nil")
	default:
		e.writef("%v", l.Value)
	}
}
