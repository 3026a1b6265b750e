package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// indent is one nesting level of the tree view.
const indent = "  "

// Fprint writes an indented tree rendering of x to w. x may be a
// *CompilationUnit, *FunctionDefinition, *FunctionPrototype or Node.
// The format is meant for humans reading diagnostics and may change.
func Fprint(w io.Writer, x any) error {
	_, err := io.WriteString(w, Sprint(x))
	return err
}

// Sprint returns the tree rendering of x as a string. See Fprint.
func Sprint(x any) string {
	var p printer
	switch x := x.(type) {
	case *CompilationUnit:
		p.unit(x)
	case *FunctionDefinition:
		p.definition(0, x)
	case *FunctionPrototype:
		p.prototype(0, x)
	case Node:
		p.node(0, x)
	default:
		panic(fmt.Sprintf("ast.Sprint: unexpected %T", x))
	}
	return p.b.String()
}

type printer struct {
	b strings.Builder
}

func (p *printer) linef(depth int, format string, args ...any) {
	p.b.WriteString(strings.Repeat(indent, depth))
	fmt.Fprintf(&p.b, format, args...)
	p.b.WriteByte('\n')
}

func (p *printer) unit(u *CompilationUnit) {
	p.linef(0, "CompilationUnit: %s", u.Name)
	for _, def := range u.Functions {
		p.definition(1, def)
	}
	for _, ext := range u.Externs {
		p.linef(1, "Extern")
		p.prototype(2, ext)
	}
}

func (p *printer) definition(depth int, def *FunctionDefinition) {
	p.linef(depth, "FunctionDefinition")
	p.linef(depth+1, "Proto:")
	p.prototype(depth+2, def.Proto)
	p.linef(depth+1, "Body:")
	p.node(depth+2, def.Body)
}

func (p *printer) prototype(depth int, proto *FunctionPrototype) {
	name := proto.Name
	if proto.IsAnonymous() {
		name = "[Anonymous]"
	}
	p.linef(depth, "Name: %s", name)
	if proto.Arity() > 0 {
		p.linef(depth, "Args: %s", strings.Join(proto.params, " "))
	}
}

// labelled prints "label:" one level in and the child node two levels in.
func (p *printer) labelled(depth int, label string, n Node) {
	p.linef(depth+1, "%s:", label)
	p.node(depth+2, n)
}

func (p *printer) node(depth int, n Node) {
	switch n := n.(type) {
	case *Number:
		p.linef(depth, "NumberExpr: %s", strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *Variable:
		p.linef(depth, "VariableExpr: %s", n.Name)
	case *Binary:
		p.linef(depth, "BinaryExpr")
		p.linef(depth+1, "Op: %s", n.Op)
		p.labelled(depth, "Left", n.Left)
		p.labelled(depth, "Right", n.Right)
	case *Call:
		p.linef(depth, "CallExpr")
		p.linef(depth+1, "Callee: %s", n.Callee)
		p.linef(depth+1, "Args:")
		for _, a := range n.Args {
			p.node(depth+2, a)
		}
	case *If:
		p.linef(depth, "IfExpr")
		p.labelled(depth, "Cond", n.Cond)
		p.labelled(depth, "Then", n.Then)
		p.labelled(depth, "Else", n.Else)
	case *For:
		p.linef(depth, "ForExpr")
		p.linef(depth+1, "Var: %s", n.Var)
		p.labelled(depth, "Start", n.Start)
		p.labelled(depth, "End", n.End)
		if n.Step != nil {
			p.labelled(depth, "Step", n.Step)
		}
		p.labelled(depth, "Body", n.Body)
	default:
		panic(fmt.Sprintf("ast: unexpected node %T", n))
	}
}
