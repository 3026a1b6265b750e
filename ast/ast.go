package ast

import "fmt"

// The syntax tree is a closed sum type. Node is sealed by an unexported
// method, so the six expression variants below are its only implementations
// and consumers can dispatch over them with an exhaustive type switch:
//
//	Node (interface)
//	  *Number, *Variable, *Binary, *Call, *If, *For
//
// Above the expressions sit FunctionPrototype, FunctionDefinition and
// CompilationUnit. Every node owns its children exclusively; the parser never
// shares a subtree between two parents.

// Node is an expression in the syntax tree.
type Node interface {
	// String returns a compact, single-line rendering for tests and
	// diagnostics. Use Fprint for the indented tree view.
	String() string
	exprNode()
}

// OperatorKind is the operator of a Binary node.
type OperatorKind int

const (
	Plus OperatorKind = iota
	Minus
	Asterisk
	LessThan
)

// String returns the operator's source symbol.
func (op OperatorKind) String() string {
	switch op {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Asterisk:
		return "*"
	case LessThan:
		return "<"
	}
	return fmt.Sprintf("OperatorKind(%d)", int(op))
}

// OperatorFor maps a binary-operator token kind to its OperatorKind.
// The second result is false for every other kind.
func OperatorFor(kind TokenKind) (OperatorKind, bool) {
	switch kind {
	case PLUS:
		return Plus, true
	case MINUS:
		return Minus, true
	case ASTERISK:
		return Asterisk, true
	case LT:
		return LessThan, true
	}
	return 0, false
}

// DefaultStep is the increment a consumer must use for a For loop whose Step
// is nil. The parser never fills it in.
const DefaultStep = 1.0

// ── Expressions ───────────────────────────────────────────────────────────────

// Number is a numeric literal. All Kaleido values are float64.
type Number struct {
	Value float64
}

// Variable is a reference to a named parameter or loop variable.
type Variable struct {
	Name string
}

// Binary is a binary operation: Left Op Right.
type Binary struct {
	Op    OperatorKind
	Left  Node
	Right Node
}

// Call is a function call with positional arguments.
//
//	foo(1, x + 2)
type Call struct {
	Callee string
	Args   []Node
}

// If is a conditional expression. Both branches are required; the condition
// is true when it evaluates to any nonzero value.
//
//	if x < 3 then 1 else fib(x - 1) + fib(x - 2)
type If struct {
	Cond Node
	Then Node
	Else Node
}

// For is a counted loop expression. Step is nil when the header has no third
// part; consumers substitute DefaultStep.
//
//	for i = 1, i < n, 2 in putchard(42)
type For struct {
	Var   string
	Start Node
	End   Node
	Step  Node
	Body  Node
}

func (*Number) exprNode()   {}
func (*Variable) exprNode() {}
func (*Binary) exprNode()   {}
func (*Call) exprNode()     {}
func (*If) exprNode()       {}
func (*For) exprNode()      {}

func (e *Number) String() string   { return fmt.Sprintf("Number(%g)", e.Value) }
func (e *Variable) String() string { return fmt.Sprintf("Variable(%s)", e.Name) }

func (e *Binary) String() string {
	return fmt.Sprintf("Binary(%s, %s, %s)", e.Op, e.Left, e.Right)
}

func (e *Call) String() string {
	args := ""
	for i, a := range e.Args {
		if i > 0 {
			args += ", "
		}
		args += a.String()
	}
	return fmt.Sprintf("Call(%s, [%s])", e.Callee, args)
}

func (e *If) String() string {
	return fmt.Sprintf("If(%s, %s, %s)", e.Cond, e.Then, e.Else)
}

func (e *For) String() string {
	step := "None"
	if e.Step != nil {
		step = e.Step.String()
	}
	return fmt.Sprintf("For(%s, %s, %s, %s, %s)", e.Var, e.Start, e.End, step, e.Body)
}

// ── Functions ─────────────────────────────────────────────────────────────────

// FunctionPrototype is a function's name and parameter list. An empty name
// marks the anonymous wrapper built around a bare top-level expression.
// The parameter list is fixed at construction.
type FunctionPrototype struct {
	Name   string
	params []string
}

// NewPrototype returns a prototype holding its own copy of params.
func NewPrototype(name string, params []string) *FunctionPrototype {
	return &FunctionPrototype{Name: name, params: append([]string(nil), params...)}
}

// Params returns a copy of the parameter names in declaration order.
func (p *FunctionPrototype) Params() []string {
	return append([]string(nil), p.params...)
}

// Arity returns the number of parameters.
func (p *FunctionPrototype) Arity() int { return len(p.params) }

// IsAnonymous reports whether this is a top-level expression wrapper.
func (p *FunctionPrototype) IsAnonymous() bool { return p.Name == "" }

func (p *FunctionPrototype) String() string {
	return fmt.Sprintf("%s(%v)", p.Name, p.params)
}

// FunctionDefinition pairs a prototype with its body expression.
type FunctionDefinition struct {
	Proto *FunctionPrototype
	Body  Node
}

func (d *FunctionDefinition) String() string {
	return fmt.Sprintf("def %s %s", d.Proto, d.Body)
}

// CompilationUnit is the root of a parsed source file.
//
// Functions are in source order, which is also emission order. Each bare
// top-level expression appears as an anonymous definition at the position it
// occupied in the source. Externs holds the prototypes of extern
// declarations, also in source order.
type CompilationUnit struct {
	Name      string
	Functions []*FunctionDefinition
	Externs   []*FunctionPrototype
}
