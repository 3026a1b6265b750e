package ast

import "fmt"

// Inspect traverses the tree rooted at root in depth-first pre-order, calling
// fn for every expression node. If fn returns false the children of that node
// are skipped. root may be a Node, a *FunctionDefinition or a
// *CompilationUnit; externs have no body and are not visited.
//
// A nil For.Step is not passed to fn.
func Inspect(root any, fn func(Node) bool) {
	switch r := root.(type) {
	case *CompilationUnit:
		for _, def := range r.Functions {
			inspect(def.Body, fn)
		}
	case *FunctionDefinition:
		inspect(r.Body, fn)
	case Node:
		inspect(r, fn)
	default:
		panic(fmt.Sprintf("ast.Inspect: unexpected root %T", root))
	}
}

func inspect(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Number, *Variable:
		// leaves
	case *Binary:
		inspect(n.Left, fn)
		inspect(n.Right, fn)
	case *Call:
		for _, a := range n.Args {
			inspect(a, fn)
		}
	case *If:
		inspect(n.Cond, fn)
		inspect(n.Then, fn)
		inspect(n.Else, fn)
	case *For:
		inspect(n.Start, fn)
		inspect(n.End, fn)
		if n.Step != nil {
			inspect(n.Step, fn)
		}
		inspect(n.Body, fn)
	default:
		panic(fmt.Sprintf("ast.Inspect: unexpected node %T", n))
	}
}
