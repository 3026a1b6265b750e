package ast_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/metaphox/kaleido/ast"
)

// collect records a short label for every node Inspect visits.
func collect(root any) string {
	var seen []string
	ast.Inspect(root, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Number:
			seen = append(seen, fmt.Sprintf("%g", n.Value))
		case *ast.Variable:
			seen = append(seen, n.Name)
		case *ast.Binary:
			seen = append(seen, n.Op.String())
		case *ast.Call:
			seen = append(seen, n.Callee+"()")
		case *ast.If:
			seen = append(seen, "if")
		case *ast.For:
			seen = append(seen, "for")
		}
		return true
	})
	return strings.Join(seen, " ")
}

func TestInspect_PreOrder(t *testing.T) {
	if got, want := collect(sampleUnit()), "+ a 1 for 0 10 g() i"; got != want {
		t.Errorf("visit order: got %q, want %q", got, want)
	}
}

func TestInspect_Roots(t *testing.T) {
	unit := sampleUnit()
	if got := collect(unit.Functions[0]); got != "+ a 1" {
		t.Errorf("definition root: got %q", got)
	}
	if got := collect(unit.Functions[0].Body); got != "+ a 1" {
		t.Errorf("node root: got %q", got)
	}
}

func TestInspect_StepVisitedWhenPresent(t *testing.T) {
	n := &ast.For{
		Var:   "i",
		Start: &ast.Number{Value: 1},
		End:   &ast.Number{Value: 2},
		Step:  &ast.Number{Value: 3},
		Body:  &ast.If{Cond: &ast.Variable{Name: "c"}, Then: &ast.Number{Value: 4}, Else: &ast.Number{Value: 5}},
	}
	if got, want := collect(n), "for 1 2 3 if c 4 5"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInspect_Prune(t *testing.T) {
	var visited int
	ast.Inspect(sampleUnit(), func(n ast.Node) bool {
		visited++
		_, isFor := n.(*ast.For)
		return !isFor
	})
	// + a 1 for; the loop's subtree is skipped.
	if visited != 4 {
		t.Errorf("visited %d nodes, want 4", visited)
	}
}

func TestInspect_UnexpectedRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Inspect on a prototype did not panic")
		}
	}()
	ast.Inspect(ast.NewPrototype("f", nil), func(ast.Node) bool { return true })
}
