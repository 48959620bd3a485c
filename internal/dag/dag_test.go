// SPDX-License-Identifier: MPL-2.0

package dag

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestTopologicalSort_EmptyGraph(t *testing.T) {
	t.Parallel()
	g := New()
	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != nil {
		t.Errorf("expected nil, got %v", order)
	}
}

func TestTopologicalSort_SingleNode(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddNode("config")
	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(order, []string{"config"}) {
		t.Errorf("expected [config], got %v", order)
	}
}

func TestTopologicalSort_LinearChain(t *testing.T) {
	t.Parallel()
	g := New()
	// config provides for core, core provides for routing
	g.AddEdge("config", "core")
	g.AddEdge("core", "routing")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"config", "core", "routing"}
	if !slices.Equal(order, expected) {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestTopologicalSort_Diamond(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("A", "C")
	g.AddEdge("B", "D")
	g.AddEdge("C", "D")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"A", "B", "C", "D"}
	if !slices.Equal(order, expected) {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestTopologicalSort_ValidOrderIsKept(t *testing.T) {
	t.Parallel()
	g := New()
	for _, n := range []string{"config", "core", "parse_form", "index", "routing", "main"} {
		g.AddNode(n)
	}
	g.AddEdge("core", "index")
	g.AddEdge("config", "main")
	g.AddEdge("routing", "main")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"config", "core", "parse_form", "index", "routing", "main"}
	if !slices.Equal(order, expected) {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestTopologicalSort_MovesDependentAfterProvider(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddNode("index")
	g.AddNode("main")
	g.AddNode("core")
	g.AddEdge("core", "index")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"main", "core", "index"}
	if !slices.Equal(order, expected) {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestTopologicalSort_SimpleCycle(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "A")

	_, err := g.TopologicalSort()
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}

	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError, got %T: %v", err, err)
	}
	if !slices.Equal(cycleErr.Cycle, []string{"A", "B"}) {
		t.Errorf("expected cycle [A B], got %v", cycleErr.Cycle)
	}
	if !strings.Contains(err.Error(), "A -> B") {
		t.Errorf("error %q does not name the cycle", err)
	}
}

func TestTopologicalSort_CycleExcludesOrderedNodes(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddNode("config")
	g.AddEdge("config", "A")
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("C", "A")

	_, err := g.TopologicalSort()
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError, got %v", err)
	}
	if !slices.Equal(cycleErr.Cycle, []string{"A", "B", "C"}) {
		t.Errorf("expected cycle [A B C], got %v", cycleErr.Cycle)
	}
}

func TestAddEdge_SelfAndDuplicateEdgesIgnored(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddEdge("core", "core")
	g.AddEdge("config", "core")
	g.AddEdge("config", "core")

	if g.Len() != 2 {
		t.Errorf("expected 2 nodes, got %d", g.Len())
	}
	if got := len(g.adjacency["config"]); got != 1 {
		t.Errorf("expected 1 edge from config, got %d", got)
	}

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("self edge should not form a cycle: %v", err)
	}
	if !slices.Equal(order, []string{"config", "core"}) {
		t.Errorf("unexpected order %v", order)
	}
}

func TestAddNode_Idempotent(t *testing.T) {
	t.Parallel()
	g := New()
	g.AddNode("main")
	g.AddNode("main")
	if g.Len() != 1 {
		t.Errorf("expected 1 node, got %d", g.Len())
	}
}
