// SPDX-License-Identifier: MPL-2.0

// Package dag orders fragments along their provider edges. The composer never
// reorders a request; the graph is used to detect cycles and to suggest an
// order when a request lists a dependent before its provider.
package dag

import (
	"fmt"
	"strings"
)

type (
	// CycleError reports fragments that take part in a dependency cycle.
	CycleError struct {
		// Cycle lists the nodes left unordered, in insertion order.
		Cycle []string
	}

	// Graph is a directed graph keyed by fragment name. An edge from A to B
	// means A provides something B needs, so A belongs before B.
	Graph struct {
		adjacency map[string][]string
		nodes     []string
		nodeSet   map[string]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle between fragments: %s", strings.Join(e.Cycle, " -> "))
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[string][]string),
		nodeSet:   make(map[string]bool),
	}
}

// AddNode adds name unless it is already present.
func (g *Graph) AddNode(name string) {
	if g.nodeSet[name] {
		return
	}
	g.nodeSet[name] = true
	g.nodes = append(g.nodes, name)
}

// AddEdge records that from belongs before to. Self edges are ignored: a
// fragment that provides its own dependency needs nothing else.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	if from == to {
		return
	}
	for _, existing := range g.adjacency[from] {
		if existing == to {
			return
		}
	}
	g.adjacency[from] = append(g.adjacency[from], to)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// TopologicalSort returns an order in which every edge points forward, using
// Kahn's algorithm. Ties keep insertion order, so a request that is already
// valid comes back unchanged. Returns *CycleError when no such order exists.
func (g *Graph) TopologicalSort() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	inDegree := make(map[string]int, len(g.nodes))
	for _, neighbors := range g.adjacency {
		for _, n := range neighbors {
			inDegree[n]++
		}
	}

	// Ready nodes are released in insertion order, not discovery order.
	done := make(map[string]bool, len(g.nodes))
	result := make([]string, 0, len(g.nodes))
	for len(result) < len(g.nodes) {
		progressed := false
		for _, node := range g.nodes {
			if done[node] || inDegree[node] > 0 {
				continue
			}
			done[node] = true
			result = append(result, node)
			for _, n := range g.adjacency[node] {
				inDegree[n]--
			}
			progressed = true
			break
		}
		if !progressed {
			var cycle []string
			for _, node := range g.nodes {
				if !done[node] {
					cycle = append(cycle, node)
				}
			}
			return nil, &CycleError{Cycle: cycle}
		}
	}

	return result, nil
}
