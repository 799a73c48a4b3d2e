// Package regalloc - interference graph construction.
// Design: an undirected graph of values that are simultaneously live,
// built from a backward liveness pass over the function's basic blocks.
package regalloc

import (
	"github.com/vantage-lang/vantagec/pkg/ir"
)

// InterferenceGraph represents variable interference
type InterferenceGraph struct {
	nodes map[ir.Value]*IGNode
	edges map[ir.Value]map[ir.Value]bool
}

// IGNode represents a node in the interference graph
type IGNode struct {
	value     ir.Value
	neighbors map[ir.Value]bool
}

func newInterferenceGraph() *InterferenceGraph {
	return &InterferenceGraph{
		nodes: make(map[ir.Value]*IGNode),
		edges: make(map[ir.Value]map[ir.Value]bool),
	}
}

func (ig *InterferenceGraph) addNode(val ir.Value) {
	if _, exists := ig.nodes[val]; !exists {
		ig.nodes[val] = &IGNode{
			value:     val,
			neighbors: make(map[ir.Value]bool),
		}
		ig.edges[val] = make(map[ir.Value]bool)
	}
}

func (ig *InterferenceGraph) addEdge(v1, v2 ir.Value) {
	ig.addNode(v1)
	ig.addNode(v2)

	if !ig.edges[v1][v2] {
		ig.edges[v1][v2] = true
		ig.edges[v2][v1] = true
		ig.nodes[v1].neighbors[v2] = true
		ig.nodes[v2].neighbors[v1] = true
	}
}

func (ig *InterferenceGraph) getNode(val ir.Value) *IGNode {
	return ig.nodes[val]
}

func (ig *InterferenceGraph) edgeCount() int {
	count := 0
	for _, edges := range ig.edges {
		count += len(edges)
	}
	return count / 2 // Each edge counted twice
}
