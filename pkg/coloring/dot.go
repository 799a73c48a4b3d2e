package coloring

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// AsUndirected converts the adjacency matrix into a gonum graph.Undirected,
// letting a caller run gonum's own graph algorithms (connected components,
// clique bounds, Dsatur as a sanity baseline) over the same interference
// graph the engine colored, without this package depending on them.
func (g *Graph) AsUndirected() graph.Undirected {
	ug := simple.NewUndirectedGraph()
	for v := 0; v < g.n; v++ {
		ug.AddNode(simple.Node(v))
	}
	for u := 0; u < g.n; u++ {
		for v := u + 1; v < g.n; v++ {
			if g.Has(u, v) {
				ug.SetEdge(ug.NewEdge(simple.Node(u), simple.Node(v)))
			}
		}
	}
	return ug
}

// coloredNode is a DOT node (spec.md §6 debug channel) labeled with its
// assigned color; it implements both dot.Node and encoding.Attributer.
type coloredNode struct {
	id    int64
	color int
}

func (n coloredNode) ID() int64 { return n.id }

func (n coloredNode) DOTID() string {
	if n.color == Unassigned {
		return fmt.Sprintf("v%d_spilled", n.id)
	}
	return fmt.Sprintf("v%d_c%d", n.id, n.color)
}

func (n coloredNode) Attributes() []encoding.Attribute {
	if n.color == Unassigned {
		return []encoding.Attribute{{Key: "color", Value: "red"}, {Key: "label", Value: "spilled"}}
	}
	return []encoding.Attribute{{Key: "label", Value: fmt.Sprintf("c%d", n.color)}}
}

// WriteDOT renders g and s as a Graphviz DOT document, one node per
// vertex labeled with its assigned color or "spilled". This is the
// optional debug channel spec.md §6 allows ("the post-session S ... MAY
// be emitted on a debug channel").
func WriteDOT(g *Graph, s Solution, name string) ([]byte, error) {
	ug := simple.NewUndirectedGraph()
	for v := 0; v < g.n; v++ {
		ug.AddNode(coloredNode{id: int64(v), color: s.Colors[v]})
	}
	for u := 0; u < g.n; u++ {
		for v := u + 1; v < g.n; v++ {
			if g.Has(u, v) {
				ug.SetEdge(ug.NewEdge(ug.Node(int64(u)), ug.Node(int64(v))))
			}
		}
	}
	return dot.Marshal(ug, name, "", "  ", false)
}
