package dragonfly

// Edge represents a link between two routers in a directed graph. Width is
// the number of parallel physical channels behind the link; it does not
// affect the link's cost.
type Edge struct {
	From  int
	To    int
	Cost  int
	Width int
}

// Digraph represents a directed graph. Nexts[u] lists the IDs of the edges
// leaving node u in adjacency order.
type Digraph struct {
	Nexts [][]int
	Edges []Edge
}

// NewDigraph creates a new directed graph with the specified edges and number
// of nodes. It is important to ensure that edges are only between nodes within
// the range [0, nNodes); otherwise, the function will panic.
func NewDigraph(edges []Edge, nNodes int) *Digraph {
	dg := &Digraph{
		Nexts: make([][]int, nNodes),
		Edges: make([]Edge, len(edges)),
	}
	for i, e := range edges {
		dg.Edges[i] = e
		dg.Nexts[e.From] = append(dg.Nexts[e.From], i)
	}
	return dg
}

// NumNodes returns the number of nodes in the graph.
func (dg *Digraph) NumNodes() int {
	return len(dg.Nexts)
}

// EdgeBetween returns the ID of the edge from u to v, or -1 if the two nodes
// are not adjacent.
func (dg *Digraph) EdgeBetween(u int, v int) int {
	if u < 0 || len(dg.Nexts) <= u {
		return -1
	}
	for _, e := range dg.Nexts[u] {
		if dg.Edges[e].To == v {
			return e
		}
	}
	return -1
}

// Adjacent returns true if there is an edge from u to v.
func (dg *Digraph) Adjacent(u int, v int) bool {
	return dg.EdgeBetween(u, v) != -1
}
