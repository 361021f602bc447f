package dragonfly

import (
	"slices"

	"github.com/rhartert/sparsesets"
)

// EdgeRatio represent an edge in a forwarding graph and the ratio of load sent
// on that edge. For example, EdgeRatio{5, 0.5} means that 50% of the load sent
// on the forwarding graph traverses edge 5.
type EdgeRatio struct {
	Edge  int
	Ratio float64
}

// ForwardingRatios returns the fraction of the traffic sent from s to t that
// traverses each edge of g when the traffic is split evenly among the next
// hops of every router on the shortest paths from s to t (ECMP). The ratios
// are sorted by edge ID. It returns nil if t is not reachable from s or if
// s == t.
//
// The returned load respects the following invariants where loadIn[n] is the
// total amount of load on edges reaching node n and loadOut[n] is the total
// amount of load on edges leaving n:
//   - loadIn[s] = 0 and loadOut[s] = 1,
//   - loadIn[t] = 1 and loadOut[t] = 0,
//   - loadIn[n] = loadOut[n] for all node n != s, t.
//
// The algorithm operates in two phase. The first phase traverses the parents
// from t to s to extract the DAG of all the shortest paths from s to t. The
// second phase traverses that DAG in topological order so that the total
// fraction of traffic received at a node is known before it is split among
// the node's outgoing edges.
func ForwardingRatios(g *Digraph, sp *ShortestPaths, s int, t int) []EdgeRatio {
	if s == t || sp.Distance(s, t) == Infinity {
		return nil
	}

	parents := sp.Parents[s]
	nNodes := g.NumNodes()
	queue := make([]int, 0, nNodes) // used by both steps below

	// Step 1: extract DAG
	// -------------------
	nexts := make([][]int, nNodes)
	degrees := make([]int, nNodes)

	inDAG := sparsesets.New(nNodes)
	inDAG.Insert(t)
	queue = append(queue, t)

	for i := 0; i < len(queue); i++ {
		v := queue[i]
		if v == s {
			continue
		}
		degrees[v] = len(parents[v])
		for _, u := range parents[v] {
			if !inDAG.Contains(u) {
				inDAG.Insert(u)
				queue = append(queue, u)
			}
			nexts[u] = append(nexts[u], g.EdgeBetween(u, v))
		}
	}

	// Step 2: Compute load ratios
	// ---------------------------
	nodeLoad := make([]float64, nNodes)
	ratios := make([]EdgeRatio, 0, len(queue))

	queue = queue[:0] // reset
	queue = append(queue, s)
	nodeLoad[s] = 1.0
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, e := range nexts[u] {
			v := g.Edges[e].To

			l := nodeLoad[u] / float64(len(nexts[u]))
			ratios = append(ratios, EdgeRatio{Edge: e, Ratio: l})
			nodeLoad[v] += l

			degrees[v] -= 1
			if degrees[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	slices.SortFunc(ratios, func(a, b EdgeRatio) int {
		return a.Edge - b.Edge
	})
	return ratios
}

// LinkLoads returns the load on every edge of g when each router sends one
// unit of traffic to every other router over ECMP shortest paths.
func LinkLoads(g *Digraph, sp *ShortestPaths) []float64 {
	loads := make([]float64, len(g.Edges))
	for s := 0; s < g.NumNodes(); s++ {
		for t := 0; t < g.NumNodes(); t++ {
			for _, er := range ForwardingRatios(g, sp, s, t) {
				loads[er.Edge] += er.Ratio
			}
		}
	}
	return loads
}
