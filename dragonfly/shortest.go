package dragonfly

import (
	"fmt"
	"math"
	"slices"

	"github.com/rhartert/yagh"
	"github.com/unixpickle/essentials"
)

const (
	// Infinity is the distance between two nodes that are not connected.
	Infinity = math.MaxInt

	// Terminator marks the parent slot of a source node. It is the only
	// parent of the source and never appears next to other parents.
	Terminator = -1
)

// ShortestPaths holds the all-pairs shortest distances of a graph together
// with, for each pair (src, dst), the set of predecessors of dst on at least
// one shortest path from src. Multiple parents encode multiple equal-cost
// shortest paths.
//
// A ShortestPaths is immutable once computed and can be shared.
type ShortestPaths struct {
	Dist    [][]int
	Parents [][][]int
}

// AllPairs computes the shortest paths between every pair of nodes of g by
// running one single-source search per node.
func AllPairs(g *Digraph) (*ShortestPaths, error) {
	if g == nil {
		return nil, fmt.Errorf("digraph is nil")
	}

	nNodes := len(g.Nexts)
	sp := &ShortestPaths{
		Dist:    make([][]int, nNodes),
		Parents: make([][][]int, nNodes),
	}
	for src := 0; src < nNodes; src++ {
		dist, parents, err := shortestTree(g, src)
		if err != nil {
			return nil, err
		}
		sp.Dist[src] = dist
		sp.Parents[src] = parents
	}
	return sp, nil
}

// Distance returns the length of the shortest path from src to dst or
// Infinity if dst cannot be reached from src.
func (sp *ShortestPaths) Distance(src int, dst int) int {
	if !sp.contains(src) || !sp.contains(dst) {
		return Infinity
	}
	return sp.Dist[src][dst]
}

// Paths returns all the shortest paths from src to dst. Each path starts with
// src and ends with dst. The path from a node to itself is the single path
// made of that node. Paths returns nil if dst is not reachable from src.
//
// The enumeration walks the parent sets backward from dst with an explicit
// stack of partial (reversed) paths. A partial path is only copied when the
// walk branches, i.e. when a node has more than one parent.
func (sp *ShortestPaths) Paths(src int, dst int) [][]int {
	if sp.Distance(src, dst) == Infinity {
		return nil
	}

	parents := sp.Parents[src]
	paths := [][]int{}
	stack := [][]int{{dst}}

	for len(stack) > 0 {
		rev := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		prevs := parents[rev[len(rev)-1]]
		if len(prevs) == 1 {
			if prevs[0] == Terminator {
				paths = append(paths, reversed(rev))
				continue
			}
			stack = append(stack, append(rev, prevs[0]))
			continue
		}

		// Push in reverse so that the first parent is explored first.
		for i := len(prevs) - 1; i >= 0; i-- {
			branch := make([]int, len(rev), len(rev)+1)
			copy(branch, rev)
			stack = append(stack, append(branch, prevs[i]))
		}
	}

	return paths
}

func (sp *ShortestPaths) contains(node int) bool {
	return 0 <= node && node < len(sp.Dist)
}

func reversed(nodes []int) []int {
	r := slices.Clone(nodes)
	slices.Reverse(r)
	return r
}

// shortestTree computes the shortest distances from src to every node of g
// together with the parents of each node on the shortest paths from src.
//
// A strictly shorter path to a node replaces its parent set while a path of
// equal cost adds a new parent. The parent set of src is {Terminator}. Nodes
// that cannot be reached from src have a distance of Infinity and no parent.
func shortestTree(g *Digraph, src int) ([]int, [][]int, error) {
	if g == nil {
		return nil, nil, fmt.Errorf("digraph is nil")
	}

	nNodes := len(g.Nexts)
	if src < 0 || nNodes <= src {
		return nil, nil, fmt.Errorf("node %d is not in the graph", src)
	}

	parents := make([][]int, nNodes)
	dist := make([]int, nNodes)
	for i := range dist {
		dist[i] = Infinity
	}
	settled := make([]bool, nNodes)

	h := yagh.New[int](nNodes)
	h.Put(src, 0)
	dist[src] = 0
	parents[src] = []int{Terminator}

	for h.Size() > 0 {
		entry := h.Pop()
		u, c := entry.Elem, entry.Cost
		settled[u] = true

		for _, e := range g.Nexts[u] {
			v := g.Edges[e].To
			if settled[v] {
				continue
			}
			newCost := c + g.Edges[e].Cost

			// Path src -> u -> v is worse than the best known path.
			if dist[v] < newCost {
				continue
			}

			// Path src -> u -> v is one of the best paths to v so far.
			if dist[v] == newCost {
				if !essentials.Contains(parents[v], u) {
					parents[v] = append(parents[v], u)
				}
				continue
			}

			// Path src -> u -> v is better than the best path to v so far.
			dist[v] = newCost
			parents[v] = []int{u}
			h.Put(v, newCost)
		}
	}

	return dist, parents, nil
}
