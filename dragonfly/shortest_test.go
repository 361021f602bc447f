package dragonfly

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// sortPaths makes path comparisons independent of the heap's tie-breaking.
var sortPaths = cmpopts.SortSlices(func(a, b []int) bool {
	return slices.Compare(a, b) < 0
})

// bidirectional returns the edges of an undirected graph given as a list of
// weighted node pairs.
func bidirectional(pairs [][3]int) []Edge {
	edges := make([]Edge, 0, 2*len(pairs))
	for _, p := range pairs {
		edges = append(edges, Edge{p[0], p[1], p[2], 1})
		edges = append(edges, Edge{p[1], p[0], p[2], 1})
	}
	return edges
}

func TestShortestTree(t *testing.T) {
	testCases := []struct {
		desc        string
		graph       *Digraph
		src         int
		wantDist    []int
		wantParents [][]int
		wantErr     bool
	}{
		{
			desc:    "nil graph",
			wantErr: true,
		},
		{
			desc:    "empty graph",
			graph:   NewDigraph(nil, 0),
			wantErr: true,
		},
		{
			desc:    "source out of range",
			graph:   NewDigraph(nil, 2),
			src:     2,
			wantErr: true,
		},
		{
			desc:        "single node (no edge)",
			graph:       NewDigraph(nil, 1),
			wantDist:    []int{0},
			wantParents: [][]int{{Terminator}},
		},
		{
			// 0-->1
			desc:        "one edge",
			graph:       NewDigraph([]Edge{{0, 1, 0, 1}}, 2),
			wantDist:    []int{0, 0},
			wantParents: [][]int{{Terminator}, {0}},
		},
		{
			// 0-->1   2-->3
			desc:        "not connected",
			graph:       NewDigraph([]Edge{{0, 1, 1, 1}, {2, 3, 1, 1}}, 4),
			wantDist:    []int{0, 1, Infinity, Infinity},
			wantParents: [][]int{{Terminator}, {0}, nil, nil},
		},
		{
			// 0-->1-->2
			//  \      ^
			//   \     |
			//    +----+
			desc: "one shortest path (A)",
			graph: NewDigraph([]Edge{
				{0, 1, 1, 1},
				{1, 2, 1, 1},
				{0, 2, 3, 1},
			}, 3),
			wantDist:    []int{0, 1, 2},
			wantParents: [][]int{{Terminator}, {0}, {1}},
		},
		{
			desc: "one shortest path (B)",
			graph: NewDigraph([]Edge{
				{0, 1, 1, 1},
				{1, 2, 1, 1},
				{0, 2, 1, 1},
			}, 3),
			wantDist:    []int{0, 1, 1},
			wantParents: [][]int{{Terminator}, {0}, {0}},
		},
		{
			desc: "two shortest paths",
			graph: NewDigraph([]Edge{
				{0, 1, 1, 1},
				{1, 2, 1, 1},
				{0, 2, 2, 1},
			}, 3),
			wantDist:    []int{0, 1, 2},
			wantParents: [][]int{{Terminator}, {0}, {0, 1}},
		},
		{
			// 0-->1-->2-->3
			// |   ^       ^
			// |   |       |
			// +-->4------>5
			desc: "three shortest paths",
			graph: NewDigraph([]Edge{
				{0, 1, 2, 1},
				{1, 2, 2, 1},
				{2, 3, 1, 1},
				{0, 4, 1, 1},
				{4, 1, 1, 1},
				{4, 5, 3, 1},
				{5, 3, 1, 1},
			}, 6),
			wantDist: []int{0, 2, 4, 5, 1, 4},
			wantParents: [][]int{
				{Terminator},
				{0, 4},
				{1},
				{5, 2},
				{0},
				{4},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			gotDist, gotParents, gotErr := shortestTree(tc.graph, tc.src)

			if tc.wantErr && gotErr == nil {
				t.Errorf("shortestTree(): want error, got nil")
			}
			if !tc.wantErr && gotErr != nil {
				t.Errorf("shortestTree(): want no error, got %s", gotErr)
			}
			if diff := cmp.Diff(tc.wantDist, gotDist); diff != "" {
				t.Errorf("shortestTree(): distance mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantParents, gotParents, cmpopts.SortSlices(func(a, b int) bool { return a < b })); diff != "" {
				t.Errorf("shortestTree(): parents mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAllPairs_square(t *testing.T) {
	//     1
	//  0-----1
	//  |     |
	// 3|     |3
	//  |     |
	//  2-----3
	//     1
	g := NewDigraph(bidirectional([][3]int{
		{0, 1, 1},
		{0, 2, 3},
		{1, 3, 3},
		{2, 3, 1},
	}), 4)
	wantDist := [][]int{
		{0, 1, 3, 4},
		{1, 0, 4, 3},
		{3, 4, 0, 1},
		{4, 3, 1, 0},
	}
	wantPaths := [][]int{{0, 1, 3}, {0, 2, 3}}

	sp, err := AllPairs(g)
	if err != nil {
		t.Fatalf("AllPairs(): want no error, got %s", err)
	}

	if diff := cmp.Diff(wantDist, sp.Dist); diff != "" {
		t.Errorf("AllPairs(): distance mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantPaths, sp.Paths(0, 3), sortPaths); diff != "" {
		t.Errorf("Paths(0, 3): mismatch (-want +got):\n%s", diff)
	}
	for _, p := range sp.Paths(0, 3) {
		if got := len(p); got != 3 {
			t.Errorf("Paths(0, 3): want paths of 3 nodes, got %v", p)
		}
	}
}

func TestAllPairs_nilGraph(t *testing.T) {
	if _, err := AllPairs(nil); err == nil {
		t.Errorf("AllPairs(nil): want error, got nil")
	}
}

func TestShortestPaths_Paths(t *testing.T) {
	g := NewDigraph([]Edge{
		{0, 1, 2, 1},
		{1, 2, 2, 1},
		{2, 3, 1, 1},
		{0, 4, 1, 1},
		{4, 1, 1, 1},
		{4, 5, 3, 1},
		{5, 3, 1, 1},
		{6, 0, 1, 1},
	}, 7)
	sp, err := AllPairs(g)
	if err != nil {
		t.Fatalf("AllPairs(): want no error, got %s", err)
	}

	testCases := []struct {
		desc     string
		src, dst int
		want     [][]int
	}{
		{
			desc: "same node",
			src:  3,
			dst:  3,
			want: [][]int{{3}},
		},
		{
			desc: "direct edge",
			src:  0,
			dst:  4,
			want: [][]int{{0, 4}},
		},
		{
			desc: "two paths",
			src:  0,
			dst:  1,
			want: [][]int{{0, 1}, {0, 4, 1}},
		},
		{
			desc: "nested branching",
			src:  0,
			dst:  3,
			want: [][]int{{0, 1, 2, 3}, {0, 4, 1, 2, 3}, {0, 4, 5, 3}},
		},
		{
			desc: "prefix edge",
			src:  6,
			dst:  5,
			want: [][]int{{6, 0, 4, 5}},
		},
		{
			desc: "unreachable",
			src:  3,
			dst:  0,
			want: nil,
		},
		{
			desc: "out of range",
			src:  0,
			dst:  7,
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got := sp.Paths(tc.src, tc.dst)

			if diff := cmp.Diff(tc.want, got, sortPaths); diff != "" {
				t.Errorf("Paths(%d, %d): mismatch (-want +got):\n%s", tc.src, tc.dst, diff)
			}
		})
	}
}

func TestShortestPaths_Paths_doNotAlias(t *testing.T) {
	g := NewDigraph(bidirectional([][3]int{
		{0, 1, 1},
		{0, 2, 1},
		{1, 3, 1},
		{2, 3, 1},
		{3, 4, 1},
	}), 5)
	sp, err := AllPairs(g)
	if err != nil {
		t.Fatalf("AllPairs(): want no error, got %s", err)
	}

	got := sp.Paths(0, 4)
	got[0][1] = 99

	want := [][]int{{0, 1, 3, 4}, {0, 2, 3, 4}}
	if diff := cmp.Diff(want, sp.Paths(0, 4), sortPaths); diff != "" {
		t.Errorf("Paths(0, 4): mismatch after mutation (-want +got):\n%s", diff)
	}
}
