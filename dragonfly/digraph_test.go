package dragonfly

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDigraph(t *testing.T) {
	testCases := []struct {
		desc   string
		edges  []Edge
		nNodes int
		want   *Digraph
	}{
		{
			desc: "empty digraph",
			want: &Digraph{
				Nexts: [][]int{},
				Edges: []Edge{},
			},
		},
		{
			// 0-->1
			desc:   "one edge",
			edges:  []Edge{{0, 1, 0, 1}},
			nNodes: 2,
			want: &Digraph{
				Nexts: [][]int{{0}, nil},
				Edges: []Edge{{0, 1, 0, 1}},
			},
		},
		{
			// 0-->1   2-->3
			desc:   "not connected",
			edges:  []Edge{{0, 1, 1, 1}, {2, 3, 1, 1}},
			nNodes: 4,
			want: &Digraph{
				Nexts: [][]int{{0}, nil, {1}, nil},
				Edges: []Edge{{0, 1, 1, 1}, {2, 3, 1, 1}},
			},
		},
		{
			// 0<->1<->2
			// ^       ^
			// |       |
			// +-->3<--+
			desc: "strongly connected",
			edges: []Edge{
				{0, 1, 1, 1}, // edge: 0
				{1, 0, 1, 1}, // edge: 1
				{1, 2, 1, 1}, // edge: 2
				{2, 1, 1, 1}, // edge: 3
				{0, 3, 1, 1}, // edge: 4
				{3, 0, 1, 1}, // edge: 5
				{2, 3, 1, 1}, // edge: 6
				{3, 2, 1, 1}, // edge: 7
			},
			nNodes: 4,
			want: &Digraph{
				Nexts: [][]int{
					{0, 4},
					{1, 2},
					{3, 6},
					{5, 7},
				},
				Edges: []Edge{
					{0, 1, 1, 1},
					{1, 0, 1, 1},
					{1, 2, 1, 1},
					{2, 1, 1, 1},
					{0, 3, 1, 1},
					{3, 0, 1, 1},
					{2, 3, 1, 1},
					{3, 2, 1, 1},
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got := NewDigraph(tc.edges, tc.nNodes)

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("NewDigraph(): mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDigraph_EdgeBetween(t *testing.T) {
	dg := NewDigraph([]Edge{
		{0, 1, 1, 1}, // edge: 0
		{1, 2, 3, 2}, // edge: 1
		{0, 2, 1, 1}, // edge: 2
	}, 3)

	testCases := []struct {
		u, v int
		want int
	}{
		{0, 1, 0},
		{1, 2, 1},
		{0, 2, 2},
		{2, 0, -1},
		{1, 0, -1},
		{-1, 0, -1},
		{3, 0, -1},
	}

	for _, tc := range testCases {
		if got := dg.EdgeBetween(tc.u, tc.v); got != tc.want {
			t.Errorf("EdgeBetween(%d, %d): want %d, got %d", tc.u, tc.v, tc.want, got)
		}
		if got, want := dg.Adjacent(tc.u, tc.v), tc.want != -1; got != want {
			t.Errorf("Adjacent(%d, %d): want %t, got %t", tc.u, tc.v, want, got)
		}
	}
}
