package dragonfly

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNew_errors(t *testing.T) {
	testCases := []struct {
		desc    string
		params  Params
		wantErr error
	}{
		{
			desc:    "unsupported arrangement",
			params:  Params{A: 4, G: 4, H: 2, P: 2, Arrangement: "relative"},
			wantErr: ErrUnsupportedArrangement,
		},
		{
			desc:    "empty arrangement",
			params:  Params{A: 4, G: 4, H: 2, P: 2},
			wantErr: ErrUnsupportedArrangement,
		},
		{
			desc:    "saturated cursor",
			params:  Params{A: 3, G: 3, H: 3, P: 0, Arrangement: AbsoluteImproved},
			wantErr: ErrInfeasible,
		},
		{
			desc:    "single group with global ports",
			params:  Params{A: 4, G: 1, H: 2, P: 2, Arrangement: AbsoluteImproved},
			wantErr: ErrInfeasible,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := New(tc.params)

			if !errors.Is(err, tc.wantErr) {
				t.Errorf("New(): want error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNew_invalidParams(t *testing.T) {
	for _, p := range []Params{
		{A: 0, G: 4, H: 2, P: 2, Arrangement: AbsoluteImproved},
		{A: 4, G: 0, H: 2, P: 2, Arrangement: AbsoluteImproved},
		{A: 4, G: 4, H: -1, P: 2, Arrangement: AbsoluteImproved},
		{A: 4, G: 4, H: 2, P: -1, Arrangement: AbsoluteImproved},
	} {
		if _, err := New(p); err == nil {
			t.Errorf("New(%+v): want error, got nil", p)
		}
	}
}

func TestNew_parallelChannels(t *testing.T) {
	// Routers 0 and 2 as well as routers 1 and 3 are connected by two
	// parallel global channels.
	topo, err := New(Params{A: 2, G: 2, H: 3, P: 1, Arrangement: AbsoluteImproved})
	require.NoError(t, err)

	wantEdges := []Edge{
		{0, 1, LocalCost, 1},
		{0, 2, GlobalCost, 2},
		{0, 3, GlobalCost, 1},
		{1, 0, LocalCost, 1},
		{1, 2, GlobalCost, 1},
		{1, 3, GlobalCost, 2},
		{2, 3, LocalCost, 1},
		{2, 0, GlobalCost, 2},
		{2, 1, GlobalCost, 1},
		{3, 2, LocalCost, 1},
		{3, 0, GlobalCost, 1},
		{3, 1, GlobalCost, 2},
	}
	if diff := cmp.Diff(wantEdges, topo.Graph.Edges); diff != "" {
		t.Errorf("New(): edges mismatch (-want +got):\n%s", diff)
	}

	wantPorts := map[[2]int]PortRange{
		{0, 1}: {1, 1},
		{0, 2}: {2, 3},
		{0, 3}: {4, 4},
		{2, 3}: {1, 1},
		{2, 0}: {2, 3},
		{2, 1}: {4, 4},
	}
	for uv, want := range wantPorts {
		got, ok := topo.Ports(uv[0], uv[1])
		require.True(t, ok, "Ports(%d, %d)", uv[0], uv[1])
		if got != want {
			t.Errorf("Ports(%d, %d): want %s, got %s", uv[0], uv[1], want, got)
		}
	}

	wantLinks := [][2]int{{0, 2}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {1, 3}}
	if diff := cmp.Diff(wantLinks, topo.InterGroupLinks(0, 1)); diff != "" {
		t.Errorf("InterGroupLinks(0, 1): mismatch (-want +got):\n%s", diff)
	}
	wantLinks = [][2]int{{2, 0}, {2, 0}, {2, 1}, {3, 0}, {3, 1}, {3, 1}}
	if diff := cmp.Diff(wantLinks, topo.InterGroupLinks(1, 0)); diff != "" {
		t.Errorf("InterGroupLinks(1, 0): mismatch (-want +got):\n%s", diff)
	}
	if got := topo.InterGroupLinks(0, 0); len(got) != 0 {
		t.Errorf("InterGroupLinks(0, 0): want no link, got %v", got)
	}
}

func TestNew_noGlobalPorts(t *testing.T) {
	topo, err := New(Params{A: 3, G: 2, H: 0, P: 0, Arrangement: AbsoluteImproved})
	require.NoError(t, err)

	require.Len(t, topo.Graph.Edges, 12)
	for r := 0; r < topo.NumRouters(); r++ {
		require.Empty(t, topo.Globals(r))
	}
}

// checkInvariants verifies the structural properties every Dragonfly must
// have regardless of its parameters.
func checkInvariants(t *testing.T, topo *Topology) {
	t.Helper()

	for r := 0; r < topo.NumRouters(); r++ {
		// Full local mesh.
		for v := 0; v < topo.NumRouters(); v++ {
			if v == r || !topo.SameGroup(r, v) {
				continue
			}
			e := topo.Edge(r, v)
			if e == -1 {
				t.Fatalf("routers %d and %d are in the same group but not adjacent", r, v)
			}
			if got := topo.Graph.Edges[e]; got.Cost != LocalCost || got.Width != 1 {
				t.Errorf("local edge %d->%d: want cost %d width 1, got %+v", r, v, LocalCost, got)
			}
		}

		// Global edges link distinct groups with symmetric widths.
		widths := 0
		for _, e := range topo.Graph.Nexts[r] {
			edge := topo.Graph.Edges[e]
			widths += edge.Width
			if edge.Cost != GlobalCost {
				continue
			}
			if topo.SameGroup(edge.From, edge.To) {
				t.Errorf("global edge %d->%d links routers of the same group", edge.From, edge.To)
			}
			if got := topo.Width(edge.To, edge.From); got != edge.Width {
				t.Errorf("Width(%d, %d): want %d, got %d", edge.To, edge.From, edge.Width, got)
			}
		}
		if want := topo.Radix() - topo.P; widths != want {
			t.Errorf("router %d: want %d channels, got %d", r, want, widths)
		}

		// Port ranges are disjoint, contiguous and cover [P, radix).
		next := topo.P
		for _, e := range topo.Graph.Nexts[r] {
			pr := topo.EdgePorts(e)
			if pr.Start != next {
				t.Errorf("router %d edge %d: want ports from %d, got %s", r, e, next, pr)
			}
			if pr.Width() != topo.Graph.Edges[e].Width {
				t.Errorf("router %d edge %d: want %d ports, got %s", r, e, topo.Graph.Edges[e].Width, pr)
			}
			next = pr.End + 1
		}
		if next != topo.Radix() {
			t.Errorf("router %d: ports end at %d, want %d", r, next, topo.Radix())
		}
	}
}

func TestNew_invariants(t *testing.T) {
	for _, p := range []Params{
		DefaultParams(4, 4),
		DefaultParams(4, 9),
		DefaultParams(6, 4),
		DefaultParams(2, 3),
		{A: 4, G: 5, H: 2, P: 0, Arrangement: AbsoluteImproved},
		{A: 2, G: 5, H: 4, P: 1, Arrangement: AbsoluteImproved},
		{A: 2, G: 2, H: 3, P: 1, Arrangement: AbsoluteImproved},
		{A: 3, G: 2, H: 4, P: 2, Arrangement: AbsoluteImproved},
	} {
		t.Run(fmt.Sprintf("a=%d,g=%d,h=%d,p=%d", p.A, p.G, p.H, p.P), func(t *testing.T) {
			topo, err := New(p)
			require.NoError(t, err)

			checkInvariants(t, topo)
		})
	}
}

func TestNew_a4g4(t *testing.T) {
	topo, err := New(DefaultParams(4, 4))
	require.NoError(t, err)

	require.Equal(t, 16, topo.NumRouters())
	require.Equal(t, 7, topo.Radix())
	require.Equal(t, 32, topo.NumTerminals())
	require.Equal(t, []int{1, 2, 3}, topo.Locals(0))
	require.Equal(t, []int{4, 8}, topo.Globals(0))
	require.Equal(t, []int{0, 14}, topo.Globals(4))
	require.Equal(t, []int{0, 7}, topo.Globals(8))

	sp, err := AllPairs(topo.Graph)
	require.NoError(t, err)

	for s := 0; s < topo.NumRouters(); s++ {
		for d := 0; d < topo.NumRouters(); d++ {
			if sp.Distance(s, d) == Infinity {
				t.Fatalf("router %d cannot reach router %d", s, d)
			}
			for _, path := range sp.Paths(s, d) {
				if len(path) > 4 {
					t.Errorf("Paths(%d, %d): %v has more than 3 hops", s, d, path)
				}
			}
		}
	}
}

func TestTopology_PortTo(t *testing.T) {
	topo, err := New(Params{A: 2, G: 2, H: 3, P: 1, Arrangement: AbsoluteImproved})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(42))

	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		seen[topo.PortTo(rng, 0, 2)] = true
	}
	if diff := cmp.Diff(map[int]bool{2: true, 3: true}, seen); diff != "" {
		t.Errorf("PortTo(0, 2): mismatch (-want +got):\n%s", diff)
	}

	if got := topo.PortTo(rng, 0, 1); got != 1 {
		t.Errorf("PortTo(0, 1): want 1, got %d", got)
	}

	require.Panics(t, func() { topo.PortTo(rng, 0, 0) })
}

func TestTopology_terminals(t *testing.T) {
	topo, err := New(DefaultParams(4, 4))
	require.NoError(t, err)

	testCases := []struct {
		pe         int
		wantRouter int
		wantPort   int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{2, 1, 0},
		{31, 15, 1},
	}

	for _, tc := range testCases {
		if got := topo.TerminalRouter(tc.pe); got != tc.wantRouter {
			t.Errorf("TerminalRouter(%d): want %d, got %d", tc.pe, tc.wantRouter, got)
		}
		if got := topo.TerminalPort(tc.pe); got != tc.wantPort {
			t.Errorf("TerminalPort(%d): want %d, got %d", tc.pe, tc.wantPort, got)
		}
	}
}

func TestPortRange(t *testing.T) {
	pr := PortRange{Start: 3, End: 5}

	require.Equal(t, 3, pr.Width())
	require.True(t, pr.Contains(3))
	require.True(t, pr.Contains(5))
	require.False(t, pr.Contains(6))
	require.Equal(t, "[3-5]", pr.String())
	require.Equal(t, "[4]", PortRange{4, 4}.String())
}

func TestTopology_PortRouter(t *testing.T) {
	topo, err := New(Params{A: 2, G: 2, H: 3, P: 1, Arrangement: AbsoluteImproved})
	require.NoError(t, err)

	testCases := []struct {
		port   int
		want   int
		wantOK bool
	}{
		{0, -1, false}, // terminal
		{1, 1, true},
		{2, 2, true},
		{3, 2, true},
		{4, 3, true},
		{5, -1, false},
	}

	for _, tc := range testCases {
		got, ok := topo.PortRouter(0, tc.port)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("PortRouter(0, %d): want (%d, %t), got (%d, %t)", tc.port, tc.want, tc.wantOK, got, ok)
		}
	}
}
