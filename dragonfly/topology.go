package dragonfly

import (
	"errors"
	"fmt"
	"math/rand"

	"k8s.io/klog/v2"
)

// Costs of the two kinds of links. A global hop is more expensive than a
// local one so that shortest paths prefer staying inside a group.
const (
	LocalCost  = 1
	GlobalCost = 3
)

var (
	// ErrUnsupportedArrangement is returned when the requested global link
	// arrangement is not known.
	ErrUnsupportedArrangement = errors.New("unsupported arrangement")

	// ErrInfeasible is returned when the global links cannot be placed, for
	// instance when a router needs more global partners than there are
	// routers with free global ports in the other groups.
	ErrInfeasible = errors.New("infeasible global arrangement")
)

// Params are the parameters of a Dragonfly network.
type Params struct {
	// A is the number of routers per group.
	A int
	// G is the number of groups.
	G int
	// H is the number of global ports per router.
	H int
	// P is the number of terminals (PEs) attached to each router. It can be
	// zero when only the router graph is needed.
	P int
	// Arrangement names the scheme used to place global links.
	Arrangement Arrangement
}

// DefaultParams returns the balanced Dragonfly parameters for groups of a
// routers: a/2 global ports and a/2 terminals per router.
func DefaultParams(a int, g int) Params {
	return Params{
		A:           a,
		G:           g,
		H:           a / 2,
		P:           a / 2,
		Arrangement: AbsoluteImproved,
	}
}

// NumRouters returns the total number of routers A*G.
func (p Params) NumRouters() int {
	return p.A * p.G
}

// Radix returns the number of ports of each router.
func (p Params) Radix() int {
	return p.A - 1 + p.H + p.P
}

// NumTerminals returns the total number of terminals in the network.
func (p Params) NumTerminals() int {
	return p.A * p.G * p.P
}

func (p Params) validate() error {
	if p.A < 1 {
		return fmt.Errorf("routers per group must be positive, got %d", p.A)
	}
	if p.G < 1 {
		return fmt.Errorf("number of groups must be positive, got %d", p.G)
	}
	if p.H < 0 {
		return fmt.Errorf("global ports per router cannot be negative, got %d", p.H)
	}
	if p.P < 0 {
		return fmt.Errorf("terminals per router cannot be negative, got %d", p.P)
	}
	return nil
}

// Topology is a Dragonfly network: A*G routers partitioned in G groups of A
// routers. Routers of a group form a full mesh of local links and every
// router has H global links toward routers of other groups.
//
// Each router's edges are laid out in the graph as its A-1 local edges in
// ascending neighbor order followed by one global edge per distinct global
// partner in ascending partner order. A global edge can stand for several
// parallel channels, see Width.
//
// A Topology is read-only once built and can be shared.
type Topology struct {
	Params
	Graph *Digraph

	// ports[e] is the range of output ports of edge e at its source router.
	ports []PortRange
	// interGroup[gs][gd] lists the global links from group gs to group gd,
	// each link repeated as many times as its width.
	interGroup [][][][2]int
}

// New builds the Dragonfly topology described by p.
func New(p Params) (*Topology, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	links, err := arrange(p)
	if err != nil {
		return nil, err
	}

	edges := make([]Edge, 0, p.NumRouters()*(p.A-1+p.H))
	edges = appendLocalEdges(edges, p.A, p.G)
	edges = appendGlobalEdges(edges, p.NumRouters(), links)

	t := &Topology{
		Params: p,
		Graph:  NewDigraph(sortEdges(edges, p.NumRouters()), p.NumRouters()),
	}
	t.ports = t.portMap()
	t.interGroup = t.interGroupIndex()

	klog.Infof("Dragonfly built: a=%d g=%d h=%d p=%d routers=%d radix=%d edges=%d",
		p.A, p.G, p.H, p.P, p.NumRouters(), p.Radix(), len(t.Graph.Edges))
	return t, nil
}

// appendLocalEdges adds the full mesh of each group, each router listing its
// group mates in ascending order.
func appendLocalEdges(edges []Edge, a int, g int) []Edge {
	for r := 0; r < a*g; r++ {
		first := (r / a) * a
		for v := first; v < first+a; v++ {
			if v != r {
				edges = append(edges, Edge{From: r, To: v, Cost: LocalCost, Width: 1})
			}
		}
	}
	return edges
}

// sortEdges orders edges by source router while preserving the relative order
// of the edges of each router, so that a router's edges are contiguous.
func sortEdges(edges []Edge, nRouters int) []Edge {
	byRouter := make([][]Edge, nRouters)
	for _, e := range edges {
		byRouter[e.From] = append(byRouter[e.From], e)
	}
	sorted := make([]Edge, 0, len(edges))
	for _, es := range byRouter {
		sorted = append(sorted, es...)
	}
	return sorted
}

// Group returns the group of router r.
func (t *Topology) Group(r int) int {
	return r / t.A
}

// GroupRouters returns the first router of group g and the number of routers
// in the group.
func (t *Topology) GroupRouters(g int) (first int, count int) {
	return g * t.A, t.A
}

// SameGroup returns true if routers u and v belong to the same group.
func (t *Topology) SameGroup(u int, v int) bool {
	return t.Group(u) == t.Group(v)
}

// Edge returns the ID of the edge from u to v, or -1 if u and v are not
// adjacent.
func (t *Topology) Edge(u int, v int) int {
	return t.Graph.EdgeBetween(u, v)
}

// Adjacent returns true if there is a link from u to v.
func (t *Topology) Adjacent(u int, v int) bool {
	return t.Graph.Adjacent(u, v)
}

// Locals returns the group mates of router r in ascending order.
func (t *Topology) Locals(r int) []int {
	locals := make([]int, 0, t.A-1)
	for _, e := range t.Graph.Nexts[r] {
		if t.Graph.Edges[e].Cost == LocalCost {
			locals = append(locals, t.Graph.Edges[e].To)
		}
	}
	return locals
}

// Globals returns the distinct global partners of router r in ascending order.
func (t *Topology) Globals(r int) []int {
	globals := make([]int, 0, t.H)
	for _, e := range t.Graph.Nexts[r] {
		if t.Graph.Edges[e].Cost == GlobalCost {
			globals = append(globals, t.Graph.Edges[e].To)
		}
	}
	return globals
}

// Width returns the number of parallel channels from u to v, or 0 if u and v
// are not adjacent.
func (t *Topology) Width(u int, v int) int {
	e := t.Edge(u, v)
	if e == -1 {
		return 0
	}
	return t.Graph.Edges[e].Width
}

// Ports returns the range of output ports of router u that lead to router v.
// The boolean is false if u and v are not adjacent.
func (t *Topology) Ports(u int, v int) (PortRange, bool) {
	e := t.Edge(u, v)
	if e == -1 {
		return PortRange{}, false
	}
	return t.ports[e], true
}

// EdgePorts returns the range of output ports of edge e at its source router.
func (t *Topology) EdgePorts(e int) PortRange {
	return t.ports[e]
}

// PortTo returns one of the output ports of router u that lead to router v,
// chosen uniformly at random when the link has several channels. It panics
// if u and v are not adjacent.
func (t *Topology) PortTo(rng *rand.Rand, u int, v int) int {
	pr, ok := t.Ports(u, v)
	if !ok {
		panic(fmt.Sprintf("router %d is not adjacent to router %d", u, v))
	}
	if pr.Width() == 1 {
		return pr.Start
	}
	return pr.Start + rng.Intn(pr.Width())
}

// InterGroupLinks returns the global links from group gs to group gd as
// (source router, destination router) pairs. A link with several channels
// appears once per channel. The returned slice must not be modified.
func (t *Topology) InterGroupLinks(gs int, gd int) [][2]int {
	return t.interGroup[gs][gd]
}

// TerminalRouter returns the router terminal pe is attached to.
func (t *Topology) TerminalRouter(pe int) int {
	return pe / t.P
}

// TerminalPort returns the port of the router terminal pe is attached to.
func (t *Topology) TerminalPort(pe int) int {
	return pe % t.P
}

func (t *Topology) interGroupIndex() [][][][2]int {
	index := make([][][][2]int, t.G)
	for gs := range index {
		index[gs] = make([][][2]int, t.G)
	}
	for _, e := range t.Graph.Edges {
		if e.Cost != GlobalCost {
			continue
		}
		gs, gd := t.Group(e.From), t.Group(e.To)
		for i := 0; i < e.Width; i++ {
			index[gs][gd] = append(index[gs][gd], [2]int{e.From, e.To})
		}
	}
	return index
}
