package dragonfly

import "fmt"

// PortRange is an inclusive range of output ports of a router.
type PortRange struct {
	Start int
	End   int
}

// Width returns the number of ports in the range.
func (pr PortRange) Width() int {
	return pr.End - pr.Start + 1
}

// Contains returns true if port is in the range.
func (pr PortRange) Contains(port int) bool {
	return pr.Start <= port && port <= pr.End
}

func (pr PortRange) String() string {
	if pr.Start == pr.End {
		return fmt.Sprintf("[%d]", pr.Start)
	}
	return fmt.Sprintf("[%d-%d]", pr.Start, pr.End)
}

// portMap assigns output ports to the edges of each router. Ports [0, P) are
// reserved for terminals. The following ports are assigned to the router's
// edges in adjacency order (local edges first, then global edges), each edge
// receiving as many consecutive ports as its width.
func (t *Topology) portMap() []PortRange {
	ports := make([]PortRange, len(t.Graph.Edges))
	for r := range t.Graph.Nexts {
		next := t.P
		for _, e := range t.Graph.Nexts[r] {
			w := t.Graph.Edges[e].Width
			ports[e] = PortRange{Start: next, End: next + w - 1}
			next += w
		}
	}
	return ports
}

// PortRouter returns the router reached through output port of router u.
// The boolean is false for terminal ports and unknown ports.
func (t *Topology) PortRouter(u int, port int) (int, bool) {
	for _, e := range t.Graph.Nexts[u] {
		if t.ports[e].Contains(port) {
			return t.Graph.Edges[e].To, true
		}
	}
	return -1, false
}
