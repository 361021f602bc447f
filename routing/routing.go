// Package routing implements the per-packet routing decisions of a Dragonfly
// network: minimal routing, Valiant load-balanced routing (VLB), UGAL and
// progressive adaptive routing (PAR).
//
// Routing is source based. The source router computes the complete
// router-level path of a packet and stores it in the packet's State. The
// following routers forward the packet along that path. PAR is the only
// algorithm that can revise the path after the first hop.
package routing

import (
	"errors"
	"fmt"

	"github.com/rhartert/dragonfly-routing/dragonfly/paths"
)

// InjectionPort is the output port returned for a packet being injected by
// its terminal.
const InjectionPort = -1

var (
	// ErrNoPath is returned when no path exists between two routers.
	ErrNoPath = errors.New("no path")

	// ErrNoIntermediate is returned by VLB when no intermediate router can
	// be chosen for a pair of routers.
	ErrNoIntermediate = errors.New("no intermediate router")

	// ErrNotEnoughVCs is returned when a hop would need a virtual channel
	// beyond the configured number of virtual channels.
	ErrNotEnoughVCs = errors.New("not enough virtual channels")
)

// Occupancy reports the live state of the routers' output queues.
type Occupancy interface {
	// UsedCredit returns the number of credits in use on the given output
	// port of a router, i.e. the occupancy of the downstream buffer.
	UsedCredit(router int, port int) int
}

// Output is a routing decision: the output port and the range of virtual
// channels the packet can use on that port.
type Output struct {
	Port   int
	VCLow  int
	VCHigh int
}

func output(port int, vc int) Output {
	return Output{Port: port, VCLow: vc, VCHigh: vc}
}

// State is the routing state of a packet. It is owned by the packet and
// updated by each routing decision.
type State struct {
	// Src and Dest are the source and destination terminals.
	Src  int
	Dest int
	// Hops is the index in Path of the router the packet is about to leave.
	// It is 0 until the source router has made its decision.
	Hops int
	// Path is the router-level path computed by the source router.
	Path paths.Path
	// VC is the virtual channel the packet currently occupies.
	VC int
	// Reevaluate is set when the source router chose a minimal path with an
	// adaptive algorithm. PAR uses it to revise the path after the first hop.
	Reevaluate bool
}

// NewState returns the routing state of a new packet from terminal src to
// terminal dest.
func NewState(src int, dest int) *State {
	return &State{Src: src, Dest: dest}
}

func (st *State) String() string {
	return fmt.Sprintf("%d->%d hop=%d vc=%d path=%s", st.Src, st.Dest, st.Hops, st.VC, st.Path)
}

// Algorithm decides where packets go.
//
// Route returns the output port and virtual channel of a packet at router
// current and updates its state. The inject flag is set when the packet is
// being injected by its source terminal, in which case current is ignored.
//
// Algorithms are not safe for concurrent use: they share a random source and
// scratch buffers between calls.
type Algorithm interface {
	Route(current int, st *State, inject bool) (Output, error)
}
