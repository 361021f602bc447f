package routing

import (
	"fmt"

	"github.com/rhartert/dragonfly-routing/dragonfly"
)

// AllocateVC returns the virtual channel of a packet that arrived at router
// cur from router prev on virtual channel vc and leaves toward router next.
// The channel is incremented when the packet just entered a new group or
// when it takes a local hop. It is kept when the packet takes a global hop
// right after a local one.
//
// AllocateVC panics if any argument is negative: it is only defined for
// routers in the middle of a path.
func AllocateVC(t *dragonfly.Topology, prev int, cur int, next int, vc int) int {
	if prev < 0 || cur < 0 || next < 0 || vc < 0 {
		panic(fmt.Sprintf("invalid vc allocation: prev=%d cur=%d next=%d vc=%d", prev, cur, next, vc))
	}
	if !t.SameGroup(prev, cur) {
		return vc + 1
	}
	if t.SameGroup(cur, next) {
		return vc + 1
	}
	return vc
}
