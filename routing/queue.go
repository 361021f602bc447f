package routing

import (
	"fmt"

	"github.com/rhartert/dragonfly-routing/dragonfly"
)

// QueueLength returns the occupancy of the link from router cur to router
// next: the used credits of the link's output ports averaged over its
// channels. The average is truncated toward zero.
//
// It panics if cur and next are not adjacent.
func QueueLength(t *dragonfly.Topology, occ Occupancy, cur int, next int) int {
	pr, ok := t.Ports(cur, next)
	if !ok {
		panic(fmt.Sprintf("router %d is not adjacent to router %d", cur, next))
	}
	total := 0
	for port := pr.Start; port <= pr.End; port++ {
		total += occ.UsedCredit(cur, port)
	}
	return total / pr.Width()
}

// PathQueueLength returns the sum of the queue lengths of every hop of p,
// each hop being measured at the router it leaves.
func PathQueueLength(t *dragonfly.Topology, occ Occupancy, p []int) int {
	total := 0
	for i := 0; i < len(p)-1; i++ {
		total += QueueLength(t, occ, p[i], p[i+1])
	}
	return total
}
