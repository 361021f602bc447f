// Package paths provides functions for representing and manipulating
// router-level paths within a network.
package paths

import (
	"fmt"
	"slices"
	"strings"
)

// Path is a sequence of router IDs traversed by a packet.
//
// A valid Path respects the following invariants:
//
//   - Minimum length: 1 (a path from a router to itself)
//   - Source router: First element in the slice
//   - Destination router: Last element in the slice
//   - Adjacency: consecutive routers are linked in the network
//
// Paths produced by Join and by the routing layer always satisfy these
// invariants. Validate checks them for paths of any other origin.
type Path []int

// New returns a path made of the given routers.
func New(routers ...int) Path {
	return Path(slices.Clone(routers))
}

// Src returns the first router of the path.
func (p Path) Src() int {
	return p[0]
}

// Dst returns the last router of the path.
func (p Path) Dst() int {
	return p[len(p)-1]
}

// Hops returns the number of links traversed by the path.
func (p Path) Hops() int {
	return len(p) - 1
}

// Contains returns true if the router is on the path.
func (p Path) Contains(router int) bool {
	return slices.Contains(p, router)
}

// Clone returns a copy of the path.
func (p Path) Clone() Path {
	return slices.Clone(p)
}

// Join concatenates two paths sharing a junction router: the last router of
// first must be the first router of second. The junction appears once in the
// returned path. For example, joining 0 -> 1 -> 5 and 5 -> 6 -> 9 returns
// 0 -> 1 -> 5 -> 6 -> 9.
func Join(first Path, second Path) (Path, error) {
	if len(first) == 0 || len(second) == 0 {
		return nil, fmt.Errorf("cannot join empty paths")
	}
	if first.Dst() != second.Src() {
		return nil, fmt.Errorf("cannot join %s and %s: no common junction", first, second)
	}
	joined := make(Path, 0, len(first)+len(second)-1)
	joined = append(joined, first...)
	joined = append(joined, second[1:]...)
	return joined, nil
}

// Validate returns an error if the path does not go from src to dst or if two
// consecutive routers are not adjacent according to the adjacent function.
func (p Path) Validate(src int, dst int, adjacent func(u, v int) bool) error {
	if len(p) == 0 {
		return fmt.Errorf("path is empty")
	}
	if p.Src() != src {
		return fmt.Errorf("path %s starts at %d instead of %d", p, p.Src(), src)
	}
	if p.Dst() != dst {
		return fmt.Errorf("path %s ends at %d instead of %d", p, p.Dst(), dst)
	}
	for i := 0; i < len(p)-1; i++ {
		if !adjacent(p[i], p[i+1]) {
			return fmt.Errorf("path %s: router %d is not adjacent to router %d", p, p[i], p[i+1])
		}
	}
	return nil
}

// String returns a string representation of the path as a sequence of routers
// separated by " -> ". For example: "0 -> 4 -> 3 -> 1".
func (p Path) String() string {
	if len(p) == 0 {
		return "<empty>"
	}
	sb := strings.Builder{}
	for i := 0; i < len(p)-1; i++ {
		sb.WriteString(fmt.Sprintf("%d -> ", p[i]))
	}
	sb.WriteString(fmt.Sprintf("%d", p[len(p)-1]))
	return sb.String()
}
