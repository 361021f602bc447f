package dragonfly

import (
	"slices"

	"github.com/rhartert/sparsesets"
	"k8s.io/klog/v2"
)

// Neighbors caches, for every router, the routers reachable through global
// links. These sets drive the restricted intermediate router selections of
// Valiant routing.
//
// A Neighbors is read-only once built and can be shared.
type Neighbors struct {
	oneHop   [][]int
	twoHop   [][]int
	gateways map[[2]int][]int
}

// NewNeighbors computes the neighbor sets of every router of t.
func NewNeighbors(t *Topology) *Neighbors {
	n := t.NumRouters()
	nb := &Neighbors{
		oneHop:   make([][]int, n),
		twoHop:   make([][]int, n),
		gateways: map[[2]int][]int{},
	}

	for r := 0; r < n; r++ {
		nb.oneHop[r] = t.Globals(r)
	}

	set := sparsesets.New(n)
	for r := 0; r < n; r++ {
		set.Clear()

		// Every router of a group reached by one of r's global links.
		for _, d := range nb.oneHop[r] {
			first, count := t.GroupRouters(t.Group(d))
			for v := first; v < first+count; v++ {
				set.Insert(v)
			}
		}

		// Every global partner of a router of r's group, r included.
		first, count := t.GroupRouters(t.Group(r))
		for m := first; m < first+count; m++ {
			for _, d := range nb.oneHop[m] {
				set.Insert(d)
			}
		}

		nb.twoHop[r] = slices.Clone(set.Content())
		slices.Sort(nb.twoHop[r])
	}

	combos := newCombinations(CombinationCacheSize)
	for r := 0; r < n; r++ {
		globals := nb.oneHop[r]
		for _, c := range combos.Of(len(globals), 2) {
			g1 := t.Group(globals[c[0]])
			g2 := t.Group(globals[c[1]])
			nb.addGateway(g1, g2, r)
			nb.addGateway(g2, g1, r)
		}
	}

	klog.V(2).Infof("Neighbor sets built for %d routers and %d group pairs", n, len(nb.gateways))
	return nb
}

// addGateway records r as a router with global links toward groups g1 and
// g2. Routers are processed in ascending order so duplicates are always at
// the end of the list.
func (nb *Neighbors) addGateway(g1 int, g2 int, r int) {
	key := [2]int{g1, g2}
	rs := nb.gateways[key]
	if len(rs) > 0 && rs[len(rs)-1] == r {
		return
	}
	nb.gateways[key] = append(rs, r)
}

// OneHop returns the global partners of router r in ascending order.
func (nb *Neighbors) OneHop(r int) []int {
	return nb.oneHop[r]
}

// TwoHop returns, in ascending order, the routers two hops away from router r
// when one of the two hops is global: the routers of the groups r is linked
// to and the global partners of the routers of r's group.
func (nb *Neighbors) TwoHop(r int) []int {
	return nb.twoHop[r]
}

// Gateways returns the routers that have global links to both group gs and
// group gd, in ascending order.
func (nb *Neighbors) Gateways(gs int, gd int) []int {
	return nb.gateways[[2]int{gs, gd}]
}
