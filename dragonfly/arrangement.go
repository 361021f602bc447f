package dragonfly

import (
	"fmt"
	"slices"

	"github.com/unixpickle/essentials"
)

// Arrangement names a scheme to place the global links of a Dragonfly.
type Arrangement string

// AbsoluteImproved connects routers in order to a rotating cursor over the
// routers of the other groups, visiting one router per group before moving
// to the next router index.
const AbsoluteImproved Arrangement = "absolute_improved"

// arrange returns the global links of the Dragonfly described by p as
// (src, dst) pairs. A pair can appear several times, in which case the two
// routers are connected by parallel channels.
func arrange(p Params) ([][2]int, error) {
	switch p.Arrangement {
	case AbsoluteImproved:
		return absoluteImproved(p.A, p.G, p.H)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedArrangement, p.Arrangement)
	}
}

// absoluteImproved places the global links of routers 0, 1, ..., a*g-1 in
// order. A cursor (destGroup, destNode) walks over destination routers: it
// moves to the next group on each step and to the next router index each time
// it wraps around the groups. A link is placed between the current router
// and the cursor's router whenever they are in different groups and the
// cursor's router still has a free global port.
//
// A router is done once it has h links. Routers before the current one are
// therefore full and every link (src, dst) satisfies src < dst.
func absoluteImproved(a int, g int, h int) ([][2]int, error) {
	if h == 0 {
		return nil, nil
	}
	if g < 2 {
		return nil, fmt.Errorf("%w: a=%d g=%d h=%d: a single group has no global partners", ErrInfeasible, a, g, h)
	}

	n := a * g
	degrees := make([]int, n)
	links := make([][2]int, 0, n*h/2)

	destGroup, destNode := 1, 0
	for src := 0; src < n; src++ {
		srcGroup := src / a

		// Number of consecutive cursor steps without placing a link. After a
		// full cycle over the n routers, no link can be placed anymore.
		idle := 0
		for degrees[src] < h {
			dst := a*destGroup + destNode
			if destGroup != srcGroup && degrees[dst] < h {
				degrees[src]++
				degrees[dst]++
				links = append(links, [2]int{src, dst})
				idle = 0
			} else {
				idle++
				if idle == n {
					return nil, fmt.Errorf("%w: a=%d g=%d h=%d: router %d has %d of %d global links",
						ErrInfeasible, a, g, h, src, degrees[src], h)
				}
			}

			destGroup++
			if destGroup%g == 0 {
				destNode = (destNode + 1) % a
				destGroup %= g
			}
		}
	}

	return links, nil
}

// appendGlobalEdges adds one edge per direction and distinct pair of linked
// routers. The width of an edge is its number of parallel channels, i.e. the
// number of times the pair appears in links. Widths are symmetric: both
// directions take the maximum multiplicity of the two orders. The global
// edges of each router are appended in ascending partner order.
func appendGlobalEdges(edges []Edge, nRouters int, links [][2]int) []Edge {
	count := make(map[[2]int]int, 2*len(links))
	for _, l := range links {
		count[l]++
	}

	partners := make([][]int, nRouters)
	width := make(map[[2]int]int, 2*len(count))
	for l := range count {
		u, v := l[0], l[1]
		w := essentials.MaxInt(count[[2]int{u, v}], count[[2]int{v, u}])
		if _, ok := width[[2]int{u, v}]; !ok {
			partners[u] = append(partners[u], v)
		}
		if _, ok := width[[2]int{v, u}]; !ok {
			partners[v] = append(partners[v], u)
		}
		width[[2]int{u, v}] = w
		width[[2]int{v, u}] = w
	}

	for u, ps := range partners {
		slices.Sort(ps)
		for _, v := range ps {
			edges = append(edges, Edge{
				From:  u,
				To:    v,
				Cost:  GlobalCost,
				Width: width[[2]int{u, v}],
			})
		}
	}
	return edges
}
