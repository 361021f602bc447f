package routing

import (
	"fmt"
	"math/rand"

	"github.com/rhartert/dragonfly-routing/dragonfly"
	"github.com/rhartert/dragonfly-routing/dragonfly/paths"
	"github.com/rhartert/sparsesets"
)

// selector builds the candidate paths of the routing algorithms.
type selector struct {
	net *dragonfly.Network
	rng *rand.Rand

	// Scratch set used to deduplicate candidate routers.
	set *sparsesets.Set
}

func newSelector(net *dragonfly.Network, rng *rand.Rand) *selector {
	return &selector{
		net: net,
		rng: rng,
		set: sparsesets.New(net.NumRouters()),
	}
}

// minimal returns a minimal path from src to dst, an exact shortest path if
// exact is set.
func (s *selector) minimal(src int, dst int, exact bool) (paths.Path, error) {
	if exact {
		return s.exactMinimal(src, dst)
	}
	return s.graphMinimal(src, dst)
}

// graphMinimal returns a path with at most one global hop from src to dst.
// Routers of the same group are directly linked. Otherwise, the path goes
// through a global link from src's group to dst's group chosen uniformly at
// random, each link weighted by its number of channels.
func (s *selector) graphMinimal(src int, dst int) (paths.Path, error) {
	if src == dst {
		return paths.New(src), nil
	}
	if s.net.SameGroup(src, dst) {
		return paths.New(src, dst), nil
	}

	links := s.net.InterGroupLinks(s.net.Group(src), s.net.Group(dst))
	if len(links) == 0 {
		return nil, fmt.Errorf("%w: groups of routers %d and %d are not linked", ErrNoPath, src, dst)
	}
	link := links[s.rng.Intn(len(links))]

	p := paths.New(src)
	if link[0] != src {
		p = append(p, link[0])
	}
	if link[1] != dst {
		p = append(p, link[1])
	}
	return append(p, dst), nil
}

// exactMinimal returns one of the shortest paths from src to dst chosen
// uniformly at random.
func (s *selector) exactMinimal(src int, dst int) (paths.Path, error) {
	all := s.net.Paths.Paths(src, dst)
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: router %d cannot reach router %d", ErrNoPath, src, dst)
	}
	return paths.Path(all[s.rng.Intn(len(all))]), nil
}
