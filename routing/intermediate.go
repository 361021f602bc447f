package routing

import (
	"slices"
)

// poolParams are the parameters of the intermediate router pools that
// depend on the configuration or on the network state.
type poolParams struct {
	threshold         int
	fiveHopPercentage int
	// minQueue is the queue length toward the next hop of the minimal path.
	minQueue int
}

// intermediates returns up to n distinct intermediate routers for a VLB path
// from src to dst, sampled uniformly from the pool of mode. Routers of the
// source and destination groups are never returned. It returns fewer than n
// routers if the pool is too small.
func (s *selector) intermediates(mode Mode, src int, dst int, n int, pp poolParams) []int {
	if s.net.SameGroup(src, dst) {
		return s.sample(s.inGroupPool(src, dst), n)
	}
	return s.sample(s.pool(mode, src, dst, pp), n)
}

// sample returns n distinct elements of pool chosen uniformly at random, or
// all the elements of pool in random order if it has fewer than n elements.
// The pool is shuffled in place.
func (s *selector) sample(pool []int, n int) []int {
	n = min(n, len(pool))
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// inGroupPool returns the routers of the group of src and dst except src and
// dst themselves.
func (s *selector) inGroupPool(src int, dst int) []int {
	first, count := s.net.GroupRouters(s.net.Group(src))
	pool := make([]int, 0, count)
	for r := first; r < first+count; r++ {
		if r != src && r != dst {
			pool = append(pool, r)
		}
	}
	return pool
}

// pool returns the sorted candidate intermediate routers of mode for routers
// src and dst of different groups.
func (s *selector) pool(mode Mode, src int, dst int, pp poolParams) []int {
	switch mode {
	case TwoHop, RestrictedSrcOnly:
		return s.twoHopPool(src, dst)
	case RestrictedSrcAndDst:
		return s.fiveHopPool(src, dst)
	case FourHopRestricted:
		return s.fourHopPool(src, dst)
	case ThreeHopRestricted:
		if p := s.threeHopPool(src, dst); len(p) > 0 {
			return p
		}
		return s.fourHopPool(src, dst)
	case FourHopSomeFiveHopRestricted:
		return s.fourAndSomeFiveHopPool(src, dst, pp.fiveHopPercentage)
	case Threshold:
		if pp.minQueue < pp.threshold {
			return s.twoHopPool(src, dst)
		}
		return s.vanillaPool(src, dst)
	default:
		return s.vanillaPool(src, dst)
	}
}

// collect returns the sorted content of the scratch set without the routers
// of the groups of src and dst, and clears the set.
func (s *selector) collect(src int, dst int) []int {
	gs, gd := s.net.Group(src), s.net.Group(dst)
	content := s.set.Content()
	pool := make([]int, 0, len(content))
	for _, r := range content {
		if g := s.net.Group(r); g != gs && g != gd {
			pool = append(pool, r)
		}
	}
	s.set.Clear()
	slices.Sort(pool)
	return pool
}

// vanillaPool returns every router outside the groups of src and dst.
func (s *selector) vanillaPool(src int, dst int) []int {
	gs, gd := s.net.Group(src), s.net.Group(dst)
	pool := make([]int, 0, s.net.NumRouters())
	for r := 0; r < s.net.NumRouters(); r++ {
		if g := s.net.Group(r); g != gs && g != gd {
			pool = append(pool, r)
		}
	}
	return pool
}

// twoHopPool returns the two-hop neighbors of src.
func (s *selector) twoHopPool(src int, dst int) []int {
	for _, r := range s.net.Neighbors.TwoHop(src) {
		s.set.Insert(r)
	}
	return s.collect(src, dst)
}

// fiveHopPool returns the two-hop neighbors of src and the two-hop neighbors
// of dst.
func (s *selector) fiveHopPool(src int, dst int) []int {
	s.insertFiveHop(src, dst)
	return s.collect(src, dst)
}

func (s *selector) insertFiveHop(src int, dst int) {
	for _, r := range s.net.Neighbors.TwoHop(src) {
		s.set.Insert(r)
	}
	for _, r := range s.net.Neighbors.TwoHop(dst) {
		s.set.Insert(r)
	}
}

// fourHopPool returns the global partners of src and dst and the routers
// with global links to both groups of src and dst.
func (s *selector) fourHopPool(src int, dst int) []int {
	s.insertFourHop(src, dst)
	return s.collect(src, dst)
}

func (s *selector) insertFourHop(src int, dst int) {
	nb := s.net.Neighbors
	for _, r := range nb.OneHop(src) {
		s.set.Insert(r)
	}
	for _, r := range nb.OneHop(dst) {
		s.set.Insert(r)
	}
	for _, r := range nb.Gateways(s.net.Group(src), s.net.Group(dst)) {
		s.set.Insert(r)
	}
}

// threeHopPool returns the two-hop neighbors of src that are global partners
// of dst and the two-hop neighbors of dst that are global partners of src.
func (s *selector) threeHopPool(src int, dst int) []int {
	nb := s.net.Neighbors
	for _, r := range nb.OneHop(dst) {
		if _, ok := slices.BinarySearch(nb.TwoHop(src), r); ok {
			s.set.Insert(r)
		}
	}
	for _, r := range nb.OneHop(src) {
		if _, ok := slices.BinarySearch(nb.TwoHop(dst), r); ok {
			s.set.Insert(r)
		}
	}
	return s.collect(src, dst)
}

// fourAndSomeFiveHopPool returns the four-hop pool extended with a random
// subset of the five-hop pool routers that are not in the four-hop pool. The
// subset holds floor(count*percentage/100)+1 of these count routers, capped
// at count.
func (s *selector) fourAndSomeFiveHopPool(src int, dst int, percentage int) []int {
	four := s.fourHopPool(src, dst)
	five := s.fiveHopPool(src, dst)

	extra := make([]int, 0, len(five))
	for _, r := range five {
		if _, ok := slices.BinarySearch(four, r); !ok {
			extra = append(extra, r)
		}
	}
	if len(extra) == 0 {
		return four
	}

	s.rng.Shuffle(len(extra), func(i, j int) {
		extra[i], extra[j] = extra[j], extra[i]
	})
	cut := min(len(extra)*percentage/100+1, len(extra))

	pool := append(four, extra[:cut]...)
	slices.Sort(pool)
	return pool
}
