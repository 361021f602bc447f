package routing

import (
	"fmt"

	"github.com/rhartert/dragonfly-routing/dragonfly/paths"
)

// vlbPath returns a path from src to dst through router mid made of two
// minimal segments.
func (s *selector) vlbPath(src int, mid int, dst int, exact bool) (paths.Path, error) {
	first, err := s.minimal(src, mid, exact)
	if err != nil {
		return nil, err
	}
	second, err := s.minimal(mid, dst, exact)
	if err != nil {
		return nil, err
	}
	return paths.Join(first, second)
}

// vlbPaths returns up to n VLB paths from src to dst through distinct
// intermediate routers of mode.
func (s *selector) vlbPaths(mode Mode, src int, dst int, n int, pp poolParams) ([]paths.Path, error) {
	mids := s.intermediates(mode, src, dst, n, pp)
	ps := make([]paths.Path, 0, len(mids))
	for _, mid := range mids {
		p, err := s.vlbPath(src, mid, dst, mode.exactSegments())
		if err != nil {
			return nil, fmt.Errorf("vlb path from %d to %d through %d: %w", src, dst, mid, err)
		}
		ps = append(ps, p)
	}
	return ps, nil
}
