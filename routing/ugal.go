package routing

import (
	"fmt"

	"github.com/rhartert/dragonfly-routing/dragonfly/paths"
	"k8s.io/klog/v2"
)

// choice is the outcome of a UGAL comparison.
type choice struct {
	path    paths.Path
	minimal bool
}

// metric returns the congestion of path p: the queue toward its first hop
// for local decisions, the sum of its hop queues for global ones.
func (r *Router) metric(p paths.Path, global bool) int {
	if global {
		return PathQueueLength(r.net.Topology, r.occ, p)
	}
	return QueueLength(r.net.Topology, r.occ, p[0], p[1])
}

// multipliers returns the weights of the minimal and VLB paths.
func (r *Router) multipliers(minPath paths.Path, vlbPath paths.Path) (int, int) {
	if r.cfg.Multiply == PathLenBased {
		return minPath.Hops(), vlbPath.Hops()
	}
	return 1, 2
}

// ugal chooses between a minimal path from src to dst and the best of the
// configured number of VLB paths. The minimal path is chosen when its
// weighted congestion does not exceed the VLB path's. If exact is set, the
// minimal candidate is a shortest path of the router graph.
func (r *Router) ugal(src int, dst int, exact bool) (choice, error) {
	global := r.cfg.Kind == UGALGlobal

	minPath, err := r.sel.minimal(src, dst, exact)
	if err != nil {
		return choice{}, err
	}
	minQ := r.metric(minPath, global)

	candidates, err := r.sel.vlbPaths(r.cfg.Mode, src, dst, r.cfg.VLBCandidates, r.poolParams(minPath))
	if err != nil {
		return choice{}, err
	}
	if len(candidates) == 0 {
		klog.V(4).InfoS("No VLB candidate, routing minimally", "router", src, "dst", dst, "mode", r.cfg.Mode)
		return choice{path: minPath, minimal: true}, nil
	}

	var vlbPath paths.Path
	vlbQ, mulMin, mulVLB := 0, 0, 0
	for i, p := range candidates {
		q := r.metric(p, global)
		mMin, mVLB := r.multipliers(minPath, p)
		if i == 0 || q*mVLB < vlbQ*mulVLB {
			vlbPath, vlbQ, mulMin, mulVLB = p, q, mMin, mVLB
		}
	}

	minimal := minQ*mulMin <= vlbQ*mulVLB
	r.stats.addMultipliers(mulMin, mulVLB, minimal)

	klog.V(4).InfoS("UGAL decision",
		"algorithm", r.cfg.Kind, "router", src, "dst", dst,
		"minQueue", minQ, "vlbQueue", vlbQ,
		"minMultiplier", mulMin, "vlbMultiplier", mulVLB,
		"minimal", minimal)

	if minimal {
		return choice{path: minPath, minimal: true}, nil
	}
	if r.qlog != nil && r.cfg.Kind == UGALLocal {
		if _, err := fmt.Fprintf(r.qlog, "%d,%d,%d,%d\n", src, minQ, vlbQ, 1); err != nil {
			return choice{}, fmt.Errorf("write queue log: %w", err)
		}
	}
	return choice{path: vlbPath}, nil
}
