package routing

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/rhartert/dragonfly-routing/dragonfly"
	"github.com/rhartert/dragonfly-routing/dragonfly/paths"
)

// Router is the Algorithm of every routing kind. The kind and mode of its
// Config select how source routers build paths.
type Router struct {
	cfg  Config
	net  *dragonfly.Network
	occ  Occupancy
	rng  *rand.Rand
	sel  *selector
	name string

	stats *Stats
	qlog  io.Writer
}

var _ Algorithm = (*Router)(nil)

// Option configures optional behaviors of a Router.
type Option func(*Router)

// WithStats records the routing decisions in s.
func WithStats(s *Stats) Option {
	return func(r *Router) {
		r.stats = s
	}
}

// WithQueueLog writes a CSV line "router,minQ,vlbQ,choice" to w each time
// UGAL_L chooses a VLB path.
func WithQueueLog(w io.Writer) Option {
	return func(r *Router) {
		r.qlog = w
	}
}

// New returns the routing algorithm configured by cfg on the given network.
// The occupancy is required by adaptive algorithms and by the threshold mode.
func New(net *dragonfly.Network, cfg Config, occ Occupancy, rng *rand.Rand, opts ...Option) (*Router, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if net == nil {
		return nil, errors.New("routing requires a network")
	}
	if rng == nil {
		return nil, errors.New("routing requires a random source")
	}
	if occ == nil && (cfg.Kind.Adaptive() || cfg.Mode == Threshold) {
		return nil, fmt.Errorf("routing algorithm %s requires an occupancy", cfg.Name())
	}
	if net.P == 0 {
		return nil, errors.New("routing requires terminal ports")
	}

	r := &Router{
		cfg:  cfg,
		net:  net,
		occ:  occ,
		rng:  rng,
		sel:  newSelector(net, rng),
		name: cfg.Name(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Config returns the configuration of r.
func (r *Router) Config() Config {
	return r.cfg
}

// Route implements Algorithm.
func (r *Router) Route(current int, st *State, inject bool) (Output, error) {
	if inject {
		st.VC = r.rng.Intn(r.cfg.NumVCs)
		return output(InjectionPort, st.VC), nil
	}

	dst := r.net.TerminalRouter(st.Dest)
	if current == dst {
		st.VC = r.rng.Intn(r.cfg.NumVCs)
		return output(r.net.TerminalPort(st.Dest), st.VC), nil
	}

	if st.Hops == 0 {
		return r.routeSource(current, dst, st)
	}

	if st.Hops >= len(st.Path)-1 || st.Path[st.Hops] != current {
		return Output{}, fmt.Errorf("packet %s is not expected at router %d", st, current)
	}

	extra := 0
	if st.Hops == 1 && r.revisable(st) {
		minimal, err := r.reevaluate(current, dst, st)
		if err != nil {
			return Output{}, err
		}
		if !minimal {
			extra = 1
		}
	}
	return r.forward(current, st, extra)
}

// routeSource computes the path of a packet at its source router and sends
// it toward the path's second router on virtual channel 0.
func (r *Router) routeSource(src int, dst int, st *State) (Output, error) {
	if src != r.net.TerminalRouter(st.Src) {
		return Output{}, fmt.Errorf("packet %s starts at router %d instead of its source router", st, src)
	}

	c, err := r.sourcePath(src, dst)
	if err != nil {
		return Output{}, fmt.Errorf("route %d->%d with %s: %w", src, dst, r.name, err)
	}
	st.Path = c.path
	st.Reevaluate = c.minimal && r.cfg.Kind.Adaptive()
	if !r.revisable(st) {
		r.stats.addPath(r.name, c.path.Hops(), c.minimal, r.net.SameGroup(src, dst))
	}
	st.Hops = 1
	st.VC = 0
	return output(r.net.PortTo(r.rng, src, c.path[1]), 0), nil
}

// revisable returns true if the path of st is re-evaluated when the packet
// reaches the second router of its path. That router must be in the source
// group and must not be the destination.
func (r *Router) revisable(st *State) bool {
	return r.cfg.Kind == PAR && st.Reevaluate && len(st.Path) > 2 && r.net.SameGroup(st.Path[0], st.Path[1])
}

// sourcePath returns the path chosen by the source router src.
func (r *Router) sourcePath(src int, dst int) (choice, error) {
	switch r.cfg.Kind {
	case Minimal:
		p, err := r.sel.graphMinimal(src, dst)
		return choice{path: p, minimal: true}, err
	case MinimalExact:
		p, err := r.sel.exactMinimal(src, dst)
		return choice{path: p, minimal: true}, err
	case VLB:
		return r.vlb(src, dst)
	default:
		return r.ugal(src, dst, false)
	}
}

// vlb returns a VLB path from src to dst through one intermediate router.
func (r *Router) vlb(src int, dst int) (choice, error) {
	var pp poolParams
	if r.cfg.Mode == Threshold {
		minPath, err := r.sel.graphMinimal(src, dst)
		if err != nil {
			return choice{}, err
		}
		pp = r.poolParams(minPath)
	}
	ps, err := r.sel.vlbPaths(r.cfg.Mode, src, dst, 1, pp)
	if err != nil {
		return choice{}, err
	}
	if len(ps) == 0 {
		return choice{}, fmt.Errorf("%w: mode %s from %d to %d", ErrNoIntermediate, r.cfg.Mode, src, dst)
	}
	return choice{path: ps[0]}, nil
}

// poolParams returns the intermediate pool parameters of a packet whose
// minimal path is minPath.
func (r *Router) poolParams(minPath paths.Path) poolParams {
	pp := poolParams{
		threshold:         r.cfg.Threshold,
		fiveHopPercentage: r.cfg.FiveHopPercentage,
	}
	if r.cfg.Mode == Threshold && len(minPath) > 1 {
		pp.minQueue = QueueLength(r.net.Topology, r.occ, minPath[0], minPath[1])
	}
	return pp
}

// forward sends a packet at router cur toward the next router of its path.
// The virtual channel is incremented by extra on top of the allocation
// policy.
func (r *Router) forward(cur int, st *State, extra int) (Output, error) {
	next := st.Path[st.Hops+1]

	var vc int
	switch r.cfg.VCAllocation {
	case Computed:
		vc = AllocateVC(r.net.Topology, st.Path[st.Hops-1], cur, next, st.VC)
	default:
		vc = st.Hops
	}
	vc += extra
	if vc >= r.cfg.NumVCs {
		return Output{}, fmt.Errorf("%w: packet %s needs vc %d out of %d", ErrNotEnoughVCs, st, vc, r.cfg.NumVCs)
	}

	st.Hops++
	st.VC = vc
	return output(r.net.PortTo(r.rng, cur, next), vc), nil
}
