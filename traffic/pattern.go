// Package traffic generates the destinations of synthetic packets.
package traffic

import (
	"fmt"
	"math/rand"

	"github.com/rhartert/dragonfly-routing/dragonfly"
)

// PatternName identifies a traffic pattern.
type PatternName string

const (
	// Uniform sends each packet to any other terminal with equal
	// probability.
	Uniform PatternName = "uniform"
	// Hotspot favors a set of terminals.
	Hotspot PatternName = "hotspot"
	// GroupShift sends every packet of group g to a terminal of group
	// g+shift, the adversarial pattern of minimal routing.
	GroupShift PatternName = "group_shift"
)

// DefaultHotspotWeight is the weight of hotspot terminals relative to the
// other terminals when no weight is given.
const DefaultHotspotWeight = 8.0

// Pattern picks the destination terminal of packets.
type Pattern interface {
	Dest(src int, rng *rand.Rand) int
}

// Options are the parameters of the patterns that need some.
type Options struct {
	Hotspots []int
	Weight   float64
	Shift    int
}

// New returns the traffic pattern name over the terminals of a Dragonfly
// with parameters p.
func New(name PatternName, p dragonfly.Params, opts Options) (Pattern, error) {
	n := p.NumTerminals()
	if n < 2 {
		return nil, fmt.Errorf("traffic requires at least 2 terminals, got %d", n)
	}

	switch name {
	case Uniform:
		return uniform{n: n}, nil
	case Hotspot:
		return newHotspot(n, opts)
	case GroupShift:
		if p.G < 2 {
			return nil, fmt.Errorf("group shift requires at least 2 groups, got %d", p.G)
		}
		shift := ((opts.Shift % p.G) + p.G) % p.G
		if shift == 0 {
			shift = 1
		}
		return groupShift{a: p.A, g: p.G, p: p.P, shift: shift}, nil
	default:
		return nil, fmt.Errorf("unsupported traffic pattern %s", name)
	}
}

type uniform struct {
	n int
}

func (u uniform) Dest(src int, rng *rand.Rand) int {
	d := rng.Intn(u.n - 1)
	if d >= src {
		d++
	}
	return d
}

type hotspot struct {
	wheel *Wheel
}

func newHotspot(n int, opts Options) (hotspot, error) {
	if len(opts.Hotspots) == 0 {
		return hotspot{}, fmt.Errorf("hotspot pattern requires hotspots")
	}
	weight := opts.Weight
	if weight <= 0 {
		weight = DefaultHotspotWeight
	}

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}
	for _, h := range opts.Hotspots {
		if h < 0 || n <= h {
			return hotspot{}, fmt.Errorf("hotspot %d is not a terminal in [0, %d)", h, n)
		}
		weights[h] = weight
	}
	w, err := NewWheel(weights)
	if err != nil {
		return hotspot{}, fmt.Errorf("hotspot weights: %w", err)
	}
	return hotspot{wheel: w}, nil
}

// Dest can return src, in which case the packet does not leave its router.
func (h hotspot) Dest(src int, rng *rand.Rand) int {
	return h.wheel.Pick(rng)
}

type groupShift struct {
	a, g, p int
	shift   int
}

func (gs groupShift) Dest(src int, rng *rand.Rand) int {
	group := src / gs.p / gs.a
	dg := (group + gs.shift) % gs.g
	router := dg*gs.a + rng.Intn(gs.a)
	return router*gs.p + rng.Intn(gs.p)
}
