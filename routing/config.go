package routing

import (
	"fmt"
	"strings"
)

// Kind is a routing algorithm.
type Kind int

const (
	// Minimal routes on a path with at most one global hop built from a
	// random global link between the source and destination groups.
	Minimal Kind = iota
	// MinimalExact routes on a shortest path of the router graph chosen
	// uniformly at random.
	MinimalExact
	// VLB routes through an intermediate router.
	VLB
	// UGALLocal chooses between a minimal and a VLB path based on the queue
	// of their first hop.
	UGALLocal
	// UGALGlobal chooses between a minimal and a VLB path based on the
	// queues along the whole paths.
	UGALGlobal
	// PAR is UGALLocal with a second chance to leave the minimal path after
	// the first hop.
	PAR
)

var kindNames = map[Kind]string{
	Minimal:      "min",
	MinimalExact: "min_dijkstra",
	VLB:          "vlb",
	UGALLocal:    "UGAL_L",
	UGALGlobal:   "UGAL_G",
	PAR:          "PAR",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Adaptive returns true if the algorithm compares minimal and non-minimal
// paths.
func (k Kind) Adaptive() bool {
	return k == UGALLocal || k == UGALGlobal || k == PAR
}

// Mode selects how VLB intermediate routers are chosen.
type Mode string

const (
	// Vanilla picks any router outside the source and destination groups.
	Vanilla Mode = "vanilla"
	// TwoHop picks a two-hop neighbor of the source.
	TwoHop Mode = "two_hop"
	// RestrictedSrcOnly is TwoHop with exact shortest path segments.
	RestrictedSrcOnly Mode = "restricted_src_only"
	// RestrictedSrcAndDst picks a two-hop neighbor of the source or of the
	// destination.
	RestrictedSrcAndDst Mode = "restricted_src_and_dst"
	// FourHopRestricted picks a router that yields VLB paths of at most
	// four hops.
	FourHopRestricted Mode = "four_hop_restricted"
	// ThreeHopRestricted picks a router that yields VLB paths of three hops
	// and falls back to FourHopRestricted when there is none.
	ThreeHopRestricted Mode = "three_hop_restricted"
	// FourHopSomeFiveHopRestricted extends FourHopRestricted with a
	// percentage of the routers of RestrictedSrcAndDst.
	FourHopSomeFiveHopRestricted Mode = "four_hop_some_five_hop_restricted"
	// Threshold uses TwoHop when the queue toward the minimal next hop is
	// below a threshold and Vanilla otherwise.
	Threshold Mode = "threshold"
)

// Modes lists every routing mode.
var Modes = []Mode{
	Vanilla,
	TwoHop,
	RestrictedSrcOnly,
	RestrictedSrcAndDst,
	FourHopRestricted,
	ThreeHopRestricted,
	FourHopSomeFiveHopRestricted,
	Threshold,
}

// exactSegments returns true if VLB paths built in mode m use exact shortest
// paths for their two segments rather than minimal Dragonfly paths.
func (m Mode) exactSegments() bool {
	switch m {
	case RestrictedSrcOnly, RestrictedSrcAndDst, FourHopRestricted, ThreeHopRestricted, FourHopSomeFiveHopRestricted:
		return true
	default:
		return false
	}
}

// VCAllocation selects how virtual channels are assigned along a path.
type VCAllocation string

const (
	// Incremental uses virtual channel i on the i-th hop.
	Incremental VCAllocation = "incremental"
	// Computed increments the virtual channel on group arrivals and local
	// hops only, see AllocateVC.
	Computed VCAllocation = "computed"
)

// MultiplyMode selects the weights of the minimal and VLB paths in UGAL
// comparisons.
type MultiplyMode string

const (
	// OneVsTwo weighs minimal paths 1 and VLB paths 2.
	OneVsTwo MultiplyMode = "one_vs_two"
	// PathLenBased weighs each path by its number of hops.
	PathLenBased MultiplyMode = "pathlen_based"
)

// Config configures a routing algorithm.
type Config struct {
	Kind Kind
	Mode Mode

	// NumVCs is the number of virtual channels per port.
	NumVCs int
	// VCAllocation is the virtual channel policy of in-flight packets.
	VCAllocation VCAllocation
	// Multiply is the UGAL comparison weighting.
	Multiply MultiplyMode
	// Threshold is the queue length below which the Threshold mode uses
	// two-hop intermediate routers.
	Threshold int
	// FiveHopPercentage is the percentage of extra five-hop intermediate
	// routers added by FourHopSomeFiveHopRestricted.
	FiveHopPercentage int
	// VLBCandidates is the number of VLB paths compared with the minimal
	// path by adaptive algorithms.
	VLBCandidates int
}

// DefaultConfig returns the configuration of the given algorithm with the
// vanilla mode and default parameters.
func DefaultConfig(kind Kind) Config {
	return Config{
		Kind:              kind,
		Mode:              Vanilla,
		NumVCs:            8,
		VCAllocation:      Incremental,
		Multiply:          OneVsTwo,
		FiveHopPercentage: 0,
		VLBCandidates:     1,
	}
}

// Validate returns an error describing the first invalid field of c.
func (c Config) Validate() error {
	if _, ok := kindNames[c.Kind]; !ok {
		return fmt.Errorf("unknown routing algorithm %v", c.Kind)
	}
	if !validMode(c.Mode) {
		return fmt.Errorf("unknown routing mode %q", c.Mode)
	}
	if c.NumVCs < 1 {
		return fmt.Errorf("number of virtual channels must be positive, got %d", c.NumVCs)
	}
	if c.VCAllocation != Incremental && c.VCAllocation != Computed {
		return fmt.Errorf("unknown vc allocation mode %q", c.VCAllocation)
	}
	if c.Multiply != OneVsTwo && c.Multiply != PathLenBased {
		return fmt.Errorf("unknown ugal multiply mode %q", c.Multiply)
	}
	if c.FiveHopPercentage < 0 || 100 < c.FiveHopPercentage {
		return fmt.Errorf("five hop percentage must be in [0, 100], got %d", c.FiveHopPercentage)
	}
	if c.VLBCandidates < 1 {
		return fmt.Errorf("number of vlb candidates must be positive, got %d", c.VLBCandidates)
	}
	return nil
}

func validMode(m Mode) bool {
	for _, mode := range Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// names lists the modes accepted as suffix of each algorithm name.
var names = map[Kind][]Mode{
	VLB: {
		RestrictedSrcOnly,
		RestrictedSrcAndDst,
		FourHopRestricted,
		FourHopSomeFiveHopRestricted,
	},
	UGALLocal: {
		TwoHop,
		RestrictedSrcOnly,
		RestrictedSrcAndDst,
		FourHopRestricted,
		ThreeHopRestricted,
		Threshold,
		FourHopSomeFiveHopRestricted,
	},
	UGALGlobal: {
		RestrictedSrcOnly,
		RestrictedSrcAndDst,
		FourHopRestricted,
		ThreeHopRestricted,
		FourHopSomeFiveHopRestricted,
	},
	PAR: {
		RestrictedSrcOnly,
		RestrictedSrcAndDst,
		FourHopRestricted,
		ThreeHopRestricted,
		FourHopSomeFiveHopRestricted,
	},
}

// Lookup returns the algorithm and mode of a routing function name such as
// "min", "vlb_four_hop_restricted" or "UGAL_L_threshold". Names can carry
// the "_dragonflyfull" suffix.
func Lookup(name string) (Kind, Mode, error) {
	base := strings.TrimSuffix(name, "_dragonflyfull")

	switch base {
	case "min":
		return Minimal, Vanilla, nil
	case "min_dijkstra", "min_djkstra":
		return MinimalExact, Vanilla, nil
	}

	for _, kind := range []Kind{VLB, UGALLocal, UGALGlobal, PAR} {
		prefix := kind.String()
		if base == prefix {
			return kind, Vanilla, nil
		}
		suffix, ok := strings.CutPrefix(base, prefix+"_")
		if !ok {
			continue
		}
		for _, mode := range names[kind] {
			if suffix == string(mode) {
				return kind, mode, nil
			}
		}
	}

	return 0, "", fmt.Errorf("unknown routing function %q", name)
}

// Name returns the routing function name of c's algorithm and mode, the
// inverse of Lookup.
func (c Config) Name() string {
	if c.Mode == Vanilla || c.Mode == "" || c.Kind == Minimal || c.Kind == MinimalExact {
		return c.Kind.String()
	}
	return c.Kind.String() + "_" + string(c.Mode)
}
