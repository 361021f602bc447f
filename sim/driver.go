package sim

import (
	"fmt"
	"math/rand"

	"k8s.io/klog/v2"

	"github.com/rhartert/dragonfly-routing/dragonfly"
	"github.com/rhartert/dragonfly-routing/routing"
	"github.com/rhartert/dragonfly-routing/traffic"
)

// Driver routes synthetic packets through a network hop by hop. Each packet
// takes one credit on every output port it goes through. Credits are
// returned when the packet's batch completes.
type Driver struct {
	net     *dragonfly.Network
	alg     routing.Algorithm
	occ     *Occupancy
	pattern traffic.Pattern
	rng     *rand.Rand
}

// Result summarizes a run.
type Result struct {
	Packets int
	// Hops is the total number of router-to-router hops.
	Hops    int
	MaxHops int
	// EdgeLoads is the number of packets that went through each edge.
	EdgeLoads []int
}

// AverageHops returns the average number of hops per packet.
func (r Result) AverageHops() float64 {
	if r.Packets == 0 {
		return 0
	}
	return float64(r.Hops) / float64(r.Packets)
}

// NewDriver returns a driver routing packets with alg. The occupancy must be
// the one alg reads queue lengths from.
func NewDriver(net *dragonfly.Network, alg routing.Algorithm, occ *Occupancy, pattern traffic.Pattern, rng *rand.Rand) *Driver {
	return &Driver{
		net:     net,
		alg:     alg,
		occ:     occ,
		pattern: pattern,
		rng:     rng,
	}
}

// Background routes n packets whose credits are never returned.
func (d *Driver) Background(n int) error {
	res := Result{EdgeLoads: make([]int, len(d.net.Graph.Edges))}
	for i := 0; i < n; i++ {
		if err := d.send(&res); err != nil {
			return err
		}
	}
	d.occ.Persist()
	klog.V(2).Infof("Routed %d background packets, %d credits in use", n, d.occ.Total())
	return nil
}

// Run routes n packets by batches of batch packets. The credits taken by a
// batch are returned once all its packets are delivered.
func (d *Driver) Run(n int, batch int) (Result, error) {
	if batch <= 0 {
		return Result{}, fmt.Errorf("batch size must be positive, got %d", batch)
	}

	res := Result{EdgeLoads: make([]int, len(d.net.Graph.Edges))}
	for i := 0; i < n; i++ {
		if err := d.send(&res); err != nil {
			d.occ.Undo()
			return res, err
		}
		if (i+1)%batch == 0 || i == n-1 {
			d.occ.Undo()
		}
	}
	return res, nil
}

// send routes one packet from a random terminal to its destination.
func (d *Driver) send(res *Result) error {
	src := d.rng.Intn(d.net.NumTerminals())
	dest := d.pattern.Dest(src, d.rng)
	st := routing.NewState(src, dest)

	if _, err := d.alg.Route(routing.InjectionPort, st, true); err != nil {
		return err
	}

	cur := d.net.TerminalRouter(src)
	dst := d.net.TerminalRouter(dest)
	hops := 0
	for cur != dst {
		if hops > d.net.NumRouters() {
			return fmt.Errorf("packet %s loops", st)
		}
		out, err := d.alg.Route(cur, st, false)
		if err != nil {
			return err
		}
		next, ok := d.net.PortRouter(cur, out.Port)
		if !ok {
			return fmt.Errorf("packet %s: port %d of router %d leads to no router", st, out.Port, cur)
		}
		d.occ.Take(cur, out.Port, 1)
		res.EdgeLoads[d.net.Edge(cur, next)]++
		cur = next
		hops++
	}

	out, err := d.alg.Route(cur, st, false)
	if err != nil {
		return err
	}
	d.occ.Take(cur, out.Port, 1)

	res.Packets++
	res.Hops += hops
	res.MaxHops = max(res.MaxHops, hops)
	return nil
}
