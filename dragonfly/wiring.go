package dragonfly

import (
	"fmt"

	"k8s.io/klog/v2"
)

// Channel is a unidirectional channel of the simulation engine, either
// carrying flits or credits.
type Channel interface {
	SetLatency(cycles int)
}

// Endpoint is a router of the simulation engine. Channels are attached in
// port order: the n-th output channel added to a router is its port n.
type Endpoint interface {
	AddInputChannel(data Channel, credit Channel)
	AddOutputChannel(data Channel, credit Channel)
}

// Substrate gives access to the routers and channels allocated by the
// simulation engine.
type Substrate interface {
	// Router returns the router with the given ID.
	Router(id int) Endpoint
	// InjectionChannel returns the channels from terminal i to its router.
	InjectionChannel(i int) (data Channel, credit Channel)
	// EjectionChannel returns the channels from a router to terminal i.
	EjectionChannel(i int) (data Channel, credit Channel)
	// LinkChannel returns the i-th router-to-router channel.
	LinkChannel(i int) (data Channel, credit Channel)
}

// Latencies are the latencies, in cycles, of router-to-router channels.
type Latencies struct {
	Local  int
	Global int
}

// NumChannels returns the number of unidirectional router-to-router channels
// of the topology, counting each parallel channel of a link.
func (t *Topology) NumChannels() int {
	n := 0
	for _, e := range t.Graph.Edges {
		n += e.Width
	}
	return n
}

// Connect attaches the channels of sub to its routers following the port map
// of t. Terminals are connected first: terminal channel P*r+i is port i of
// router r. Then, for every router in order and every edge in adjacency
// order, Width link channels are added as outputs of the edge's source and
// inputs of its destination. Data and credit channels of a link receive the
// latency of the link's kind.
func (t *Topology) Connect(sub Substrate, lat Latencies) error {
	if lat.Local < 0 || lat.Global < 0 {
		return fmt.Errorf("latencies cannot be negative, got local=%d global=%d", lat.Local, lat.Global)
	}

	for r := 0; r < t.NumRouters(); r++ {
		router := sub.Router(r)
		for i := 0; i < t.P; i++ {
			id := t.P*r + i
			router.AddInputChannel(sub.InjectionChannel(id))
			router.AddOutputChannel(sub.EjectionChannel(id))
		}
	}

	ch := 0
	for r := 0; r < t.NumRouters(); r++ {
		for _, e := range t.Graph.Nexts[r] {
			edge := t.Graph.Edges[e]
			latency := lat.Local
			if edge.Cost == GlobalCost {
				latency = lat.Global
			}
			for k := 0; k < edge.Width; k++ {
				data, credit := sub.LinkChannel(ch)
				data.SetLatency(latency)
				credit.SetLatency(latency)
				sub.Router(edge.From).AddOutputChannel(data, credit)
				sub.Router(edge.To).AddInputChannel(data, credit)
				ch++
			}
		}
	}

	klog.Infof("Dragonfly connected: %d terminal channels, %d link channels", t.NumTerminals(), ch)
	return nil
}
