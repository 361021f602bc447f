package dragonfly

import (
	"fmt"

	"k8s.io/klog/v2"
)

// Network bundles a Dragonfly topology with the routing tables derived from
// it. It is built once and shared read-only by every routing decision.
type Network struct {
	*Topology
	Paths     *ShortestPaths
	Neighbors *Neighbors
}

// NewNetwork builds the topology described by p together with its all-pairs
// shortest paths and neighbor sets.
func NewNetwork(p Params) (*Network, error) {
	topo, err := New(p)
	if err != nil {
		return nil, err
	}

	sp, err := AllPairs(topo.Graph)
	if err != nil {
		return nil, fmt.Errorf("error computing shortest paths: %w", err)
	}
	klog.V(2).Infof("All-pairs shortest paths computed for %d routers", topo.NumRouters())

	return &Network{
		Topology:  topo,
		Paths:     sp,
		Neighbors: NewNeighbors(topo),
	}, nil
}
