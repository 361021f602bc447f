// Package config loads the YAML configuration of a Dragonfly routing run.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rhartert/dragonfly-routing/dragonfly"
	"github.com/rhartert/dragonfly-routing/routing"
	"github.com/rhartert/dragonfly-routing/traffic"
)

type Config struct {
	Topology Topology `yaml:"topology"`
	Routing  Routing  `yaml:"routing"`
	Links    Links    `yaml:"links"`
	Traffic  Traffic  `yaml:"traffic"`
	Seed     int64    `yaml:"seed"`
	// QueueLog is the path of the CSV file receiving UGAL queue lengths.
	QueueLog *string `yaml:"queue_log,omitempty"`
}

type Topology struct {
	RoutersPerGroup int `yaml:"routers_per_group" validate:"gt=0"`
	Groups          int `yaml:"groups" validate:"gt=0"`
	// GlobalPorts and Terminals default to half the routers per group.
	GlobalPorts *int   `yaml:"global_ports,omitempty" validate:"omitempty,gte=0"`
	Terminals   *int   `yaml:"terminals,omitempty" validate:"omitempty,gt=0"`
	Arrangement string `yaml:"arrangement,omitempty"`
}

type Routing struct {
	Function          string `yaml:"function" validate:"required"`
	NumVCs            *int   `yaml:"num_vcs,omitempty" validate:"omitempty,gt=0"`
	VCAllocation      string `yaml:"vc_allocation,omitempty"`
	Multiply          string `yaml:"multiply,omitempty"`
	Threshold         int    `yaml:"threshold" validate:"gte=0"`
	FiveHopPercentage int    `yaml:"five_hop_percentage" validate:"gte=0,lte=100"`
	VLBCandidates     *int   `yaml:"vlb_candidates,omitempty" validate:"omitempty,gt=0"`
}

type Links struct {
	LocalLatency  int `yaml:"local_latency" validate:"gte=0"`
	GlobalLatency int `yaml:"global_latency" validate:"gte=0"`
}

type Traffic struct {
	Pattern string `yaml:"pattern" validate:"required"`
	Packets int    `yaml:"packets" validate:"gt=0"`
	// Batch is the number of packets in flight at the same time.
	Batch int `yaml:"batch" validate:"gt=0"`
	// Background is the number of packets that hold their credits during
	// the whole run.
	Background int `yaml:"background" validate:"gte=0"`
	// Hotspots are the terminals favored by the hotspot pattern.
	Hotspots []int   `yaml:"hotspots,omitempty" validate:"dive,gte=0"`
	Weight   float64 `yaml:"hotspot_weight,omitempty" validate:"gte=0"`
	// Shift is the group offset of the group_shift pattern.
	Shift int `yaml:"shift,omitempty"`
}

func NewFromFile(fname string) (*Config, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", fname, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fname, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	switch dragonfly.Arrangement(cfg.Topology.Arrangement) {
	case dragonfly.AbsoluteImproved, "":
		//nop
	default:
		return fmt.Errorf("unsupported arrangement %s", cfg.Topology.Arrangement)
	}

	rc, err := cfg.RoutingConfig()
	if err != nil {
		return err
	}
	if err := rc.Validate(); err != nil {
		return err
	}

	switch traffic.PatternName(cfg.Traffic.Pattern) {
	case traffic.Uniform, traffic.GroupShift:
		//nop
	case traffic.Hotspot:
		if len(cfg.Traffic.Hotspots) == 0 {
			return fmt.Errorf("hotspot pattern requires hotspots")
		}
	default:
		return fmt.Errorf("unsupported traffic pattern %s", cfg.Traffic.Pattern)
	}

	return nil
}

// Params returns the Dragonfly parameters of the configuration.
func (cfg *Config) Params() dragonfly.Params {
	p := dragonfly.DefaultParams(cfg.Topology.RoutersPerGroup, cfg.Topology.Groups)
	if cfg.Topology.GlobalPorts != nil {
		p.H = *cfg.Topology.GlobalPorts
	}
	if cfg.Topology.Terminals != nil {
		p.P = *cfg.Topology.Terminals
	}
	if cfg.Topology.Arrangement != "" {
		p.Arrangement = dragonfly.Arrangement(cfg.Topology.Arrangement)
	}
	return p
}

// RoutingConfig returns the routing configuration named by the routing
// function of the configuration.
func (cfg *Config) RoutingConfig() (routing.Config, error) {
	kind, mode, err := routing.Lookup(cfg.Routing.Function)
	if err != nil {
		return routing.Config{}, err
	}

	rc := routing.DefaultConfig(kind)
	rc.Mode = mode
	rc.Threshold = cfg.Routing.Threshold
	rc.FiveHopPercentage = cfg.Routing.FiveHopPercentage
	if cfg.Routing.NumVCs != nil {
		rc.NumVCs = *cfg.Routing.NumVCs
	}
	if cfg.Routing.VCAllocation != "" {
		rc.VCAllocation = routing.VCAllocation(cfg.Routing.VCAllocation)
	}
	if cfg.Routing.Multiply != "" {
		rc.Multiply = routing.MultiplyMode(cfg.Routing.Multiply)
	}
	if cfg.Routing.VLBCandidates != nil {
		rc.VLBCandidates = *cfg.Routing.VLBCandidates
	}
	return rc, nil
}

// Latencies returns the channel latencies of the configuration.
func (cfg *Config) Latencies() dragonfly.Latencies {
	return dragonfly.Latencies{
		Local:  cfg.Links.LocalLatency,
		Global: cfg.Links.GlobalLatency,
	}
}
