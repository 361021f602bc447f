package routing

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const statsSubsystem = "dragonfly_routing"

// Stats collects the routing decisions of an algorithm.
type Stats struct {
	packets     *prometheus.CounterVec
	pathLength  *prometheus.HistogramVec
	multipliers *prometheus.CounterVec
}

// NewStats returns unregistered routing statistics.
func NewStats() *Stats {
	return &Stats{
		packets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:      "packets_total",
				Help:      "Total number of packets per final routing decision.",
				Subsystem: statsSubsystem,
			},
			[]string{"algorithm", "path"},
		),
		pathLength: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:      "path_length_hops",
				Help:      "Number of router hops of the final paths of packets.",
				Subsystem: statsSubsystem,
				Buckets:   prometheus.LinearBuckets(1, 1, 10),
			},
			[]string{"algorithm", "scope"},
		),
		multipliers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:      "ugal_multipliers_total",
				Help:      "Number of UGAL decisions per pair of path multipliers and chosen path.",
				Subsystem: statsSubsystem,
			},
			[]string{"min", "vlb", "choice"},
		),
	}
}

// MustRegister registers the statistics with reg and panics on failure.
func (s *Stats) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(s.packets, s.pathLength, s.multipliers)
}

// addPath records the final path of a packet.
func (s *Stats) addPath(algorithm string, hops int, minimal bool, inGroup bool) {
	if s == nil {
		return
	}
	path := "non_minimal"
	if minimal {
		path = "minimal"
	}
	scope := "out_group"
	if inGroup {
		scope = "in_group"
	}
	s.packets.WithLabelValues(algorithm, path).Inc()
	s.pathLength.WithLabelValues(algorithm, scope).Observe(float64(hops))
}

// addMultipliers records the multipliers of a UGAL decision and whether it
// chose the minimal path.
func (s *Stats) addMultipliers(mulMin int, mulVLB int, minimal bool) {
	if s == nil {
		return
	}
	c := "vlb"
	if minimal {
		c = "min"
	}
	s.multipliers.WithLabelValues(strconv.Itoa(mulMin), strconv.Itoa(mulVLB), c).Inc()
}
