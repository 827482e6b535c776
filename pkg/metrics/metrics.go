package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	NetworksBuiltTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mabravo_networks_built_total",
		Help: "Total number of simulated networks built",
	})
	ConstructionFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mabravo_construction_failures_total",
		Help: "Total number of networks aborted while building, by stage",
	}, []string{"stage"})
	PacketsRoutedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mabravo_packets_routed_total",
		Help: "Total number of packets routed",
	})
	ConsistencyFaultsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mabravo_consistency_faults_total",
		Help: "Total number of graph consistency faults, by operation",
	}, []string{"op"})
	DisagreementsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mabravo_visit_disagreements_total",
		Help: "Total number of sites on which the BFS and MABRAVO visits disagree",
	})
	BuildDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mabravo_build_duration_ms",
		Help:    "Network build duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
	RouteHops = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mabravo_route_hops",
		Help:    "Hops of the greedy unicast route",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21, 34, 55},
	})
)

func init() {
	prometheus.MustRegister(NetworksBuiltTotal)
	prometheus.MustRegister(ConstructionFailuresTotal)
	prometheus.MustRegister(PacketsRoutedTotal)
	prometheus.MustRegister(ConsistencyFaultsTotal)
	prometheus.MustRegister(DisagreementsTotal)
	prometheus.MustRegister(BuildDurationMs)
	prometheus.MustRegister(RouteHops)
}

// Handler exposes the registered metrics, mounted at /metrics by the viewer.
func Handler() http.Handler { return promhttp.Handler() }
