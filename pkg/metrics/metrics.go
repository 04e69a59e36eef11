package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	NodesContracted  prometheus.Counter
	ShortcutsAdded   prometheus.Counter
	WitnessSearches  prometheus.Counter
	BuildDuration    prometheus.Histogram
	Queries          *prometheus.CounterVec
	QuerySettled     prometheus.Histogram
	QueryDuration    prometheus.Histogram
	UnpackedPathArcs prometheus.Histogram
}

// NewMetrics registers every collector on reg. pass prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		NodesContracted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "navigatorx",
			Subsystem: "contraction",
			Name:      "nodes_contracted_total",
			Help:      "Nodes contracted during preprocessing.",
		}),
		ShortcutsAdded: f.NewCounter(prometheus.CounterOpts{
			Namespace: "navigatorx",
			Subsystem: "contraction",
			Name:      "shortcuts_added_total",
			Help:      "Shortcut arcs added or updated during contraction.",
		}),
		WitnessSearches: f.NewCounter(prometheus.CounterOpts{
			Namespace: "navigatorx",
			Subsystem: "contraction",
			Name:      "witness_searches_total",
			Help:      "Local witness searches run while contracting nodes, priority simulations excluded.",
		}),
		BuildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navigatorx",
			Subsystem: "contraction",
			Name:      "build_duration_seconds",
			Help:      "Wall time of a full hierarchy build.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 12),
		}),
		Queries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "navigatorx",
			Subsystem: "query",
			Name:      "queries_total",
			Help:      "Point to point queries by result.",
		}, []string{"result"}),
		QuerySettled: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navigatorx",
			Subsystem: "query",
			Name:      "settled_nodes",
			Help:      "Nodes settled by both directions of a query.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		}),
		QueryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navigatorx",
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Query duration.",
			Buckets:   []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
		UnpackedPathArcs: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navigatorx",
			Subsystem: "query",
			Name:      "path_arcs",
			Help:      "Original arcs in an unpacked path.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 14),
		}),
	}
}

const (
	ResultFound       = "found"
	ResultUnreachable = "unreachable"
)
