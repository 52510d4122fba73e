package pragmatic

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors updated during compaction.
//
// Create it with [NewMetrics] and install it with [WithMetrics]. A nil
// *Metrics disables collection.
type Metrics struct {
	documents *prometheus.CounterVec // Top-level documents by result
	nested    prometheus.Counter     // Nested documents compacted
	flattened prometheus.Counter     // Map entries flattened into "term:key"
	depth     prometheus.Histogram   // Deepest nesting reached per document
}

// NewMetrics creates the compaction collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &Metrics{
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pragmatic",
			Subsystem: "compaction",
			Name:      "documents_total",
			Help:      "Total number of documents compacted",
		}, []string{"result"}),

		nested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pragmatic",
			Subsystem: "compaction",
			Name:      "nested_documents_total",
			Help:      "Total number of nested documents compacted",
		}),

		flattened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pragmatic",
			Subsystem: "compaction",
			Name:      "flattened_entries_total",
			Help:      "Total number of map entries flattened into namespaced keys",
		}),

		depth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pragmatic",
			Subsystem: "compaction",
			Name:      "nesting_depth",
			Help:      "Deepest level of nested documents per compaction",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
	}

	for _, c := range []prometheus.Collector{m.documents, m.nested, m.flattened, m.depth} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observe(w *walk, err error) {
	if m == nil {
		return
	}

	if err != nil {
		m.documents.WithLabelValues("error").Inc()
		return
	}

	m.documents.WithLabelValues("ok").Inc()
	m.nested.Add(float64(w.nested))
	m.flattened.Add(float64(w.flattened))
	m.depth.Observe(float64(w.deepest))
}
