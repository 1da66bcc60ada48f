package instrument

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jpalmerr/wikistore"
	"github.com/jpalmerr/wikistore/notify"
)

// Metrics holds Prometheus collectors fed by store events.
//
// One Metrics value may be attached to several stores; their counts add up.
type Metrics struct {
	WritesTotal     *prometheus.CounterVec
	ReadsTotal      prometheus.Counter
	ReadMissesTotal prometheus.Counter
	Records         prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
//
// It panics if registration fails, as promauto does, e.g. when the same
// namespace is registered twice on one registry.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		WritesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "writes_total",
			Help:      "Total records set, by insert or replace",
		}, []string{"kind"}),

		ReadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "reads_total",
			Help:      "Total read attempts, hit or miss",
		}),

		ReadMissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "read_misses_total",
			Help:      "Total reads of keys with no record",
		}),

		Records: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "records",
			Help:      "Number of records held",
		}),
	}
}

// Attach adds the records already in s to the records gauge, then subscribes
// m to the events of s.
//
// The gauge is bumped before the write commits. A before-set subscriber
// that panics after this one aborts the write and leaves the gauge one high.
// Detaching does not subtract the store's records.
func Attach[R wikistore.Keyed](m *Metrics, s *wikistore.Store[R]) notify.Unsubscribe {
	m.Records.Add(float64(s.Len()))

	unsubSet := s.OnBeforeSet(func(e wikistore.BeforeSetEvent[R]) {
		m.WritesTotal.WithLabelValues(writeKind(e.Found)).Inc()
		if !e.Found {
			m.Records.Inc()
		}
	})

	unsubRead := s.OnRead(func(e wikistore.ReadEvent) {
		m.ReadsTotal.Inc()
		if !s.Contains(e.ID) {
			m.ReadMissesTotal.Inc()
		}
	})

	return func() {
		unsubSet()
		unsubRead()
	}
}
