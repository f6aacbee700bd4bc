package hubnode

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the node's instrumentation. All fields are nil when no
// registerer was configured; the record helpers tolerate that.
type metrics struct {
	operations *prometheus.CounterVec
	events     prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return &metrics{}
	}
	m := &metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "socialhub",
			Subsystem: "hub",
			Name:      "operations_total",
			Help:      "Mutating hub operations by entrypoint and outcome.",
		}, []string{"op", "outcome"}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "socialhub",
			Subsystem: "hub",
			Name:      "events_published_total",
			Help:      "Events published to the protocol feed.",
		}),
	}
	reg.MustRegister(m.operations, m.events)
	return m
}

func (m *metrics) recordOp(op string, err error) {
	if m.operations == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(op, outcome).Inc()
}

func (m *metrics) recordEvents(n int) {
	if m.events == nil || n == 0 {
		return
	}
	m.events.Add(float64(n))
}
