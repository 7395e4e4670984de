package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "alumniportal"

// Registry is the global Prometheus registry for all metrics
var Registry = prometheus.NewRegistry()

// Auth event names and outcomes
const (
	EventRegister = "register"
	EventLogin    = "login"

	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// AuthEventsTotal counts registration and login attempts by outcome
var AuthEventsTotal = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of registration and login attempts",
	},
	[]string{"event", "outcome"}, // outcome: success|invalid|error
)

// Init registers the Go runtime and process collectors
func Init() {
	initOnce.Do(func() {
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var initOnce sync.Once

// RecordAuthEvent counts one registration or login attempt
func RecordAuthEvent(event, outcome string) {
	AuthEventsTotal.WithLabelValues(event, outcome).Inc()
}
