// Package promadapter implements bollywood.Metrics on top of
// client_golang, mirroring the counter/gauge naming conventions Prometheus
// exporters in the wild use for actor-style runtimes.
package promadapter

import (
	"github.com/lguibr/bollywood"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter is a bollywood.Metrics backed by Prometheus collectors. Construct
// one with New and register it with the process's registry.
type Adapter struct {
	dispatched *prometheus.CounterVec
	created    prometheus.Counter
	shutdown   prometheus.Counter
	inFlight   prometheus.Gauge
	timeouts   prometheus.Counter
}

// New builds an Adapter and registers its collectors with reg.
func New(reg prometheus.Registerer) *Adapter {
	a := &Adapter{
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bollywood_messages_dispatched_total",
			Help: "Messages delivered through a subscription table, by payload type.",
		}, []string{"type"}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bollywood_actors_created_total",
			Help: "Actors and supervisors created.",
		}),
		shutdown: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bollywood_actors_shutdown_total",
			Help: "Actors and supervisors that reached SHUT_DOWN.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bollywood_requests_in_flight",
			Help: "Requests awaiting a response or a timeout.",
		}),
		timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bollywood_request_timeouts_total",
			Help: "Requests resolved by timeout rather than by response.",
		}),
	}
	reg.MustRegister(a.dispatched, a.created, a.shutdown, a.inFlight, a.timeouts)
	return a
}

func (a *Adapter) MessagesDispatched(payloadType string, count int) {
	a.dispatched.WithLabelValues(payloadType).Add(float64(count))
}

func (a *Adapter) ActorsCreated(count int) { a.created.Add(float64(count)) }

func (a *Adapter) ActorsShutDown(count int) { a.shutdown.Add(float64(count)) }

func (a *Adapter) RequestsInFlight(delta int) { a.inFlight.Add(float64(delta)) }

func (a *Adapter) RequestTimeouts(count int) { a.timeouts.Add(float64(count)) }

var _ bollywood.Metrics = (*Adapter)(nil)
