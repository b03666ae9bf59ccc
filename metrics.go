package bollywood

// Metrics is the abstract sink a supervisor reports counters and gauge
// adjustments to. The default is NopMetrics; metrics/promadapter provides a
// Prometheus-backed implementation for production use.
type Metrics interface {
	// MessagesDispatched counts messages delivered through a subscription
	// table, labeled by payload type name.
	MessagesDispatched(payloadType string, count int)
	// ActorsCreated counts CreateActor/CreateSupervisor calls.
	ActorsCreated(count int)
	// ActorsShutDown counts actors that reached SHUT_DOWN.
	ActorsShutDown(count int)
	// RequestsInFlight adjusts the current pending-request gauge by delta,
	// which may be negative.
	RequestsInFlight(delta int)
	// RequestTimeouts counts requests resolved by ErrRequestTimeout.
	RequestTimeouts(count int)
}

// NopMetrics discards every observation. It is the default Metrics
// implementation.
type NopMetrics struct{}

func (NopMetrics) MessagesDispatched(string, int) {}
func (NopMetrics) ActorsCreated(int)              {}
func (NopMetrics) ActorsShutDown(int)             {}
func (NopMetrics) RequestsInFlight(int)           {}
func (NopMetrics) RequestTimeouts(int)            {}
