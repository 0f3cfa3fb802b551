package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricPrefix = "skillswap"

// Manager holds the marketplace metrics and their registry
type Manager struct {
	registry *prometheus.Registry

	swapsCreated    prometheus.Counter
	swapTransitions *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

// NewManager creates a metrics manager backed by its own registry so tests
// never collide on duplicate registration
func NewManager() *Manager {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Manager{
		registry: registry,
		swapsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "_swaps_created_total",
			Help: "Total number of swap requests created",
		}),
		swapTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "_swap_transitions_total",
			Help: "Total number of swap request status transitions",
		}, []string{"status"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: metricPrefix + "_http_requests_total",
			Help: "Total number of HTTP requests by method and status code",
		}, []string{"method", "code"}),
	}
}

// Registry exposes the backing registry for the /metrics handler
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// SwapCreated records a newly created swap request
func (m *Manager) SwapCreated() {
	m.swapsCreated.Inc()
}

// SwapTransition records a successful lifecycle transition
func (m *Manager) SwapTransition(status string) {
	m.swapTransitions.WithLabelValues(status).Inc()
}

// HTTPRequest records a served HTTP request
func (m *Manager) HTTPRequest(method, code string) {
	m.httpRequests.WithLabelValues(method, code).Inc()
}
