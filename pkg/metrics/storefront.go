package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records counters for the storefront core: bus traffic,
// remote mutations, and suggestion lookups.
type StorefrontMetrics struct {
	publishes   *prometheus.CounterVec
	deliveries  *prometheus.CounterVec
	mutations   *prometheus.CounterVec
	suggestions *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided
// registerer. A nil registerer yields a no-op recorder, which keeps tests and
// optional wiring cheap.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	publishes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bus_publishes_total",
		Help: "Events published per topic.",
	}, []string{"topic"})
	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bus_deliveries_total",
		Help: "Listener invocations per topic.",
	}, []string{"topic"})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mutation_results_total",
		Help: "Remote mutation outcomes per action.",
	}, []string{"action", "outcome"})
	suggestions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "suggestion_lookups_total",
		Help: "Suggestion lookups by disposition.",
	}, []string{"disposition"})
	reg.MustRegister(publishes, deliveries, mutations, suggestions)
	return &StorefrontMetrics{
		publishes:   publishes,
		deliveries:  deliveries,
		mutations:   mutations,
		suggestions: suggestions,
	}
}

// IncPublish increments the publish counter for the topic.
func (m *StorefrontMetrics) IncPublish(topic string) {
	if m == nil || m.publishes == nil {
		return
	}
	m.publishes.WithLabelValues(normalizeLabel(topic)).Inc()
}

// AddDeliveries records how many listeners a publish reached.
func (m *StorefrontMetrics) AddDeliveries(topic string, count int) {
	if m == nil || m.deliveries == nil || count <= 0 {
		return
	}
	m.deliveries.WithLabelValues(normalizeLabel(topic)).Add(float64(count))
}

// IncMutationSuccess records a confirmed remote mutation.
func (m *StorefrontMetrics) IncMutationSuccess(action string) {
	m.incMutation(action, "success")
}

// IncMutationFailure records a failed remote mutation.
func (m *StorefrontMetrics) IncMutationFailure(action string) {
	m.incMutation(action, "failure")
}

func (m *StorefrontMetrics) incMutation(action, outcome string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(action), outcome).Inc()
}

// IncSuggestionServed records a lookup whose result was rendered.
func (m *StorefrontMetrics) IncSuggestionServed() {
	m.incSuggestion("served")
}

// IncSuggestionSuperseded records a lookup canceled by a newer keystroke.
func (m *StorefrontMetrics) IncSuggestionSuperseded() {
	m.incSuggestion("superseded")
}

func (m *StorefrontMetrics) incSuggestion(disposition string) {
	if m == nil || m.suggestions == nil {
		return
	}
	m.suggestions.WithLabelValues(disposition).Inc()
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}
