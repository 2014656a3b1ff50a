package forge

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/forge/internal/errors"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "forge").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "forge",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for one Forge. A nil *Metrics
// records nothing.
type Metrics struct {
	elementsBuilt        *prometheus.CounterVec
	archetypeUses        *prometheus.CounterVec
	aliasOverwrites      prometheus.Counter
	notifications        prometheus.Counter
	notifiedListeners    prometheus.Histogram
	droppedNotifications prometheus.Counter
	errors               *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		elementsBuilt: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "elements_built_total",
			Help:        "Total number of elements built, by tag",
			ConstLabels: config.ConstLabels,
		}, []string{"tag"}),

		archetypeUses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "archetype_instantiations_total",
			Help:        "Total number of archetype instantiations, by archetype",
			ConstLabels: config.ConstLabels,
		}, []string{"archetype"}),

		aliasOverwrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "alias_overwrites_total",
			Help:        "Total number of aliases replaced in non-strict mode",
			ConstLabels: config.ConstLabels,
		}),

		notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "state_notifications_total",
			Help:        "Total number of state writes that notified listeners",
			ConstLabels: config.ConstLabels,
		}),

		notifiedListeners: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "state_notified_listeners",
			Help:        "Listeners notified per state write",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 8),
		}),

		droppedNotifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "state_notifications_dropped_total",
			Help:        "Total number of notifications dropped by the re-entrancy limit",
			ConstLabels: config.ConstLabels,
		}),

		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_total",
			Help:        "Total number of failed forge operations, by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),
	}
}

func (m *Metrics) recordBuild(tag string) {
	if m == nil {
		return
	}
	m.elementsBuilt.WithLabelValues(tag).Inc()
}

func (m *Metrics) recordArchetype(name string) {
	if m == nil {
		return
	}
	m.archetypeUses.WithLabelValues(name).Inc()
}

func (m *Metrics) recordOverwrite() {
	if m == nil {
		return
	}
	m.aliasOverwrites.Inc()
}

func (m *Metrics) recordNotify(listeners int) {
	if m == nil {
		return
	}
	m.notifications.Inc()
	m.notifiedListeners.Observe(float64(listeners))
}

func (m *Metrics) recordDrop() {
	if m == nil {
		return
	}
	m.droppedNotifications.Inc()
}

func (m *Metrics) recordError(err error) {
	if m == nil || err == nil {
		return
	}
	code := "unknown"
	if c, ok := errors.CodeOf(err); ok {
		code = strconv.Itoa(int(c))
	}
	m.errors.WithLabelValues(code).Inc()
}
