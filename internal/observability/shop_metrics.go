package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ShopMetrics covers the proximity search pipeline and the change-event
// producer.
type ShopMetrics struct {
	searchTotal       *prometheus.CounterVec
	searchLatency     *prometheus.HistogramVec
	searchScanned     prometheus.Histogram
	searchMatched     prometheus.Histogram
	kafkaPublishTotal *prometheus.CounterVec
}

func NewShopMetrics(registry *prometheus.Registry, serviceName string) *ShopMetrics {
	if registry == nil {
		registry = NewMetricsRegistry()
	}

	constLabels := prometheus.Labels{}
	if serviceName != "" {
		constLabels["service"] = serviceName
	}

	searchTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "shop",
		Subsystem:   "search",
		Name:        "requests_total",
		Help:        "Total proximity search requests.",
		ConstLabels: constLabels,
	}, []string{"result"})

	searchLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   "shop",
		Subsystem:   "search",
		Name:        "request_duration_seconds",
		Help:        "Proximity search duration in seconds.",
		Buckets:     prometheus.DefBuckets,
		ConstLabels: constLabels,
	}, []string{"result"})

	// The scan is O(n) over the whole table, so the scanned-size
	// distribution is the capacity signal to watch.
	searchScanned := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   "shop",
		Subsystem:   "search",
		Name:        "records_scanned",
		Help:        "Records scanned per proximity search.",
		Buckets:     prometheus.ExponentialBuckets(10, 4, 8),
		ConstLabels: constLabels,
	})

	searchMatched := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   "shop",
		Subsystem:   "search",
		Name:        "records_matched",
		Help:        "Records within the radius per proximity search.",
		Buckets:     prometheus.ExponentialBuckets(1, 4, 8),
		ConstLabels: constLabels,
	})

	kafkaPublishTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   "shop",
		Subsystem:   "kafka",
		Name:        "publish_total",
		Help:        "Total shop event publish attempts.",
		ConstLabels: constLabels,
	}, []string{"topic", "result"})

	registry.MustRegister(searchTotal, searchLatency, searchScanned, searchMatched, kafkaPublishTotal)

	return &ShopMetrics{
		searchTotal:       searchTotal,
		searchLatency:     searchLatency,
		searchScanned:     searchScanned,
		searchMatched:     searchMatched,
		kafkaPublishTotal: kafkaPublishTotal,
	}
}

// ObserveSearch records one proximity search outcome.
func (m *ShopMetrics) ObserveSearch(result string, duration time.Duration, scanned, matched int) {
	if m == nil {
		return
	}
	m.searchTotal.WithLabelValues(result).Inc()
	m.searchLatency.WithLabelValues(result).Observe(duration.Seconds())
	m.searchScanned.Observe(float64(scanned))
	m.searchMatched.Observe(float64(matched))
}

// ObserveKafkaPublish records one event publish attempt.
func (m *ShopMetrics) ObserveKafkaPublish(topic, result string) {
	if m == nil {
		return
	}
	m.kafkaPublishTotal.WithLabelValues(topic, result).Inc()
}
