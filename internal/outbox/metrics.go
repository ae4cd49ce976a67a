package outbox

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "training_service"

var (
	deliveredCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "outbox",
		Name:      "events_delivered_total",
		Help:      "Training events published to Kafka, by topic and event type.",
	}, []string{"topic", "event_type"})

	failedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "outbox",
		Name:      "events_failed_total",
		Help:      "Training events whose delivery failed, by topic and event type.",
	}, []string{"topic", "event_type"})

	batchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "outbox",
		Name:      "batch_duration_seconds",
		Help:      "Time spent claiming, delivering and marking one outbox batch.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	})

	dlqCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "outbox",
		Name:      "events_dlq_total",
		Help:      "Training events written to the dead-letter table, by topic and whether they had been replayed before.",
	}, []string{"topic", "replayed"})

	registryLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "schema_registry",
		Name:      "lookups_total",
		Help:      "Schema id resolutions by subject and outcome (cached, found, registered, error).",
	}, []string{"subject", "outcome"})
)

func init() {
	prometheus.MustRegister(deliveredCounter, failedCounter, batchDuration, dlqCounter, registryLookups)
}

func replayedLabel(msg Message) string {
	if msg.RetryCount > 0 {
		return "true"
	}
	return "false"
}
