package consumer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "training_service"

var (
	processedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "consumer",
		Name:      "messages_processed_total",
		Help:      "Training events handled without error, by topic and event type.",
	}, []string{"topic", "event_type"})

	handlerErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "consumer",
		Name:      "handler_errors_total",
		Help:      "Training events the handler rejected, by topic and event type.",
	}, []string{"topic", "event_type"})

	decodeErrorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "consumer",
		Name:      "decode_errors_total",
		Help:      "Records without a valid schema registry frame, by topic.",
	}, []string{"topic"})

	archivedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "consumer",
		Name:      "events_archived_total",
		Help:      "Event log writes by topic and outcome (stored or duplicate).",
	}, []string{"topic", "outcome"})

	deliveryLag = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "consumer",
		Name:      "delivery_lag_seconds",
		Help:      "Time between a record being produced and handled, by topic.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	}, []string{"topic"})

	lastMessageGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "consumer",
		Name:      "last_message_timestamp_seconds",
		Help:      "Produce time of the newest handled record, by topic.",
	}, []string{"topic"})
)

func init() {
	prometheus.MustRegister(processedCounter, handlerErrorCounter, decodeErrorCounter, archivedCounter, deliveryLag, lastMessageGauge)
}

func recordProcessed(msg Message) {
	processedCounter.WithLabelValues(msg.Topic, msg.EventType).Inc()
	if msg.Timestamp.IsZero() {
		return
	}
	lastMessageGauge.WithLabelValues(msg.Topic).Set(float64(msg.Timestamp.Unix()))
	if lag := time.Since(msg.Timestamp); lag > 0 {
		deliveryLag.WithLabelValues(msg.Topic).Observe(lag.Seconds())
	}
}

func recordHandlerError(msg Message) {
	handlerErrorCounter.WithLabelValues(msg.Topic, msg.EventType).Inc()
}

func recordDecodeError(topic string) {
	decodeErrorCounter.WithLabelValues(topic).Inc()
}

func recordArchived(msg Message, stored bool) {
	outcome := "duplicate"
	if stored {
		outcome = "stored"
	}
	archivedCounter.WithLabelValues(msg.Topic, outcome).Inc()
}
