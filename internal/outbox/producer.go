package outbox

import (
	"context"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"github.com/kevin0018/LiftPath/internal/events"
)

const (
	orderedBatchTimeout   = 10 * time.Millisecond
	unorderedBatchTimeout = 50 * time.Millisecond
	orderedMaxAttempts    = 10
)

// KafkaProducer keeps one writer per training topic. Topics whose records
// are keyed by workout or user hash the key so per-aggregate order survives;
// progress events are balanced by load.
type KafkaProducer struct {
	brokers []string
	logger  log.FieldLogger
	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

// NewKafkaProducer creates a KafkaProducer.
func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		brokers: brokers,
		logger:  log.WithField("component", "kafka_producer"),
		writers: make(map[string]*kafka.Writer),
	}
}

// WriteMessages writes msgs to topic, creating its writer on first use.
func (p *KafkaProducer) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	return p.writerForTopic(topic).WriteMessages(ctx, msgs...)
}

func (p *KafkaProducer) writerForTopic(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, ok := p.writers[topic]; ok {
		return writer
	}

	writer := p.newWriter(topic)
	p.writers[topic] = writer
	return writer
}

func (p *KafkaProducer) newWriter(topic string) *kafka.Writer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		ErrorLogger:  kafka.LoggerFunc(p.logger.WithField("topic", topic).Errorf),
	}

	if events.TopicKeyOrdered(topic) {
		writer.Balancer = &kafka.Hash{}
		writer.BatchTimeout = orderedBatchTimeout
		writer.MaxAttempts = orderedMaxAttempts
	} else {
		writer.Balancer = &kafka.LeastBytes{}
		writer.BatchTimeout = unorderedBatchTimeout
	}
	return writer
}

// Close flushes and releases every writer.
func (p *KafkaProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}
