package outbox

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/kevin0018/LiftPath/internal/events"
)

func TestWriterForTopicHashesKeyedTopics(t *testing.T) {
	p := NewKafkaProducer([]string{"localhost:9092"})
	defer p.Close()

	for _, topic := range []string{events.TopicDailyWorkouts, events.TopicStatusChanges} {
		writer := p.writerForTopic(topic)
		require.Equal(t, topic, writer.Topic)
		require.IsType(t, &kafka.Hash{}, writer.Balancer, topic)
		require.Equal(t, orderedBatchTimeout, writer.BatchTimeout)
		require.Equal(t, orderedMaxAttempts, writer.MaxAttempts)
		require.Equal(t, kafka.RequireAll, writer.RequiredAcks)
	}
}

func TestWriterForTopicBalancesProgressByLoad(t *testing.T) {
	p := NewKafkaProducer([]string{"localhost:9092"})
	defer p.Close()

	writer := p.writerForTopic(events.TopicProgressEvents)
	require.IsType(t, &kafka.LeastBytes{}, writer.Balancer)
	require.Equal(t, unorderedBatchTimeout, writer.BatchTimeout)
}

func TestWriterForTopicReusesWriters(t *testing.T) {
	p := NewKafkaProducer([]string{"localhost:9092"})

	first := p.writerForTopic(events.TopicDailyWorkouts)
	require.Same(t, first, p.writerForTopic(events.TopicDailyWorkouts))
	require.Len(t, p.writers, 1)

	require.NoError(t, p.Close())
	require.Empty(t, p.writers)
}
