package consumer

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/kevin0018/LiftPath/internal/events"
)

func lagSamples(t *testing.T, topic string) uint64 {
	t.Helper()

	metric := &dto.Metric{}
	require.NoError(t, deliveryLag.WithLabelValues(topic).(prometheus.Histogram).Write(metric))
	return metric.GetHistogram().GetSampleCount()
}

func TestRecordProcessedTracksLag(t *testing.T) {
	produced := time.Now().Add(-2 * time.Second).UTC()
	msg := Message{Topic: events.TopicStatusChanges, EventType: events.TypeExerciseStatusChanged, Timestamp: produced}

	before := lagSamples(t, events.TopicStatusChanges)
	recordProcessed(msg)

	require.Equal(t, before+1, lagSamples(t, events.TopicStatusChanges))
	require.Equal(t, float64(produced.Unix()), testutil.ToFloat64(lastMessageGauge.WithLabelValues(events.TopicStatusChanges)))
}

func TestRecordProcessedWithoutTimestamp(t *testing.T) {
	msg := Message{Topic: "untimed_topic", EventType: events.TypeProgressRecorded}

	before := testutil.ToFloat64(processedCounter.WithLabelValues("untimed_topic", events.TypeProgressRecorded))
	recordProcessed(msg)

	require.InDelta(t, before+1, testutil.ToFloat64(processedCounter.WithLabelValues("untimed_topic", events.TypeProgressRecorded)), 0.0001)
	require.Zero(t, lagSamples(t, "untimed_topic"))
}

func TestRecordArchivedOutcome(t *testing.T) {
	msg := Message{Topic: events.TopicDailyWorkouts}
	stored := archivedCounter.WithLabelValues(events.TopicDailyWorkouts, "stored")
	duplicate := archivedCounter.WithLabelValues(events.TopicDailyWorkouts, "duplicate")
	beforeStored, beforeDuplicate := testutil.ToFloat64(stored), testutil.ToFloat64(duplicate)

	recordArchived(msg, true)
	recordArchived(msg, false)
	recordArchived(msg, false)

	require.InDelta(t, beforeStored+1, testutil.ToFloat64(stored), 0.0001)
	require.InDelta(t, beforeDuplicate+2, testutil.ToFloat64(duplicate), 0.0001)
}
