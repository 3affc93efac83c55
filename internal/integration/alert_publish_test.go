//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/alertaid/disaster-risk-service/internal/adapter/kafka"
	"github.com/alertaid/disaster-risk-service/internal/config"
	"github.com/alertaid/disaster-risk-service/internal/domain"
)

const testAlertTopic = "test-disaster-alerts"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-broker Kafka container and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// receivedAlert holds a deserialized message read from the alert topic.
type receivedAlert struct {
	Alert   domain.Alert
	Key     string
	Headers map[string]string
}

func readAlert(ctx context.Context, t *testing.T, consumer *kafkago.Reader) receivedAlert {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from alert topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var alert domain.Alert
	require.NoError(t, json.Unmarshal(msg.Value, &alert), "unmarshal alert message")

	return receivedAlert{Alert: alert, Key: string(msg.Key), Headers: headers}
}

// TestAlertPublishRoundTrip verifies the publisher writes keyed, headered
// alert messages that a consumer can fully reconstruct.
func TestAlertPublishRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAlertTopic)

	cfg := &config.Config{
		KafkaBrokers:    []string{broker},
		KafkaAlertTopic: testAlertTopic,
	}

	publisher := kafkaadapter.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	events := []domain.SeismicEvent{
		{ID: "us7000abcd", Magnitude: 5.5, Place: "10km NE of Ridgecrest, CA"},
		{ID: "us7000wxyz", Magnitude: 3.2, Place: "offshore Honshu, Japan"},
	}
	alerts := domain.AlertsFromSeismicEvents(events)
	require.NoError(t, publisher.PublishAlerts(ctx, alerts))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testAlertTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make(map[string]receivedAlert, len(alerts))
	for len(received) < len(alerts) {
		ra := readAlert(ctx, t, consumer)
		received[ra.Key] = ra
	}

	strong, ok := received["eq-us7000abcd"]
	require.True(t, ok, "expected the M5.5 alert")
	assert.Equal(t, "High", strong.Alert.Severity)
	assert.Equal(t, "Immediate", strong.Alert.Urgency)
	assert.Equal(t, "Earthquake", strong.Headers["event"])
	assert.Equal(t, "High", strong.Headers["severity"])
	_, err := time.Parse(time.RFC3339, strong.Headers["onset"])
	assert.NoError(t, err, "onset header should be valid RFC3339")

	moderate, ok := received["eq-us7000wxyz"]
	require.True(t, ok, "expected the M3.2 alert")
	assert.Equal(t, "Medium", moderate.Alert.Severity)
	assert.Equal(t, "Expected", moderate.Alert.Urgency)
	assert.WithinDuration(t, moderate.Alert.Onset.Add(6*time.Hour), moderate.Alert.Expires, time.Second)
}

// TestAlertPublishEmptyBatch verifies an empty publish is a no-op against a
// real broker.
func TestAlertPublishEmptyBatch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAlertTopic)

	cfg := &config.Config{
		KafkaBrokers:    []string{broker},
		KafkaAlertTopic: testAlertTopic,
	}

	publisher := kafkaadapter.NewPublisher(cfg, discardLogger())
	t.Cleanup(func() { _ = publisher.Close() })

	require.NoError(t, publisher.PublishAlerts(ctx, nil))
}
