package integration

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commerce-platform/backoffice-service/pkg/cloudevents"
	"github.com/commerce-platform/backoffice-service/pkg/kafka"
	"github.com/commerce-platform/backoffice-service/pkg/logging"
	"github.com/commerce-platform/backoffice-service/pkg/metrics"
	"github.com/commerce-platform/backoffice-service/pkg/outbox"
	sharedtesting "github.com/commerce-platform/backoffice-service/pkg/testing"
)

// createTopics creates the back-office topics on the test broker. The
// replication factor is pinned to 1 because the container runs a single
// broker.
func createTopics(t *testing.T, brokers []string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	var topicConfigs []kafkago.TopicConfig
	for _, tc := range kafka.DefaultTopicConfigs() {
		topicConfigs = append(topicConfigs, kafkago.TopicConfig{
			Topic:             tc.Name,
			NumPartitions:     tc.Partitions,
			ReplicationFactor: 1,
			ConfigEntries: []kafkago.ConfigEntry{
				{ConfigName: "retention.ms", ConfigValue: strconv.FormatInt(tc.RetentionMs, 10)},
			},
		})
	}
	require.NoError(t, controllerConn.CreateTopics(topicConfigs...))
}

func TestOutboxRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	repos, cleanup := setupRepositories(t)
	defer cleanup()

	kafkaContainer, err := sharedtesting.NewKafkaContainer(ctx)
	require.NoError(t, err)
	defer kafkaContainer.Close(ctx)

	createTopics(t, kafkaContainer.Brokers)

	logger := logging.New(logging.DefaultConfig("backoffice-itest"))
	m := metrics.New(metrics.DefaultConfig("backoffice-itest"))

	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = kafkaContainer.Brokers
	kafkaConfig.ConsumerGroup = "backoffice-itest"
	kafkaConfig.BatchSize = 1
	kafkaConfig.BatchTimeout = 10 * time.Millisecond

	producer := kafka.NewInstrumentedProducer(kafka.NewProducer(kafkaConfig), m, logger)
	defer producer.Close()

	received := make(chan *cloudevents.CommerceCloudEvent, 10)
	consumer := kafka.NewInstrumentedConsumer(kafka.NewConsumer(kafkaConfig, logger.Logger), m, logger)
	consumer.SubscribeAll(kafka.Topics.LogisticsEvents, func(ctx context.Context, event *cloudevents.CommerceCloudEvent) error {
		received <- event
		return nil
	})

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()
	go func() {
		_ = consumer.Start(consumerCtx)
	}()
	defer consumer.Close()

	order := repos.seedOrder(t, "ORD-2024-0801")
	logistic := testLogistic(t, order, "BD-ROUNDTRIP-1")
	require.NoError(t, repos.logistics.Save(ctx, logistic))

	publisher := outbox.NewPublisher(
		repos.logistics.GetOutboxRepository(),
		producer,
		logger,
		m,
		&outbox.PublisherConfig{
			PollInterval: 200 * time.Millisecond,
			BatchSize:    10,
		},
	)
	require.NoError(t, publisher.Start(ctx))
	defer publisher.Stop()

	select {
	case event := <-received:
		assert.Equal(t, cloudevents.LogisticsEntryCreated, event.Type)
		assert.Equal(t, cloudevents.SourceBackoffice, event.Source)
		assert.Equal(t, "logistics/"+logistic.ID.Hex(), event.Subject)
	case <-time.After(90 * time.Second):
		t.Fatal("timed out waiting for shipment event on " + kafka.Topics.LogisticsEvents)
	}

	require.Eventually(t, func() bool {
		pending, err := repos.logistics.GetOutboxRepository().FindUnpublished(ctx, 10)
		return err == nil && len(pending) == 0
	}, 30*time.Second, 500*time.Millisecond)

	assert.GreaterOrEqual(t, publisher.Stats()["published"], 1)
}
