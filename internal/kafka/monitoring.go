package kafka

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/logger"
)

// ConsumerLag is the per partition and total lag of a consumer group
// on one topic
type ConsumerLag struct {
	Topic         string          `json:"topic"`
	ConsumerGroup string          `json:"consumer_group"`
	TotalLag      int64           `json:"total_lag"`
	PartitionLags map[int32]int64 `json:"partition_lags"`
}

// MonitoringService reports how far the request log consumer has fallen
// behind the dispatcher's telemetry stream.
type MonitoringService struct {
	config *config.Configuration
	logger *logger.Logger
}

func NewMonitoringService(cfg *config.Configuration, log *logger.Logger) *MonitoringService {
	return &MonitoringService{
		config: cfg,
		logger: log,
	}
}

// GetConsumerLag compares the group's committed offsets against the
// newest offsets on the topic
func (m *MonitoringService) GetConsumerLag(ctx context.Context, topic string, consumerGroup string) (*ConsumerLag, error) {
	saramaConfig := GetSaramaConfig(m.config)

	admin, err := sarama.NewClusterAdmin(m.config.Kafka.Brokers, saramaConfig)
	if err != nil {
		m.logger.Errorw("kafka admin client init failed",
			"error", err,
			"brokers", m.config.Kafka.Brokers)
		return nil, fmt.Errorf("create kafka admin client: %w", err)
	}
	defer admin.Close()

	client, err := sarama.NewClient(m.config.Kafka.Brokers, saramaConfig)
	if err != nil {
		m.logger.Errorw("kafka client init failed",
			"error", err,
			"brokers", m.config.Kafka.Brokers)
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	defer client.Close()

	partitions, err := client.Partitions(topic)
	if err != nil {
		m.logger.Errorw("partition lookup failed",
			"error", err,
			"topic", topic)
		return nil, fmt.Errorf("get partitions for topic %s: %w", topic, err)
	}

	groupOffsets, err := admin.ListConsumerGroupOffsets(consumerGroup, map[string][]int32{
		topic: partitions,
	})
	if err != nil {
		m.logger.Errorw("consumer group offset lookup failed",
			"error", err,
			"consumer_group", consumerGroup,
			"topic", topic)
		return nil, fmt.Errorf("list consumer group offsets: %w", err)
	}

	lag := &ConsumerLag{
		Topic:         topic,
		ConsumerGroup: consumerGroup,
		PartitionLags: make(map[int32]int64),
	}

	for _, partition := range partitions {
		latest, err := client.GetOffset(topic, partition, sarama.OffsetNewest)
		if err != nil {
			m.logger.Warnw("latest offset lookup failed",
				"error", err,
				"topic", topic,
				"partition", partition)
			continue
		}

		pl := partitionLag(latest, groupOffsets.GetBlock(topic, partition))
		lag.PartitionLags[partition] = pl
		lag.TotalLag += pl
	}

	m.logger.Debugw("consumer lag calculated",
		"topic", topic,
		"consumer_group", consumerGroup,
		"total_lag", lag.TotalLag,
		"partitions", len(partitions))

	return lag, nil
}

// partitionLag treats a missing block or an offset of -1 as "nothing
// committed yet", which makes the whole partition count as lag.
func partitionLag(latest int64, block *sarama.OffsetFetchResponseBlock) int64 {
	var committed int64
	if block != nil && block.Offset >= 0 {
		committed = block.Offset
	}

	lag := latest - committed
	if lag < 0 {
		return 0
	}
	return lag
}
