package data

import (
	"time"

	"github.com/segmentio/kafka-go"

	"halalshop-backend/internal/config"
)

// NewKafkaWriter builds a producer for the given topic. Messages are
// keyed by shop id, so a hash balancer keeps one shop on one partition.
func NewKafkaWriter(cfg config.KafkaConfig, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
}
