package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"halalshop-backend/internal/observability"
)

// Shop change event types.
const (
	EventShopCreated  = "shop.created"
	EventShopModified = "shop.modified"
	EventShopDeleted  = "shop.deleted"
)

// ShopEvent is the payload published for every successful write.
type ShopEvent struct {
	EventID string    `json:"eventId"`
	Type    string    `json:"type"`
	ShopID  string    `json:"shopId"`
	At      time.Time `json:"at"`
}

// ShopEventPublisher emits shop change notifications to Kafka. It is
// best-effort: a publish failure is logged and counted, never surfaced
// to the request that caused it.
type ShopEventPublisher struct {
	writer  *kafka.Writer
	metrics *observability.ShopMetrics
	log     *zap.Logger
}

func NewShopEventPublisher(writer *kafka.Writer, metrics *observability.ShopMetrics, log *zap.Logger) *ShopEventPublisher {
	return &ShopEventPublisher{writer: writer, metrics: metrics, log: log}
}

// Publish sends one event, keyed by shop id so all events for a shop
// land on the same partition. A nil publisher is a no-op.
func (p *ShopEventPublisher) Publish(ctx context.Context, eventType, shopID string) {
	if p == nil {
		return
	}
	event := ShopEvent{
		EventID: uuid.NewString(),
		Type:    eventType,
		ShopID:  shopID,
		At:      time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.log.Error("marshal shop event", zap.Error(err), zap.String("shopId", shopID))
		return
	}
	message := kafka.Message{
		Key:   []byte(shopID),
		Value: data,
	}
	topic := p.writer.Topic
	if topic == "" {
		topic = "unknown"
	}

	tracer := otel.Tracer("halalshop-backend/internal/service")
	spanCtx, span := tracer.Start(ctx, "shop.event_publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.destination", topic),
			attribute.String("shop.event_type", eventType),
		),
	)
	defer span.End()
	observability.InjectKafkaHeaders(spanCtx, &message.Headers)

	if err := p.writer.WriteMessages(spanCtx, message); err != nil {
		span.RecordError(err)
		p.log.Error("publish shop event failed",
			zap.Error(err),
			zap.String("type", eventType),
			zap.String("shopId", shopID),
		)
		p.metrics.ObserveKafkaPublish(topic, "error")
		return
	}
	p.metrics.ObserveKafkaPublish(topic, "success")
}
