package order_events

import (
	"context"
	"encoding/json"

	"canteen/internal/dto"
	"canteen/internal/entities"
	"canteen/internal/pkg/metrics"
	"canteen/pkg/logger"

	"github.com/IBM/sarama"
)

const (
	resultSent    = "sent"
	resultFailed  = "failed"
	resultSkipped = "skipped"
)

// Publisher отправляет события смены статуса в Kafka. Ошибки отправки
// только логируются: запись статуса от них не откатывается.
type Publisher struct {
	log      publisherLogger
	producer sarama.SyncProducer
	topic    string
}

func New(log publisherLogger, producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{
		log:      log,
		producer: producer,
		topic:    topic,
	}
}

func (p *Publisher) Publish(ctx context.Context, event entities.OrderStatusChanged) {
	eventLog := p.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("status", event.Status.String()),
		logger.NewField("source", event.Source.String()),
	)

	if err := ctx.Err(); err != nil {
		metrics.OrderEventsPublishedTotal.WithLabelValues(resultSkipped).Inc()
		eventLog.Warn("order status event dropped", logger.NewField("error", err))
		return
	}

	payload, err := json.Marshal(dto.FromOrderStatusChanged(event))
	if err != nil {
		metrics.OrderEventsPublishedTotal.WithLabelValues(resultFailed).Inc()
		eventLog.Error("failed to encode order status event", logger.NewField("error", err))
		return
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		metrics.OrderEventsPublishedTotal.WithLabelValues(resultFailed).Inc()
		eventLog.Error("failed to publish order status event", logger.NewField("error", err))
		return
	}

	metrics.OrderEventsPublishedTotal.WithLabelValues(resultSent).Inc()
	eventLog.Debug("order status event published",
		logger.NewField("partition", partition),
		logger.NewField("offset", offset),
	)
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

// Noop используется, когда брокеры не настроены.
type Noop struct{}

func (Noop) Publish(context.Context, entities.OrderStatusChanged) {}

func (Noop) Close() error { return nil }
