package app

import (
	"encoding/json"

	"shopapi/internal/models"
	"shopapi/pkg/rabbitmq"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

// eventPublisher adapts the RabbitMQ client to services.EventPublisher.
type eventPublisher struct {
	client *rabbitmq.Client
}

func (p eventPublisher) PublishProductEvent(event models.ProductEvent) error {
	return p.client.Publish(event.Type, event)
}

// auditProductEvent logs every product event read back from the queue.
// Undecodable messages are logged and acked so they are not redelivered forever.
func auditProductEvent(logger zerolog.Logger) func(amqp.Delivery) error {
	logger = logger.With().Str("component", "audit").Logger()
	return func(msg amqp.Delivery) error {
		var event models.ProductEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			logger.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("dropping malformed product event")
			return nil
		}
		logger.Info().
			Str("event_id", event.ID).
			Str("type", event.Type).
			Uint("id", event.ProductDBID).
			Int64("product_id", event.ProductID).
			Time("occurred_at", event.OccurredAt).
			Msg("product event")
		return nil
	}
}
