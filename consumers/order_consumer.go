package consumers

import (
	"encoding/json"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"order-api/config"
	"order-api/models"
)

// StartOrderConsumer consumes the order queue and its dead-letter queue
// until the channel is closed.
func StartOrderConsumer(ch *amqp.Channel, cfg *config.Config, log logrus.FieldLogger) error {
	msgs, err := ch.Consume(
		cfg.OrderQueue,
		"order-api", // consumer tag
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "consume order queue")
	}

	dlqMsgs, err := ch.Consume(
		cfg.DeadLetterQueue,
		"order-api-dlq",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "consume dead-letter queue")
	}

	go func() {
		for msg := range msgs {
			processOrderMessage(msg, log)
		}
	}()

	go func() {
		for msg := range dlqMsgs {
			processDeadLetterMessage(msg, log)
		}
	}()

	return nil
}

func processOrderMessage(msg amqp.Delivery, log logrus.FieldLogger) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Recovered from panic in message processing")
			_ = msg.Nack(false, false)
		}
	}()

	var event models.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.WithError(err).WithField("body", string(msg.Body)).Warn("Invalid order event, dead-lettering")
		if err := msg.Nack(false, false); err != nil {
			log.WithError(err).Error("Failed to nack message")
		}
		return
	}

	entry := log.WithFields(logrus.Fields{
		"type":     event.Type,
		"order_id": event.OrderID,
		"user_id":  event.UserID,
	})

	switch event.Type {
	case models.EventOrderCreated:
		entry.WithFields(logrus.Fields{"total": event.Total, "items": event.Items}).Info("Handling order created")
	case models.EventUserRegistered:
		entry.Info("Handling user registered")
	default:
		entry.Warn("Unknown event type")
	}

	if err := msg.Ack(false); err != nil {
		log.WithError(err).Error("Failed to ack message")
	}
}

func processDeadLetterMessage(msg amqp.Delivery, log logrus.FieldLogger) {
	log.WithField("body", string(msg.Body)).Warn("Received dead letter")
	if err := msg.Ack(false); err != nil {
		log.WithError(err).Error("Failed to ack dead letter")
	}
}
